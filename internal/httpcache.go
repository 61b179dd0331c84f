/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/mikeb26/arenarank/s3cache"
)

// NewCachedHttpClient returns an http.Client whose responses are cached for
// maxAge regardless of what the origin says. If bucket is non-empty the cache
// lives in that S3 bucket; if bucket is empty or S3 cannot be initialized the
// cache is kept in memory instead.
func NewCachedHttpClient(ctx context.Context, maxAge time.Duration,
	bucket string) *http.Client {

	return &http.Client{Transport: newCachingTransport(newCache(ctx, bucket),
		maxAge, http.DefaultTransport)}
}

func newCache(ctx context.Context, bucket string) httpcache.Cache {
	if bucket == "" {
		return httpcache.NewMemoryCache()
	}

	cache := s3cache.New(ctx, bucket, s3cache.WithGzip(), s3cache.WithErrorLogging())
	if err := cache.Init(); err != nil {
		log.Printf("httpcache: warning failed to init S3 cache: %v; falling back to memory cache", err)
		return httpcache.NewMemoryCache()
	}
	Debugf("httpcache: using s3://%v", bucket)

	return cache
}

func newCachingTransport(cache httpcache.Cache, maxAge time.Duration,
	wrapped http.RoundTripper) *httpcache.Transport {

	hc := httpcache.NewTransport(cache)
	// we have to inject our own header overrides here in order to override
	// server responses that might indicate caching shouldn't be done
	hc.Transport = &HeaderOverrideTransport{
		wrappedRT: wrapped,
		Request: func(req *http.Request) {
			if req.Header.Get("User-Agent") == "" {
				req.Header.Set("User-Agent", UserAgent)
			}
		},
		Response: func(resp *http.Response) error {
			resp.Header.Del("Pragma")
			resp.Header.Del("Expires")
			resp.Header.Del("Cache-Control")
			resp.Header.Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(maxAge/time.Second)))
			return nil
		},
	}

	return hc
}

// FromCache reports whether resp was served by the web cache.
func FromCache(resp *http.Response) bool {
	return resp.Header.Get(httpcache.XFromCache) == "1"
}

type HeaderOverrideTransport struct {
	Request  func(req *http.Request)
	Response func(resp *http.Response) error

	// Underlying RoundTripper (e.g. default transport or another decorator)
	wrappedRT http.RoundTripper
}

// RoundTrip applies Request and Response hooks around the underlying transport.
func (t *HeaderOverrideTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so we don’t stomp on the caller’s original
	req2 := req.Clone(req.Context())
	if t.Request != nil {
		t.Request(req2)
	}

	resp, err := t.wrappedRT.RoundTrip(req2)
	if err != nil {
		return nil, err
	}

	if t.Response != nil {
		if err := t.Response(resp); err != nil {
			resp.Body.Close()
			return nil, err
		}
	}
	return resp, nil
}
