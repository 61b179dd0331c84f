/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright (c) 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 *
 * Package s3cache provides an implementation of httpcache.Cache that stores and
 * retrieves data using Amazon S3. It is based on the original
 * github.com/sourcegraph/s3cache but updated to use the more modern
 * aws-sdk-go-v2 and golang standard library functions
 */
package s3cache

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

const DefaultPrefix = "arenarank-webcache"

// Cache objects store and retrieve data using Amazon S3.
type Cache struct {
	// Config is the Amazon S3 configuration.
	Config aws.Config

	// Client is the s3 client the cache uses. Init() builds one from the
	// default config unless the caller already set it.
	Client *s3.Client

	bucketName string
	prefix     string

	// gzip indicates whether cache entries are gzipped in Set and
	// gunzipped in Get. If true, object keys have the suffix ".gz".
	gzip      bool
	logErrors bool

	ctx context.Context
}

type Option func(*Cache)

// WithGzip stores entries gzip-compressed.
func WithGzip() Option {
	return func(c *Cache) { c.gzip = true }
}

// WithErrorLogging logs S3 failures other than cache misses.
func WithErrorLogging() Option {
	return func(c *Cache) { c.logErrors = true }
}

// WithPrefix places all objects under prefix instead of DefaultPrefix.
func WithPrefix(prefix string) Option {
	return func(c *Cache) { c.prefix = prefix }
}

// New returns a new Cache with underlying storage in the specified Amazon S3
// bucket. Callers should take care to invoke Init() on the returned Cache
// object before use.
func New(ctx context.Context, bucketName string, opts ...Option) *Cache {
	c := &Cache{
		ctx:        ctx,
		bucketName: bucketName,
		prefix:     DefaultPrefix,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Init loads the default AWS configuration (environment, shared config and
// credentials files) and verifies the bucket is reachable and listable.
func (c *Cache) Init() error {
	if c.Client == nil {
		var err error
		c.Config, err = config.LoadDefaultConfig(c.ctx)
		if err != nil {
			return fmt.Errorf("s3cache.init: failed to load AWS config: %w", err)
		}
		c.Client = s3.NewFromConfig(c.Config)
	}

	if _, err := c.Client.HeadBucket(c.ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.bucketName),
	}); err != nil {
		return fmt.Errorf("s3cache.init: head bucket failed for %s: %w", c.bucketName, err)
	}

	if _, err := c.Client.ListObjectsV2(c.ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(c.bucketName),
		Prefix:  aws.String(c.prefix + "/"),
		MaxKeys: aws.Int32(1),
	}); err != nil {
		return fmt.Errorf("s3cache.init: list objects failed for %s: %w", c.bucketName, err)
	}

	return nil
}

func (c *Cache) Get(key string) ([]byte, bool) {
	objKey := c.ObjectKey(key)
	resp, err := c.Client.GetObject(c.ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(objKey),
	})
	if err != nil {
		// no such key just indicates a cache miss
		if !IsNotFound(err) {
			c.logf("get: failed to get object %v/%v: %v", c.bucketName, objKey, err)
		}
		return nil, false
	}
	defer resp.Body.Close()

	rdr := io.Reader(resp.Body)
	if c.gzip {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			c.logf("get: failed to open compressed object %v/%v: %v", c.bucketName, objKey, err)
			return nil, false
		}
		defer gz.Close()
		rdr = gz
	}

	data, err := io.ReadAll(rdr)
	if err != nil {
		c.logf("get: failed to read object %v/%v: %v", c.bucketName, objKey, err)
		return nil, false
	}

	return data, true
}

// Set stores the provided data in the cache under the given key.
func (c *Cache) Set(key string, data []byte) {
	objKey := c.ObjectKey(key)
	input := &s3.PutObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(objKey),
		Body:   bytes.NewReader(data),
	}

	if c.gzip {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write(data); err != nil {
			c.logf("set: failed to gzip data for %v/%v: %v", c.bucketName, objKey, err)
			return
		}
		if err := gw.Close(); err != nil {
			c.logf("set: failed to close gzip writer for %v/%v: %v", c.bucketName, objKey, err)
			return
		}
		input.Body = &buf
		input.ContentEncoding = aws.String("gzip")
	}

	if _, err := c.Client.PutObject(c.ctx, input); err != nil {
		c.logf("set: put failed for %v/%v: %v", c.bucketName, objKey, err)
	}
}

func (c *Cache) Delete(key string) {
	objKey := c.ObjectKey(key)
	_, err := c.Client.DeleteObject(c.ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(objKey),
	})
	if err != nil {
		c.logf("delete: delete failed for %v/%v: %v", c.bucketName, objKey, err)
	}
}

// ObjectKey maps a cache key (usually a URL) to the S3 object key it is
// stored under.
func (c *Cache) ObjectKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	objKey := path.Join(c.prefix, hex.EncodeToString(sum[:]))
	if c.gzip {
		objKey += ".gz"
	}

	return objKey
}

func (c *Cache) logf(format string, args ...any) {
	if c.logErrors {
		log.Printf("s3cache."+format, args...)
	}
}

// IsNotFound reports whether err is an S3 "NoSuchKey" (or bare "NotFound"
// from HEAD requests) API error.
func IsNotFound(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "NoSuchKey", "NotFound":
		return true
	}
	return false
}
