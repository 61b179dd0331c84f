/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package source reads whole inputs named by a reference string: a local
// path, "-" for stdin, an http(s) URL or an s3://bucket/key object.
package source

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/mikeb26/arenarank/internal"
	"github.com/mikeb26/arenarank/s3cache"
	"golang.org/x/sync/errgroup"
)

const Stdin = "-"

// S3API is the subset of *s3.Client the loader needs.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput,
		optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type Loader struct {
	// HTTP is used for http(s) references. When nil, newHTTP builds one on
	// first use, falling back to http.DefaultClient.
	HTTP  *http.Client
	Stdin io.Reader

	mu      sync.Mutex
	s3      S3API
	newHTTP func() *http.Client
}

// NewLoader returns a Loader whose remote fetches go through the web cache
// configured by the environment. The cache is only set up once a web
// reference is loaded.
func NewLoader(ctx context.Context) *Loader {
	return &Loader{
		Stdin: os.Stdin,
		newHTTP: func() *http.Client {
			return internal.NewCachedHttpClient(ctx, internal.CacheTTLFromEnv(),
				os.Getenv(internal.CacheBucketEnv))
		},
	}
}

func (l *Loader) httpClient() *http.Client {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.HTTP == nil {
		if l.newHTTP == nil {
			return http.DefaultClient
		}
		l.HTTP = l.newHTTP()
	}
	return l.HTTP
}

// WithS3 sets the S3 client used for s3:// references. Without one a client
// is built from the default AWS configuration on first use.
func (l *Loader) WithS3(api S3API) *Loader {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.s3 = api
	return l
}

// Load returns the full contents named by ref. An empty ref reads stdin.
func (l *Loader) Load(ctx context.Context, ref string) (string, error) {
	var (
		data string
		err  error
	)
	switch {
	case ref == "" || ref == Stdin:
		data, err = l.loadStdin()
		ref = "<stdin>"
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		data, err = l.loadHTTP(ctx, ref)
	case strings.HasPrefix(ref, "s3://"):
		data, err = l.loadS3(ctx, ref)
	default:
		data, err = loadFile(ref)
	}
	if err != nil {
		return "", fmt.Errorf("reading %v: %w", ref, err)
	}
	internal.Debugf("source.load: read %d bytes from %v", len(data), ref)

	return data, nil
}

// LoadAll loads every ref concurrently and returns the contents in the same
// order as refs.
func (l *Loader) LoadAll(ctx context.Context, refs ...string) ([]string, error) {
	out := make([]string, len(refs))
	g, ctx := errgroup.WithContext(ctx)
	for i, ref := range refs {
		g.Go(func() error {
			data, err := l.Load(ctx, ref)
			if err != nil {
				return err
			}
			out[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

func (l *Loader) loadStdin() (string, error) {
	in := l.Stdin
	if in == nil {
		in = os.Stdin
	}
	b, err := io.ReadAll(in)
	return string(b), err
}

func loadFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	return string(b), err
}

func (l *Loader) loadHTTP(ctx context.Context, ref string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := l.httpClient().Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %s", resp.Status)
	}
	if internal.FromCache(resp) {
		internal.Debugf("source.load: %v served from cache", ref)
	}

	if isHTML(resp.Header.Get("Content-Type")) {
		return extractPre(resp.Body)
	}
	b, err := io.ReadAll(resp.Body)
	return string(b), err
}

func isHTML(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	return err == nil && mt == "text/html"
}

// extractPre returns the text of every <pre> element on an html page, which
// is how results pages publish raw match records.
func extractPre(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parsing html: %w", err)
	}

	var blocks []string
	doc.Find("pre").Each(func(_ int, s *goquery.Selection) {
		blocks = append(blocks, strings.Trim(s.Text(), "\n"))
	})
	if len(blocks) == 0 {
		return "", fmt.Errorf("html page has no <pre> block of match records")
	}

	return strings.Join(blocks, "\n"), nil
}

// ParseS3Ref splits s3://bucket/key.
func ParseS3Ref(ref string) (bucket string, key string, err error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", "", err
	}
	if u.Scheme != "s3" || u.Host == "" {
		return "", "", fmt.Errorf("invalid s3 reference %q", ref)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", "", fmt.Errorf("s3 reference %q has no object key", ref)
	}
	return u.Host, key, nil
}

func (l *Loader) s3Client(ctx context.Context) (S3API, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.s3 != nil {
		return l.s3, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	l.s3 = s3.NewFromConfig(cfg)

	return l.s3, nil
}

func (l *Loader) loadS3(ctx context.Context, ref string) (string, error) {
	bucket, key, err := ParseS3Ref(ref)
	if err != nil {
		return "", err
	}
	client, err := l.s3Client(ctx)
	if err != nil {
		return "", err
	}

	resp, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if s3cache.IsNotFound(err) {
			return "", fmt.Errorf("object not found: %w", err)
		}
		return "", err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	return string(b), err
}
