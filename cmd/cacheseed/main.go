/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/mikeb26/arenarank/internal"
	"github.com/mikeb26/arenarank/source"
)

// this program exists just to seed the S3 web cache with remote match inputs
// ahead of a run

func main() {
	pause := flag.Duration("pause", 2*time.Second, "delay between fetches")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	bucket := os.Getenv(internal.CacheBucketEnv)
	if bucket == "" {
		log.Fatalf("%v: %v must name the cache bucket", os.Args[0], internal.CacheBucketEnv)
	}

	ctx := context.Background()
	ld := &source.Loader{
		HTTP: internal.NewCachedHttpClient(ctx, internal.CacheTTLFromEnv(), bucket),
	}

	for i, ref := range flag.Args() {
		if !strings.HasPrefix(ref, "http://") && !strings.HasPrefix(ref, "https://") {
			log.Printf("cacheseed: skipping %v: not a web reference", ref)
			continue
		}
		if i > 0 {
			time.Sleep(*pause) // avoid pegging the origin
		}
		if _, err := ld.Load(ctx, ref); err != nil {
			// best effort
			log.Printf("cacheseed: %v", err)
			continue
		}

		fmt.Printf("seeded %v\n", ref)
	}
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(),
		"Usage:\n\n%v [-pause d] <url>...\n\nFetch each url through the %v web cache.\n",
		os.Args[0], internal.CacheBucketEnv)
	flag.PrintDefaults()
}
