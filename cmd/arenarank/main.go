/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/mikeb26/arenarank/house"
	"github.com/mikeb26/arenarank/internal"
	"github.com/mikeb26/arenarank/match"
	"github.com/mikeb26/arenarank/ranker"
	"github.com/mikeb26/arenarank/source"
)

type options struct {
	input  string
	houses string
	debug  bool
	format match.Format
	since  time.Time
}

func main() {
	opts, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(1)
	}
	internal.SetDebug(opts.debug)

	ctx := context.Background()
	err = run(ctx, opts, source.NewLoader(ctx), ranker.NewOpenSkill(), os.Stdout)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
}

func parseArgs(args []string, errOut io.Writer) (*options, error) {
	fs := flag.NewFlagSet("arenarank", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() { usage(fs) }

	houses := fs.String("houses", "", "file mapping competitor names to houses")
	debug := fs.Bool("debug", false, "print the house-substituted input and debug logging")
	format := fs.String("format", "plain", "record format: plain or legacy")
	since := fs.String("since", "", "legacy format only: skip matches dated before this date")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	opts := &options{
		houses: *houses,
		debug:  *debug,
	}

	var err error
	if opts.format, err = match.ParseFormat(*format); err != nil {
		return nil, argError(fs, err)
	}
	if *since != "" {
		if opts.format != match.FormatLegacy {
			return nil, argError(fs, fmt.Errorf("-since requires -format legacy"))
		}
		if opts.since, err = internal.ParseDateOrZero(*since); err != nil {
			return nil, argError(fs, fmt.Errorf("invalid -since date %q: %w", *since, err))
		}
	}

	switch fs.NArg() {
	case 0:
		opts.input = source.Stdin
	case 1:
		opts.input = fs.Arg(0)
	default:
		return nil, argError(fs, fmt.Errorf("expected at most one input, got %d: %v",
			fs.NArg(), strings.Join(fs.Args(), " ")))
	}
	if opts.input == source.Stdin && opts.houses == source.Stdin {
		return nil, argError(fs, fmt.Errorf("input and -houses cannot both be stdin"))
	}

	return opts, nil
}

func argError(fs *flag.FlagSet, err error) error {
	fmt.Fprintf(fs.Output(), "%v\n", err)
	fs.Usage()
	return err
}

func usage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), `Usage:

%v [flags] [input]

Rank arena competitors from match records, one per line:
  winner, loser[, loser...]       (teams join names with '&')
input may be a file, '-' for stdin, an http(s) URL or s3://bucket/key and
defaults to stdin.

Environment:
  %v  S3 bucket for caching remote inputs
  %v     cache lifetime (default %v)

Flags:
`, fs.Name(), internal.CacheBucketEnv, internal.CacheTTLEnv, internal.DefaultCacheTTL)
	fs.PrintDefaults()
}

type loader interface {
	LoadAll(ctx context.Context, refs ...string) ([]string, error)
}

func run(ctx context.Context, opts *options, ld loader, rater ranker.Rater,
	out io.Writer) error {

	refs := []string{opts.input}
	if opts.houses != "" {
		refs = append(refs, opts.houses)
	}
	inputs, err := ld.LoadAll(ctx, refs...)
	if err != nil {
		return err
	}
	text := inputs[0]

	if opts.houses != "" {
		hm, err := house.Parse(inputs[1])
		if err != nil {
			return fmt.Errorf("%v: %w", opts.houses, err)
		}
		internal.Debugf("arenarank: %d house members from %v", hm.Len(), opts.houses)
		text = hm.Apply(text)
		if opts.debug {
			fmt.Fprint(out, text)
			if !strings.HasSuffix(text, "\n") {
				fmt.Fprintln(out)
			}
		}
	}

	matches, err := match.ParseAll(text, opts.format)
	if err != nil {
		return fmt.Errorf("%v: %w", displayName(opts.input), err)
	}
	matches = match.Since(matches, opts.since)
	internal.Debugf("arenarank: %d matches", len(matches))

	tracker := ranker.NewTracker(rater)
	if err := tracker.Apply(matches); err != nil {
		return fmt.Errorf("%v: %w", displayName(opts.input), err)
	}

	return tracker.Render(out)
}

func displayName(ref string) string {
	if ref == source.Stdin {
		return "<stdin>"
	}
	return ref
}
