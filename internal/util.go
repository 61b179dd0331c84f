/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"os"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseDateOrZero returns a parsed time or zero if input is empty or "null".
func ParseDateOrZero(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return time.Time{}, nil
	}
	return dateparse.ParseAny(s)
}

// CacheTTLFromEnv returns the web cache TTL, falling back to DefaultCacheTTL
// when the environment override is missing or unparseable.
func CacheTTLFromEnv() time.Duration {
	v := os.Getenv(CacheTTLEnv)
	if v == "" {
		return DefaultCacheTTL
	}
	ttl, err := time.ParseDuration(v)
	if err != nil || ttl <= 0 {
		Debugf("ignoring invalid %v=%q", CacheTTLEnv, v)
		return DefaultCacheTTL
	}
	return ttl
}
