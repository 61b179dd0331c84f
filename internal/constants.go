/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import "time"

const (
	UserAgent = "arenarank/0.3.0 (+https://github.com/mikeb26/arenarank)"

	// CacheBucketEnv names the S3 bucket backing the web cache. When unset
	// remote inputs are cached in memory for the life of the process.
	CacheBucketEnv = "ARENARANK_CACHE_BUCKET"
	// CacheTTLEnv overrides DefaultCacheTTL; any time.ParseDuration value.
	CacheTTLEnv = "ARENARANK_CACHE_TTL"

	DefaultCacheTTL = 24 * time.Hour
)
