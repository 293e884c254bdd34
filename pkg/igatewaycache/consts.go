/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package igatewaycache

const (
	queryTotal       = "triggers_igatewaycache_query_total"
	queryCachedTotal = "triggers_igatewaycache_query_cached_total"
	mutateTotal      = "triggers_igatewaycache_mutate_total"
)

// DefaultMaxBytes is the default cache capacity
const DefaultMaxBytes = 32 * 1024 * 1024
