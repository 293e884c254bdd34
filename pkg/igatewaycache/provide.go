/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package igatewaycache

import (
	"github.com/VictoriaMetrics/fastcache"

	"github.com/voedger/triggers/pkg/igateway"
	"github.com/voedger/triggers/pkg/imetrics"
	"github.com/voedger/triggers/pkg/schemas"
)

// Provide returns a read-through caching decorator over the driver.
//
// maxBytes ≤ 0 means DefaultMaxBytes
func Provide(maxBytes int, driver igateway.IGatewayDriver, sch *schemas.Cache, metrics imetrics.IMetrics) igateway.IGatewayDriver {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &cachedDriver{
		cache:             fastcache.New(maxBytes),
		driver:            driver,
		schemas:           sch,
		mQueryTotal:       metrics.MetricAddr(queryTotal),
		mQueryCachedTotal: metrics.MetricAddr(queryCachedTotal),
		mMutateTotal:      metrics.MetricAddr(mutateTotal),
	}
}
