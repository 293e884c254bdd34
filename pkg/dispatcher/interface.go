/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package dispatcher

import (
	"github.com/voedger/triggers/pkg/ibudgets"
	"github.com/voedger/triggers/pkg/igateway"
	"github.com/voedger/triggers/pkg/imetrics"
	"github.com/voedger/triggers/pkg/inotify"
	"github.com/voedger/triggers/pkg/itriggers"
	"github.com/voedger/triggers/pkg/schemas"
)

// Config is everything needed to assemble a ready dispatcher
type Config struct {
	// Schemas is the built schema cache
	Schemas *schemas.Cache

	// Rules to register, in evaluation order
	Rules []itriggers.Rule

	// Driver is the host platform access driver
	Driver igateway.IGatewayDriver

	// Budget caps external calls per invocation.
	// Optional. Zero value means ibudgets.DefaultBudgetState()
	Budget ibudgets.BudgetState

	// Optional. Default value: itriggers.DefaultPlatformCap
	PlatformCap int

	// Optional. Default value: engine.DefaultIntentsLimit
	IntentsLimit int

	// CacheMaxBytes sizes the read-through query cache over the driver.
	// Optional. Zero means igatewaycache.DefaultMaxBytes, negative
	// disables the cache
	CacheMaxBytes int

	// Optional. Notifications are dropped with a log line when nil
	Notifier inotify.INotifier

	// Optional. Provided when nil
	Metrics imetrics.IMetrics
}
