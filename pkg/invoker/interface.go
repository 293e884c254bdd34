/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package invoker

import (
	"github.com/voedger/triggers/pkg/engine"
	"github.com/voedger/triggers/pkg/ibudgets"
	"github.com/voedger/triggers/pkg/igateway"
	"github.com/voedger/triggers/pkg/inotify"
	"github.com/voedger/triggers/pkg/itriggers"
)

// ChangeSet is the raw record set the host platform delivers
type ChangeSet struct {
	// affected records in operation order
	Records []itriggers.IRecord

	// prior snapshots, expected for update/delete/undelete operations
	OldRecords []itriggers.IRecord
}

// IInvoker is the single call the host platform makes into this module.
//
// One Invoke is one logical transaction: the change set is split into batches
// of at most the platform cap, every batch is dispatched within one shared
// budget scope, and mutations are committed only if no batch was rejected.
//
// An invoker instance serves sequential invocations: Invoke resets the shared
// budgets, so concurrent platform operations must each use their own invoker
// (own budgets, own gateway) to keep their counters isolated
type IInvoker interface {
	Invoke(changeSet ChangeSet, flags itriggers.OperationFlags) itriggers.InvocationResult
}

type ParamsType struct {
	Engine  engine.IRuleEngine
	Gateway igateway.IGateway
	Budgets ibudgets.IBudgets

	// Optional. Notifications are dropped with a log line when nil
	Notifier inotify.INotifier

	// PlatformCap splits oversized change sets.
	// Optional. Default value: itriggers.DefaultPlatformCap
	PlatformCap int
}
