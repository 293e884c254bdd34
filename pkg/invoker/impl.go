/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package invoker

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/untillpro/goutils/logger"

	"github.com/voedger/triggers/pkg/itriggers"
	"github.com/voedger/triggers/pkg/records"
)

type invokerType struct {
	params ParamsType

	// tracks in-flight notification deliveries, tests wait on it
	notifyWG sync.WaitGroup
}

// commit order is fixed regardless of the order rules staged their requests
var mutationOrder = []itriggers.MutationKind{
	itriggers.MutationKind_Insert,
	itriggers.MutationKind_Update,
	itriggers.MutationKind_Delete,
}

func (inv *invokerType) Invoke(changeSet ChangeSet, flags itriggers.OperationFlags) (res itriggers.InvocationResult) {
	invID := uuid.New()

	ctx, err := itriggers.Classify(flags)
	if err != nil {
		return inv.fatal(invID, err)
	}

	// one Invoke is one transaction, split batches share the budget scope
	inv.params.Budgets.Reset()

	editable := ctx.Phase == itriggers.Phase_Before
	batches, err := records.Split(changeSet.Records, changeSet.OldRecords, editable, inv.params.PlatformCap)
	if err != nil {
		return inv.fatal(invID, err)
	}

	if logger.IsVerbose() {
		logger.Verbose(fmt.Sprintf("invocation «%s»: %s, %d record(s), %d batch(es)", invID, ctx, len(changeSet.Records), len(batches)))
	}

	results := make([]itriggers.DispatchResult, 0, len(batches))
	fieldErrors := []itriggers.FieldError{}
	for _, batch := range batches {
		r, err := inv.params.Engine.Dispatch(batch, ctx)
		if err != nil {
			return inv.fatal(invID, err)
		}
		results = append(results, r)
		fieldErrors = append(fieldErrors, r.FieldErrors...)
	}

	if len(fieldErrors) > 0 {
		// no partial commit: one addressed error rejects the whole change set
		return itriggers.InvocationResult{
			Kind:        itriggers.InvocationResult_Rejected,
			FieldErrors: fieldErrors,
		}
	}

	for _, r := range results {
		for _, kind := range mutationOrder {
			recs := r.Mutations[kind]
			if len(recs) == 0 {
				continue
			}
			if _, err := inv.params.Gateway.Mutate(kind, recs); err != nil {
				return inv.fatal(invID, err)
			}
		}
	}

	notifications := []itriggers.Notification{}
	for _, r := range results {
		notifications = append(notifications, r.Notifications...)
	}
	inv.queueNotifications(invID, notifications)

	return itriggers.InvocationResult{Kind: itriggers.InvocationResult_Committed}
}

// queueNotifications delivers out-of-band, after the invocation outcome is
// already decided. Delivery failures are logged, never surfaced to the caller
func (inv *invokerType) queueNotifications(invID uuid.UUID, notifications []itriggers.Notification) {
	if len(notifications) == 0 {
		return
	}
	if inv.params.Notifier == nil {
		logger.Error(fmt.Sprintf("invocation «%s»: %d notification(s) dropped: no notifier provided", invID, len(notifications)))
		return
	}
	inv.notifyWG.Add(1)
	go func() {
		defer inv.notifyWG.Done()
		if err := inv.params.Notifier.Send(notifications); err != nil {
			logger.Error(fmt.Sprintf("invocation «%s»: notification delivery failed: %s", invID, err.Error()))
		}
	}()
}

func (inv *invokerType) fatal(invID uuid.UUID, err error) itriggers.InvocationResult {
	logger.Error(fmt.Sprintf("invocation «%s» failed: %s", invID, err.Error()))
	return itriggers.InvocationResult{
		Kind: itriggers.InvocationResult_Fatal,
		Err:  err,
	}
}
