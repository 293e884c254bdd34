/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package engine

import (
	"github.com/voedger/triggers/pkg/itriggers"
)

type ParamsType struct {
	// PlatformCap is the maximum accepted batch size.
	// Optional. Default value: itriggers.DefaultPlatformCap
	PlatformCap int

	// IntentsLimit tops staged mutation and notification requests per
	// dispatch. Optional. Default value: DefaultIntentsLimit
	IntentsLimit int
}

// IRuleEngine evaluates registered rules against change batches.
//
// Registration happens once at construction, ref. Provide(); the engine is
// stateless between dispatches and safe for sequential reuse
type IRuleEngine interface {
	// Dispatch evaluates all rules applicable to the context against the
	// batch, exactly once per batch, never per record.
	//
	// A non-nil error (rule failure, budget, usage violation) is fatal for
	// the invocation. Record-level validation failures are no error: they
	// are collected into the result without aborting sibling records
	Dispatch(batch itriggers.IChangeBatch, ctx itriggers.TriggerContext) (itriggers.DispatchResult, error)
}
