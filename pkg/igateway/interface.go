/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package igateway

import (
	"github.com/voedger/triggers/pkg/itriggers"
)

type MutationResult struct {
	// records affected by the coalesced call
	Applied int
}

// IGateway is the single choke point for all query and mutation calls to the
// host platform. Every call is counted against the invocation budgets
type IGateway interface {
	// Query executes one coalesced read. Idempotent, side-effect free
	Query(spec itriggers.QuerySpec) ([]itriggers.IRecord, error)

	// Mutate applies one coalesced mutation of the kind
	Mutate(kind itriggers.MutationKind, records []itriggers.IRecord) (MutationResult, error)
}

// IGatewayDriver reaches the actual record store. Unmetered: budget
// enforcement belongs to the gateway, drivers only execute calls.
//
// Drivers must be substitutable with a test double that records calls for
// budget-assertion tests, ref. igatewaymem
type IGatewayDriver interface {
	Query(spec itriggers.QuerySpec) ([]itriggers.IRecord, error)
	Mutate(kind itriggers.MutationKind, records []itriggers.IRecord) (MutationResult, error)
}
