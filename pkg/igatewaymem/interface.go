/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package igatewaymem

import (
	"github.com/voedger/triggers/pkg/igateway"
	"github.com/voedger/triggers/pkg/itriggers"
)

// MutationCall is one recorded Mutate call
type MutationCall struct {
	Kind    itriggers.MutationKind
	Records int
}

// IMemDriver is the in-memory gateway driver. It records every call, so tests
// can assert bulk-safety: call counts stay flat regardless of batch size
type IMemDriver interface {
	igateway.IGatewayDriver

	// Fill seeds the store bypassing call accounting
	Fill(records ...itriggers.IRecord)

	// Record returns the stored record
	Record(schema string, id itriggers.RecordID) (itriggers.IRecord, bool)

	// QueryLog returns executed query specs in call order
	QueryLog() []itriggers.QuerySpec

	// MutationLog returns executed mutations in call order
	MutationLog() []MutationCall
}
