/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package itriggers

const (
	OperationKind_null OperationKind = iota
	OperationKind_Insert
	OperationKind_Update
	OperationKind_Delete
	OperationKind_Undelete
	OperationKind_FakeLast
)

const (
	Phase_Before Phase = iota
	Phase_After
	Phase_FakeLast
)

const (
	MutationKind_null MutationKind = iota
	MutationKind_Insert
	MutationKind_Update
	MutationKind_Delete
	MutationKind_FakeLast
)

const (
	InvocationResult_Committed InvocationResultKind = iota
	InvocationResult_Rejected
	InvocationResult_Fatal
)

// NullRecordID is the ID of a record that is not persisted yet
const NullRecordID = RecordID(0)

// DefaultPlatformCap is the maximum batch size for one invocation.
// Larger change sets are split into sequential batches by the caller
const DefaultPlatformCap = 200
