/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package itriggers

type RecordID uint64

// Kind of the platform operation that produced a change batch
type OperationKind uint8

// Before (pre-persistence, records mutable) or After (post-persistence, read-only)
type Phase uint8

// Kind of a mutation requested from the external gateway
type MutationKind uint8

// TriggerContext classifies one change batch.
// Ref. Classify() in utils.go
type TriggerContext struct {
	Kind  OperationKind
	Phase Phase
}

// OperationFlags is the raw platform-supplied invocation metadata.
// Exactly one operation flag must be set, ref. Classify()
type OperationFlags struct {
	IsInsert   bool
	IsUpdate   bool
	IsDelete   bool
	IsUndelete bool

	// false means After
	IsBefore bool
}

// QuerySpec describes one coalesced read from the host platform: all records
// of the schema whose field value is in Values.
//
// Specs with the equal Key() are deduplicated within one dispatch
type QuerySpec struct {
	Schema string
	Field  string
	Values []string
}

// FieldError is a record-scoped validation failure. It never aborts the
// evaluation of sibling records
type FieldError struct {
	RecordID RecordID
	Field    string
	Message  string
}

// Notification is one outbound message queued by a rule. Notifications are
// delivered out-of-band after the invocation is committed
type Notification struct {
	Recipient string
	Subject   string
	Body      string
}

// StagedEdit names the fields a Before-phase dispatch changed in place.
// The host platform persists these edits implicitly, no mutation call is spent
type StagedEdit struct {
	RecordID RecordID
	Fields   []string
}

// DispatchResult is the outcome of evaluating all matching rules against one batch
type DispatchResult struct {
	StagedEdits []StagedEdit

	// coalesced: at most one entry per mutation kind
	Mutations map[MutationKind][]IRecord

	FieldErrors   []FieldError
	Notifications []Notification
}

type InvocationResultKind uint8

// InvocationResult is what the host platform receives back from Invoke()
type InvocationResult struct {
	Kind InvocationResultKind

	// filled for InvocationResult_Rejected only
	FieldErrors []FieldError

	// filled for InvocationResult_Fatal only
	Err error
}

// Rule is a registered unit of business logic. Immutable after registration.
type Rule struct {
	Name string

	// contexts the rule applies to, at least one
	Contexts []TriggerContext

	// Queries declares the bulk fetch performed once per dispatch before
	// per-record evaluation. Optional. This is the only way a rule reaches
	// the external gateway, so a per-record query loop is not expressible.
	Queries func(batch IChangeBatch, ctx TriggerContext) []QuerySpec

	// Func evaluates the rule against the whole batch, exactly once per
	// dispatch. A non-nil error is fatal for the whole dispatch.
	Func func(st IRuleState, intents IRuleIntents) error
}
