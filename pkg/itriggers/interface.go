/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package itriggers

// IRecord is a read-only view of one record.
//
// As××× methods panic if the field is not declared by the record schema and
// return the zero value if the field is declared but has no value
type IRecord interface {
	ID() RecordID

	// schema (entity) name
	Schema() string

	AsInt32(name string) int32
	AsInt64(name string) int64
	AsFloat32(name string) float32
	AsFloat64(name string) float64
	AsBytes(name string) []byte
	AsString(name string) string
	AsBool(name string) bool
	AsRecordID(name string) RecordID

	// FieldNames enumerates fields that have a value
	FieldNames(cb func(name string))
}

// IEditableRecord is a record that accepts staged field edits.
//
// Put××× methods do not fail immediately: violations (read-only record,
// unknown field, wrong field kind) are collected and returned by Error()
type IEditableRecord interface {
	IRecord

	PutInt32(name string, value int32)
	PutInt64(name string, value int64)
	PutFloat32(name string, value float32)
	PutFloat64(name string, value float64)
	PutBytes(name string, value []byte)
	PutString(name string, value string)
	PutBool(name string, value bool)
	PutRecordID(name string, value RecordID)

	// EditedFields enumerates fields changed since the record was sealed
	// into a batch, in edit order
	EditedFields(cb func(name string))

	// Error returns the first error collected by Put××× calls
	Error() error
}

// IChangeBatch is an immutable value holding the records affected by one
// platform-invoked operation
type IChangeBatch interface {
	Count() int

	// affected records in operation order
	Record(i int) IRecord

	// prior snapshot, present for update/delete/undelete operations
	OldRecord(id RecordID) (IRecord, bool)

	// Edit returns the i-th record for staged edits.
	// Returns nil when the batch is read-only (After phase)
	Edit(i int) IEditableRecord

	// Editable reports whether records accept staged edits
	Editable() bool
}

// IRuleState is the read side a rule evaluates against
type IRuleState interface {
	Batch() IChangeBatch
	Context() TriggerContext

	// QueryResult returns records fetched during the bulk fetch step for a
	// spec with the equal Key(). Nil when no such spec was declared.
	QueryResult(spec QuerySpec) []IRecord
}

// IRuleIntents is the write side of a rule evaluation. All requests are
// staged; the engine coalesces and the caller applies them after dispatch
type IRuleIntents interface {
	// Edit returns the i-th batch record for staged field edits.
	// Usable in Before phase only
	Edit(i int) IEditableRecord

	// FieldError attaches a validation failure to one record
	FieldError(id RecordID, field string, message string)

	// Mutate requests an external mutation. Usable in After phase only:
	// Before-phase field edits are staged via Edit and persisted by the
	// platform implicitly
	Mutate(kind MutationKind, rec IRecord)

	// Notify queues an outbound message delivered after commit
	Notify(recipient string, subject string, body string)
}
