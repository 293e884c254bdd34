/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 */

package schemas

const (
	DataKind_null DataKind = iota
	DataKind_int32
	DataKind_int64
	DataKind_float32
	DataKind_float64
	DataKind_bytes
	DataKind_string
	DataKind_bool
	DataKind_RecordID
	DataKind_FakeLast
)

// valid schema and field names
const identPattern = `^[a-zA-Z_][a-zA-Z0-9_]*$`
