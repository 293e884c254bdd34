/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package records

import (
	"fmt"

	"github.com/voedger/triggers/pkg/itriggers"
	"github.com/voedger/triggers/pkg/schemas"
)

// rowType implements itriggers.IRecord and itriggers.IEditableRecord.
//
// Field values are stored strongly typed and validated against the record
// schema; Put××× violations are collected and returned by Error()
type rowType struct {
	schema   *schemas.Schema
	id       itriggers.RecordID
	data     map[string]interface{}
	edited   []string
	readOnly bool
	err      error
}

func newRow(sch *schemas.Schema, id itriggers.RecordID) *rowType {
	return &rowType{
		schema: sch,
		id:     id,
		data:   make(map[string]interface{}),
	}
}

// NewRecord returns a new editable record of the schema.
//
// Collected Put××× errors are checked when the record is sealed into a batch
func NewRecord(sch *schemas.Schema, id itriggers.RecordID) itriggers.IEditableRecord {
	return newRow(sch, id)
}

func (row *rowType) ID() itriggers.RecordID { return row.id }

func (row *rowType) Schema() string { return row.schema.Name() }

func (row *rowType) AsInt32(name string) int32 {
	if value, ok := row.fieldValue(name, schemas.DataKind_int32); ok {
		return value.(int32)
	}
	return 0
}

func (row *rowType) AsInt64(name string) int64 {
	if value, ok := row.fieldValue(name, schemas.DataKind_int64); ok {
		return value.(int64)
	}
	return 0
}

func (row *rowType) AsFloat32(name string) float32 {
	if value, ok := row.fieldValue(name, schemas.DataKind_float32); ok {
		return value.(float32)
	}
	return 0
}

func (row *rowType) AsFloat64(name string) float64 {
	if value, ok := row.fieldValue(name, schemas.DataKind_float64); ok {
		return value.(float64)
	}
	return 0
}

func (row *rowType) AsBytes(name string) []byte {
	if value, ok := row.fieldValue(name, schemas.DataKind_bytes); ok {
		return value.([]byte)
	}
	return nil
}

func (row *rowType) AsString(name string) string {
	if value, ok := row.fieldValue(name, schemas.DataKind_string); ok {
		return value.(string)
	}
	return ""
}

func (row *rowType) AsBool(name string) bool {
	if value, ok := row.fieldValue(name, schemas.DataKind_bool); ok {
		return value.(bool)
	}
	return false
}

func (row *rowType) AsRecordID(name string) itriggers.RecordID {
	if value, ok := row.fieldValue(name, schemas.DataKind_RecordID); ok {
		return value.(itriggers.RecordID)
	}
	return itriggers.NullRecordID
}

// FieldNames enumerates valued fields in schema declaration order
func (row *rowType) FieldNames(cb func(name string)) {
	row.schema.Fields(func(name string, _ schemas.DataKind) {
		if _, ok := row.data[name]; ok {
			cb(name)
		}
	})
}

func (row *rowType) PutInt32(name string, value int32) {
	row.putValue(name, schemas.DataKind_int32, value)
}

func (row *rowType) PutInt64(name string, value int64) {
	row.putValue(name, schemas.DataKind_int64, value)
}

func (row *rowType) PutFloat32(name string, value float32) {
	row.putValue(name, schemas.DataKind_float32, value)
}

func (row *rowType) PutFloat64(name string, value float64) {
	row.putValue(name, schemas.DataKind_float64, value)
}

func (row *rowType) PutBytes(name string, value []byte) {
	row.putValue(name, schemas.DataKind_bytes, value)
}

func (row *rowType) PutString(name string, value string) {
	row.putValue(name, schemas.DataKind_string, value)
}

func (row *rowType) PutBool(name string, value bool) {
	row.putValue(name, schemas.DataKind_bool, value)
}

func (row *rowType) PutRecordID(name string, value itriggers.RecordID) {
	row.putValue(name, schemas.DataKind_RecordID, value)
}

func (row *rowType) EditedFields(cb func(name string)) {
	for _, name := range row.edited {
		cb(name)
	}
}

func (row *rowType) Error() error { return row.err }

// fieldValue returns the valued field. Panics if the field is not declared by
// the schema with the kind
func (row *rowType) fieldValue(name string, kind schemas.DataKind) (value interface{}, ok bool) {
	if row.schema.FieldKind(name) != kind {
		panic(fmt.Errorf(errFieldNotFoundWrap, kind, name, row.schema.Name(), schemas.ErrFieldNotFound))
	}
	value, ok = row.data[name]
	return value, ok
}

// putValue stages the field value. Violations are collected, ref. Error()
func (row *rowType) putValue(name string, kind schemas.DataKind, value interface{}) {
	if row.readOnly {
		row.collect(fmt.Errorf("record «%d» of «%s», field «%s»: %w", row.id, row.schema.Name(), name, ErrReadOnlyRecord))
		return
	}
	declared := row.schema.FieldKind(name)
	if declared == schemas.DataKind_null {
		row.collect(fmt.Errorf("record «%d» of «%s», field «%s»: %w", row.id, row.schema.Name(), name, schemas.ErrFieldNotFound))
		return
	}
	if declared != kind {
		row.collect(fmt.Errorf("record «%d» of «%s», field «%s» has kind %d, put %d: %w", row.id, row.schema.Name(), name, declared, kind, ErrWrongFieldType))
		return
	}
	row.data[name] = value
	row.markEdited(name)
}

func (row *rowType) markEdited(name string) {
	for _, n := range row.edited {
		if n == name {
			return
		}
	}
	row.edited = append(row.edited, name)
}

func (row *rowType) collect(err error) {
	if row.err == nil {
		row.err = err
	}
}

// seal makes the row a batch member: edit tracking restarts, edits are
// accepted in Before phase only
func (row *rowType) seal(readOnly bool) {
	row.edited = nil
	row.readOnly = readOnly
}
