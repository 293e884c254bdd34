/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 */

package schemas

import (
	"github.com/untillpro/dynobuffers"
)

var dataKindToDynoFieldType = map[DataKind]dynobuffers.FieldType{
	DataKind_null:     dynobuffers.FieldTypeUnspecified,
	DataKind_int32:    dynobuffers.FieldTypeInt32,
	DataKind_int64:    dynobuffers.FieldTypeInt64,
	DataKind_float32:  dynobuffers.FieldTypeFloat32,
	DataKind_float64:  dynobuffers.FieldTypeFloat64,
	DataKind_bytes:    dynobuffers.FieldTypeByte,
	DataKind_string:   dynobuffers.FieldTypeString,
	DataKind_bool:     dynobuffers.FieldTypeBool,
	DataKind_RecordID: dynobuffers.FieldTypeInt64,
}

// DataKindToFieldType converts a field kind to the dynobuffers field type
func DataKindToFieldType(kind DataKind) dynobuffers.FieldType {
	return dataKindToDynoFieldType[kind]
}

func newFieldsScheme(name string, sch *Schema) *dynobuffers.Scheme {
	db := dynobuffers.NewScheme()

	db.Name = name
	sch.Fields(
		func(name string, kind DataKind) {
			fieldType := DataKindToFieldType(kind)
			if fieldType == dynobuffers.FieldTypeByte {
				db.AddArray(name, fieldType, false)
			} else {
				db.AddField(name, fieldType, false)
			}
		})

	return db
}
