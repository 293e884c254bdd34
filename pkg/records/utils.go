/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package records

import (
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/voedger/triggers/pkg/itriggers"
	"github.com/voedger/triggers/pkg/schemas"
)

// FieldValueString renders the field value the way query specs match it,
// ref. itriggers.QuerySpec
func FieldValueString(rec itriggers.IRecord, kind schemas.DataKind, name string) string {
	switch kind {
	case schemas.DataKind_int32:
		return strconv.FormatInt(int64(rec.AsInt32(name)), 10)
	case schemas.DataKind_int64:
		return strconv.FormatInt(rec.AsInt64(name), 10)
	case schemas.DataKind_float32:
		return strconv.FormatFloat(float64(rec.AsFloat32(name)), 'g', -1, 32)
	case schemas.DataKind_float64:
		return strconv.FormatFloat(rec.AsFloat64(name), 'g', -1, 64)
	case schemas.DataKind_bytes:
		return base64.StdEncoding.EncodeToString(rec.AsBytes(name))
	case schemas.DataKind_string:
		return rec.AsString(name)
	case schemas.DataKind_bool:
		return strconv.FormatBool(rec.AsBool(name))
	case schemas.DataKind_RecordID:
		return strconv.FormatUint(uint64(rec.AsRecordID(name)), 10)
	}
	return ""
}

// FillFromJSON puts decoded JSON field values into the record.
//
// JSON decoding produces float64 for all numbers, so float64 values are
// accepted for all numeric kinds; string values are accepted for bytes
// (base64) and RecordID kinds
func FillFromJSON(rec itriggers.IEditableRecord, sch *schemas.Schema, fields map[string]interface{}) error {
	for name, value := range fields {
		kind := sch.FieldKind(name)
		switch kind {
		case schemas.DataKind_null:
			return fmt.Errorf("record «%d» of «%s», field «%s»: %w", rec.ID(), sch.Name(), name, schemas.ErrFieldNotFound)
		case schemas.DataKind_int32:
			switch v := value.(type) {
			case int32:
				rec.PutInt32(name, v)
			case float64:
				rec.PutInt32(name, int32(v))
			default:
				return wrongJSONType(rec, sch, name, value)
			}
		case schemas.DataKind_int64:
			switch v := value.(type) {
			case int64:
				rec.PutInt64(name, v)
			case float64:
				rec.PutInt64(name, int64(v))
			default:
				return wrongJSONType(rec, sch, name, value)
			}
		case schemas.DataKind_float32:
			switch v := value.(type) {
			case float32:
				rec.PutFloat32(name, v)
			case float64:
				rec.PutFloat32(name, float32(v))
			default:
				return wrongJSONType(rec, sch, name, value)
			}
		case schemas.DataKind_float64:
			switch v := value.(type) {
			case float64:
				rec.PutFloat64(name, v)
			default:
				return wrongJSONType(rec, sch, name, value)
			}
		case schemas.DataKind_bytes:
			switch v := value.(type) {
			case []byte:
				rec.PutBytes(name, v)
			case string:
				b, err := base64.StdEncoding.DecodeString(v)
				if err != nil {
					return fmt.Errorf("record «%d» of «%s», field «%s»: %w", rec.ID(), sch.Name(), name, err)
				}
				rec.PutBytes(name, b)
			default:
				return wrongJSONType(rec, sch, name, value)
			}
		case schemas.DataKind_string:
			switch v := value.(type) {
			case string:
				rec.PutString(name, v)
			default:
				return wrongJSONType(rec, sch, name, value)
			}
		case schemas.DataKind_bool:
			switch v := value.(type) {
			case bool:
				rec.PutBool(name, v)
			default:
				return wrongJSONType(rec, sch, name, value)
			}
		case schemas.DataKind_RecordID:
			switch v := value.(type) {
			case float64:
				rec.PutRecordID(name, itriggers.RecordID(v))
			case string:
				id, err := strconv.ParseUint(v, 10, 64)
				if err != nil {
					return fmt.Errorf("record «%d» of «%s», field «%s»: %w", rec.ID(), sch.Name(), name, err)
				}
				rec.PutRecordID(name, itriggers.RecordID(id))
			default:
				return wrongJSONType(rec, sch, name, value)
			}
		}
	}
	return rec.Error()
}

func wrongJSONType(rec itriggers.IEditableRecord, sch *schemas.Schema, name string, value interface{}) error {
	return fmt.Errorf("record «%d» of «%s», field «%s» value has type «%T»: %w", rec.ID(), sch.Name(), name, value, ErrWrongFieldType)
}
