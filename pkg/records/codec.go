/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package records

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/untillpro/dynobuffers"

	"github.com/voedger/triggers/pkg/itriggers"
	"github.com/voedger/triggers/pkg/schemas"
)

// StoreRecord encodes the record for a persistent gateway driver:
// 8 bytes BigEndian record ID, 4 bytes BigEndian dynobuffer length, dynobuffer
func StoreRecord(rec itriggers.IRecord, sch *schemas.Schema) ([]byte, error) {
	buf := new(bytes.Buffer)
	_ = binary.Write(buf, binary.BigEndian, uint64(rec.ID()))

	dyB := dynobuffers.NewBuffer(sch.DynoScheme())
	defer dyB.Release()

	rec.FieldNames(func(name string) {
		switch sch.FieldKind(name) {
		case schemas.DataKind_int32:
			dyB.Set(name, rec.AsInt32(name))
		case schemas.DataKind_int64:
			dyB.Set(name, rec.AsInt64(name))
		case schemas.DataKind_float32:
			dyB.Set(name, rec.AsFloat32(name))
		case schemas.DataKind_float64:
			dyB.Set(name, rec.AsFloat64(name))
		case schemas.DataKind_bytes:
			dyB.Set(name, rec.AsBytes(name))
		case schemas.DataKind_string:
			dyB.Set(name, rec.AsString(name))
		case schemas.DataKind_bool:
			dyB.Set(name, rec.AsBool(name))
		case schemas.DataKind_RecordID:
			dyB.Set(name, int64(rec.AsRecordID(name)))
		}
	})

	b, err := dyB.ToBytes()
	if err != nil {
		return nil, err
	}
	l := uint32(len(b))
	_ = binary.Write(buf, binary.BigEndian, &l)
	_, _ = buf.Write(b)

	return buf.Bytes(), nil
}

// LoadRecord decodes a record stored by StoreRecord. The returned record is
// read-only
func LoadRecord(sch *schemas.Schema, data []byte) (itriggers.IRecord, error) {
	const headerLen = 8 + 4
	if len(data) < headerLen {
		return nil, fmt.Errorf("record of «%s»: %d bytes is too small: %w", sch.Name(), len(data), ErrDataCorrupted)
	}
	id := binary.BigEndian.Uint64(data[0:8])
	l := binary.BigEndian.Uint32(data[8:headerLen])
	if len(data) < headerLen+int(l) {
		return nil, fmt.Errorf("record «%d» of «%s»: %w", id, sch.Name(), ErrDataCorrupted)
	}

	row := newRow(sch, itriggers.RecordID(id))
	if l > 0 {
		dyB := dynobuffers.ReadBuffer(data[headerLen:headerLen+int(l)], sch.DynoScheme())
		defer dyB.Release()

		sch.Fields(func(name string, kind schemas.DataKind) {
			switch kind {
			case schemas.DataKind_int32:
				if value, ok := dyB.GetInt32(name); ok {
					row.data[name] = value
				}
			case schemas.DataKind_int64:
				if value, ok := dyB.GetInt64(name); ok {
					row.data[name] = value
				}
			case schemas.DataKind_float32:
				if value, ok := dyB.GetFloat32(name); ok {
					row.data[name] = value
				}
			case schemas.DataKind_float64:
				if value, ok := dyB.GetFloat64(name); ok {
					row.data[name] = value
				}
			case schemas.DataKind_bytes:
				if b := dyB.GetByteArray(name); b != nil {
					row.data[name] = append([]byte(nil), b.Bytes()...)
				}
			case schemas.DataKind_string:
				if value, ok := dyB.GetString(name); ok {
					// value references the dynobuffer, which is released below
					row.data[name] = strings.Clone(value)
				}
			case schemas.DataKind_bool:
				if value, ok := dyB.GetBool(name); ok {
					row.data[name] = value
				}
			case schemas.DataKind_RecordID:
				if value, ok := dyB.GetInt64(name); ok {
					row.data[name] = itriggers.RecordID(value)
				}
			}
		})
	}

	row.seal(true)
	return row, nil
}
