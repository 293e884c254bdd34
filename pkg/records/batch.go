/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package records

import (
	"fmt"

	"github.com/voedger/triggers/pkg/itriggers"
)

// batchType implements itriggers.IChangeBatch
type batchType struct {
	records  []*rowType
	old      map[itriggers.RecordID]*rowType
	editable bool
}

type BatchParams struct {
	// affected records in operation order
	Records []itriggers.IRecord

	// prior snapshots, expected for update/delete/undelete operations
	OldRecords []itriggers.IRecord

	// true for Before phase: records accept staged field edits
	Editable bool
}

// NewBatch seals the records into an immutable change batch.
//
// All records must be built by this package; errors collected while the
// records were filled are surfaced here. Old records must have an ID
func NewBatch(params BatchParams) (itriggers.IChangeBatch, error) {
	b := &batchType{
		old:      make(map[itriggers.RecordID]*rowType),
		editable: params.Editable,
	}
	for _, rec := range params.Records {
		row, err := sealRow(rec, !params.Editable)
		if err != nil {
			return nil, err
		}
		b.records = append(b.records, row)
	}
	for _, rec := range params.OldRecords {
		row, err := sealRow(rec, true)
		if err != nil {
			return nil, err
		}
		if row.id == itriggers.NullRecordID {
			return nil, fmt.Errorf("old record of «%s»: %w", row.schema.Name(), ErrRecordIDMissed)
		}
		b.old[row.id] = row
	}
	return b, nil
}

func (b *batchType) Count() int { return len(b.records) }

func (b *batchType) Record(i int) itriggers.IRecord { return b.records[i] }

func (b *batchType) OldRecord(id itriggers.RecordID) (itriggers.IRecord, bool) {
	row, ok := b.old[id]
	if !ok {
		return nil, false
	}
	return row, true
}

func (b *batchType) Edit(i int) itriggers.IEditableRecord {
	if !b.editable {
		return nil
	}
	return b.records[i]
}

func (b *batchType) Editable() bool { return b.editable }

func sealRow(rec itriggers.IRecord, readOnly bool) (*rowType, error) {
	row, ok := rec.(*rowType)
	if !ok {
		return nil, fmt.Errorf("record «%d» of «%s»: %w", rec.ID(), rec.Schema(), ErrForeignRecord)
	}
	if row.err != nil {
		return nil, row.err
	}
	row.seal(readOnly)
	return row, nil
}
