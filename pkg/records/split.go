/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package records

import (
	"github.com/voedger/triggers/pkg/itriggers"
)

// Split cuts a change set into sequential batches of at most cap records.
// The batch at the cap size is kept whole, the cap+1-th record opens the next
// batch. Old snapshots are distributed to the batch of their record.
//
// cap ≤ 0 means itriggers.DefaultPlatformCap
func Split(newRecs []itriggers.IRecord, oldRecs []itriggers.IRecord, editable bool, cap int) ([]itriggers.IChangeBatch, error) {
	if cap <= 0 {
		cap = itriggers.DefaultPlatformCap
	}

	oldByID := make(map[itriggers.RecordID]itriggers.IRecord, len(oldRecs))
	for _, rec := range oldRecs {
		oldByID[rec.ID()] = rec
	}

	batches := make([]itriggers.IChangeBatch, 0, (len(newRecs)+cap-1)/cap)
	for from := 0; from < len(newRecs); from += cap {
		upto := from + cap
		if upto > len(newRecs) {
			upto = len(newRecs)
		}
		chunk := newRecs[from:upto]
		olds := make([]itriggers.IRecord, 0, len(chunk))
		for _, rec := range chunk {
			if old, ok := oldByID[rec.ID()]; ok {
				olds = append(olds, old)
			}
		}
		batch, err := NewBatch(BatchParams{Records: chunk, OldRecords: olds, Editable: editable})
		if err != nil {
			return nil, err
		}
		batches = append(batches, batch)
	}
	return batches, nil
}
