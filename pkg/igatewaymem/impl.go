/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package igatewaymem

import (
	"fmt"
	"sync"

	"golang.org/x/exp/slices"

	"github.com/voedger/triggers/pkg/igateway"
	"github.com/voedger/triggers/pkg/itriggers"
	"github.com/voedger/triggers/pkg/records"
	"github.com/voedger/triggers/pkg/schemas"
)

type memDriver struct {
	mu        sync.RWMutex
	schemas   *schemas.Cache
	store     map[string]map[itriggers.RecordID]itriggers.IRecord
	queries   []itriggers.QuerySpec
	mutations []MutationCall
}

func (d *memDriver) Query(spec itriggers.QuerySpec) ([]itriggers.IRecord, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	sch := d.schemas.Schema(spec.Schema)
	if sch == nil {
		return nil, fmt.Errorf("query «%s»: %w", spec.Key(), schemas.ErrSchemaNotFound)
	}
	kind := sch.FieldKind(spec.Field)
	if kind == schemas.DataKind_null {
		return nil, fmt.Errorf("query «%s»: %w", spec.Key(), schemas.ErrFieldNotFound)
	}

	d.queries = append(d.queries, spec)

	result := make([]itriggers.IRecord, 0)
	for _, rec := range d.store[spec.Schema] {
		if slices.Contains(spec.Values, records.FieldValueString(rec, kind, spec.Field)) {
			result = append(result, rec)
		}
	}
	// map iteration order is random, result order is not
	slices.SortFunc(result, func(a, b itriggers.IRecord) bool { return a.ID() < b.ID() })
	return result, nil
}

func (d *memDriver) Mutate(kind itriggers.MutationKind, recs []itriggers.IRecord) (igateway.MutationResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.mutations = append(d.mutations, MutationCall{Kind: kind, Records: len(recs)})

	for _, rec := range recs {
		byID := d.store[rec.Schema()]
		if byID == nil {
			byID = make(map[itriggers.RecordID]itriggers.IRecord)
			d.store[rec.Schema()] = byID
		}
		_, exists := byID[rec.ID()]
		switch kind {
		case itriggers.MutationKind_Insert:
			if exists {
				return igateway.MutationResult{}, fmt.Errorf("insert record «%d» of «%s»: %w", rec.ID(), rec.Schema(), ErrRecordExists)
			}
			byID[rec.ID()] = rec
		case itriggers.MutationKind_Update:
			if !exists {
				return igateway.MutationResult{}, fmt.Errorf("update record «%d» of «%s»: %w", rec.ID(), rec.Schema(), ErrRecordNotFound)
			}
			byID[rec.ID()] = rec
		case itriggers.MutationKind_Delete:
			if !exists {
				return igateway.MutationResult{}, fmt.Errorf("delete record «%d» of «%s»: %w", rec.ID(), rec.Schema(), ErrRecordNotFound)
			}
			delete(byID, rec.ID())
		default:
			return igateway.MutationResult{}, fmt.Errorf("mutation kind %s: %w", kind, ErrWrongMutationKind)
		}
	}
	return igateway.MutationResult{Applied: len(recs)}, nil
}

func (d *memDriver) Fill(recs ...itriggers.IRecord) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, rec := range recs {
		byID := d.store[rec.Schema()]
		if byID == nil {
			byID = make(map[itriggers.RecordID]itriggers.IRecord)
			d.store[rec.Schema()] = byID
		}
		byID[rec.ID()] = rec
	}
}

func (d *memDriver) Record(schema string, id itriggers.RecordID) (itriggers.IRecord, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	rec, ok := d.store[schema][id]
	return rec, ok
}

func (d *memDriver) QueryLog() []itriggers.QuerySpec {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return slices.Clone(d.queries)
}

func (d *memDriver) MutationLog() []MutationCall {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return slices.Clone(d.mutations)
}
