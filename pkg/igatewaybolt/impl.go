/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 */

package igatewaybolt

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/exp/slices"

	bolt "go.etcd.io/bbolt"

	"github.com/voedger/triggers/pkg/igateway"
	"github.com/voedger/triggers/pkg/itriggers"
	"github.com/voedger/triggers/pkg/records"
	"github.com/voedger/triggers/pkg/schemas"
)

type boltDriver struct {
	db      *bolt.DB
	schemas *schemas.Cache
}

func initDB(db *bolt.DB) error {
	return db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(dataBucketName))
		return err
	})
}

func recordKey(id itriggers.RecordID) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(id))
	return key
}

func (d *boltDriver) Query(spec itriggers.QuerySpec) ([]itriggers.IRecord, error) {
	sch := d.schemas.Schema(spec.Schema)
	if sch == nil {
		return nil, fmt.Errorf("query «%s»: %w", spec.Key(), schemas.ErrSchemaNotFound)
	}
	kind := sch.FieldKind(spec.Field)
	if kind == schemas.DataKind_null {
		return nil, fmt.Errorf("query «%s»: %w", spec.Key(), schemas.ErrFieldNotFound)
	}

	result := make([]itriggers.IRecord, 0)
	err := d.db.View(func(tx *bolt.Tx) error {
		dataBucket := tx.Bucket([]byte(dataBucketName))
		if dataBucket == nil {
			return ErrDataBucketNotFound
		}
		bucket := dataBucket.Bucket([]byte(spec.Schema))
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(_, value []byte) error {
			rec, err := records.LoadRecord(sch, value)
			if err != nil {
				return err
			}
			if slices.Contains(spec.Values, records.FieldValueString(rec, kind, spec.Field)) {
				result = append(result, rec)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Mutate applies the whole coalesced call in one bolt transaction
func (d *boltDriver) Mutate(kind itriggers.MutationKind, recs []itriggers.IRecord) (igateway.MutationResult, error) {
	err := d.db.Update(func(tx *bolt.Tx) error {
		dataBucket := tx.Bucket([]byte(dataBucketName))
		if dataBucket == nil {
			return ErrDataBucketNotFound
		}
		for _, rec := range recs {
			sch := d.schemas.Schema(rec.Schema())
			if sch == nil {
				return fmt.Errorf("record «%d» of «%s»: %w", rec.ID(), rec.Schema(), schemas.ErrSchemaNotFound)
			}
			bucket, err := dataBucket.CreateBucketIfNotExists([]byte(rec.Schema()))
			if err != nil {
				return err
			}
			key := recordKey(rec.ID())
			exists := bucket.Get(key) != nil
			switch kind {
			case itriggers.MutationKind_Insert:
				if exists {
					return fmt.Errorf("insert record «%d» of «%s»: %w", rec.ID(), rec.Schema(), ErrRecordExists)
				}
			case itriggers.MutationKind_Update:
				if !exists {
					return fmt.Errorf("update record «%d» of «%s»: %w", rec.ID(), rec.Schema(), ErrRecordNotFound)
				}
			case itriggers.MutationKind_Delete:
				if !exists {
					return fmt.Errorf("delete record «%d» of «%s»: %w", rec.ID(), rec.Schema(), ErrRecordNotFound)
				}
				if err := bucket.Delete(key); err != nil {
					return err
				}
				continue
			default:
				return fmt.Errorf("mutation kind %s: %w", kind, ErrWrongMutationKind)
			}
			value, err := records.StoreRecord(rec, sch)
			if err != nil {
				return err
			}
			if err := bucket.Put(key, value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return igateway.MutationResult{}, err
	}
	return igateway.MutationResult{Applied: len(recs)}, nil
}

func (d *boltDriver) Close() error {
	return d.db.Close()
}
