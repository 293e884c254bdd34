/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package igatewaycache

import (
	"bytes"
	"encoding/binary"

	"github.com/VictoriaMetrics/fastcache"

	"github.com/voedger/triggers/pkg/igateway"
	"github.com/voedger/triggers/pkg/imetrics"
	"github.com/voedger/triggers/pkg/itriggers"
	"github.com/voedger/triggers/pkg/records"
	"github.com/voedger/triggers/pkg/schemas"
)

type cachedDriver struct {
	cache   *fastcache.Cache
	driver  igateway.IGatewayDriver
	schemas *schemas.Cache

	/* metrics */
	mQueryTotal       *float64
	mQueryCachedTotal *float64
	mMutateTotal      *float64
}

func (d *cachedDriver) Query(spec itriggers.QuerySpec) ([]itriggers.IRecord, error) {
	imetrics.AddFloat64(d.mQueryTotal, 1.0)

	key := []byte(spec.Key())
	if data, ok := d.cache.HasGet(nil, key); ok {
		sch := d.schemas.Schema(spec.Schema)
		recs, err := decodeRecords(sch, data)
		if err == nil {
			imetrics.AddFloat64(d.mQueryCachedTotal, 1.0)
			return recs, nil
		}
		// fall through to the driver on a decode failure
	}

	recs, err := d.driver.Query(spec)
	if err != nil {
		return nil, err
	}

	if data, err := encodeRecords(recs, d.schemas); err == nil {
		d.cache.Set(key, data)
	}
	return recs, nil
}

// Mutate invalidates all cached query results: any of them may now be stale
func (d *cachedDriver) Mutate(kind itriggers.MutationKind, recs []itriggers.IRecord) (igateway.MutationResult, error) {
	imetrics.AddFloat64(d.mMutateTotal, 1.0)

	result, err := d.driver.Mutate(kind, recs)
	d.cache.Reset()
	return result, err
}

func encodeRecords(recs []itriggers.IRecord, cache *schemas.Cache) ([]byte, error) {
	buf := new(bytes.Buffer)
	count := uint32(len(recs))
	_ = binary.Write(buf, binary.BigEndian, &count)
	for _, rec := range recs {
		data, err := records.StoreRecord(rec, cache.Schema(rec.Schema()))
		if err != nil {
			return nil, err
		}
		l := uint32(len(data))
		_ = binary.Write(buf, binary.BigEndian, &l)
		_, _ = buf.Write(data)
	}
	return buf.Bytes(), nil
}

func decodeRecords(sch *schemas.Schema, data []byte) ([]itriggers.IRecord, error) {
	if (sch == nil) || (len(data) < 4) {
		return nil, records.ErrDataCorrupted
	}
	count := binary.BigEndian.Uint32(data[0:4])
	data = data[4:]
	recs := make([]itriggers.IRecord, 0, count)
	for i := uint32(0); i < count; i++ {
		if len(data) < 4 {
			return nil, records.ErrDataCorrupted
		}
		l := binary.BigEndian.Uint32(data[0:4])
		data = data[4:]
		if uint32(len(data)) < l {
			return nil, records.ErrDataCorrupted
		}
		rec, err := records.LoadRecord(sch, data[:l])
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
		data = data[l:]
	}
	return recs, nil
}
