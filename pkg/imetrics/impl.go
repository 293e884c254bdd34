/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package imetrics

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"unsafe"
)

type mapMetrics struct {
	metrics map[string]*float64
	lock    sync.Mutex
}

func newMetrics() IMetrics {
	return &mapMetrics{
		metrics: make(map[string]*float64),
	}
}

func (m *mapMetrics) MetricAddr(metricName string) *float64 {
	m.lock.Lock()
	defer m.lock.Unlock()

	addr, ok := m.metrics[metricName]
	if !ok {
		addr = new(float64)
		m.metrics[metricName] = addr
	}
	return addr
}

func (m *mapMetrics) Increase(metricName string, valueDelta float64) {
	AddFloat64(m.MetricAddr(metricName), valueDelta)
}

func (m *mapMetrics) List(cb func(metricName string, metricValue float64) (err error)) (err error) {
	m.lock.Lock()
	names := make([]string, 0, len(m.metrics))
	for name := range m.metrics {
		names = append(names, name)
	}
	m.lock.Unlock()

	sort.Strings(names)
	for _, name := range names {
		if err = cb(name, loadFloat64(m.MetricAddr(name))); err != nil {
			return err
		}
	}
	return nil
}

// AddFloat64 atomically adds delta to the metric value at addr
func AddFloat64(addr *float64, delta float64) {
	for {
		old := loadFloat64(addr)
		new := old + delta
		if atomic.CompareAndSwapUint64((*uint64)(unsafe.Pointer(addr)), math.Float64bits(old), math.Float64bits(new)) {
			return
		}
	}
}

func loadFloat64(addr *float64) float64 {
	return math.Float64frombits(atomic.LoadUint64((*uint64)(unsafe.Pointer(addr))))
}
