/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package imetrics

type IMetrics interface {
	// MetricAddr returns the address of the metric value for fast
	// concurrent increments, ref. AddFloat64.
	// The default metric value is always 0.
	//
	// @ConcurrentAccess
	MetricAddr(metricName string) *float64

	// Increase metric value with "delta".
	//
	// @ConcurrentAccess
	Increase(metricName string, valueDelta float64)

	// List current values of all metrics
	//
	// @ConcurrentAccess
	List(cb func(metricName string, metricValue float64) (err error)) (err error)
}
