/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package inotify

import (
	"github.com/voedger/triggers/pkg/itriggers"
)

// INotifier delivers notifications queued by rules.
//
// Invoked after the invocation is committed, out-of-band: a delivery failure
// is logged by the caller and never fails the triggering operation
type INotifier interface {
	Send(notifications []itriggers.Notification) error
}

type ParamsType struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string

	// disable TLS, tests only
	NoTLS bool
}
