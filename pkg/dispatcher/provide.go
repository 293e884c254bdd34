//go:generate go run github.com/google/wire/cmd/wire
//go:build wireinject
// +build wireinject

/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package dispatcher

import (
	"github.com/google/wire"

	"github.com/voedger/triggers/pkg/invoker"
)

// Provide assembles a ready dispatcher from the config
func Provide(cfg *Config) (invoker.IInvoker, error) {
	panic(wire.Build(
		provideMetrics,
		provideBudgets,
		provideDriver,
		provideGateway,
		provideEngine,
		provideInvoker,
	))
}
