/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package dispatcher

import (
	"fmt"

	"github.com/voedger/triggers/pkg/engine"
	"github.com/voedger/triggers/pkg/ibudgets"
	"github.com/voedger/triggers/pkg/ibudgetsce"
	"github.com/voedger/triggers/pkg/igateway"
	"github.com/voedger/triggers/pkg/igatewaycache"
	"github.com/voedger/triggers/pkg/imetrics"
	"github.com/voedger/triggers/pkg/invoker"
)

func provideMetrics(cfg *Config) imetrics.IMetrics {
	if cfg.Metrics != nil {
		return cfg.Metrics
	}
	return imetrics.Provide()
}

func provideBudgets(cfg *Config) ibudgets.IBudgets {
	state := cfg.Budget
	if (state == ibudgets.BudgetState{}) {
		state = ibudgets.DefaultBudgetState()
	}
	return ibudgetsce.Provide(state)
}

func provideDriver(cfg *Config, metrics imetrics.IMetrics) (igateway.IGatewayDriver, error) {
	if cfg.Schemas == nil {
		return nil, fmt.Errorf("dispatcher: %w", ErrSchemasMissed)
	}
	if cfg.Driver == nil {
		return nil, fmt.Errorf("dispatcher: %w", ErrDriverMissed)
	}
	if cfg.CacheMaxBytes < 0 {
		return cfg.Driver, nil
	}
	return igatewaycache.Provide(cfg.CacheMaxBytes, cfg.Driver, cfg.Schemas, metrics), nil
}

func provideGateway(driver igateway.IGatewayDriver, budgets ibudgets.IBudgets) igateway.IGateway {
	return igateway.Provide(driver, budgets)
}

func provideEngine(gateway igateway.IGateway, cfg *Config) (engine.IRuleEngine, error) {
	return engine.Provide(gateway,
		engine.ParamsType{PlatformCap: cfg.PlatformCap, IntentsLimit: cfg.IntentsLimit},
		cfg.Rules...)
}

func provideInvoker(cfg *Config, ruleEngine engine.IRuleEngine, gateway igateway.IGateway, budgets ibudgets.IBudgets) (invoker.IInvoker, error) {
	return invoker.Provide(invoker.ParamsType{
		Engine:      ruleEngine,
		Gateway:     gateway,
		Budgets:     budgets,
		Notifier:    cfg.Notifier,
		PlatformCap: cfg.PlatformCap,
	})
}
