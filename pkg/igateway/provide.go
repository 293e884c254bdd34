/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package igateway

import (
	"github.com/voedger/triggers/pkg/ibudgets"
)

// Provide returns the budget-enforcing gateway over the driver
func Provide(driver IGatewayDriver, budgets ibudgets.IBudgets) IGateway {
	return &budgetedGateway{
		driver:  driver,
		budgets: budgets,
	}
}
