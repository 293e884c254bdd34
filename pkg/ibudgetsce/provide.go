/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 */

package ibudgetsce

import (
	"github.com/voedger/triggers/pkg/ibudgets"
)

// Provide returns budgets with the given caps
func Provide(state ibudgets.BudgetState) ibudgets.IBudgets {
	return &bucketsType{state: state}
}
