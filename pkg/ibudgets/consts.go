/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 */

package ibudgets

// Default synchronous-context caps
const (
	DefaultMaxQueries   = 100
	DefaultMaxMutations = 150
)

// DefaultBudgetState returns the synchronous-context caps
func DefaultBudgetState() BudgetState {
	return BudgetState{
		MaxQueries:   DefaultMaxQueries,
		MaxMutations: DefaultMaxMutations,
	}
}
