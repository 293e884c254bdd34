/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 */

package ibudgets

// Kind of a metered external call
type CallKind uint8

const (
	CallKind_Query CallKind = iota
	CallKind_Mutation
	CallKind_FakeLast
)

// BudgetState holds the injectable per-invocation call caps. Real platform
// limits vary by synchronous/asynchronous context, so the caps are
// configuration, never constants in the calling code
type BudgetState struct {
	// negative means unlimited
	MaxQueries   int
	MaxMutations int
}

// IBudgets meters external calls within one invocation.
//
// One IBudgets instance belongs to one logical invocation; concurrent
// invocations must use isolated instances
type IBudgets interface {
	// TryTake takes one token for the call kind.
	// False when the budget is exhausted
	TryTake(kind CallKind) bool

	// Taken returns consumed tokens for the call kind
	Taken(kind CallKind) int

	// Reset returns all counters to zero. Called at the invocation
	// boundary, mirroring the transaction boundary
	Reset()

	State() BudgetState
}
