/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 */

package ibudgetsce

import (
	"sync"

	"github.com/voedger/triggers/pkg/ibudgets"
)

type bucketsType struct {
	mu    sync.Mutex
	state ibudgets.BudgetState
	taken [ibudgets.CallKind_FakeLast]int
}

func (b *bucketsType) TryTake(kind ibudgets.CallKind) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	max := b.max(kind)
	if (max >= 0) && (b.taken[kind] >= max) {
		return false
	}
	b.taken[kind]++
	return true
}

func (b *bucketsType) Taken(kind ibudgets.CallKind) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.taken[kind]
}

func (b *bucketsType) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for kind := range b.taken {
		b.taken[kind] = 0
	}
}

func (b *bucketsType) State() ibudgets.BudgetState {
	return b.state
}

func (b *bucketsType) max(kind ibudgets.CallKind) int {
	switch kind {
	case ibudgets.CallKind_Query:
		return b.state.MaxQueries
	case ibudgets.CallKind_Mutation:
		return b.state.MaxMutations
	}
	return 0
}
