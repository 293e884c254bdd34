/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package igateway

import (
	"fmt"

	"github.com/voedger/triggers/pkg/ibudgets"
	"github.com/voedger/triggers/pkg/itriggers"
)

type budgetedGateway struct {
	driver  IGatewayDriver
	budgets ibudgets.IBudgets
}

func (g *budgetedGateway) Query(spec itriggers.QuerySpec) ([]itriggers.IRecord, error) {
	if !g.budgets.TryTake(ibudgets.CallKind_Query) {
		return nil, fmt.Errorf("query «%s», %d queries are spent: %w", spec.Key(), g.budgets.Taken(ibudgets.CallKind_Query), itriggers.ErrBudgetExceeded)
	}
	records, err := g.driver.Query(spec)
	if err != nil {
		return nil, fmt.Errorf("query «%s»: %w: %w", spec.Key(), itriggers.ErrExternalCall, err)
	}
	return records, nil
}

func (g *budgetedGateway) Mutate(kind itriggers.MutationKind, records []itriggers.IRecord) (MutationResult, error) {
	if !g.budgets.TryTake(ibudgets.CallKind_Mutation) {
		return MutationResult{}, fmt.Errorf("mutation %s, %d mutations are spent: %w", kind, g.budgets.Taken(ibudgets.CallKind_Mutation), itriggers.ErrBudgetExceeded)
	}
	result, err := g.driver.Mutate(kind, records)
	if err != nil {
		return result, fmt.Errorf("mutation %s of %d records: %w: %w", kind, len(records), itriggers.ErrExternalCall, err)
	}
	return result, nil
}
