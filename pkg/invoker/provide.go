/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package invoker

import (
	"fmt"

	"github.com/voedger/triggers/pkg/itriggers"
)

func Provide(params ParamsType) (IInvoker, error) {
	if params.Engine == nil {
		return nil, fmt.Errorf("invoker: %w", ErrEngineMissed)
	}
	if params.Gateway == nil {
		return nil, fmt.Errorf("invoker: %w", ErrGatewayMissed)
	}
	if params.Budgets == nil {
		return nil, fmt.Errorf("invoker: %w", ErrBudgetsMissed)
	}
	if params.PlatformCap == 0 {
		params.PlatformCap = itriggers.DefaultPlatformCap
	}
	return &invokerType{params: params}, nil
}
