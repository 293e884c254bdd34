/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package invoker

import "errors"

var ErrEngineMissed = errors.New("rule engine missed")

var ErrGatewayMissed = errors.New("gateway missed")

var ErrBudgetsMissed = errors.New("budgets missed")
