/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package engine

import "errors"

var ErrGatewayMissed = errors.New("gateway is not specified")

var ErrRuleNameMissed = errors.New("rule name is empty")

var ErrRuleNameUniqueViolation = errors.New("duplicate rule name")

var ErrRuleFuncMissed = errors.New("rule function is not specified")

var ErrRuleContextsMissed = errors.New("at least one trigger context must be specified")

var ErrInvalidContext = errors.New("invalid trigger context")
