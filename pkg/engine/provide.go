/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package engine

import (
	"github.com/voedger/triggers/pkg/igateway"
	"github.com/voedger/triggers/pkg/itriggers"
)

// Provide registers the rules and returns the engine.
//
// Registration errors are configuration errors: fatal at startup, the engine
// is never constructed half-valid
func Provide(gateway igateway.IGateway, params ParamsType, rules ...itriggers.Rule) (IRuleEngine, error) {
	if gateway == nil {
		return nil, ErrGatewayMissed
	}
	if params.PlatformCap <= 0 {
		params.PlatformCap = itriggers.DefaultPlatformCap
	}
	if params.IntentsLimit <= 0 {
		params.IntentsLimit = DefaultIntentsLimit
	}
	if err := validateRules(rules); err != nil {
		return nil, err
	}
	return &ruleEngine{
		gateway: gateway,
		params:  params,
		rules:   rules,
	}, nil
}
