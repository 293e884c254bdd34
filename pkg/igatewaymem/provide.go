/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package igatewaymem

import (
	"github.com/voedger/triggers/pkg/itriggers"
	"github.com/voedger/triggers/pkg/schemas"
)

// Provide returns an empty in-memory driver over the schemas
func Provide(sch *schemas.Cache) IMemDriver {
	return &memDriver{
		schemas: sch,
		store:   make(map[string]map[itriggers.RecordID]itriggers.IRecord),
	}
}
