/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 */

package schemas

import "errors"

var ErrNameMissed = errors.New("name is empty")

var ErrInvalidName = errors.New("name not valid")

var ErrNameUniqueViolation = errors.New("duplicate name")

var ErrInvalidDataKind = errors.New("invalid data kind")

var ErrSchemaNotFound = errors.New("schema not found")

var ErrFieldNotFound = errors.New("field not found")

var ErrCacheBuilt = errors.New("schemas cache is already built")

var ErrCacheNotBuilt = errors.New("schemas cache is not built")
