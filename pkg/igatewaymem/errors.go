/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package igatewaymem

import "errors"

var ErrRecordExists = errors.New("record already exists")

var ErrRecordNotFound = errors.New("record cannot be found")

var ErrWrongMutationKind = errors.New("wrong mutation kind")
