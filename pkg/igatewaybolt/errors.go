/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 */

package igatewaybolt

import "errors"

var ErrDataBucketNotFound = errors.New("data bucket not found")

var ErrRecordExists = errors.New("record already exists")

var ErrRecordNotFound = errors.New("record cannot be found")

var ErrWrongMutationKind = errors.New("wrong mutation kind")
