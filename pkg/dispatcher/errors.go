/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package dispatcher

import "errors"

var ErrSchemasMissed = errors.New("schemas missed")

var ErrDriverMissed = errors.New("gateway driver missed")
