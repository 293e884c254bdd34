/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package records

import "errors"

var ErrReadOnlyRecord = errors.New("record is read-only")

var ErrWrongFieldType = errors.New("wrong field type")

var ErrForeignRecord = errors.New("record was not built by this package")

var ErrRecordIDMissed = errors.New("record ID missed")

var ErrDataCorrupted = errors.New("record data is corrupted")

const errFieldNotFoundWrap = "kind %d field «%s» is not declared by schema «%s»: %w"
