/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package itriggers

import "errors"

var ErrConfiguration = errors.New("configuration is not valid")

var ErrBudgetExceeded = errors.New("call budget exceeded")

var ErrExternalCall = errors.New("external call failed")

var ErrBeforePhaseMutation = errors.New("explicit mutation call during Before phase")

var ErrAfterPhaseEdit = errors.New("staged field edit during After phase")

var ErrBatchTooLarge = errors.New("batch size exceeds the platform cap")

var ErrIntentsLimitExceeded = errors.New("intents limit exceeded")

var ErrOperationFlagsConflict = errors.New("exactly one operation flag must be set")
