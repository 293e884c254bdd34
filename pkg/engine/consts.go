/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package engine

// DefaultIntentsLimit tops staged requests per dispatch
const DefaultIntentsLimit = 100
