/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 */

package schemas

import "github.com/untillpro/dynobuffers"

// Kind of a schema field value
type DataKind uint8

type field struct {
	name string
	kind DataKind
}

// Schema declares the named, kinded fields of one record entity.
// Mutable until the owning cache is built, ref. Cache.Build()
type Schema struct {
	cache  *Cache
	name   string
	fields []field
	kinds  map[string]DataKind
	dyno   *dynobuffers.Scheme
}

// Cache holds all known schemas. Record field access is validated against it
// at registration time, never at call time
type Cache struct {
	schemas map[string]*Schema
	ordered []string
	built   bool
	err     error
}
