/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 */

package schemas

import (
	"fmt"
	"regexp"

	"github.com/untillpro/dynobuffers"
)

var identRegexp = regexp.MustCompile(identPattern)

// New returns an empty schemas cache
func New() *Cache {
	return &Cache{
		schemas: make(map[string]*Schema),
	}
}

// Add declares a new schema. Violations (duplicate or invalid name, cache
// already built) are collected and returned by Build()
func (c *Cache) Add(name string) *Schema {
	sch := &Schema{
		cache: c,
		name:  name,
		kinds: make(map[string]DataKind),
	}
	if c.built {
		c.collect(fmt.Errorf("add schema «%s»: %w", name, ErrCacheBuilt))
		return sch
	}
	if err := validateIdent(name); err != nil {
		c.collect(fmt.Errorf("schema name «%s»: %w", name, err))
		return sch
	}
	if _, ok := c.schemas[name]; ok {
		c.collect(fmt.Errorf("schema name «%s»: %w", name, ErrNameUniqueViolation))
		return sch
	}
	c.schemas[name] = sch
	c.ordered = append(c.ordered, name)
	return sch
}

// Build validates all declared schemas and prepares the dynobuffers schemes
// used by the record codec. Must be called once before records are built
func (c *Cache) Build() error {
	if c.built {
		return ErrCacheBuilt
	}
	if c.err != nil {
		return c.err
	}
	for _, name := range c.ordered {
		sch := c.schemas[name]
		sch.dyno = newFieldsScheme(name, sch)
	}
	c.built = true
	return nil
}

// Schema returns the named schema. Nil if not found
func (c *Cache) Schema(name string) *Schema {
	return c.schemas[name]
}

// Schemas enumerates schemas in declaration order
func (c *Cache) Schemas(cb func(sch *Schema)) {
	for _, name := range c.ordered {
		cb(c.schemas[name])
	}
}

func (c *Cache) collect(err error) {
	if c.err == nil {
		c.err = err
	}
}

// AddField declares a new schema field. Chainable.
// Violations are collected and returned by the cache Build()
func (sch *Schema) AddField(name string, kind DataKind) *Schema {
	if sch.cache.built {
		sch.cache.collect(fmt.Errorf("schema «%s»: add field «%s»: %w", sch.name, name, ErrCacheBuilt))
		return sch
	}
	if err := validateIdent(name); err != nil {
		sch.cache.collect(fmt.Errorf("schema «%s»: field name «%s»: %w", sch.name, name, err))
		return sch
	}
	if _, ok := sch.kinds[name]; ok {
		sch.cache.collect(fmt.Errorf("schema «%s»: field name «%s»: %w", sch.name, name, ErrNameUniqueViolation))
		return sch
	}
	if (kind == DataKind_null) || (kind >= DataKind_FakeLast) {
		sch.cache.collect(fmt.Errorf("schema «%s»: field «%s» kind %d: %w", sch.name, name, kind, ErrInvalidDataKind))
		return sch
	}
	sch.fields = append(sch.fields, field{name: name, kind: kind})
	sch.kinds[name] = kind
	return sch
}

func (sch *Schema) Name() string {
	return sch.name
}

// Fields enumerates schema fields in declaration order
func (sch *Schema) Fields(cb func(name string, kind DataKind)) {
	for _, f := range sch.fields {
		cb(f.name, f.kind)
	}
}

// FieldKind returns the declared kind of the field.
// DataKind_null if the field is not declared
func (sch *Schema) FieldKind(name string) DataKind {
	return sch.kinds[name]
}

func (sch *Schema) FieldCount() int {
	return len(sch.fields)
}

// DynoScheme returns the dynobuffers scheme for the record codec.
// Nil until the cache is built
func (sch *Schema) DynoScheme() *dynobuffers.Scheme {
	return sch.dyno
}

func validateIdent(name string) error {
	if name == "" {
		return ErrNameMissed
	}
	if !identRegexp.MatchString(name) {
		return ErrInvalidName
	}
	return nil
}
