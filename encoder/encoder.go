// Copyright (C) Docstore, Inc. 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package encoder converts schema-described Go values into the generic
// nested documents of package doc. Two cooperating recursive builders walk
// the value: a MapBuilder accumulates the named fields of one structured
// value and a ListBuilder accumulates the positional elements of one
// sequence. When a field or element is itself structured or a sequence, the
// builder recurses, creating a child builder one level deeper whose
// completion callback implants the finished container at the right key or
// position in the parent.
//
// The encode is synchronous, single-threaded, and all-or-nothing: Encode
// either returns a complete document or an error, never partial output.
package encoder

import (
	"github.com/docstore/docenc/desc"
	"github.com/docstore/docenc/doc"
)

// DefaultMaxDepth is the nesting depth at which encoding fails. Acyclic
// object graphs essentially never reach it; a graph that does almost
// certainly contains a reference cycle.
const DefaultMaxDepth = 500

// ContainerBuilder is the common interface of MapBuilder and ListBuilder:
// one in-progress encoding of a single structured or sequence value.
//
// A builder moves through three states. It is created accumulating, accepts
// any number of EncodeNull, EncodeScalar, and BeginNested calls, and is
// finalized by EndStructure, which hands the finished container to the
// completion callback exactly once. Calls after EndStructure fail with
// InvalidStateError.
type ContainerBuilder interface {
	// EncodeNull records a null at the current slot and advances it.
	EncodeNull() error

	// EncodeScalar records a scalar value at the current slot and advances
	// it. Enumerated values must be mapped to their declared name string
	// before being passed here.
	EncodeScalar(v doc.Value) error

	// BeginNested returns a child builder for a nested value one level
	// deeper. The child's completion callback implants the finished
	// container at this builder's current slot.
	BeginNested(d *desc.Descriptor) (ContainerBuilder, error)

	// EndStructure finalizes the builder, invoking its completion callback
	// with a copy of the accumulated container.
	EndStructure() error
}

type config struct {
	maxDepth int
}

// Option configures a builder and is inherited by the builders it creates
// for nested values.
type Option func(*config)

// WithMaxDepth sets the nesting depth at which encoding fails, replacing
// DefaultMaxDepth. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(c *config) {
		if n >= 1 {
			c.maxDepth = n
		}
	}
}

func newConfig(opts ...Option) config {
	c := config{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// newNestedBuilder selects the builder for a nested descriptor's kind: a
// MapBuilder for a class, a ListBuilder for a list. Other kinds have no
// container representation and fail.
func newNestedBuilder(d *desc.Descriptor, depth int, cfg config, onDoc func(*doc.Document), onArr func(*doc.Array)) (ContainerBuilder, error) {
	switch d.Kind() {
	case desc.KindClass:
		return newMapBuilder(d, depth, cfg, onDoc)
	case desc.KindList:
		return newListBuilder(depth, cfg, onArr)
	default:
		return nil, InvalidStructureError{Kind: d.Kind(), Reason: "unsupported nested kind"}
	}
}
