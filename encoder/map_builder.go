// Copyright (C) Docstore, Inc. 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package encoder

import (
	"fmt"

	"github.com/docstore/docenc/desc"
	"github.com/docstore/docenc/doc"
)

// MapBuilder encodes one structured value's fields into a document. Field
// keys are resolved through the value's descriptor by a running index: every
// encoded null, scalar, or nested container consumes exactly one field slot,
// in descriptor order.
type MapBuilder struct {
	sd       *desc.Descriptor
	depth    int
	cfg      config
	done     func(*doc.Document)
	out      *doc.Document
	idx      int
	consumed bool
	final    bool
}

var _ ContainerBuilder = (*MapBuilder)(nil)

// NewMapBuilder creates a MapBuilder for a value described by sd at the
// provided depth. The done callback receives the finished document when
// EndStructure is called; a nil callback is replaced with a no-op, which is
// the usual choice for a root builder whose result is read through
// SerializedResult instead. It returns a DepthError if depth has reached
// the ceiling.
func NewMapBuilder(sd *desc.Descriptor, depth int, done func(*doc.Document), opts ...Option) (*MapBuilder, error) {
	return newMapBuilder(sd, depth, newConfig(opts...), done)
}

func newMapBuilder(sd *desc.Descriptor, depth int, cfg config, done func(*doc.Document)) (*MapBuilder, error) {
	if depth >= cfg.maxDepth {
		return nil, DepthError{Depth: depth, Limit: cfg.maxDepth}
	}
	if done == nil {
		done = func(*doc.Document) {}
	}
	return &MapBuilder{
		sd:    sd,
		depth: depth,
		cfg:   cfg,
		done:  done,
		out:   doc.NewDocument(),
	}, nil
}

// fieldName resolves the current field's key and advances the index.
func (m *MapBuilder) fieldName() (string, error) {
	name, err := m.sd.ElementName(m.idx)
	if err != nil {
		return "", InvalidStructureError{
			Kind:   m.sd.Kind(),
			Reason: fmt.Sprintf("no descriptor field at index %d of %q", m.idx, m.sd.Name()),
		}
	}
	m.idx++
	m.consumed = true
	return name, nil
}

// EncodeNull records a null at the current field's name and advances the
// field index.
func (m *MapBuilder) EncodeNull() error {
	return m.EncodeScalar(doc.Null())
}

// EncodeScalar records the scalar at the current field's name and advances
// the field index.
func (m *MapBuilder) EncodeScalar(v doc.Value) error {
	if m.final {
		return InvalidStateError{Method: "EncodeScalar"}
	}
	name, err := m.fieldName()
	if err != nil {
		return err
	}
	m.out.Append(name, v)
	return nil
}

// BeginNested returns a child builder for the nested value at the current
// field, one level deeper. The child's completion callback implants the
// finished container at the field's name in this builder's document and
// advances the field index.
//
// The very first BeginNested call on a freshly constructed root-level
// builder, before any field has been consumed, is the outer call wrapping
// the entire top-level value: its child must be structured, and the
// completion callback merges the child's entries directly into this
// builder's own document instead of nesting them under a field key.
func (m *MapBuilder) BeginNested(d *desc.Descriptor) (ContainerBuilder, error) {
	if m.final {
		return nil, InvalidStateError{Method: "BeginNested"}
	}

	if m.depth == 0 && m.idx == 0 && !m.consumed {
		if d.Kind() != desc.KindClass {
			return nil, InvalidStructureError{Kind: d.Kind(), Reason: "unsupported nested kind"}
		}
		m.consumed = true
		return newMapBuilder(d, m.depth+1, m.cfg, func(res *doc.Document) {
			m.out.Concat(res)
		})
	}

	name, err := m.fieldName()
	if err != nil {
		return nil, err
	}
	return newNestedBuilder(d, m.depth+1, m.cfg,
		func(res *doc.Document) { m.out.Append(name, doc.Embed(res)) },
		func(res *doc.Array) { m.out.Append(name, doc.List(res)) },
	)
}

// EndStructure finalizes the builder and invokes the completion callback
// with a copy of the accumulated document. The copy is defensive: the
// callback's receiver never observes further mutation of this builder.
func (m *MapBuilder) EndStructure() error {
	if m.final {
		return InvalidStateError{Method: "EndStructure"}
	}
	m.final = true
	m.done(m.out.Copy())
	return nil
}

// SerializedResult returns a copy of the accumulated document without
// requiring a callback round-trip. It is a convenience for root builders.
func (m *MapBuilder) SerializedResult() *doc.Document {
	return m.out.Copy()
}
