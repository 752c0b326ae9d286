// Copyright (C) Docstore, Inc. 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package encoder

import (
	"github.com/docstore/docenc/desc"
	"github.com/docstore/docenc/doc"
)

// ListBuilder encodes one ordered sequence's elements into an array.
// Elements are appended in encounter order; there is no field index.
type ListBuilder struct {
	depth int
	cfg   config
	done  func(*doc.Array)
	out   *doc.Array
	final bool
}

var _ ContainerBuilder = (*ListBuilder)(nil)

// NewListBuilder creates a ListBuilder at the provided depth. The done
// callback receives the finished array when EndStructure is called; a nil
// callback is replaced with a no-op. It returns a DepthError if depth has
// reached the ceiling.
func NewListBuilder(depth int, done func(*doc.Array), opts ...Option) (*ListBuilder, error) {
	return newListBuilder(depth, newConfig(opts...), done)
}

func newListBuilder(depth int, cfg config, done func(*doc.Array)) (*ListBuilder, error) {
	if depth >= cfg.maxDepth {
		return nil, DepthError{Depth: depth, Limit: cfg.maxDepth}
	}
	if done == nil {
		done = func(*doc.Array) {}
	}
	return &ListBuilder{
		depth: depth,
		cfg:   cfg,
		done:  done,
		out:   doc.NewArray(),
	}, nil
}

// EncodeNull appends a null to the sequence.
func (l *ListBuilder) EncodeNull() error {
	return l.EncodeScalar(doc.Null())
}

// EncodeScalar appends the scalar to the sequence.
func (l *ListBuilder) EncodeScalar(v doc.Value) error {
	if l.final {
		return InvalidStateError{Method: "EncodeScalar"}
	}
	l.out.Append(v)
	return nil
}

// BeginNested returns a child MapBuilder for a structured element, one
// level deeper, whose completion callback appends the finished document to
// this sequence. Only structured elements are supported: a sequence nested
// directly inside a sequence fails with InvalidStructureError.
func (l *ListBuilder) BeginNested(d *desc.Descriptor) (ContainerBuilder, error) {
	if l.final {
		return nil, InvalidStateError{Method: "BeginNested"}
	}
	if d.Kind() != desc.KindClass {
		return nil, InvalidStructureError{Kind: d.Kind(), Reason: "sequence elements must be structured"}
	}
	return newMapBuilder(d, l.depth+1, l.cfg, func(res *doc.Document) {
		l.out.Append(doc.Embed(res))
	})
}

// EndStructure finalizes the builder and invokes the completion callback
// with a copy of the accumulated sequence.
func (l *ListBuilder) EndStructure() error {
	if l.final {
		return InvalidStateError{Method: "EndStructure"}
	}
	l.final = true
	l.done(l.out.Copy())
	return nil
}
