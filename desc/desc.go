// Copyright (C) Docstore, Inc. 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package desc describes the structure of Go types to the encoder. A
// Descriptor exposes an ordered sequence of named, typed fields for a struct
// type, the variant names of an enumerated type, or the element shape of a
// sequence type. Descriptors are immutable and are reused across encodes of
// the same type.
package desc

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds indicates that a field or variant index was out of range
// for the descriptor.
var ErrOutOfBounds = errors.New("descriptor index out of bounds")

// Kind is the structural kind of a described type or field.
type Kind byte

// Structural kinds.
const (
	KindInvalid Kind = iota
	KindScalar
	KindEnum
	KindClass
	KindList
)

// String returns the string representation of the kind's name.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindEnum:
		return "enum"
	case KindClass:
		return "class"
	case KindList:
		return "list"
	default:
		return "invalid"
	}
}

// Enum marks an integer type whose values map to declared variant names. The
// value's integer representation indexes into EnumVariants; the encoder
// records the variant name string rather than the integer.
type Enum interface {
	EnumVariants() []string
}

// Field is a single named field of a class descriptor. For class and list
// fields Desc holds the nested descriptor; for enum fields it holds the enum
// descriptor. Index is the Go struct field index the provider resolved the
// field from, used by the encoder to fetch the field's value.
type Field struct {
	Name      string
	Kind      Kind
	Desc      *Descriptor
	Index     int
	OmitEmpty bool
}

// Descriptor describes the structure of one type. For a class it carries the
// ordered fields; for an enum the ordered variant names; for a list the
// element descriptor.
type Descriptor struct {
	name     string
	kind     Kind
	fields   []Field
	variants []string
	elem     *Descriptor
}

// NewClass creates a class descriptor with the provided fields, in order.
func NewClass(name string, fields ...Field) *Descriptor {
	return &Descriptor{name: name, kind: KindClass, fields: append([]Field(nil), fields...)}
}

// NewEnum creates an enum descriptor with the provided variant names, in
// declaration order.
func NewEnum(name string, variants ...string) *Descriptor {
	return &Descriptor{name: name, kind: KindEnum, variants: append([]string(nil), variants...)}
}

// NewList creates a list descriptor. The elem descriptor describes the
// list's element type and may be nil for scalar elements.
func NewList(name string, elem *Descriptor) *Descriptor {
	return &Descriptor{name: name, kind: KindList, elem: elem}
}

// NewScalar creates a scalar descriptor.
func NewScalar(name string) *Descriptor {
	return &Descriptor{name: name, kind: KindScalar}
}

// Name returns the name of the described type.
func (d *Descriptor) Name() string { return d.name }

// Kind returns the structural kind of the described type.
func (d *Descriptor) Kind() Kind { return d.kind }

// Len returns the number of fields of a class descriptor or variants of an
// enum descriptor.
func (d *Descriptor) Len() int {
	if d.kind == KindEnum {
		return len(d.variants)
	}
	return len(d.fields)
}

// Fields returns the ordered fields of a class descriptor. The returned
// slice must not be mutated.
func (d *Descriptor) Fields() []Field { return d.fields }

// Field returns the field at the provided index of a class descriptor.
func (d *Descriptor) Field(i int) (Field, error) {
	if i < 0 || i >= len(d.fields) {
		return Field{}, fmt.Errorf("%w: field %d of %q (%d fields)", ErrOutOfBounds, i, d.name, len(d.fields))
	}
	return d.fields[i], nil
}

// ElementName resolves the name of the element at the provided index: a
// field's key for a class descriptor, a variant's declared name for an enum
// descriptor.
func (d *Descriptor) ElementName(i int) (string, error) {
	if d.kind == KindEnum {
		if i < 0 || i >= len(d.variants) {
			return "", fmt.Errorf("%w: variant %d of %q (%d variants)", ErrOutOfBounds, i, d.name, len(d.variants))
		}
		return d.variants[i], nil
	}
	f, err := d.Field(i)
	if err != nil {
		return "", err
	}
	return f.Name, nil
}

// Elem returns the element descriptor of a list descriptor. It is nil for
// scalar elements and for non-list descriptors.
func (d *Descriptor) Elem() *Descriptor { return d.elem }
