// Copyright (C) Docstore, Inc. 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package doc provides the generic, dynamically typed document
// representation a document-oriented store accepts: ordered mappings,
// positional arrays, and a small universe of scalar values. Documents are
// produced by package encoder and consumed by a storage layer; this package
// defines no wire format.
package doc

import (
	"errors"
	"fmt"
)

// ErrElementNotFound indicates that an Element matching a certain condition
// does not exist.
var ErrElementNotFound = errors.New("element not found")

// ErrOutOfBounds indicates that an index provided to access something was
// invalid.
var ErrOutOfBounds = errors.New("out of bounds")

// ErrNilDocument indicates that an operation was attempted on a nil
// *doc.Document.
var ErrNilDocument = errors.New("document is nil")

// ElementTypeError specifies that a method to obtain a value failed because
// the value has the wrong type.
type ElementTypeError struct {
	Method string
	Type   Type
}

// Error implements the error interface.
func (ete ElementTypeError) Error() string {
	return fmt.Sprintf("call of %s on %s type", ete.Method, ete.Type)
}

// Element is a key/value pair of a Document.
type Element struct {
	Key   string
	Value Value
}

// Document is a mutable ordered mapping from string keys to values. Keys are
// unique within a document; insertion order is preserved and determines the
// rendered output, but Equal does not consider it.
type Document struct {
	elems []Element
	index map[string]int
}

// NewDocument creates a Document from the provided elements. Elements with a
// key that already appears replace the earlier value, keeping the earlier
// position.
func NewDocument(elems ...Element) *Document {
	d := &Document{
		elems: make([]Element, 0, len(elems)),
		index: make(map[string]int, len(elems)),
	}
	for _, e := range elems {
		d.Set(e.Key, e.Value)
	}
	return d
}

// Len returns the number of elements in the document.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.elems)
}

// Keys returns the element keys of the document, in insertion order.
func (d *Document) Keys() []string {
	if d == nil {
		return nil
	}
	keys := make([]string, 0, len(d.elems))
	for _, e := range d.elems {
		keys = append(keys, e.Key)
	}
	return keys
}

// Append adds an element to the end of the document. It panics with
// ErrNilDocument on a nil document. If the key already exists the element is
// replaced in place; a document never contains duplicate keys.
func (d *Document) Append(key string, v Value) *Document {
	return d.Set(key, v)
}

// Set replaces the element with a matching key. If the document does not
// have an element with that key, the element is appended to the document
// instead.
func (d *Document) Set(key string, v Value) *Document {
	if d == nil {
		panic(ErrNilDocument)
	}
	if d.index == nil {
		d.index = make(map[string]int)
	}
	if i, ok := d.index[key]; ok {
		d.elems[i].Value = v
		return d
	}
	d.elems = append(d.elems, Element{Key: key, Value: v})
	d.index[key] = len(d.elems) - 1
	return d
}

// Lookup returns the value for the provided key. It returns
// ErrElementNotFound if the key does not appear in the document.
func (d *Document) Lookup(key string) (Value, error) {
	v, ok := d.LookupOK(key)
	if !ok {
		return Value{}, ErrElementNotFound
	}
	return v, nil
}

// LookupOK is the same as Lookup, except it returns a boolean instead of an
// error.
func (d *Document) LookupOK(key string) (Value, bool) {
	if d == nil {
		return Value{}, false
	}
	i, ok := d.index[key]
	if !ok {
		return Value{}, false
	}
	return d.elems[i].Value, true
}

// ElementAt returns the element at the provided position. It returns
// ErrOutOfBounds if the position is out of range.
func (d *Document) ElementAt(i int) (Element, error) {
	if d == nil || i < 0 || i >= len(d.elems) {
		return Element{}, ErrOutOfBounds
	}
	return d.elems[i], nil
}

// Delete removes the element with a matching key and reports whether an
// element was removed.
func (d *Document) Delete(key string) bool {
	if d == nil {
		return false
	}
	i, ok := d.index[key]
	if !ok {
		return false
	}
	d.elems = append(d.elems[:i], d.elems[i+1:]...)
	delete(d.index, key)
	for k, j := range d.index {
		if j > i {
			d.index[k] = j - 1
		}
	}
	return true
}

// Concat appends every element of the provided documents, in order. Keys
// already present are replaced in place.
func (d *Document) Concat(docs ...*Document) *Document {
	if d == nil {
		panic(ErrNilDocument)
	}
	for _, doc := range docs {
		if doc == nil {
			panic(ErrNilDocument)
		}
		for _, e := range doc.elems {
			d.Set(e.Key, e.Value)
		}
	}
	return d
}

// Copy returns a deep copy of the document. Mutating the copy does not
// affect the original, including through embedded documents and arrays.
func (d *Document) Copy() *Document {
	if d == nil {
		return nil
	}
	cp := &Document{
		elems: make([]Element, 0, len(d.elems)),
		index: make(map[string]int, len(d.elems)),
	}
	for _, e := range d.elems {
		cp.elems = append(cp.elems, Element{Key: e.Key, Value: e.Value.copyValue()})
		cp.index[e.Key] = len(cp.elems) - 1
	}
	return cp
}

// Equal compares d to d2 and returns true if they hold the same key/value
// pairs. Insertion order does not affect equality.
func (d *Document) Equal(d2 *Document) bool {
	if d == nil || d2 == nil {
		return d.Len() == 0 && d2.Len() == 0
	}
	if len(d.elems) != len(d2.elems) {
		return false
	}
	for _, e := range d.elems {
		v2, ok := d2.LookupOK(e.Key)
		if !ok || !e.Value.Equal(v2) {
			return false
		}
	}
	return true
}

// Array is an ordered sequence of values. Elements are positional; order is
// significant for equality.
type Array struct {
	values []Value
}

// NewArray creates an Array from the provided values.
func NewArray(values ...Value) *Array {
	return &Array{values: append([]Value(nil), values...)}
}

// Len returns the number of elements in the array.
func (a *Array) Len() int {
	if a == nil {
		return 0
	}
	return len(a.values)
}

// Append adds the provided values to the end of the array.
func (a *Array) Append(values ...Value) *Array {
	a.values = append(a.values, values...)
	return a
}

// Lookup returns the value at the provided index. It returns ErrOutOfBounds
// if the index is out of range.
func (a *Array) Lookup(i int) (Value, error) {
	if a == nil || i < 0 || i >= len(a.values) {
		return Value{}, ErrOutOfBounds
	}
	return a.values[i], nil
}

// Copy returns a deep copy of the array.
func (a *Array) Copy() *Array {
	if a == nil {
		return nil
	}
	cp := &Array{values: make([]Value, 0, len(a.values))}
	for _, v := range a.values {
		cp.values = append(cp.values, v.copyValue())
	}
	return cp
}

// Equal compares a to a2 and returns true if they hold equal values in the
// same order.
func (a *Array) Equal(a2 *Array) bool {
	if a == nil || a2 == nil {
		return a.Len() == 0 && a2.Len() == 0
	}
	if len(a.values) != len(a2.values) {
		return false
	}
	for i, v := range a.values {
		if !v.Equal(a2.values[i]) {
			return false
		}
	}
	return true
}
