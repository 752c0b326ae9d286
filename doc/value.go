// Copyright (C) Docstore, Inc. 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package doc

import (
	"bytes"
	"time"
)

// Value represents a single value of a document. It is immutable once
// constructed; the zero Value is null.
type Value struct {
	t Type

	b    bool
	i64  int64
	f64  float64
	str  string
	data []byte
	tm   time.Time
	d    *Document
	arr  *Array
}

// Null constructs a Value of type null.
func Null() Value { return Value{t: TypeNull} }

// Boolean constructs a Value of type boolean.
func Boolean(b bool) Value { return Value{t: TypeBoolean, b: b} }

// Int64 constructs a Value of type 64-bit integer.
func Int64(i int64) Value { return Value{t: TypeInt64, i64: i} }

// Double constructs a Value of type double.
func Double(f float64) Value { return Value{t: TypeDouble, f64: f} }

// String constructs a Value of type string.
func String(s string) Value { return Value{t: TypeString, str: s} }

// Binary constructs a Value of type binary. The byte slice is not copied; the
// caller must not mutate it after construction.
func Binary(p []byte) Value { return Value{t: TypeBinary, data: p} }

// DateTime constructs a Value of type date/time.
func DateTime(t time.Time) Value { return Value{t: TypeDateTime, tm: t} }

// Reference constructs a Value of type reference.
func Reference(r Ref) Value { return Value{t: TypeReference, str: string(r)} }

// Embed constructs a Value of type embedded document. A nil document is
// treated as null.
func Embed(d *Document) Value {
	if d == nil {
		return Null()
	}
	return Value{t: TypeEmbeddedDocument, d: d}
}

// List constructs a Value of type array. A nil array is treated as null.
func List(a *Array) Value {
	if a == nil {
		return Null()
	}
	return Value{t: TypeArray, arr: a}
}

// Type returns the type of the value. The zero Value reports TypeNull.
func (v Value) Type() Type {
	if v.t == 0 {
		return TypeNull
	}
	return v.t
}

// IsNull will return true if the value is of type null.
func (v Value) IsNull() bool { return v.Type() == TypeNull }

// Boolean returns the boolean payload. It panics if the value is not a
// boolean; use BooleanOK when the type is not known.
func (v Value) Boolean() bool {
	if v.t != TypeBoolean {
		panic(ElementTypeError{Method: "doc.Value.Boolean", Type: v.Type()})
	}
	return v.b
}

// BooleanOK is the same as Boolean, except it returns a boolean instead of
// panicking.
func (v Value) BooleanOK() (bool, bool) {
	if v.t != TypeBoolean {
		return false, false
	}
	return v.b, true
}

// Int64 returns the integer payload. It panics if the value is not a 64-bit
// integer.
func (v Value) Int64() int64 {
	if v.t != TypeInt64 {
		panic(ElementTypeError{Method: "doc.Value.Int64", Type: v.Type()})
	}
	return v.i64
}

// Int64OK is the same as Int64, except it returns a boolean instead of
// panicking.
func (v Value) Int64OK() (int64, bool) {
	if v.t != TypeInt64 {
		return 0, false
	}
	return v.i64, true
}

// Double returns the double payload. It panics if the value is not a double.
func (v Value) Double() float64 {
	if v.t != TypeDouble {
		panic(ElementTypeError{Method: "doc.Value.Double", Type: v.Type()})
	}
	return v.f64
}

// DoubleOK is the same as Double, except it returns a boolean instead of
// panicking.
func (v Value) DoubleOK() (float64, bool) {
	if v.t != TypeDouble {
		return 0, false
	}
	return v.f64, true
}

// StringValue returns the string payload. It panics if the value is not a
// string. The name is StringValue because String implements fmt.Stringer.
func (v Value) StringValue() string {
	if v.t != TypeString {
		panic(ElementTypeError{Method: "doc.Value.StringValue", Type: v.Type()})
	}
	return v.str
}

// StringValueOK is the same as StringValue, except it returns a boolean
// instead of panicking.
func (v Value) StringValueOK() (string, bool) {
	if v.t != TypeString {
		return "", false
	}
	return v.str, true
}

// Binary returns the binary payload. It panics if the value is not binary.
func (v Value) Binary() []byte {
	if v.t != TypeBinary {
		panic(ElementTypeError{Method: "doc.Value.Binary", Type: v.Type()})
	}
	return v.data
}

// BinaryOK is the same as Binary, except it returns a boolean instead of
// panicking.
func (v Value) BinaryOK() ([]byte, bool) {
	if v.t != TypeBinary {
		return nil, false
	}
	return v.data, true
}

// DateTime returns the date/time payload. It panics if the value is not a
// date/time.
func (v Value) DateTime() time.Time {
	if v.t != TypeDateTime {
		panic(ElementTypeError{Method: "doc.Value.DateTime", Type: v.Type()})
	}
	return v.tm
}

// DateTimeOK is the same as DateTime, except it returns a boolean instead of
// panicking.
func (v Value) DateTimeOK() (time.Time, bool) {
	if v.t != TypeDateTime {
		return time.Time{}, false
	}
	return v.tm, true
}

// Reference returns the reference payload. It panics if the value is not a
// reference.
func (v Value) Reference() Ref {
	if v.t != TypeReference {
		panic(ElementTypeError{Method: "doc.Value.Reference", Type: v.Type()})
	}
	return Ref(v.str)
}

// ReferenceOK is the same as Reference, except it returns a boolean instead
// of panicking.
func (v Value) ReferenceOK() (Ref, bool) {
	if v.t != TypeReference {
		return "", false
	}
	return Ref(v.str), true
}

// Document returns the embedded document payload. It panics if the value is
// not an embedded document.
func (v Value) Document() *Document {
	if v.t != TypeEmbeddedDocument {
		panic(ElementTypeError{Method: "doc.Value.Document", Type: v.Type()})
	}
	return v.d
}

// DocumentOK is the same as Document, except it returns a boolean instead of
// panicking.
func (v Value) DocumentOK() (*Document, bool) {
	if v.t != TypeEmbeddedDocument {
		return nil, false
	}
	return v.d, true
}

// Array returns the array payload. It panics if the value is not an array.
func (v Value) Array() *Array {
	if v.t != TypeArray {
		panic(ElementTypeError{Method: "doc.Value.Array", Type: v.Type()})
	}
	return v.arr
}

// ArrayOK is the same as Array, except it returns a boolean instead of
// panicking.
func (v Value) ArrayOK() (*Array, bool) {
	if v.t != TypeArray {
		return nil, false
	}
	return v.arr, true
}

// Interface returns the Go value of this Value as an empty interface.
func (v Value) Interface() interface{} {
	switch v.Type() {
	case TypeNull:
		return nil
	case TypeBoolean:
		return v.b
	case TypeInt64:
		return v.i64
	case TypeDouble:
		return v.f64
	case TypeString:
		return v.str
	case TypeBinary:
		return v.data
	case TypeDateTime:
		return v.tm
	case TypeReference:
		return Ref(v.str)
	case TypeEmbeddedDocument:
		return v.d
	case TypeArray:
		return v.arr
	default:
		return nil
	}
}

// Equal compares v to v2 and returns true if they are equal. Embedded
// documents are compared with Document.Equal, so element order does not
// affect document equality; arrays are positional and order matters.
func (v Value) Equal(v2 Value) bool {
	if v.Type() != v2.Type() {
		return false
	}
	switch v.Type() {
	case TypeNull:
		return true
	case TypeBoolean:
		return v.b == v2.b
	case TypeInt64:
		return v.i64 == v2.i64
	case TypeDouble:
		return v.f64 == v2.f64
	case TypeString, TypeReference:
		return v.str == v2.str
	case TypeBinary:
		return bytes.Equal(v.data, v2.data)
	case TypeDateTime:
		return v.tm.Equal(v2.tm)
	case TypeEmbeddedDocument:
		return v.d.Equal(v2.d)
	case TypeArray:
		return v.arr.Equal(v2.arr)
	default:
		return false
	}
}

// copyValue returns a deep copy of v. Scalars are immutable and returned as
// is; containers and binary data are copied.
func (v Value) copyValue() Value {
	switch v.t {
	case TypeBinary:
		data := make([]byte, len(v.data))
		copy(data, v.data)
		v.data = data
	case TypeEmbeddedDocument:
		v.d = v.d.Copy()
	case TypeArray:
		v.arr = v.arr.Copy()
	}
	return v
}
