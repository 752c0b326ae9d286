// Copyright (C) Docstore, Inc. 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package encoder

import (
	"fmt"
	"math"
	"reflect"
	"time"

	"github.com/docstore/docenc/desc"
	"github.com/docstore/docenc/doc"
)

var tTime = reflect.TypeOf(time.Time{})
var tRef = reflect.TypeOf(doc.Ref(""))

// Encode converts a structured value into a document, walking the value's
// fields in descriptor order. The descriptor must describe a class and the
// value must be a struct or a non-nil pointer to one. Errors do not produce
// partial output: Encode returns either a complete document or an error.
func Encode(sd *desc.Descriptor, v interface{}, opts ...Option) (*doc.Document, error) {
	if sd == nil {
		return nil, fmt.Errorf("cannot encode with a nil descriptor")
	}
	rv, ok := derefValue(reflect.ValueOf(v))
	if !ok {
		return nil, fmt.Errorf("cannot encode a nil value")
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("cannot encode a %s value, expected a struct", rv.Kind())
	}

	root, err := NewMapBuilder(sd, 0, nil, opts...)
	if err != nil {
		return nil, err
	}
	body, err := root.BeginNested(sd)
	if err != nil {
		return nil, err
	}
	if err := encodeStruct(body, sd, rv); err != nil {
		return nil, err
	}
	if err := body.EndStructure(); err != nil {
		return nil, err
	}
	return root.SerializedResult(), nil
}

// Marshal is a convenience form of Encode that infers the descriptor from
// the value's type through the default registry.
func Marshal(v interface{}, opts ...Option) (*doc.Document, error) {
	if v == nil {
		return nil, fmt.Errorf("cannot encode a nil value")
	}
	sd, err := desc.Describe(reflect.TypeOf(v))
	if err != nil {
		return nil, err
	}
	return Encode(sd, v, opts...)
}

// derefValue unwraps pointers and interfaces. The second return is false if
// a nil was reached.
func derefValue(rv reflect.Value) (reflect.Value, bool) {
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return rv, false
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return rv, false
	}
	return rv, true
}

// encodeStruct feeds each field of val to b in descriptor order,
// dispatching on the field's kind.
func encodeStruct(b ContainerBuilder, sd *desc.Descriptor, val reflect.Value) error {
	for _, f := range sd.Fields() {
		if f.Index < 0 || f.Index >= val.NumField() {
			return InvalidStructureError{
				Kind:   sd.Kind(),
				Reason: fmt.Sprintf("field %q index %d is out of range for a %s value", f.Name, f.Index, val.Type()),
			}
		}
		rv, ok := derefValue(val.Field(f.Index))
		if !ok || rv.Kind() == reflect.Slice && rv.IsNil() {
			if err := b.EncodeNull(); err != nil {
				return err
			}
			continue
		}

		var err error
		switch f.Kind {
		case desc.KindScalar:
			err = encodeScalarField(b, rv)
		case desc.KindEnum:
			err = encodeEnumField(b, f.Desc, rv)
		case desc.KindClass:
			if rv.Kind() != reflect.Struct {
				return InvalidStructureError{
					Kind:   desc.KindClass,
					Reason: fmt.Sprintf("field %q holds a %s value, not a struct", f.Name, rv.Kind()),
				}
			}
			var child ContainerBuilder
			if child, err = b.BeginNested(f.Desc); err != nil {
				return err
			}
			if err = encodeStruct(child, f.Desc, rv); err != nil {
				return err
			}
			err = child.EndStructure()
		case desc.KindList:
			if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
				return InvalidStructureError{
					Kind:   desc.KindList,
					Reason: fmt.Sprintf("field %q holds a %s value, not a sequence", f.Name, rv.Kind()),
				}
			}
			var child ContainerBuilder
			if child, err = b.BeginNested(f.Desc); err != nil {
				return err
			}
			if err = encodeList(child, f.Desc, rv); err != nil {
				return err
			}
			err = child.EndStructure()
		default:
			err = InvalidStructureError{Kind: f.Kind, Reason: fmt.Sprintf("field %q has no encodable kind", f.Name)}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// encodeList feeds each element of val to b. Structured elements recurse
// through a child builder; everything else encodes as a scalar or null.
func encodeList(b ContainerBuilder, ld *desc.Descriptor, val reflect.Value) error {
	elem := ld.Elem()
	for i := 0; i < val.Len(); i++ {
		rv, ok := derefValue(val.Index(i))
		if !ok {
			if err := b.EncodeNull(); err != nil {
				return err
			}
			continue
		}

		var err error
		switch {
		case elem == nil:
			err = encodeScalarField(b, rv)
		case elem.Kind() == desc.KindEnum:
			err = encodeEnumField(b, elem, rv)
		default:
			// Class elements recurse; list elements are rejected by the
			// ListBuilder itself.
			if elem.Kind() == desc.KindClass && rv.Kind() != reflect.Struct {
				return InvalidStructureError{
					Kind:   desc.KindClass,
					Reason: fmt.Sprintf("sequence element %d is a %s value, not a struct", i, rv.Kind()),
				}
			}
			var child ContainerBuilder
			if child, err = b.BeginNested(elem); err != nil {
				return err
			}
			if err = encodeStruct(child, elem, rv); err != nil {
				return err
			}
			err = child.EndStructure()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// encodeEnumField maps the value to its declared variant name and records
// the name as a string scalar.
func encodeEnumField(b ContainerBuilder, ed *desc.Descriptor, rv reflect.Value) error {
	var idx int
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		idx = int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		idx = int(rv.Uint())
	default:
		return InvalidStructureError{Kind: desc.KindEnum, Reason: fmt.Sprintf("enum value of kind %s is not an integer", rv.Kind())}
	}
	name, err := ed.ElementName(idx)
	if err != nil {
		return InvalidStructureError{Kind: desc.KindEnum, Reason: fmt.Sprintf("value %d is not a variant of %q", idx, ed.Name())}
	}
	return b.EncodeScalar(doc.String(name))
}

// encodeScalarField converts a Go scalar to its document value and records
// it.
func encodeScalarField(b ContainerBuilder, rv reflect.Value) error {
	v, err := scalarValue(rv)
	if err != nil {
		return err
	}
	return b.EncodeScalar(v)
}

func scalarValue(rv reflect.Value) (doc.Value, error) {
	switch rv.Type() {
	case tTime:
		return doc.DateTime(rv.Interface().(time.Time)), nil
	case tRef:
		return doc.Reference(rv.Interface().(doc.Ref)), nil
	}

	switch rv.Kind() {
	case reflect.Bool:
		return doc.Boolean(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return doc.Int64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return doc.Value{}, fmt.Errorf("%d overflows the 64-bit integer document value", u)
		}
		return doc.Int64(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return doc.Double(rv.Float()), nil
	case reflect.String:
		return doc.String(rv.String()), nil
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return doc.Binary(rv.Bytes()), nil
		}
	}
	return doc.Value{}, fmt.Errorf("cannot encode a %s value as a scalar", rv.Type())
}
