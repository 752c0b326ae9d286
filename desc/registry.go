// Copyright (C) Docstore, Inc. 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package desc

import (
	"reflect"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/docstore/docenc/doc"
)

var tTime = reflect.TypeOf(time.Time{})
var tRef = reflect.TypeOf(doc.Ref(""))
var tEnum = reflect.TypeOf((*Enum)(nil)).Elem()

// isByteSlice reports whether t encodes as a single binary scalar rather
// than as a list. Named byte slice types count.
func isByteSlice(t reflect.Type) bool {
	return t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8
}

var defaultRegistry = &Registry{
	cache:  make(map[reflect.Type]*Descriptor),
	parser: DefaultTagParser,
}

// Registry builds and caches descriptors for Go types. A Registry is safe
// for concurrent use by multiple goroutines.
type Registry struct {
	mu     sync.RWMutex
	cache  map[reflect.Type]*Descriptor
	parser TagParser
}

// NewRegistry returns a Registry that uses p for struct tag parsing.
func NewRegistry(p TagParser) (*Registry, error) {
	if p == nil {
		return nil, errors.New("a TagParser must be provided to NewRegistry")
	}
	return &Registry{
		cache:  make(map[reflect.Type]*Descriptor),
		parser: p,
	}, nil
}

// Describe returns the descriptor for t using the default registry, which
// parses "doc" struct tags.
func Describe(t reflect.Type) (*Descriptor, error) {
	return defaultRegistry.Describe(t)
}

// Describe returns the descriptor for t, building and caching it on first
// use. Repeated calls for the same type return the identical descriptor.
// Pointer types describe as their element type.
func (r *Registry) Describe(t reflect.Type) (*Descriptor, error) {
	if t == nil {
		return nil, errors.New("cannot describe a nil type")
	}
	t = derefType(t)

	r.mu.RLock()
	d, ok := r.cache[t]
	r.mu.RUnlock()
	if ok {
		return d, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.cache[t]; ok {
		return d, nil
	}
	// The cache doubles as the in-progress set: a class descriptor is
	// inserted before its fields are described so self-referential types
	// resolve to the same descriptor instead of recursing forever. Entries
	// are removed again if describing fails partway.
	d, err := r.describe(t)
	if err != nil {
		delete(r.cache, t)
		return nil, err
	}
	// Scalar and list descriptors are not cached by describe itself; cache
	// them here so repeated Describe calls return the identical descriptor
	// for every kind.
	r.cache[t] = d
	return d, nil
}

func derefType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// describe is called with r.mu held for writing.
func (r *Registry) describe(t reflect.Type) (*Descriptor, error) {
	t = derefType(t)
	if d, ok := r.cache[t]; ok {
		return d, nil
	}

	if t.Implements(tEnum) {
		return r.describeEnum(t)
	}

	if t == tTime || t == tRef || isByteSlice(t) {
		return NewScalar(t.String()), nil
	}

	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return NewScalar(t.String()), nil
	case reflect.Struct:
		return r.describeStruct(t)
	case reflect.Slice, reflect.Array:
		elem, err := r.describe(t.Elem())
		if err != nil {
			return nil, errors.Wrapf(err, "cannot describe element type of %s", t)
		}
		if elem.Kind() == KindScalar {
			elem = nil
		}
		return NewList(t.String(), elem), nil
	default:
		return nil, errors.Errorf("cannot describe type %s: unsupported kind %s", t, t.Kind())
	}
}

func (r *Registry) describeEnum(t reflect.Type) (*Descriptor, error) {
	if d, ok := r.cache[t]; ok {
		return d, nil
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return nil, errors.Errorf("enum type %s must have an integer underlying kind, has %s", t, t.Kind())
	}
	variants := reflect.Zero(t).Interface().(Enum).EnumVariants()
	if len(variants) == 0 {
		return nil, errors.Errorf("enum type %s declares no variants", t)
	}
	d := NewEnum(t.Name(), variants...)
	r.cache[t] = d
	return d, nil
}

func (r *Registry) describeStruct(t reflect.Type) (*Descriptor, error) {
	d := &Descriptor{name: t.Name(), kind: KindClass}
	r.cache[t] = d

	fields := make([]Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" {
			continue // unexported
		}
		tag, err := r.parser.ParseTag(sf)
		if err != nil {
			delete(r.cache, t)
			return nil, errors.Wrapf(err, "cannot parse tag of field %s.%s", t, sf.Name)
		}
		if tag.Skip {
			continue
		}

		ft := derefType(sf.Type)
		f := Field{Name: tag.Name, Index: i, OmitEmpty: tag.OmitEmpty}
		switch {
		case ft.Implements(tEnum):
			f.Kind = KindEnum
			f.Desc, err = r.describeEnum(ft)
		case ft == tTime, ft == tRef, isByteSlice(ft):
			f.Kind = KindScalar
		case ft.Kind() == reflect.Struct:
			f.Kind = KindClass
			f.Desc, err = r.describe(ft)
		case ft.Kind() == reflect.Slice || ft.Kind() == reflect.Array:
			f.Kind = KindList
			f.Desc, err = r.describe(ft)
		default:
			switch ft.Kind() {
			case reflect.Bool, reflect.String,
				reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
				reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
				reflect.Float32, reflect.Float64:
				f.Kind = KindScalar
			default:
				err = errors.Errorf("unsupported kind %s", ft.Kind())
			}
		}
		if err != nil {
			delete(r.cache, t)
			return nil, errors.Wrapf(err, "cannot describe field %s.%s", t, sf.Name)
		}
		fields = append(fields, f)
	}
	d.fields = fields
	return d, nil
}
