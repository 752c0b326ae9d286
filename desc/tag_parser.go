// Copyright (C) Docstore, Inc. 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package desc

import (
	"reflect"
	"strings"
)

// Tag represents the struct tag fields a Registry uses while describing a
// struct.
//
// The properties are defined below:
//
//	Name       The document key of the field. If there is no name in the
//	           struct tag, the lowercased field name is used.
//
//	OmitEmpty  Only include the field if it's not set to the zero value for
//	           the type or to empty slices or maps.
//
//	Skip       This struct field should be skipped. This is usually denoted
//	           by parsing a "-" for the name.
type Tag struct {
	Name      string
	OmitEmpty bool
	Skip      bool
}

// TagParser returns the Tag for the given struct field.
type TagParser interface {
	ParseTag(reflect.StructField) (Tag, error)
}

// TagParserFunc is an adapter that allows a function to be used as a
// TagParser.
type TagParserFunc func(reflect.StructField) (Tag, error)

// ParseTag implements the TagParser interface.
func (tpf TagParserFunc) ParseTag(sf reflect.StructField) (Tag, error) {
	return tpf(sf)
}

// DefaultTagParser handles the "doc" struct tag. The tag formats accepted
// are:
//
//	`doc:"[<key>][,<flag1>[,<flag2>]]"`
//
// A tag consisting entirely of '-' returns a Tag with Skip true.
var DefaultTagParser TagParser = TagParserFunc(parseDocTag)

func parseDocTag(sf reflect.StructField) (Tag, error) {
	key := strings.ToLower(sf.Name)
	tag, ok := sf.Tag.Lookup("doc")
	if !ok && !strings.Contains(string(sf.Tag), ":") && len(sf.Tag) > 0 {
		tag = string(sf.Tag)
	}
	return parseTag(key, tag)
}

func parseTag(key string, tag string) (Tag, error) {
	var t Tag
	if tag == "-" {
		t.Skip = true
		return t, nil
	}
	for idx, str := range strings.Split(tag, ",") {
		if idx == 0 && str != "" {
			key = str
		}
		if str == "omitempty" {
			t.OmitEmpty = true
		}
	}
	t.Name = key
	return t, nil
}
