// Copyright (C) Docstore, Inc. 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package doc

// Type represents the type of a document value.
type Type byte

// Document value types. The values mirror the element type bytes used by the
// storage layer so a Type can be passed through without translation.
const (
	TypeDouble           Type = 0x01
	TypeString           Type = 0x02
	TypeEmbeddedDocument Type = 0x03
	TypeArray            Type = 0x04
	TypeBinary           Type = 0x05
	TypeBoolean          Type = 0x08
	TypeDateTime         Type = 0x09
	TypeNull             Type = 0x0A
	TypeReference        Type = 0x0C
	TypeInt64            Type = 0x12
)

// String returns the string representation of the type's name.
func (t Type) String() string {
	switch t {
	case TypeDouble:
		return "double"
	case TypeString:
		return "string"
	case TypeEmbeddedDocument:
		return "embedded document"
	case TypeArray:
		return "array"
	case TypeBinary:
		return "binary"
	case TypeBoolean:
		return "boolean"
	case TypeDateTime:
		return "date/time"
	case TypeNull:
		return "null"
	case TypeReference:
		return "reference"
	case TypeInt64:
		return "64-bit integer"
	default:
		return "invalid"
	}
}

// IsValid will return true if the Type is valid.
func (t Type) IsValid() bool {
	switch t {
	case TypeDouble, TypeString, TypeEmbeddedDocument, TypeArray, TypeBinary,
		TypeBoolean, TypeDateTime, TypeNull, TypeReference, TypeInt64:
		return true
	default:
		return false
	}
}

// Ref is the path of a document reference, e.g. "users/alice". It is opaque
// to this package; the storage layer resolves it.
type Ref string
