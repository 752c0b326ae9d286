// Copyright (C) Docstore, Inc. 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package doc

import (
	"encoding/base64"
	"strconv"
	"time"

	"github.com/tidwall/pretty"
)

// String implements the fmt.Stringer interface. The document is rendered as
// pretty-printed JSON in insertion order; binary data is base64 encoded,
// date/times use RFC 3339, and references render as {"$ref": <path>}. The
// rendering is diagnostic output, not a wire format.
func (d *Document) String() string {
	return string(pretty.Pretty(d.appendJSON(nil)))
}

// String implements the fmt.Stringer interface.
func (a *Array) String() string {
	return string(pretty.Pretty(a.appendJSON(nil)))
}

// String implements the fmt.Stringer interface.
func (v Value) String() string {
	return string(pretty.Pretty(v.appendJSON(nil)))
}

func (d *Document) appendJSON(buf []byte) []byte {
	buf = append(buf, '{')
	if d != nil {
		for i, e := range d.elems {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = strconv.AppendQuote(buf, e.Key)
			buf = append(buf, ':')
			buf = e.Value.appendJSON(buf)
		}
	}
	return append(buf, '}')
}

func (a *Array) appendJSON(buf []byte) []byte {
	buf = append(buf, '[')
	if a != nil {
		for i, v := range a.values {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = v.appendJSON(buf)
		}
	}
	return append(buf, ']')
}

func (v Value) appendJSON(buf []byte) []byte {
	switch v.Type() {
	case TypeNull:
		return append(buf, "null"...)
	case TypeBoolean:
		return strconv.AppendBool(buf, v.b)
	case TypeInt64:
		return strconv.AppendInt(buf, v.i64, 10)
	case TypeDouble:
		return strconv.AppendFloat(buf, v.f64, 'g', -1, 64)
	case TypeString:
		return strconv.AppendQuote(buf, v.str)
	case TypeBinary:
		return strconv.AppendQuote(buf, base64.StdEncoding.EncodeToString(v.data))
	case TypeDateTime:
		return strconv.AppendQuote(buf, v.tm.Format(time.RFC3339Nano))
	case TypeReference:
		buf = append(buf, `{"$ref":`...)
		buf = strconv.AppendQuote(buf, v.str)
		return append(buf, '}')
	case TypeEmbeddedDocument:
		return v.d.appendJSON(buf)
	case TypeArray:
		return v.arr.appendJSON(buf)
	default:
		return append(buf, "null"...)
	}
}
