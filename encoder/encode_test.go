// Copyright (C) Docstore, Inc. 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package encoder

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docstore/docenc/desc"
	"github.com/docstore/docenc/doc"
)

type priority int

func (priority) EnumVariants() []string { return []string{"low", "high"} }

type nestedID struct {
	DocID string `doc:"docId"`
}

type chain struct {
	Name string `doc:"name"`
	Next *chain `doc:"next"`
}

func docComparer(d1, d2 *doc.Document) bool { return d1.Equal(d2) }

func TestMarshalScenarios(t *testing.T) {
	testCases := []struct {
		name string
		v    interface{}
		want *doc.Document
	}{
		{
			"single scalar field",
			struct {
				DocID string `doc:"docId"`
			}{DocID: "doc-id"},
			doc.NewDocument(doc.Element{Key: "docId", Value: doc.String("doc-id")}),
		},
		{
			"nested structured field",
			struct {
				Nested nestedID `doc:"nested"`
			}{Nested: nestedID{DocID: "doc-id"}},
			doc.NewDocument(doc.Element{
				Key:   "nested",
				Value: doc.Embed(doc.NewDocument(doc.Element{Key: "docId", Value: doc.String("doc-id")})),
			}),
		},
		{
			"sequence field",
			struct {
				Tags []string `doc:"tags"`
			}{Tags: []string{"a", "b"}},
			doc.NewDocument(doc.Element{
				Key:   "tags",
				Value: doc.List(doc.NewArray(doc.String("a"), doc.String("b"))),
			}),
		},
		{
			"sequence of structures",
			struct {
				Items []struct {
					X int64 `doc:"x"`
				} `doc:"items"`
			}{Items: []struct {
				X int64 `doc:"x"`
			}{{X: 1}, {X: 2}}},
			doc.NewDocument(doc.Element{
				Key: "items",
				Value: doc.List(doc.NewArray(
					doc.Embed(doc.NewDocument(doc.Element{Key: "x", Value: doc.Int64(1)})),
					doc.Embed(doc.NewDocument(doc.Element{Key: "x", Value: doc.Int64(2)})),
				)),
			}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Marshal(tc.v)
			require.NoError(t, err)
			if !cmp.Equal(tc.want, got, cmp.Comparer(docComparer)) {
				t.Errorf("documents do not match\ngot:  %s\nwant: %s", got, tc.want)
			}
		})
	}
}

func TestMarshalCycle(t *testing.T) {
	head := &chain{Name: "head"}
	head.Next = head

	_, err := Marshal(head)
	var de DepthError
	require.ErrorAs(t, err, &de)
	require.Equal(t, DefaultMaxDepth, de.Limit)
}

func TestMarshalCycleLowCeiling(t *testing.T) {
	head := &chain{Name: "head"}
	head.Next = head

	_, err := Marshal(head, WithMaxDepth(10))
	var de DepthError
	require.ErrorAs(t, err, &de)
	require.Equal(t, 10, de.Limit)
}

func TestMarshalDeepAcyclic(t *testing.T) {
	// A linear chain well below the ceiling terminates and keeps every
	// level.
	head := &chain{Name: "0"}
	cur := head
	for i := 1; i < 40; i++ {
		cur.Next = &chain{Name: "fill"}
		cur = cur.Next
	}

	got, err := Marshal(head)
	require.NoError(t, err)

	depth := 0
	for d := got; d != nil; depth++ {
		v, ok := d.LookupOK("next")
		if !ok || v.IsNull() {
			break
		}
		d = v.Document()
	}
	require.Equal(t, 39, depth)
}

func TestMarshalNullFields(t *testing.T) {
	type holder struct {
		A *string  `doc:"a"`
		B string   `doc:"b"`
		C []string `doc:"c"`
	}

	got, err := Marshal(holder{B: "x"})
	require.NoError(t, err)

	require.Equal(t, []string{"a", "b", "c"}, got.Keys(), "null fields occupy their slot at the same key")
	v, err := got.Lookup("a")
	require.NoError(t, err)
	require.True(t, v.IsNull())
	v, err = got.Lookup("c")
	require.NoError(t, err)
	require.True(t, v.IsNull(), "a nil sequence encodes as null")
}

func TestMarshalIdempotent(t *testing.T) {
	v := struct {
		Name string   `doc:"name"`
		Nums []int    `doc:"nums"`
		Sub  nestedID `doc:"sub"`
	}{Name: "n", Nums: []int{1, 2, 3}, Sub: nestedID{DocID: "id"}}

	d1, err := Marshal(v)
	require.NoError(t, err)
	d2, err := Marshal(v)
	require.NoError(t, err)
	require.True(t, d1.Equal(d2))
}

func TestMarshalFieldOrderIndependentEquality(t *testing.T) {
	type ab struct {
		A int64 `doc:"a"`
		B int64 `doc:"b"`
	}
	type ba struct {
		B int64 `doc:"b"`
		A int64 `doc:"a"`
	}

	d1, err := Marshal(ab{A: 1, B: 2})
	require.NoError(t, err)
	d2, err := Marshal(ba{A: 1, B: 2})
	require.NoError(t, err)

	require.NotEqual(t, d1.Keys(), d2.Keys(), "builder order is deterministic declaration order")
	require.True(t, d1.Equal(d2), "documents with the same pairs are equal regardless of order")
}

func TestMarshalScalars(t *testing.T) {
	when := time.Date(2019, 6, 3, 12, 0, 0, 0, time.UTC)
	v := struct {
		S   string    `doc:"s"`
		B   bool      `doc:"b"`
		I   int32     `doc:"i"`
		U   uint16    `doc:"u"`
		F   float64   `doc:"f"`
		Bin []byte    `doc:"bin"`
		At  time.Time `doc:"at"`
		Ref doc.Ref   `doc:"ref"`
	}{
		S: "x", B: true, I: -7, U: 7, F: 1.5,
		Bin: []byte{0xDE, 0xAD}, At: when, Ref: doc.Ref("users/alice"),
	}

	got, err := Marshal(v)
	require.NoError(t, err)

	want := doc.NewDocument(
		doc.Element{Key: "s", Value: doc.String("x")},
		doc.Element{Key: "b", Value: doc.Boolean(true)},
		doc.Element{Key: "i", Value: doc.Int64(-7)},
		doc.Element{Key: "u", Value: doc.Int64(7)},
		doc.Element{Key: "f", Value: doc.Double(1.5)},
		doc.Element{Key: "bin", Value: doc.Binary([]byte{0xDE, 0xAD})},
		doc.Element{Key: "at", Value: doc.DateTime(when)},
		doc.Element{Key: "ref", Value: doc.Reference("users/alice")},
	)
	if !cmp.Equal(want, got, cmp.Comparer(docComparer)) {
		t.Errorf("documents do not match\ngot:  %s\nwant: %s", got, want)
	}
}

func TestMarshalUintOverflow(t *testing.T) {
	v := struct {
		U uint64 `doc:"u"`
	}{U: 1 << 63}

	_, err := Marshal(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overflows")
}

func TestMarshalEnum(t *testing.T) {
	v := struct {
		P priority `doc:"p"`
	}{P: priority(1)}

	got, err := Marshal(v)
	require.NoError(t, err)
	pv, err := got.Lookup("p")
	require.NoError(t, err)
	require.Equal(t, "high", pv.StringValue())
}

func TestMarshalEnumOutOfRange(t *testing.T) {
	v := struct {
		P priority `doc:"p"`
	}{P: priority(5)}

	_, err := Marshal(v)
	require.IsType(t, InvalidStructureError{}, err)
	assert.Contains(t, err.Error(), "not a variant")
}

func TestMarshalEnumSequence(t *testing.T) {
	v := struct {
		Ps []priority `doc:"ps"`
	}{Ps: []priority{0, 1}}

	got, err := Marshal(v)
	require.NoError(t, err)
	pv, err := got.Lookup("ps")
	require.NoError(t, err)
	require.True(t, doc.NewArray(doc.String("low"), doc.String("high")).Equal(pv.Array()))
}

func TestMarshalSequenceOfSequences(t *testing.T) {
	v := struct {
		M [][]string `doc:"m"`
	}{M: [][]string{{"a"}}}

	_, err := Marshal(v)
	require.IsType(t, InvalidStructureError{}, err)
	assert.Contains(t, err.Error(), "sequence elements must be structured")
}

func TestEncode(t *testing.T) {
	t.Run("explicit descriptor", func(t *testing.T) {
		sd, err := desc.Describe(reflect.TypeOf(nestedID{}))
		require.NoError(t, err)

		got, err := Encode(sd, nestedID{DocID: "doc-id"})
		require.NoError(t, err)
		want := doc.NewDocument(doc.Element{Key: "docId", Value: doc.String("doc-id")})
		require.True(t, want.Equal(got))
	})
	t.Run("nil descriptor", func(t *testing.T) {
		_, err := Encode(nil, nestedID{})
		require.Error(t, err)
	})
	t.Run("nil value", func(t *testing.T) {
		sd, err := desc.Describe(reflect.TypeOf(nestedID{}))
		require.NoError(t, err)
		var p *nestedID
		_, err = Encode(sd, p)
		require.Error(t, err)

		_, err = Marshal(nil)
		require.Error(t, err)
	})
	t.Run("non-struct value", func(t *testing.T) {
		sd, err := desc.Describe(reflect.TypeOf(nestedID{}))
		require.NoError(t, err)
		_, err = Encode(sd, "a string")
		require.Error(t, err)
	})
	t.Run("pointer value", func(t *testing.T) {
		got, err := Marshal(&nestedID{DocID: "doc-id"})
		require.NoError(t, err)
		v, err := got.Lookup("docId")
		require.NoError(t, err)
		require.Equal(t, "doc-id", v.StringValue())
	})
}

func TestEncodeDescriptorMismatch(t *testing.T) {
	// A descriptor that does not match the value's shape must surface as
	// InvalidStructureError from Encode, never as a reflection panic.
	t.Run("more descriptor fields than the value has", func(t *testing.T) {
		sd := desc.NewClass("wide",
			desc.Field{Name: "a", Kind: desc.KindScalar, Index: 0},
			desc.Field{Name: "b", Kind: desc.KindScalar, Index: 1},
			desc.Field{Name: "c", Kind: desc.KindScalar, Index: 2},
		)

		_, err := Encode(sd, nestedID{DocID: "doc-id"})
		require.IsType(t, InvalidStructureError{}, err)
		assert.Contains(t, err.Error(), "out of range")
	})
	t.Run("class field over a scalar value", func(t *testing.T) {
		sd := desc.NewClass("root",
			desc.Field{Name: "n", Kind: desc.KindClass, Desc: desc.NewClass("inner"), Index: 0},
		)

		_, err := Encode(sd, struct{ X int }{X: 1})
		require.IsType(t, InvalidStructureError{}, err)
		assert.Contains(t, err.Error(), "not a struct")
	})
	t.Run("list field over a scalar value", func(t *testing.T) {
		sd := desc.NewClass("root",
			desc.Field{Name: "tags", Kind: desc.KindList, Desc: desc.NewList("tags", nil), Index: 0},
		)

		_, err := Encode(sd, struct{ X int }{X: 1})
		require.IsType(t, InvalidStructureError{}, err)
		assert.Contains(t, err.Error(), "not a sequence")
	})
	t.Run("structured sequence element over scalar elements", func(t *testing.T) {
		inner := desc.NewClass("inner", desc.Field{Name: "x", Kind: desc.KindScalar, Index: 0})
		sd := desc.NewClass("root",
			desc.Field{Name: "items", Kind: desc.KindList, Desc: desc.NewList("items", inner), Index: 0},
		)

		_, err := Encode(sd, struct{ Items []int }{Items: []int{1}})
		require.IsType(t, InvalidStructureError{}, err)
		assert.Contains(t, err.Error(), "not a struct")
	})
}

func BenchmarkMarshal(b *testing.B) {
	b.ReportAllocs()
	v := struct {
		Name string   `doc:"name"`
		Nums []int    `doc:"nums"`
		Sub  nestedID `doc:"sub"`
	}{Name: "n", Nums: []int{1, 2, 3}, Sub: nestedID{DocID: "id"}}

	for i := 0; i < b.N; i++ {
		_, _ = Marshal(v)
	}
}
