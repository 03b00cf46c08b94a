package plan

import (
	"reflect"

	"github.com/wippyai/redis-codec/blob"
)

type CompiledType struct {
	GoType     reflect.Type
	Elem       *CompiledType
	Fields     []Field
	Variants   []Variant
	TokenIndex map[string]int
	Codec      blob.Codec
	Shape      Shape
	Leaf       Leaf
	TextPtr    bool
	BinaryPtr  bool
}

type Field struct {
	Type     *CompiledType
	Name     string
	WireName string
	Index    []int
}

type Variant struct {
	Name  string
	Token string
}

// Arity returns the element count of a positional record
func (ct *CompiledType) Arity() int {
	return len(ct.Fields)
}

// WireTokens returns the enum tokens in declaration order
func (ct *CompiledType) WireTokens() []string {
	out := make([]string, len(ct.Variants))
	for i, v := range ct.Variants {
		out[i] = v.Token
	}
	return out
}

// Absorbs reports whether the shape tolerates a missing wire entry by
// decoding from the null value: pointers become nil, blobs and empty
// records keep their zero value. Pointer chains absorb through their
// element.
func (ct *CompiledType) Absorbs() bool {
	switch ct.Shape {
	case ShapePointer, ShapeBlob, ShapeEmpty:
		return true
	default:
		return false
	}
}

// Unwrap strips pointer wrappers, returning the first non-pointer plan
func (ct *CompiledType) Unwrap() *CompiledType {
	for ct.Shape == ShapePointer {
		ct = ct.Elem
	}
	return ct
}
