package resp

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the wire shape of a Value
type Kind uint8

const (
	KindNull Kind = iota
	KindInteger
	KindSimple
	KindBulk
	KindVerbatim
	KindArray
	KindMap
)

var kindNames = [...]string{
	KindNull:     "null",
	KindInteger:  "integer",
	KindSimple:   "simple",
	KindBulk:     "bulk",
	KindVerbatim: "verbatim",
	KindArray:    "array",
	KindMap:      "map",
}

// String returns the lowercase kind name used in error messages
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Pair is one key/value entry of a map value. Entry order is preserved.
type Pair struct {
	Key   Value
	Value Value
}

// Value is a minimal RESP3 reply value. The zero Value is Null.
//
// Values are immutable once constructed. Bulk and Verbatim payloads are
// held as raw bytes; they are not required to be valid UTF-8.
type Value struct {
	kind    Kind
	integer int64
	bytes   []byte
	format  string
	simple  string
	items   []Value
	pairs   []Pair
}

// Null returns the null value
func Null() Value {
	return Value{kind: KindNull}
}

// Integer returns an integer value
func Integer(n int64) Value {
	return Value{kind: KindInteger, integer: n}
}

// SimpleString returns a simple (status) string value
func SimpleString(s string) Value {
	return Value{kind: KindSimple, simple: s}
}

// BulkString returns a binary (bulk) string value
func BulkString(b []byte) Value {
	return Value{kind: KindBulk, bytes: b}
}

// BulkText returns a binary string value from a Go string
func BulkText(s string) Value {
	return Value{kind: KindBulk, bytes: []byte(s)}
}

// VerbatimString returns a verbatim string value with a three-character
// format prefix such as "txt" or "mkd"
func VerbatimString(format string, b []byte) Value {
	return Value{kind: KindVerbatim, format: format, bytes: b}
}

// Array returns an array value
func Array(items ...Value) Value {
	return Value{kind: KindArray, items: items}
}

// Map returns a map value preserving entry order
func Map(pairs ...Pair) Value {
	return Value{kind: KindMap, pairs: pairs}
}

// Kind returns the wire shape of v
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is the null value
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Integer returns the integer payload. Valid only for KindInteger.
func (v Value) Integer() int64 {
	return v.integer
}

// Bytes returns the binary payload of a Bulk or Verbatim value
func (v Value) Bytes() []byte {
	return v.bytes
}

// Simple returns the payload of a Simple value
func (v Value) Simple() string {
	return v.simple
}

// Format returns the three-character format prefix of a Verbatim value
func (v Value) Format() string {
	return v.format
}

// Items returns the elements of an Array value
func (v Value) Items() []Value {
	return v.items
}

// Pairs returns the entries of a Map value in wire order
func (v Value) Pairs() []Pair {
	return v.pairs
}

// Text returns the textual payload for the three string-bearing kinds
// (bulk, simple, verbatim) and reports whether v has one. Bulk and
// verbatim payloads are returned as raw bytes; callers that need valid
// UTF-8 must check themselves.
func (v Value) Text() ([]byte, bool) {
	switch v.kind {
	case KindBulk, KindVerbatim:
		return v.bytes, true
	case KindSimple:
		return []byte(v.simple), true
	default:
		return nil, false
	}
}

// String renders v for diagnostics
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindInteger:
		return "integer(" + strconv.FormatInt(v.integer, 10) + ")"
	case KindSimple:
		return "simple(" + strconv.Quote(v.simple) + ")"
	case KindBulk:
		return "bulk(" + strconv.Quote(string(v.bytes)) + ")"
	case KindVerbatim:
		return "verbatim(" + v.format + ":" + strconv.Quote(string(v.bytes)) + ")"
	case KindArray:
		var b strings.Builder
		b.WriteString("array[")
		for i, it := range v.items {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(it.String())
		}
		b.WriteByte(']')
		return b.String()
	case KindMap:
		var b strings.Builder
		b.WriteString("map{")
		for i, p := range v.pairs {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s: %s", p.Key.String(), p.Value.String())
		}
		b.WriteByte('}')
		return b.String()
	default:
		return "unknown"
	}
}
