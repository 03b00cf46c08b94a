// Package transcoder converts Go types to and from Redis command
// arguments and reply values.
//
// This package handles bidirectional conversion between Go structs and
// the flat argument lists Redis commands consume, and between RESP reply
// values and Go structs.
//
// # Wire Model Overview
//
// Every Go type commits to exactly one wire shape at compile time:
//
//	┌──────────────────────────────────────────────────────────┐
//	│ Go Value ←→ [Transcoder] ←→ Command Args / RESP Replies │
//	└──────────────────────────────────────────────────────────┘
//
// # Shapes
//
//	Go type                 Shape    Encodes to
//	──────────────────────────────────────────────────────────
//	struct, named fields    struct   name/value argument pairs
//	struct, Positional()    tuple    one argument per field
//	[N]T array              tuple    one argument per element
//	struct{} (no fields)    empty    one empty argument; no pair as a field
//	registered integer      enum     its variant's wire token
//	bool/int/float/string   leaf     a single argument
//	[]byte                  leaf     a single raw argument
//	TextMarshaler           leaf     its text form
//	*T                      pointer  absent when nil, else T
//	tagged with codec       blob     one serialized argument
//
// # Key Types
//
//	Compiler      - Pre-compiles conversion plans per Go type
//	Encoder       - Renders Go values as wire arguments
//	Decoder       - Populates Go values from RESP replies
//
// # Encoding Flow
//
//  1. Register[T](options) → directives recorded, plan compiled
//  2. Encode(value, w) or Marshal(value) → flat argument list
//
// # Decoding Flow
//
//  1. resp.FromReply(clientReply) → resp.Value
//  2. Decode(value, &dest) → populated struct
//
// Unmarshal combines both steps for raw client replies.
//
// # Field Tags
//
// Struct fields take a `redis` tag with an optional name override and
// an optional blob codec:
//
//	Field int      `redis:"custom_name"`
//	Skip  int      `redis:"-"`
//	Blob  []string `redis:",json"`
//
// Name overrides win over any RenameAll rule unconditionally.
//
// # Nested Records
//
// Named records nest by dotted flattening: a field "prefs" of a named
// record type with field "theme" encodes as one pair under the key
// "prefs.theme". Decoding accepts both the dotted flat form and a
// genuinely nested map reply.
//
// # Plan Compilation
//
// The Compiler pre-computes per type:
//
//   - The committed wire shape
//   - Resolved wire names after case rules and overrides
//   - Field traversal indices, embedded fields inlined
//   - Variant token tables for enums
//
// Pre-compilation moves all configuration errors to registration time
// and avoids per-operation reflection lookups.
//
// # Thread Safety
//
// Compiler, Encoder and Decoder are safe for concurrent use. Plans are
// immutable once built; register types before first use.
//
// # Error Handling
//
// Errors use the structured types from the errors package:
//
//	[decode] field_missing at user: required field "name" not found
//	[decode] arity_mismatch at point: expected 2 elements, got 3
//	[compile] duplicate_mapping: wire name "id" claimed by both ID and Id
//
// # Usage Tips
//
//   - Register enum and positional types during package init
//   - Reuse the default compiler unless isolation is needed
//   - Blob fields keep evolving schemas out of the key namespace
package transcoder
