// Package rediscodec maps Go types onto the Redis wire model.
//
// Struct values encode to flat field/value argument sequences suitable for
// HSET and decode from HGETALL-style replies, positional structs encode to
// bare argument arrays, and unit-variant enum types encode to single string
// tokens. Per-type plans are compiled once through reflection and cached,
// so naming policy and shape selection never run per call.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	rediscodec/          Root package with the ArgWriter sink interface
//	├── transcoder/      Plan compilation and encoding/decoding between Go and the wire
//	├── casing/          Case rules mapping declared names to wire names
//	├── resp/            Minimal RESP3 reply value union consumed by the decoder
//	├── blob/            Opaque-field codecs (json, msgpack, yaml)
//	├── goredis/         go-redis client integration and typed hash repository
//	├── errors/          Structured error types for debugging
//	└── cmd/wirecheck/   Wire-name preview and collision checking tool
//
// # Quick Start
//
// Declare a type, register its naming policy, and round-trip it:
//
//	type User struct {
//	    ID        int64
//	    FirstName string
//	    LastName  string
//	    Role      Role   `redis:"role"`
//	    Profile   Prefs  `redis:"profile,json"`
//	    Nickname  *string
//	}
//
//	transcoder.MustRegister[User](transcoder.RenameAll(casing.RuleSnake))
//
//	var args rediscodec.ArgSlice
//	if err := transcoder.Encode(user, &args); err != nil {
//	    log.Fatal(err)
//	}
//	// args: ["id", "42", "first_name", "Ada", ...]
//
//	val, _ := resp.FromReply(reply) // e.g. HGETALL result
//	var back User
//	if err := transcoder.Decode(val, &back); err != nil {
//	    log.Fatal(err)
//	}
//
// # Shapes
//
// The compiler commits every type to exactly one wire shape:
//
//	Go structure                  Wire shape
//	───────────────────────────────────────────────
//	struct with named fields      field/value pairs
//	positional struct, [N]T       bare argument array
//	zero-field struct             single empty argument
//	registered enum type          single token argument
//
// Nested non-blob struct fields flatten to dotted keys (profile.city);
// decoding regroups dotted keys before field matching. Wire names must
// not contain '.' themselves.
//
// # Enums
//
// Go cannot enumerate the constants of a named integer type, so enum
// types register their variant names explicitly, in declaration order:
//
//	type Color uint8
//
//	const (
//	    Red Color = iota
//	    Green
//	    Blue
//	)
//
//	transcoder.MustRegisterEnum[Color]("Red", "Green", "Blue")
//
// Decoding accepts bulk, simple, and verbatim strings; payloads must be
// valid UTF-8. A token outside the variant set fails with an error that
// lists every valid token.
//
// # Thread Safety
//
// Compiled plans are immutable and safe for concurrent use. Registration
// should happen before first use, typically from init or main.
//
// # Error Handling
//
// Errors use the structured types from the errors package:
//
//	[decode] arity_mismatch at point: expected 3 elements, got 2
//	[decode] field_failure at user.role: field "role" failed (caused by:
//	[decode] unknown_variant: unknown variant "Purple" (expected one of: Red, Green, Blue))
package rediscodec
