// Package resp models the subset of the RESP3 reply surface the codec
// consumes: null, integer, simple string, bulk (binary) string, verbatim
// string, array, and ordered map.
//
// Value is a closed immutable union constructed through the package
// functions (Null, Integer, SimpleString, BulkString, VerbatimString,
// Array, Map). The decoder dispatches on Value.Kind and never mutates a
// value once built.
//
// FromReply adapts the untyped replies returned by client libraries
// (string, int64, []any, map[string]string, map[any]any) into Values so
// a reply can be fed straight into the decoder:
//
//	reply, _ := rdb.HGetAll(ctx, key).Result()
//	val, err := resp.FromReply(reply)
package resp
