// Package plan defines the compiled type structures for fast transcoding.
//
// CompiledType holds the precomputed wire shape, resolved wire names,
// reflect index paths, and enum token tables for a Go type. By compiling
// type metadata once, the transcoder keeps naming policy and shape
// dispatch out of the encode/decode hot paths.
//
// # Key Types
//
//   - CompiledType: Cached type metadata with resolved wire names
//   - Shape: Wire shape discriminator (leaf, struct, tuple, enum, ...)
//   - Leaf: Scalar conversion discriminator
//
// This package is internal to the transcoder.
package plan
