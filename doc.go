// Package fixedmem groups zero-copy helpers for fixed and length-bounded
// memory.
//
//   - pkg/arrayext splits and joins fixed-size arrays.
//   - pkg/slicen views a slice as a head of known length plus a tail.
//   - pkg/frame is a length-prefixed frame codec built on both.
//
// cmd/framecat packs and inspects frame files.
package fixedmem
