// Package csrt implements the Contiguous Splayed Radix Tree: a read-only
// associative container that maps non-empty string keys to values of an
// arbitrary type V.
//
// The entire trie topology — node prefixes, radix child counts, binary
// search sibling offsets, and value indices — is serialized into one flat
// []uint16 array, navigated purely by index arithmetic. Values live in a
// parallel slice indexed by a small integer written into the flat array.
// Lookup runs in O(len(key)) time independent of the number of stored
// keys, performs no allocation, and touches only a handful of adjacent
// code units per step.
//
// The container is built once from a sorted, duplicate-free sequence of
// pairs via Construct, and is immutable and safe for concurrent read
// access for the remainder of its lifetime.
package csrt
