package csrt

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Container is a built, read-only Contiguous Splayed Radix Tree. The zero
// value is not usable; obtain one from Construct, Decode, LoadFromDisk, or
// LoadMapped.
//
// A *Container is safe for concurrent use by multiple goroutines: nothing
// about Get or Contains mutates state, and no lock is held or needed.
type Container[V any] struct {
	tree   []uint16
	values []V
}

// Len reports the number of key/value pairs stored.
func (c *Container[V]) Len() int {
	return len(c.values)
}

// Get returns the value stored for key, or ErrKeyNotFound if no pair for
// key was present at construction.
func (c *Container[V]) Get(key Key) (V, error) {
	idx, ok := c.find(key)
	if !ok {
		var zero V
		return zero, fmt.Errorf("%w: %q", ErrKeyNotFound, key.String())
	}
	return c.values[idx], nil
}

// GetString is Get for a Go string key.
func (c *Container[V]) GetString(s string) (V, error) {
	return c.Get(StringKey(s))
}

// Contains reports whether key was present at construction.
func (c *Container[V]) Contains(key Key) bool {
	_, ok := c.find(key)
	return ok
}

// ContainsString is Contains for a Go string key.
func (c *Container[V]) ContainsString(s string) bool {
	return c.Contains(StringKey(s))
}

// Checksum returns an xxhash64 digest of the container's flat array, useful
// for verifying that a serialized container round-tripped intact.
func (c *Container[V]) Checksum() uint64 {
	buf := make([]byte, len(c.tree)*2)
	for i, u := range c.tree {
		binary.LittleEndian.PutUint16(buf[i*2:], u)
	}
	return xxhash.Sum64(buf)
}

// TreeSize returns the number of uint16 code units occupied by the
// serialized topology, excluding the value slice.
func (c *Container[V]) TreeSize() int {
	return len(c.tree)
}
