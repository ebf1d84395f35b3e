//go:build !unix

package csrt

// MappedContainer falls back to an ordinary heap-backed Container on
// platforms without unix.Mmap.
type MappedContainer[V any] struct {
	Container[V]
}

// LoadMapped reads path fully into memory, since this platform has no
// mmap path wired in.
func LoadMapped[V any](path string) (*MappedContainer[V], error) {
	c, err := LoadFromDisk[V](path)
	if err != nil {
		return nil, err
	}
	return &MappedContainer[V]{Container: *c}, nil
}

// Close is a no-op fallback: there is no mapping to release.
func (m *MappedContainer[V]) Close() error {
	return nil
}
