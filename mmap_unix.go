//go:build unix

package csrt

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/oarkflow/json"
)

// MappedContainer is a Container whose flat array is backed by an mmap'd
// region rather than a heap slice, so opening a large container costs a
// page-table entry rather than a read-and-copy of the whole file.
//
// Values are still decoded eagerly: V is caller-defined and often too
// irregular to address directly inside a mapped byte region the way the
// flat []uint16 tree can be.
type MappedContainer[V any] struct {
	Container[V]
	data []byte
}

// LoadMapped opens path (previously written by SaveToDisk) and maps its
// flat array into the process's address space read-only. Close must be
// called to release the mapping.
func LoadMapped[V any](path string) (*MappedContainer[V], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var hdr containerHeader
	if err := binary.Read(f, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("csrt: read header: %w", err)
	}
	if hdr.Magic != fileMagic {
		return nil, fmt.Errorf("%w: bad magic", ErrCorruptContainer)
	}
	if hdr.Version != fileVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptContainer, hdr.Version)
	}

	headerLen, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}

	treeBytes := int(hdr.TreeLen) * 2
	pageOffset := headerLen % int64(os.Getpagesize())
	mapStart := headerLen - pageOffset
	mapLen := int(pageOffset) + treeBytes

	data, err := unix.Mmap(int(f.Fd()), mapStart, mapLen, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("csrt: mmap: %w", err)
	}

	treeBuf := data[pageOffset : int(pageOffset)+treeBytes]
	tree := unsafe.Slice((*uint16)(unsafe.Pointer(&treeBuf[0])), hdr.TreeLen)

	if _, err := f.Seek(headerLen+int64(treeBytes), io.SeekStart); err != nil {
		unix.Munmap(data)
		return nil, err
	}
	valuesJSON := make([]byte, hdr.ValueLen)
	if _, err := io.ReadFull(f, valuesJSON); err != nil {
		unix.Munmap(data)
		return nil, fmt.Errorf("csrt: read values: %w", err)
	}

	var values []V
	if err := json.Unmarshal(valuesJSON, &values); err != nil {
		unix.Munmap(data)
		return nil, fmt.Errorf("csrt: decode values: %w", err)
	}

	mc := &MappedContainer[V]{
		Container: Container[V]{tree: tree, values: values},
		data:      data,
	}
	if mc.Checksum() != hdr.Checksum {
		unix.Munmap(data)
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorruptContainer)
	}
	return mc, nil
}

// Close releases the backing mapping. The MappedContainer must not be used
// afterward.
func (m *MappedContainer[V]) Close() error {
	return unix.Munmap(m.data)
}
