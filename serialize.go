package csrt

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/oarkflow/json"
)

// magic identifies a serialized container file; version lets future
// encodings be rejected cleanly instead of silently misparsed.
const (
	fileMagic   uint32 = 0x43535254 // "CSRT"
	fileVersion uint16 = 1
)

// containerHeader precedes the flat array and the JSON-encoded value slice
// in a serialized container. Checksum covers the flat array only: values
// are caller-defined and arbitrarily large, and the tree is what lookup
// actually trusts.
type containerHeader struct {
	Magic    uint32
	Version  uint16
	TreeLen  uint32
	ValueLen uint32
	Checksum uint64
}

// SaveToDisk writes the container to path as a header, the raw flat array,
// and the value slice JSON-encoded.
func (c *Container[V]) SaveToDisk(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := c.Encode(w); err != nil {
		return err
	}
	return w.Flush()
}

// Encode writes the container's on-disk representation to w.
func (c *Container[V]) Encode(w io.Writer) error {
	valuesJSON, err := json.Marshal(c.values)
	if err != nil {
		return fmt.Errorf("csrt: encode values: %w", err)
	}

	hdr := containerHeader{
		Magic:    fileMagic,
		Version:  fileVersion,
		TreeLen:  uint32(len(c.tree)),
		ValueLen: uint32(len(valuesJSON)),
		Checksum: c.Checksum(),
	}
	if err := binary.Write(w, binary.LittleEndian, hdr); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, c.tree); err != nil {
		return err
	}
	if _, err := w.Write(valuesJSON); err != nil {
		return err
	}
	return nil
}

// LoadFromDisk reads a container previously written by SaveToDisk.
func LoadFromDisk[V any](path string) (*Container[V], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode[V](bufio.NewReader(f))
}

// Decode reads a container's on-disk representation from r, verifying the
// flat array's checksum before trusting it.
func Decode[V any](r io.Reader) (*Container[V], error) {
	var hdr containerHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("csrt: read header: %w", err)
	}
	if hdr.Magic != fileMagic {
		return nil, fmt.Errorf("%w: bad magic", ErrCorruptContainer)
	}
	if hdr.Version != fileVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptContainer, hdr.Version)
	}

	tree := make([]uint16, hdr.TreeLen)
	if err := binary.Read(r, binary.LittleEndian, tree); err != nil {
		return nil, fmt.Errorf("csrt: read tree: %w", err)
	}

	valuesJSON := make([]byte, hdr.ValueLen)
	if _, err := io.ReadFull(r, valuesJSON); err != nil {
		return nil, fmt.Errorf("csrt: read values: %w", err)
	}

	c := &Container[V]{tree: tree}
	if c.Checksum() != hdr.Checksum {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorruptContainer)
	}

	var values []V
	if err := json.Unmarshal(valuesJSON, &values); err != nil {
		return nil, fmt.Errorf("csrt: decode values: %w", err)
	}
	c.values = values
	return c, nil
}
