package memorymap

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/deploymenttheory/go-multiboot2/internal/parsers/tags"
	"github.com/deploymenttheory/go-multiboot2/internal/types"
)

// ErrInvalidEntrySize is returned when the declared entry size cannot hold a memory map entry.
var ErrInvalidEntrySize = errors.New("invalid memory map entry size")

// MemoryMapReader reads the memory map tag.
// The tag gives its total size rather than an entry count, so iteration is
// bounded by the address of the last whole entry.
type MemoryMapReader struct {
	data         []byte
	entrySize    uint32
	entryVersion uint32
}

// NewMemoryMapReader creates a reader over a memory map tag
func NewMemoryMapReader(tag tags.Tag) (*MemoryMapReader, error) {
	if tag.Type() != types.TagTypeMemoryMap {
		return nil, fmt.Errorf("tag type %d is not a memory map tag", tag.Type())
	}

	data := tag.Bytes()
	if len(data) < types.MemoryMapTagHeaderSize {
		return nil, fmt.Errorf("memory map tag too small: %d bytes", len(data))
	}

	entrySize := binary.LittleEndian.Uint32(data[8:12])
	if entrySize < types.MemoryMapEntrySize {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrInvalidEntrySize, entrySize, types.MemoryMapEntrySize)
	}

	return &MemoryMapReader{
		data:         data,
		entrySize:    entrySize,
		entryVersion: binary.LittleEndian.Uint32(data[12:16]),
	}, nil
}

// EntrySize returns the size of one entry as declared by the boot loader
func (r *MemoryMapReader) EntrySize() uint32 {
	return r.entrySize
}

// EntryVersion returns the entry format version
func (r *MemoryMapReader) EntryVersion() uint32 {
	return r.entryVersion
}

// EntryCount returns the number of whole entries in the tag, of every type
func (r *MemoryMapReader) EntryCount() int {
	return (len(r.data) - types.MemoryMapTagHeaderSize) / int(r.entrySize)
}

// Entries returns a fresh iterator over every entry, available or not
func (r *MemoryMapReader) Entries() *EntryIterator {
	return newEntryIterator(r.data, r.entrySize)
}

// MemoryAreas returns a fresh iterator over the available entries only
func (r *MemoryMapReader) MemoryAreas() *AreaIterator {
	return &AreaIterator{entries: r.Entries()}
}
