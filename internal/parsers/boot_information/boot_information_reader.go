// File: internal/parsers/boot_information/boot_information_reader.go
package bootinformation

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/deploymenttheory/go-multiboot2/internal/memory"
	basicmemory "github.com/deploymenttheory/go-multiboot2/internal/parsers/basic_memory"
	elfsections "github.com/deploymenttheory/go-multiboot2/internal/parsers/elf_sections"
	memorymap "github.com/deploymenttheory/go-multiboot2/internal/parsers/memory_map"
	"github.com/deploymenttheory/go-multiboot2/internal/parsers/tags"
	"github.com/deploymenttheory/go-multiboot2/internal/types"
)

var (
	// ErrTooSmall is returned when the data cannot hold the fixed header.
	ErrTooSmall = errors.New("boot information too small")
	// ErrInvalidTotalSize is returned when total_size is smaller than the header or larger than the data.
	ErrInvalidTotalSize = errors.New("invalid boot information total size")
)

// BootInformation is the root view of a multiboot2 boot information blob.
// It holds only the blob and its physical start address; every accessor
// reads the blob on demand.
type BootInformation struct {
	data         []byte
	startAddress uint64
	memory       io.ReaderAt
}

// Option configures Load.
type Option func(*BootInformation)

// WithStartAddress sets the physical address the blob was found at.
func WithStartAddress(addr uint64) Option {
	return func(b *BootInformation) {
		b.startAddress = addr
	}
}

// WithMemory sets the physical memory used to resolve ELF section names.
// Without it only the blob itself, mapped at its start address, is readable.
func WithMemory(mem io.ReaderAt) Option {
	return func(b *BootInformation) {
		b.memory = mem
	}
}

// Load creates the root view over data. The view is bounded to the total_size
// declared in the header; the caller must keep data unchanged while any view
// derived from it is in use.
func Load(data []byte, opts ...Option) (*BootInformation, error) {
	if len(data) < types.BootInformationHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooSmall, len(data))
	}

	totalSize := binary.LittleEndian.Uint32(data[0:4])
	if totalSize < types.BootInformationHeaderSize || uint64(totalSize) > uint64(len(data)) {
		return nil, fmt.Errorf("%w: header declares %d bytes, %d available", ErrInvalidTotalSize, totalSize, len(data))
	}

	b := &BootInformation{data: data[:totalSize]}
	for _, opt := range opts {
		opt(b)
	}
	if b.memory == nil {
		b.memory = memory.Region{Base: b.startAddress, Data: b.data}
	}
	return b, nil
}

// StartAddress returns the physical address of the blob
func (b *BootInformation) StartAddress() uint64 {
	return b.startAddress
}

// TotalSize returns the total_size field of the header
func (b *BootInformation) TotalSize() uint32 {
	return binary.LittleEndian.Uint32(b.data[0:4])
}

// EndAddress returns StartAddress() + TotalSize()
func (b *BootInformation) EndAddress() uint64 {
	return b.startAddress + uint64(b.TotalSize())
}

// Bytes returns the blob bounded to its total size
func (b *BootInformation) Bytes() []byte {
	return b.data
}

// Memory returns the physical memory used for name resolution
func (b *BootInformation) Memory() io.ReaderAt {
	return b.memory
}

// Tags returns a fresh iterator over the tag list
func (b *BootInformation) Tags() *tags.Iterator {
	return tags.NewIterator(b.data)
}

// FindTag returns the first tag of the given type. A missing tag is reported
// with ok == false and a nil error.
func (b *BootInformation) FindTag(tagType types.TagType) (tags.Tag, bool, error) {
	return tags.Find(b.data, tagType)
}

// BasicMemoryInfo returns the basic memory information tag, if present
func (b *BootInformation) BasicMemoryInfo() (*basicmemory.BasicMemoryInfoReader, bool, error) {
	tag, ok, err := b.FindTag(types.TagTypeBasicMemoryInfo)
	if err != nil || !ok {
		return nil, false, err
	}
	reader, err := basicmemory.NewBasicMemoryInfoReader(tag)
	if err != nil {
		return nil, false, err
	}
	return reader, true, nil
}

// MemoryMap returns the memory map tag, if present
func (b *BootInformation) MemoryMap() (*memorymap.MemoryMapReader, bool, error) {
	tag, ok, err := b.FindTag(types.TagTypeMemoryMap)
	if err != nil || !ok {
		return nil, false, err
	}
	reader, err := memorymap.NewMemoryMapReader(tag)
	if err != nil {
		return nil, false, err
	}
	return reader, true, nil
}

// ElfSections returns the ELF sections tag, if present
func (b *BootInformation) ElfSections() (*elfsections.ElfSectionsReader, bool, error) {
	tag, ok, err := b.FindTag(types.TagTypeElfSections)
	if err != nil || !ok {
		return nil, false, err
	}
	reader, err := elfsections.NewElfSectionsReader(tag, b.memory)
	if err != nil {
		return nil, false, err
	}
	return reader, true, nil
}
