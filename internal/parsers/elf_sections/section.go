package elfsections

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/deploymenttheory/go-multiboot2/internal/interfaces"
	"github.com/deploymenttheory/go-multiboot2/internal/types"
)

var (
	// ErrInvalidSectionName is returned when a resolved name is not valid UTF-8
	// or has no terminator within maxSectionNameLength bytes.
	ErrInvalidSectionName = errors.New("invalid section name")
	// ErrNoMemory is returned when a name is resolved without physical memory to read from.
	ErrNoMemory = errors.New("no physical memory to resolve section names")
)

const (
	maxSectionNameLength = 4096
	nameReadChunk        = 64
)

// Section is a decoded view of one section header. Every accessor reads the
// underlying entry on demand.
type Section struct {
	index       uint32
	entry       sectionEntry
	sectionType types.SectionType
	stringTable uint64
	memory      io.ReaderAt
}

// Compile-time check to ensure Section implements SectionReader
var _ interfaces.SectionReader = Section{}

// Index returns the position of the section header in the table
func (s Section) Index() uint32 {
	return s.index
}

// Type returns the decoded section type
func (s Section) Type() types.SectionType {
	return s.sectionType
}

// TypeCode returns the raw sh_type value
func (s Section) TypeCode() uint32 {
	return s.entry.typeCode()
}

// NameIndex returns the offset of the name within the string table
func (s Section) NameIndex() uint32 {
	return s.entry.nameIndex()
}

// StartAddress returns the address the section is loaded at
func (s Section) StartAddress() uint64 {
	return s.entry.address()
}

// EndAddress returns StartAddress() + Size()
func (s Section) EndAddress() uint64 {
	return s.StartAddress() + s.Size()
}

// Size returns the section size in bytes
func (s Section) Size() uint64 {
	return s.entry.size()
}

// Flags returns the section flags with unknown bits dropped
func (s Section) Flags() types.SectionFlags {
	return types.SectionFlagsFromRaw(s.entry.flags())
}

// IsAllocated reports whether the section occupies memory at run time
func (s Section) IsAllocated() bool {
	return s.Flags().Has(types.SectionFlagAllocated)
}

// Name reads the null-terminated name at string table base + name index.
func (s Section) Name() (string, error) {
	if s.memory == nil {
		return "", ErrNoMemory
	}

	addr := s.stringTable + uint64(s.entry.nameIndex())
	var name []byte
	chunk := make([]byte, nameReadChunk)
	for len(name) < maxSectionNameLength {
		n, err := s.memory.ReadAt(chunk, int64(addr)+int64(len(name)))
		if i := bytes.IndexByte(chunk[:n], 0); i >= 0 {
			name = append(name, chunk[:i]...)
			return decodeName(name, addr)
		}
		name = append(name, chunk[:n]...)
		if err != nil {
			return "", fmt.Errorf("read section name at %#x: %w", addr, err)
		}
	}
	return "", fmt.Errorf("%w: no terminator within %d bytes at %#x", ErrInvalidSectionName, maxSectionNameLength, addr)
}

func decodeName(name []byte, addr uint64) (string, error) {
	if !utf8.Valid(name) {
		return "", fmt.Errorf("%w: not UTF-8 at %#x", ErrInvalidSectionName, addr)
	}
	return string(name), nil
}
