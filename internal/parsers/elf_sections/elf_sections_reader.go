package elfsections

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/deploymenttheory/go-multiboot2/internal/parsers/tags"
	"github.com/deploymenttheory/go-multiboot2/internal/types"
)

var (
	// ErrTruncatedTable is returned when num * entry_size does not fit in the tag.
	ErrTruncatedTable = errors.New("section header table extends past end of tag")
	// ErrInvalidStringTableIndex is returned when shndx does not name an entry of the table.
	ErrInvalidStringTableIndex = errors.New("string table index out of range")
)

// ElfSectionsReader reads the ELF sections tag. The entry width is resolved
// once here and reused for the string table entry and every section.
type ElfSectionsReader struct {
	entries     []byte
	num         uint32
	shndx       uint32
	layout      *entryLayout
	stringTable uint64
	memory      io.ReaderAt
}

// NewElfSectionsReader creates a reader over an ELF sections tag. Section names
// are resolved by reading memory, addressed by physical address.
func NewElfSectionsReader(tag tags.Tag, memory io.ReaderAt) (*ElfSectionsReader, error) {
	if tag.Type() != types.TagTypeElfSections {
		return nil, fmt.Errorf("tag type %d is not an ELF sections tag", tag.Type())
	}

	payload := tag.Payload()
	if len(payload) < types.ElfSectionsFirstEntryOffset {
		return nil, fmt.Errorf("ELF sections tag too small: %d bytes", tag.Size())
	}

	num := binary.LittleEndian.Uint32(payload[types.ElfSectionsNumOffset:])
	entrySize := binary.LittleEndian.Uint32(payload[types.ElfSectionsEntSizeOffset:])
	shndx := binary.LittleEndian.Uint32(payload[types.ElfSectionsShndxOffset:])

	layout, err := layoutFor(entrySize)
	if err != nil {
		return nil, err
	}

	entries := payload[types.ElfSectionsFirstEntryOffset:]
	tableSize := uint64(num) * uint64(entrySize)
	if tableSize > uint64(len(entries)) {
		return nil, fmt.Errorf("%w: %d entries of %d bytes, %d bytes available", ErrTruncatedTable, num, entrySize, len(entries))
	}

	r := &ElfSectionsReader{
		entries: entries[:tableSize],
		num:     num,
		shndx:   shndx,
		layout:  layout,
		memory:  memory,
	}

	if num > 0 {
		if shndx >= num {
			return nil, fmt.Errorf("%w: %d of %d entries", ErrInvalidStringTableIndex, shndx, num)
		}
		r.stringTable = r.entryAt(shndx).address()
	}

	return r, nil
}

func (r *ElfSectionsReader) entryAt(index uint32) sectionEntry {
	start := uint64(index) * uint64(r.layout.size)
	return sectionEntry{
		raw:    r.entries[start : start+uint64(r.layout.size)],
		layout: r.layout,
	}
}

// Count returns the number of section headers in the table, including unused ones
func (r *ElfSectionsReader) Count() uint32 {
	return r.num
}

// EntrySize returns the size of one section header
func (r *ElfSectionsReader) EntrySize() uint32 {
	return r.layout.size
}

// Is64Bit reports whether the table uses the ELF64 layout
func (r *ElfSectionsReader) Is64Bit() bool {
	return r.layout.wide
}

// StringTableIndex returns the index of the section header string table
func (r *ElfSectionsReader) StringTableIndex() uint32 {
	return r.shndx
}

// StringTableAddress returns the address names are resolved against
func (r *ElfSectionsReader) StringTableAddress() uint64 {
	return r.stringTable
}

// Sections returns a fresh iterator over the used sections
func (r *ElfSectionsReader) Sections() *SectionIterator {
	return &SectionIterator{reader: r, index: 1}
}
