package elfsections

import (
	"errors"
	"fmt"

	"github.com/deploymenttheory/go-multiboot2/internal/types"
)

// ErrInvalidSectionType is returned when a section type code is outside every defined value and range.
var ErrInvalidSectionType = errors.New("invalid section type")

// SectionIterator walks the section header table in order. Entry 0 is the
// reserved null section and is never visited; entries of type Unused are skipped.
// Iteration stops at the first entry that cannot be decoded.
type SectionIterator struct {
	reader  *ElfSectionsReader
	index   uint32
	current Section
	err     error
}

// Next advances to the next used section
func (it *SectionIterator) Next() bool {
	if it.err != nil {
		return false
	}

	for it.index < it.reader.num {
		index := it.index
		entry := it.reader.entryAt(index)
		it.index++

		code := entry.typeCode()
		if code == types.SectionTypeCodeUnused {
			continue
		}

		sectionType, ok := types.SectionTypeFromCode(code)
		if !ok {
			it.err = fmt.Errorf("%w: %#x in entry %d", ErrInvalidSectionType, code, index)
			return false
		}

		it.current = Section{
			index:       index,
			entry:       entry,
			sectionType: sectionType,
			stringTable: it.reader.stringTable,
			memory:      it.reader.memory,
		}
		return true
	}

	return false
}

// Section returns the section produced by the last successful call to Next
func (it *SectionIterator) Section() Section {
	return it.current
}

// Err returns the error that stopped iteration, if any
func (it *SectionIterator) Err() error {
	return it.err
}
