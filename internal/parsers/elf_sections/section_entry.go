package elfsections

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/deploymenttheory/go-multiboot2/internal/types"
)

// ErrUnsupportedEntrySize is returned when a section header table uses an
// entry size other than the ELF32 or ELF64 one.
var ErrUnsupportedEntrySize = errors.New("unsupported section header entry size")

// entryLayout describes one of the two section header widths. Only layout32
// and layout64 exist; the layout is chosen once per table from its entry size
// and shared by every entry read from that table, the string table entry included.
type entryLayout struct {
	size        uint32
	wide        bool
	flagsOffset int
	addrOffset  int
	sizeOffset  int
}

var (
	layout32 = &entryLayout{
		size:        types.ElfSection32Size,
		flagsOffset: types.ElfSection32FlagsOffset,
		addrOffset:  types.ElfSection32AddrOffset,
		sizeOffset:  types.ElfSection32SizeOffset,
	}
	layout64 = &entryLayout{
		size:        types.ElfSection64Size,
		wide:        true,
		flagsOffset: types.ElfSection64FlagsOffset,
		addrOffset:  types.ElfSection64AddrOffset,
		sizeOffset:  types.ElfSection64SizeOffset,
	}
)

// layoutFor selects the layout matching a declared entry size.
func layoutFor(entrySize uint32) (*entryLayout, error) {
	switch entrySize {
	case types.ElfSection32Size:
		return layout32, nil
	case types.ElfSection64Size:
		return layout64, nil
	default:
		return nil, fmt.Errorf("%w: %d bytes, want %d or %d", ErrUnsupportedEntrySize, entrySize, types.ElfSection32Size, types.ElfSection64Size)
	}
}

// word reads an address-sized field and widens it to 64 bits.
func (l *entryLayout) word(raw []byte, offset int) uint64 {
	if l.wide {
		return binary.LittleEndian.Uint64(raw[offset:])
	}
	return uint64(binary.LittleEndian.Uint32(raw[offset:]))
}

// sectionEntry is one raw section header together with its layout.
type sectionEntry struct {
	raw    []byte
	layout *entryLayout
}

func (e sectionEntry) nameIndex() uint32 {
	return binary.LittleEndian.Uint32(e.raw[types.ElfSection32NameOffset:])
}

func (e sectionEntry) typeCode() uint32 {
	return binary.LittleEndian.Uint32(e.raw[types.ElfSection32TypeOffset:])
}

func (e sectionEntry) flags() uint64 {
	return e.layout.word(e.raw, e.layout.flagsOffset)
}

func (e sectionEntry) address() uint64 {
	return e.layout.word(e.raw, e.layout.addrOffset)
}

func (e sectionEntry) size() uint64 {
	return e.layout.word(e.raw, e.layout.sizeOffset)
}
