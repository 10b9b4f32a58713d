package types

// Memory Map
// The memory map tag describes the physical memory layout as a table of
// fixed-size entries. The entry size is given by the tag so that the table can
// grow in later versions of the format.

// MemoryMapTagT is the fixed part of the memory map tag.
// Reference: "Memory map" tag
type MemoryMapTagT struct {
	Tag TagHeaderT
	// Size of one entry. Always a multiple of 8.
	EntrySize uint32
	// Version of the entry format. Currently 0.
	EntryVersion uint32
}

// MemoryMapTagHeaderSize is the size of MemoryMapTagT, i.e. the offset of the first entry.
const MemoryMapTagHeaderSize = 16

// MemoryMapEntryT is one region of physical memory.
// Reference: "Memory map" tag
type MemoryMapEntryT struct {
	// Starting physical address.
	BaseAddr uint64
	// Size of the region in bytes.
	Length uint64
	// Kind of region, see MemoryAreaType.
	Type uint32
	// Set to 0 by the boot loader and ignored by the OS image.
	Reserved uint32
}

// MemoryMapEntrySize is the minimum size of one memory map entry.
const MemoryMapEntrySize = 24

// Offsets of MemoryMapEntryT fields within an entry.
const (
	MemoryMapEntryBaseAddrOffset = 0
	MemoryMapEntryLengthOffset   = 8
	MemoryMapEntryTypeOffset     = 16
)

// MemoryAreaType classifies a memory map entry.
type MemoryAreaType uint32

const (
	// MemoryAreaAvailable is RAM usable by the OS image.
	MemoryAreaAvailable MemoryAreaType = 1
	// MemoryAreaAvailableWithACPI is usable memory holding ACPI information.
	MemoryAreaAvailableWithACPI MemoryAreaType = 3
	// MemoryAreaReserved covers every other type code.
	MemoryAreaReserved MemoryAreaType = 4
)

// MemoryAreaTypeFromCode maps a raw entry type to its MemoryAreaType.
func MemoryAreaTypeFromCode(code uint32) MemoryAreaType {
	switch code {
	case uint32(MemoryAreaAvailable):
		return MemoryAreaAvailable
	case uint32(MemoryAreaAvailableWithACPI):
		return MemoryAreaAvailableWithACPI
	default:
		return MemoryAreaReserved
	}
}

// String returns a readable area type name.
func (t MemoryAreaType) String() string {
	switch t {
	case MemoryAreaAvailable:
		return "Available"
	case MemoryAreaAvailableWithACPI:
		return "AvailableWithACPI"
	default:
		return "Reserved"
	}
}
