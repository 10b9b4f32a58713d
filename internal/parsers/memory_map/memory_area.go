package memorymap

import (
	"encoding/binary"

	"github.com/deploymenttheory/go-multiboot2/internal/interfaces"
	"github.com/deploymenttheory/go-multiboot2/internal/types"
)

// MemoryArea is a borrowed view of one memory map entry
type MemoryArea struct {
	entry []byte
}

// Compile-time check to ensure MemoryArea implements MemoryAreaReader
var _ interfaces.MemoryAreaReader = MemoryArea{}

// BaseAddress returns the first physical address of the area
func (a MemoryArea) BaseAddress() uint64 {
	return binary.LittleEndian.Uint64(a.entry[types.MemoryMapEntryBaseAddrOffset:])
}

// Length returns the size of the area in bytes
func (a MemoryArea) Length() uint64 {
	return binary.LittleEndian.Uint64(a.entry[types.MemoryMapEntryLengthOffset:])
}

// EndAddress returns BaseAddress() + Length()
func (a MemoryArea) EndAddress() uint64 {
	return a.BaseAddress() + a.Length()
}

// TypeCode returns the raw entry type
func (a MemoryArea) TypeCode() uint32 {
	return binary.LittleEndian.Uint32(a.entry[types.MemoryMapEntryTypeOffset:])
}

// Type returns the classified entry type
func (a MemoryArea) Type() types.MemoryAreaType {
	return types.MemoryAreaTypeFromCode(a.TypeCode())
}

// IsAvailable reports whether the area is usable RAM (type 1)
func (a MemoryArea) IsAvailable() bool {
	return a.Type() == types.MemoryAreaAvailable
}
