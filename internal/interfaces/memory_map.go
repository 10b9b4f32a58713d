// File: internal/interfaces/memory_map.go
package interfaces

import (
	"github.com/deploymenttheory/go-multiboot2/internal/types"
)

// MemoryAreaReader provides information about one memory map entry
type MemoryAreaReader interface {
	// BaseAddress returns the first physical address of the area
	BaseAddress() uint64

	// Length returns the size of the area in bytes
	Length() uint64

	// EndAddress returns the first address past the area
	EndAddress() uint64

	// Type returns the classified area type
	Type() types.MemoryAreaType

	// TypeCode returns the raw entry type as written by the boot loader
	TypeCode() uint32

	// IsAvailable checks if the area is usable RAM
	IsAvailable() bool
}
