// File: internal/interfaces/boot_information.go
package interfaces

import (
	"github.com/deploymenttheory/go-multiboot2/internal/types"
)

// TagReader provides access to one tag of the boot information
type TagReader interface {
	// Type returns the tag type
	Type() types.TagType

	// Size returns the declared tag size including the 8-byte header
	Size() uint32

	// Offset returns the tag position relative to the start of the boot information
	Offset() uint64

	// Payload returns the bytes following the tag header
	Payload() []byte
}

// BasicMemoryInfoReader provides the amounts of lower and upper memory
type BasicMemoryInfoReader interface {
	// MemLower returns the amount of lower memory in KiB
	MemLower() uint32

	// MemUpper returns the amount of upper memory in KiB
	MemUpper() uint32
}
