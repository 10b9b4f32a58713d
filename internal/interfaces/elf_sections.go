// File: internal/interfaces/elf_sections.go
package interfaces

import (
	"github.com/deploymenttheory/go-multiboot2/internal/types"
)

// SectionReader provides information about one ELF section header
type SectionReader interface {
	// Type returns the decoded section type
	Type() types.SectionType

	// TypeCode returns the raw sh_type value
	TypeCode() uint32

	// Name resolves the section name through the section header string table
	Name() (string, error)

	// StartAddress returns the address the section is loaded at
	StartAddress() uint64

	// EndAddress returns the first address past the section
	EndAddress() uint64

	// Size returns the section size in bytes
	Size() uint64

	// Flags returns the known section flags
	Flags() types.SectionFlags
}
