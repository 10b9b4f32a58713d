// Package types holds the raw layouts and constants of the multiboot2 boot information format.
// This package is based on the Multiboot2 Specification, version 2.0.
package types

// Boot Information Format
// The boot information is a contiguous, 8-byte aligned structure placed in memory by the
// boot loader. It starts with a fixed header followed by a list of tags.

// BootInformationHeaderT is the fixed part at the start of the boot information.
// Reference: "Basic tags structure"
type BootInformationHeaderT struct {
	// The total size of the boot information, including this header and the end tag.
	TotalSize uint32
	// Always zero. Must be ignored by the OS image.
	Reserved uint32
}

// BootInformationHeaderSize is the size in bytes of BootInformationHeaderT.
const BootInformationHeaderSize = 8

// TagHeaderT is the common header of every tag.
// Reference: "Basic tags structure"
type TagHeaderT struct {
	// Identifies the layout of the rest of the tag.
	Type uint32
	// Size of the tag including this header but not including padding.
	Size uint32
}

// TagHeaderSize is the size in bytes of TagHeaderT.
const TagHeaderSize = 8

// TagAlignment is the boundary every tag starts on.
// Reference: "Basic tags structure"
const TagAlignment = 8

// TagType identifies the kind of a tag.
type TagType uint32

// Tag types decoded by this module. Other types are walked over but never decoded.
// Reference: "Boot information format"
const (
	// TagTypeEnd terminates the tag list. Together with size 8 it forms the sentinel.
	TagTypeEnd TagType = 0
	// TagTypeBasicMemoryInfo carries mem_lower and mem_upper.
	TagTypeBasicMemoryInfo TagType = 4
	// TagTypeMemoryMap carries the physical memory map.
	TagTypeMemoryMap TagType = 6
	// TagTypeElfSections carries the section header table of the booted image.
	TagTypeElfSections TagType = 9
)

// String returns a readable tag type name.
func (t TagType) String() string {
	switch t {
	case TagTypeEnd:
		return "End"
	case TagTypeBasicMemoryInfo:
		return "BasicMemoryInfo"
	case TagTypeMemoryMap:
		return "MemoryMap"
	case TagTypeElfSections:
		return "ElfSections"
	default:
		return "Unknown"
	}
}

// BasicMemoryInfoT is the basic memory information tag.
// Reference: "Basic memory information" tag
type BasicMemoryInfoT struct {
	Tag TagHeaderT
	// Amount of lower memory in KiB, starting at address 0.
	MemLower uint32
	// Amount of upper memory in KiB, starting at address 1 MiB.
	MemUpper uint32
}

// BasicMemoryInfoPayloadSize is the size of the basic memory info fields after the tag header.
const BasicMemoryInfoPayloadSize = 8
