package services

import (
	"context"

	"github.com/deploymenttheory/go-multiboot2/internal/dump"
	bootinformation "github.com/deploymenttheory/go-multiboot2/internal/parsers/boot_information"
)

// LoadOptions describes where a boot information dump comes from
type LoadOptions struct {
	// Path of the raw boot information file
	Path string
	// Physical address the boot information was loaded at
	StartAddress uint64
	// Physical memory images used to resolve ELF section names
	MemoryImages []dump.MemoryImage
}

// SummaryOptions selects what Summarize decodes
type SummaryOptions struct {
	Tags            bool
	BasicMemory     bool
	MemoryMap       bool
	ElfSections     bool
	IncludeReserved bool
}

// AllParts returns options that decode everything
func AllParts() SummaryOptions {
	return SummaryOptions{Tags: true, BasicMemory: true, MemoryMap: true, ElfSections: true}
}

// BootInfoSummary is a decoded, serialisable copy of a boot information blob
type BootInfoSummary struct {
	Source       string           `json:"source" yaml:"source"`
	StartAddress uint64           `json:"start_address" yaml:"start_address"`
	EndAddress   uint64           `json:"end_address" yaml:"end_address"`
	TotalSize    uint32           `json:"total_size" yaml:"total_size"`
	Tags         []TagInfo        `json:"tags" yaml:"tags"`
	BasicMemory  *BasicMemoryInfo `json:"basic_memory,omitempty" yaml:"basic_memory,omitempty"`
	MemoryMap    *MemoryMapInfo   `json:"memory_map,omitempty" yaml:"memory_map,omitempty"`
	ElfSections  *ElfSectionsInfo `json:"elf_sections,omitempty" yaml:"elf_sections,omitempty"`
}

// TagInfo describes one tag of the tag list
type TagInfo struct {
	Type   uint32 `json:"type" yaml:"type"`
	Name   string `json:"name" yaml:"name"`
	Size   uint32 `json:"size" yaml:"size"`
	Offset uint64 `json:"offset" yaml:"offset"`
}

// BasicMemoryInfo holds the basic memory information tag
type BasicMemoryInfo struct {
	LowerKiB uint32 `json:"lower_kib" yaml:"lower_kib"`
	UpperKiB uint32 `json:"upper_kib" yaml:"upper_kib"`
}

// MemoryMapInfo holds the memory map tag
type MemoryMapInfo struct {
	EntrySize      uint32           `json:"entry_size" yaml:"entry_size"`
	EntryVersion   uint32           `json:"entry_version" yaml:"entry_version"`
	EntryCount     int              `json:"entry_count" yaml:"entry_count"`
	AvailableBytes uint64           `json:"available_bytes" yaml:"available_bytes"`
	Areas          []MemoryAreaInfo `json:"areas" yaml:"areas"`
}

// MemoryAreaInfo describes one memory map entry
type MemoryAreaInfo struct {
	BaseAddress uint64 `json:"base_address" yaml:"base_address"`
	Length      uint64 `json:"length" yaml:"length"`
	EndAddress  uint64 `json:"end_address" yaml:"end_address"`
	Type        string `json:"type" yaml:"type"`
	TypeCode    uint32 `json:"type_code" yaml:"type_code"`
	Available   bool   `json:"available" yaml:"available"`
}

// ElfSectionsInfo holds the ELF sections tag
type ElfSectionsInfo struct {
	Class              string        `json:"class" yaml:"class"`
	Count              uint32        `json:"count" yaml:"count"`
	EntrySize          uint32        `json:"entry_size" yaml:"entry_size"`
	StringTableIndex   uint32        `json:"string_table_index" yaml:"string_table_index"`
	StringTableAddress uint64        `json:"string_table_address" yaml:"string_table_address"`
	Sections           []SectionInfo `json:"sections" yaml:"sections"`
}

// SectionInfo describes one used ELF section
type SectionInfo struct {
	Index        uint32 `json:"index" yaml:"index"`
	Name         string `json:"name" yaml:"name"`
	Type         string `json:"type" yaml:"type"`
	TypeCode     uint32 `json:"type_code" yaml:"type_code"`
	StartAddress uint64 `json:"start_address" yaml:"start_address"`
	EndAddress   uint64 `json:"end_address" yaml:"end_address"`
	Size         uint64 `json:"size" yaml:"size"`
	Flags        string `json:"flags" yaml:"flags"`
}

// BootInfoService loads and decodes boot information dumps
type BootInfoService interface {
	// Load reads a dump and returns the root view over it
	Load(ctx context.Context, opts LoadOptions) (*bootinformation.BootInformation, error)

	// Summarize decodes the selected parts of a loaded blob
	Summarize(ctx context.Context, info *bootinformation.BootInformation, opts SummaryOptions) (*BootInfoSummary, error)
}
