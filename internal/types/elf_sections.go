package types

// ELF Symbols
// The ELF sections tag carries the section header table of the booted ELF image.
// Entries use the ELF32 or ELF64 section header layout depending on the image class,
// which is only known from the entry size stored in the tag.

// ElfSectionsTagT is the fixed part of the ELF sections tag.
// Reference: "ELF-Symbols" tag
type ElfSectionsTagT struct {
	Tag TagHeaderT
	// Number of section headers that follow.
	Num uint32
	// Size of one section header.
	EntSize uint32
	// Index of the section header string table.
	Shndx uint32
}

// ElfSectionsTagHeaderSize is the size of ElfSectionsTagT, i.e. the offset of the first entry.
const ElfSectionsTagHeaderSize = 20

// ElfSections payload field offsets, relative to the start of the tag payload.
const (
	ElfSectionsNumOffset     = 0
	ElfSectionsEntSizeOffset = 4
	ElfSectionsShndxOffset   = 8

	// ElfSectionsFirstEntryOffset is where the entries start within the payload.
	ElfSectionsFirstEntryOffset = 12
)

// ElfSection32T is an ELF32 section header.
// Reference: System V ABI, "Sections"
type ElfSection32T struct {
	NameIndex uint32
	Type      uint32
	Flags     uint32
	Addr      uint32
	Offset    uint32
	Size      uint32
	Link      uint32
	Info      uint32
	AddrAlign uint32
	EntSize   uint32
}

// ElfSection32Size is the size of ElfSection32T.
const ElfSection32Size = 40

// Field offsets within ElfSection32T.
const (
	ElfSection32NameOffset  = 0
	ElfSection32TypeOffset  = 4
	ElfSection32FlagsOffset = 8
	ElfSection32AddrOffset  = 12
	ElfSection32SizeOffset  = 20
)

// ElfSection64T is an ELF64 section header.
// Reference: System V ABI, "Sections"
type ElfSection64T struct {
	NameIndex uint32
	Type      uint32
	Flags     uint64
	Addr      uint64
	Offset    uint64
	Size      uint64
	Link      uint32
	Info      uint32
	AddrAlign uint64
	EntSize   uint64
}

// ElfSection64Size is the size of ElfSection64T.
const ElfSection64Size = 64

// Field offsets within ElfSection64T.
const (
	ElfSection64NameOffset  = 0
	ElfSection64TypeOffset  = 4
	ElfSection64FlagsOffset = 8
	ElfSection64AddrOffset  = 16
	ElfSection64SizeOffset  = 32
)

// SectionType is the decoded sh_type of a section header.
type SectionType uint8

const (
	SectionTypeUnused SectionType = iota
	SectionTypeProgram
	SectionTypeSymbolTable
	SectionTypeStringTable
	SectionTypeRelaRelocation
	SectionTypeSymbolHashTable
	SectionTypeDynamicLinkTable
	SectionTypeNote
	SectionTypeUninitialized
	SectionTypeRelRelocation
	SectionTypeReserved
	// SectionTypeEnvironmentSpecific covers codes 0x60000000 to 0x6FFFFFFF.
	SectionTypeEnvironmentSpecific
	// SectionTypeProcessorSpecific covers codes 0x70000000 to 0x7FFFFFFF.
	SectionTypeProcessorSpecific
)

// Raw sh_type ranges.
const (
	SectionTypeCodeUnused    uint32 = 0
	SectionTypeCodeLastFixed uint32 = 10
	SectionTypeCodeLoOS      uint32 = 0x60000000
	SectionTypeCodeHiOS      uint32 = 0x6FFFFFFF
	SectionTypeCodeLoProc    uint32 = 0x70000000
	SectionTypeCodeHiProc    uint32 = 0x7FFFFFFF
)

// SectionTypeFromCode decodes a raw sh_type. The second result is false when
// the code is outside every defined value and range.
func SectionTypeFromCode(code uint32) (SectionType, bool) {
	switch {
	case code <= SectionTypeCodeLastFixed:
		return SectionType(code), true
	case code >= SectionTypeCodeLoOS && code <= SectionTypeCodeHiOS:
		return SectionTypeEnvironmentSpecific, true
	case code >= SectionTypeCodeLoProc && code <= SectionTypeCodeHiProc:
		return SectionTypeProcessorSpecific, true
	default:
		return 0, false
	}
}

var sectionTypeNames = [...]string{
	SectionTypeUnused:              "Unused",
	SectionTypeProgram:             "Program",
	SectionTypeSymbolTable:         "SymbolTable",
	SectionTypeStringTable:         "StringTable",
	SectionTypeRelaRelocation:      "RelaRelocation",
	SectionTypeSymbolHashTable:     "SymbolHashTable",
	SectionTypeDynamicLinkTable:    "DynamicLinkTable",
	SectionTypeNote:                "Note",
	SectionTypeUninitialized:       "Uninitialized",
	SectionTypeRelRelocation:       "RelRelocation",
	SectionTypeReserved:            "Reserved",
	SectionTypeEnvironmentSpecific: "EnvironmentSpecific",
	SectionTypeProcessorSpecific:   "ProcessorSpecific",
}

// String returns a readable section type name.
func (t SectionType) String() string {
	if int(t) < len(sectionTypeNames) {
		return sectionTypeNames[t]
	}
	return "Invalid"
}

// SectionFlags is the sh_flags bit set, limited to the bits this module knows.
type SectionFlags uint64

const (
	SectionFlagWritable   SectionFlags = 0x1
	SectionFlagAllocated  SectionFlags = 0x2
	SectionFlagExecutable SectionFlags = 0x4

	// SectionFlagsMask keeps only the known bits.
	SectionFlagsMask = SectionFlagWritable | SectionFlagAllocated | SectionFlagExecutable
)

// SectionFlagsFromRaw truncates a raw sh_flags value to the known bits.
func SectionFlagsFromRaw(raw uint64) SectionFlags {
	return SectionFlags(raw) & SectionFlagsMask
}

// Has reports whether every bit in f is set.
func (s SectionFlags) Has(f SectionFlags) bool {
	return s&f == f
}

// String renders the flags in readelf style, e.g. "WAX".
func (s SectionFlags) String() string {
	out := make([]byte, 0, 3)
	if s.Has(SectionFlagWritable) {
		out = append(out, 'W')
	}
	if s.Has(SectionFlagAllocated) {
		out = append(out, 'A')
	}
	if s.Has(SectionFlagExecutable) {
		out = append(out, 'X')
	}
	return string(out)
}
