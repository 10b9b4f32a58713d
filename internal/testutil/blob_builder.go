// Package testutil builds multiboot2 boot information blobs for tests.
package testutil

import (
	"encoding/binary"

	"github.com/deploymenttheory/go-multiboot2/internal/types"
)

// MemoryMapEntry is one entry written by AddMemoryMap.
type MemoryMapEntry struct {
	BaseAddr uint64
	Length   uint64
	Type     uint32
}

// ElfSection is one section header written by AddElfSections.
type ElfSection struct {
	NameIndex uint32
	Type      uint32
	Flags     uint64
	Addr      uint64
	Size      uint64
}

// BlobBuilder assembles a boot information blob tag by tag.
type BlobBuilder struct {
	tags [][]byte
}

// NewBlobBuilder returns an empty builder.
func NewBlobBuilder() *BlobBuilder {
	return &BlobBuilder{}
}

// AddRawTag appends a tag exactly as given, without computing its header.
func (b *BlobBuilder) AddRawTag(raw []byte) *BlobBuilder {
	b.tags = append(b.tags, raw)
	return b
}

// AddTag appends a tag with the given type and payload.
func (b *BlobBuilder) AddTag(tagType types.TagType, payload []byte) *BlobBuilder {
	return b.AddRawTag(Tag(tagType, payload))
}

// AddBasicMemoryInfo appends a basic memory information tag.
func (b *BlobBuilder) AddBasicMemoryInfo(lower, upper uint32) *BlobBuilder {
	return b.AddRawTag(BasicMemoryInfoTag(lower, upper))
}

// AddMemoryMap appends a memory map tag.
func (b *BlobBuilder) AddMemoryMap(entrySize uint32, entries ...MemoryMapEntry) *BlobBuilder {
	return b.AddRawTag(MemoryMapTag(entrySize, entries...))
}

// AddElfSections appends an ELF sections tag.
func (b *BlobBuilder) AddElfSections(entrySize, shndx uint32, sections ...ElfSection) *BlobBuilder {
	return b.AddRawTag(ElfSectionsTag(entrySize, shndx, sections...))
}

// Build returns the blob terminated by the sentinel tag.
func (b *BlobBuilder) Build() []byte {
	return b.build(true)
}

// BuildWithoutSentinel returns the blob with no terminating tag.
func (b *BlobBuilder) BuildWithoutSentinel() []byte {
	return b.build(false)
}

func (b *BlobBuilder) build(sentinel bool) []byte {
	blob := make([]byte, types.BootInformationHeaderSize)
	for _, tag := range b.tags {
		blob = append(blob, tag...)
		blob = pad8(blob)
	}
	if sentinel {
		blob = append(blob, Tag(types.TagTypeEnd, nil)...)
	}
	binary.LittleEndian.PutUint32(blob[0:4], uint32(len(blob)))
	return blob
}

// Tag encodes one tag header and payload, without trailing padding.
func Tag(tagType types.TagType, payload []byte) []byte {
	tag := make([]byte, types.TagHeaderSize, types.TagHeaderSize+len(payload))
	binary.LittleEndian.PutUint32(tag[0:4], uint32(tagType))
	binary.LittleEndian.PutUint32(tag[4:8], uint32(types.TagHeaderSize+len(payload)))
	return append(tag, payload...)
}

// BasicMemoryInfoTag encodes a basic memory information tag.
func BasicMemoryInfoTag(lower, upper uint32) []byte {
	payload := make([]byte, types.BasicMemoryInfoPayloadSize)
	binary.LittleEndian.PutUint32(payload[0:4], lower)
	binary.LittleEndian.PutUint32(payload[4:8], upper)
	return Tag(types.TagTypeBasicMemoryInfo, payload)
}

// MemoryMapTag encodes a memory map tag. Entries larger than 24 bytes are zero padded.
func MemoryMapTag(entrySize uint32, entries ...MemoryMapEntry) []byte {
	payload := make([]byte, 8, 8+int(entrySize)*len(entries))
	binary.LittleEndian.PutUint32(payload[0:4], entrySize)
	binary.LittleEndian.PutUint32(payload[4:8], 0)
	for _, e := range entries {
		entry := make([]byte, max(int(entrySize), types.MemoryMapEntrySize))
		binary.LittleEndian.PutUint64(entry[0:8], e.BaseAddr)
		binary.LittleEndian.PutUint64(entry[8:16], e.Length)
		binary.LittleEndian.PutUint32(entry[16:20], e.Type)
		payload = append(payload, entry[:entrySize]...)
	}
	return Tag(types.TagTypeMemoryMap, payload)
}

// ElfSectionsTag encodes an ELF sections tag using the ELF32 layout when
// entrySize is 40 and the ELF64 layout otherwise.
func ElfSectionsTag(entrySize, shndx uint32, sections ...ElfSection) []byte {
	payload := make([]byte, types.ElfSectionsFirstEntryOffset)
	binary.LittleEndian.PutUint32(payload[0:4], uint32(len(sections)))
	binary.LittleEndian.PutUint32(payload[4:8], entrySize)
	binary.LittleEndian.PutUint32(payload[8:12], shndx)
	for _, s := range sections {
		payload = append(payload, ElfSectionEntry(entrySize, s)...)
	}
	return Tag(types.TagTypeElfSections, payload)
}

// ElfSectionEntry encodes a single section header of the given width.
func ElfSectionEntry(entrySize uint32, s ElfSection) []byte {
	entry := make([]byte, max(int(entrySize), types.ElfSection64Size))
	binary.LittleEndian.PutUint32(entry[0:4], s.NameIndex)
	binary.LittleEndian.PutUint32(entry[4:8], s.Type)
	if entrySize == types.ElfSection32Size {
		binary.LittleEndian.PutUint32(entry[types.ElfSection32FlagsOffset:], uint32(s.Flags))
		binary.LittleEndian.PutUint32(entry[types.ElfSection32AddrOffset:], uint32(s.Addr))
		binary.LittleEndian.PutUint32(entry[types.ElfSection32SizeOffset:], uint32(s.Size))
	} else {
		binary.LittleEndian.PutUint64(entry[types.ElfSection64FlagsOffset:], s.Flags)
		binary.LittleEndian.PutUint64(entry[types.ElfSection64AddrOffset:], s.Addr)
		binary.LittleEndian.PutUint64(entry[types.ElfSection64SizeOffset:], s.Size)
	}
	return entry[:entrySize]
}

func pad8(b []byte) []byte {
	for len(b)%types.TagAlignment != 0 {
		b = append(b, 0)
	}
	return b
}
