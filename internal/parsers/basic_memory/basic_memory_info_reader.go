package basicmemory

import (
	"encoding/binary"
	"fmt"

	"github.com/deploymenttheory/go-multiboot2/internal/interfaces"
	"github.com/deploymenttheory/go-multiboot2/internal/parsers/tags"
	"github.com/deploymenttheory/go-multiboot2/internal/types"
)

// BasicMemoryInfoReader implements the BasicMemoryInfoReader interface
type BasicMemoryInfoReader struct {
	payload []byte
}

// Compile-time check to ensure BasicMemoryInfoReader implements BasicMemoryInfoReader
var _ interfaces.BasicMemoryInfoReader = (*BasicMemoryInfoReader)(nil)

// NewBasicMemoryInfoReader creates a reader over a basic memory information tag
func NewBasicMemoryInfoReader(tag tags.Tag) (*BasicMemoryInfoReader, error) {
	if tag.Type() != types.TagTypeBasicMemoryInfo {
		return nil, fmt.Errorf("tag type %d is not a basic memory information tag", tag.Type())
	}

	payload := tag.Payload()
	if len(payload) < types.BasicMemoryInfoPayloadSize {
		return nil, fmt.Errorf("basic memory information tag too small: %d bytes", tag.Size())
	}

	return &BasicMemoryInfoReader{payload: payload}, nil
}

// MemLower returns the amount of lower memory in KiB
func (r *BasicMemoryInfoReader) MemLower() uint32 {
	return binary.LittleEndian.Uint32(r.payload[0:4])
}

// MemUpper returns the amount of upper memory in KiB
func (r *BasicMemoryInfoReader) MemUpper() uint32 {
	return binary.LittleEndian.Uint32(r.payload[4:8])
}
