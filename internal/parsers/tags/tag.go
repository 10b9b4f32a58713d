package tags

import (
	"encoding/binary"
	"fmt"

	"github.com/deploymenttheory/go-multiboot2/internal/interfaces"
	"github.com/deploymenttheory/go-multiboot2/internal/types"
)

// Tag is a borrowed view of one tag inside the boot information.
// The view covers exactly Size() bytes; padding is not included.
type Tag struct {
	offset uint64
	data   []byte
}

// Compile-time check to ensure Tag implements TagReader
var _ interfaces.TagReader = Tag{}

// NewTag wraps raw tag bytes found at offset within the boot information.
// It validates only that the header is present and the declared size fits.
func NewTag(data []byte, offset uint64) (Tag, error) {
	if len(data) < types.TagHeaderSize {
		return Tag{}, fmt.Errorf("%w: %d bytes at offset %d", ErrTruncatedTag, len(data), offset)
	}
	size := binary.LittleEndian.Uint32(data[4:8])
	if size < types.TagHeaderSize {
		return Tag{}, fmt.Errorf("%w: size %d at offset %d", ErrInvalidTagSize, size, offset)
	}
	if uint64(size) > uint64(len(data)) {
		return Tag{}, fmt.Errorf("%w: tag at offset %d declares %d bytes, %d available", ErrTruncatedTag, offset, size, len(data))
	}
	return Tag{offset: offset, data: data[:size]}, nil
}

// Type returns the tag type.
func (t Tag) Type() types.TagType {
	return types.TagType(binary.LittleEndian.Uint32(t.data[0:4]))
}

// Size returns the declared tag size including the header.
func (t Tag) Size() uint32 {
	return binary.LittleEndian.Uint32(t.data[4:8])
}

// Offset returns the position of the tag relative to the start of the boot information.
func (t Tag) Offset() uint64 {
	return t.offset
}

// Payload returns the Size()-8 bytes following the tag header.
func (t Tag) Payload() []byte {
	return t.data[types.TagHeaderSize:]
}

// Bytes returns the whole tag including its header.
func (t Tag) Bytes() []byte {
	return t.data
}

// IsEnd reports whether the tag is the terminating sentinel.
func (t Tag) IsEnd() bool {
	return isSentinel(t.Type(), t.Size())
}

func isSentinel(tagType types.TagType, size uint32) bool {
	return tagType == types.TagTypeEnd && size == types.TagHeaderSize
}

// Align8 rounds a tag size up to the stride between consecutive tags.
func Align8(size uint32) uint64 {
	return (uint64(size) + types.TagAlignment - 1) &^ (types.TagAlignment - 1)
}
