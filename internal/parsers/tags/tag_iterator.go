package tags

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/deploymenttheory/go-multiboot2/internal/types"
)

var (
	// ErrTruncatedTag means a tag header or body runs past the end of the boot information.
	// A list without its sentinel tag ends this way.
	ErrTruncatedTag = errors.New("tag extends past end of boot information")
	// ErrInvalidTagSize means a tag declares a size smaller than its own header.
	ErrInvalidTagSize = errors.New("tag size smaller than tag header")
)

// Iterator walks the tag list of a boot information blob in order.
// It stops at the sentinel tag and never reads past it. An Iterator is
// single pass; create a new one to scan again.
type Iterator struct {
	blob    []byte
	offset  uint64
	current Tag
	err     error
	done    bool
}

// NewIterator returns an iterator over blob, which must start with the boot
// information header and be bounded to total_size bytes.
func NewIterator(blob []byte) *Iterator {
	return &Iterator{blob: blob, offset: types.BootInformationHeaderSize}
}

// Next advances to the next tag. It returns false at the sentinel or on error.
func (it *Iterator) Next() bool {
	if it.done {
		return false
	}

	if it.offset+types.TagHeaderSize > uint64(len(it.blob)) {
		return it.fail(fmt.Errorf("%w: no tag header at offset %d of %d", ErrTruncatedTag, it.offset, len(it.blob)))
	}

	header := it.blob[it.offset:]
	tagType := types.TagType(binary.LittleEndian.Uint32(header[0:4]))
	size := binary.LittleEndian.Uint32(header[4:8])
	if isSentinel(tagType, size) {
		it.done = true
		return false
	}

	tag, err := NewTag(header, it.offset)
	if err != nil {
		return it.fail(err)
	}

	it.current = tag
	it.offset += Align8(size)
	return true
}

func (it *Iterator) fail(err error) bool {
	it.err = err
	it.done = true
	return false
}

// Tag returns the tag produced by the last successful call to Next.
func (it *Iterator) Tag() Tag {
	return it.current
}

// Err returns the error that stopped iteration, if any.
func (it *Iterator) Err() error {
	return it.err
}

// Collect drains the iterator into a slice.
func (it *Iterator) Collect() ([]Tag, error) {
	var out []Tag
	for it.Next() {
		out = append(out, it.Tag())
	}
	return out, it.Err()
}

// Find scans a fresh iterator over blob for the first tag of the given type.
// A missing tag is reported with ok == false and a nil error.
func Find(blob []byte, tagType types.TagType) (tag Tag, ok bool, err error) {
	it := NewIterator(blob)
	for it.Next() {
		if it.Tag().Type() == tagType {
			return it.Tag(), true, nil
		}
	}
	return Tag{}, false, it.Err()
}
