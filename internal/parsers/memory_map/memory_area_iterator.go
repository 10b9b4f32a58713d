package memorymap

import (
	"github.com/deploymenttheory/go-multiboot2/internal/types"
)

// EntryIterator walks memory map entries by position, entrySize bytes at a time.
type EntryIterator struct {
	data      []byte
	current   uint64
	last      uint64
	entrySize uint64
	area      MemoryArea
}

func newEntryIterator(data []byte, entrySize uint32) *EntryIterator {
	it := &EntryIterator{
		data:      data,
		current:   types.MemoryMapTagHeaderSize,
		entrySize: uint64(entrySize),
	}
	// With no room for a whole entry, last stays below current and the walk is empty.
	if uint64(len(data)) >= it.entrySize {
		it.last = uint64(len(data)) - it.entrySize
	}
	return it
}

// Next advances to the next entry. It returns false once the current position
// passes the last whole entry.
func (it *EntryIterator) Next() bool {
	if it.current > it.last {
		return false
	}
	it.area = MemoryArea{entry: it.data[it.current : it.current+it.entrySize]}
	it.current += it.entrySize
	return true
}

// Area returns the entry produced by the last call to Next
func (it *EntryIterator) Area() MemoryArea {
	return it.area
}

// AreaIterator yields only available memory areas, skipping every other
// entry type in place.
type AreaIterator struct {
	entries *EntryIterator
}

// Next advances to the next available area
func (it *AreaIterator) Next() bool {
	for it.entries.Next() {
		if it.entries.Area().IsAvailable() {
			return true
		}
	}
	return false
}

// Area returns the area produced by the last call to Next
func (it *AreaIterator) Area() MemoryArea {
	return it.entries.Area()
}
