// File: internal/memory/physical_memory.go
package memory

import (
	"errors"
	"fmt"
	"io"
	"sort"
)

// ErrUnmapped is returned when a read starts at an address no region covers.
var ErrUnmapped = errors.New("address not mapped")

// Region is a run of physical memory backed by a byte slice.
type Region struct {
	Base uint64
	Data []byte
}

// End returns the first address past the region.
func (r Region) End() uint64 {
	return r.Base + uint64(len(r.Data))
}

// Contains reports whether addr falls inside the region.
func (r Region) Contains(addr uint64) bool {
	return addr >= r.Base && addr < r.End()
}

// ReadAt implements io.ReaderAt with off interpreted as a physical address.
func (r Region) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("negative address %d", off)
	}
	addr := uint64(off)
	if !r.Contains(addr) {
		return 0, fmt.Errorf("read at %#x: %w", addr, ErrUnmapped)
	}
	n := copy(p, r.Data[addr-r.Base:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Map is a set of non-overlapping regions addressed by physical address.
// The zero value is an empty map.
type Map struct {
	regions []Region
}

// NewMap builds a Map from the given regions. Overlapping regions are rejected.
func NewMap(regions ...Region) (*Map, error) {
	m := &Map{}
	for _, r := range regions {
		if err := m.Add(r); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Add inserts a region, keeping the regions sorted by base address.
func (m *Map) Add(r Region) error {
	if len(r.Data) == 0 {
		return nil
	}
	if r.End() < r.Base {
		return fmt.Errorf("region at %#x with %d bytes wraps the address space", r.Base, len(r.Data))
	}
	for _, existing := range m.regions {
		if r.Base < existing.End() && existing.Base < r.End() {
			return fmt.Errorf("region [%#x, %#x) overlaps [%#x, %#x)", r.Base, r.End(), existing.Base, existing.End())
		}
	}
	m.regions = append(m.regions, r)
	sort.Slice(m.regions, func(i, j int) bool {
		return m.regions[i].Base < m.regions[j].Base
	})
	return nil
}

// Regions returns the mapped regions in address order.
func (m *Map) Regions() []Region {
	return m.regions
}

// ReadAt implements io.ReaderAt with off interpreted as a physical address.
// A read continues into a region starting exactly where the previous one
// ends; at a gap it returns the bytes available and io.EOF.
func (m *Map) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("negative address %d", off)
	}
	addr := uint64(off)
	i := sort.Search(len(m.regions), func(i int) bool {
		return m.regions[i].End() > addr
	})
	if i == len(m.regions) || !m.regions[i].Contains(addr) {
		return 0, fmt.Errorf("read at %#x: %w", addr, ErrUnmapped)
	}

	n := copy(p, m.regions[i].Data[addr-m.regions[i].Base:])
	addr += uint64(n)
	for i++; i < len(m.regions) && n < len(p); i++ {
		if m.regions[i].Base != addr {
			break
		}
		copied := copy(p[n:], m.regions[i].Data)
		n += copied
		addr += uint64(copied)
	}
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

var (
	_ io.ReaderAt = Region{}
	_ io.ReaderAt = (*Map)(nil)
)
