package memory

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionReadAt(t *testing.T) {
	r := Region{Base: 0x1000, Data: []byte("hello\x00world")}

	t.Run("Inside region", func(t *testing.T) {
		buf := make([]byte, 5)
		n, err := r.ReadAt(buf, 0x1000)
		require.NoError(t, err)
		assert.Equal(t, 5, n)
		assert.Equal(t, "hello", string(buf))
	})

	t.Run("Short read at end", func(t *testing.T) {
		buf := make([]byte, 8)
		n, err := r.ReadAt(buf, 0x1006)
		assert.ErrorIs(t, err, io.EOF)
		assert.Equal(t, 5, n)
		assert.Equal(t, "world", string(buf[:n]))
	})

	t.Run("Outside region", func(t *testing.T) {
		_, err := r.ReadAt(make([]byte, 1), 0x2000)
		assert.True(t, errors.Is(err, ErrUnmapped))
	})
}

func TestMap(t *testing.T) {
	m, err := NewMap(
		Region{Base: 0x3000, Data: []byte{0xCC, 0xDD}},
		Region{Base: 0x1000, Data: []byte{0xAA, 0xBB}},
	)
	require.NoError(t, err)
	require.Len(t, m.Regions(), 2)
	assert.Equal(t, uint64(0x1000), m.Regions()[0].Base, "regions are kept in address order")

	buf := make([]byte, 1)
	_, err = m.ReadAt(buf, 0x3001)
	require.NoError(t, err)
	assert.Equal(t, byte(0xDD), buf[0])

	_, err = m.ReadAt(buf, 0x1002)
	assert.ErrorIs(t, err, ErrUnmapped, "gap between regions")

	_, err = m.ReadAt(buf, 0x500)
	assert.ErrorIs(t, err, ErrUnmapped, "below first region")

	_, err = m.ReadAt(buf, -1)
	assert.Error(t, err)
}

func TestMapRejectsOverlap(t *testing.T) {
	_, err := NewMap(
		Region{Base: 0x1000, Data: make([]byte, 0x100)},
		Region{Base: 0x10F0, Data: make([]byte, 0x100)},
	)
	assert.Error(t, err)

	var empty Map
	require.NoError(t, empty.Add(Region{Base: 0x5000}), "empty regions are ignored")
	assert.Empty(t, empty.Regions())
}

func TestMapReadAcrossAdjacentRegions(t *testing.T) {
	m, err := NewMap(
		Region{Base: 0x1000, Data: []byte("\x00.sh")},
		Region{Base: 0x1004, Data: []byte("strtab")},
		Region{Base: 0x100A, Data: []byte("\x00")},
		Region{Base: 0x2000, Data: []byte("far")},
	)
	require.NoError(t, err)

	t.Run("Spans three regions", func(t *testing.T) {
		buf := make([]byte, 10)
		n, err := m.ReadAt(buf, 0x1001)
		require.NoError(t, err)
		assert.Equal(t, 10, n)
		assert.Equal(t, ".shstrtab\x00", string(buf))
	})

	t.Run("Stops at gap", func(t *testing.T) {
		buf := make([]byte, 16)
		n, err := m.ReadAt(buf, 0x1008)
		assert.ErrorIs(t, err, io.EOF)
		assert.Equal(t, 3, n)
		assert.Equal(t, "ab\x00", string(buf[:n]))
	})
}
