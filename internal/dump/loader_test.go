package dump

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_ReadBlob(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/dumps/mbi.bin", []byte{16, 0, 0, 0}, 0o644))

	loader := NewLoader(fs)
	data, err := loader.ReadBlob("/dumps/mbi.bin")
	require.NoError(t, err)
	assert.Equal(t, []byte{16, 0, 0, 0}, data)

	_, err = loader.ReadBlob("/dumps/missing.bin")
	assert.Error(t, err)
}

func TestLoader_BuildMemory(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/dumps/strtab.bin", []byte("\x00.text\x00"), 0o644))
	loader := NewLoader(fs)

	blob := []byte{0xAA, 0xBB}
	mem, err := loader.BuildMemory(blob, 0x1000, []MemoryImage{{Base: 0x200000, Path: "/dumps/strtab.bin"}})
	require.NoError(t, err)
	require.Len(t, mem.Regions(), 2)

	buf := make([]byte, 5)
	_, err = mem.ReadAt(buf, 0x200001)
	require.NoError(t, err)
	assert.Equal(t, ".text", string(buf))

	_, err = mem.ReadAt(buf[:1], 0x1001)
	require.NoError(t, err)
	assert.Equal(t, byte(0xBB), buf[0])
}

func TestLoader_BuildMemoryErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/dumps/overlap.bin", make([]byte, 16), 0o644))
	loader := NewLoader(fs)

	_, err := loader.BuildMemory(make([]byte, 16), 0x1000, []MemoryImage{{Base: 0x1008, Path: "/dumps/overlap.bin"}})
	assert.Error(t, err, "image overlapping the blob")

	_, err = loader.BuildMemory(nil, 0, []MemoryImage{{Base: 0x1000, Path: "/dumps/none.bin"}})
	assert.Error(t, err, "missing image")
}

func TestLoader_BuildMemoryRAMImageHoldsBlob(t *testing.T) {
	ram := make([]byte, 0x40000)
	copy(ram[0x10000:], []byte{16, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 8, 0, 0, 0})
	copy(ram[0x20000:], "\x00.text\x00")

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/ram.bin", ram, 0o644))
	loader := NewLoader(fs)

	mem, err := loader.BuildMemory(ram[0x10000:0x10010], 0x10000, []MemoryImage{{Base: 0, Path: "/ram.bin"}})
	require.NoError(t, err)
	require.Len(t, mem.Regions(), 1, "the RAM image replaces the blob region")

	buf := make([]byte, 5)
	_, err = mem.ReadAt(buf, 0x20001)
	require.NoError(t, err)
	assert.Equal(t, ".text", string(buf))

	_, err = mem.ReadAt(buf[:1], 0x10000)
	require.NoError(t, err)
	assert.Equal(t, byte(16), buf[0])
}
