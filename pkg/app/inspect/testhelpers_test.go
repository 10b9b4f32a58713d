package inspect

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-multiboot2/internal/testutil"
	"github.com/deploymenttheory/go-multiboot2/internal/types"
	"github.com/deploymenttheory/go-multiboot2/pkg/app"
	"github.com/deploymenttheory/go-multiboot2/pkg/services"
)

const testStart = 0x100000

func newTestContext() *app.Context {
	ctx := app.NewContext()
	ctx.Logger = app.NewNullLogger()
	return ctx
}

// newTestService writes a full dump to /mbi.bin, a dump with only basic
// memory information to /basic.bin and the section name string table to
// /strtab.bin.
func newTestService(t *testing.T) services.BootInfoService {
	t.Helper()
	fs := afero.NewMemMapFs()

	full := testutil.NewBlobBuilder().
		AddBasicMemoryInfo(639, 523264).
		AddMemoryMap(types.MemoryMapEntrySize,
			testutil.MemoryMapEntry{BaseAddr: 0x0, Length: 0x9FC00, Type: 1},
			testutil.MemoryMapEntry{BaseAddr: 0x9FC00, Length: 0x400, Type: 2},
		).
		AddElfSections(types.ElfSection32Size, 2,
			testutil.ElfSection{},
			testutil.ElfSection{NameIndex: 1, Type: 1, Flags: 0x6, Addr: 0x100000, Size: 0x1000},
			testutil.ElfSection{NameIndex: 7, Type: 3, Addr: 0x200000, Size: 0x11},
		).
		Build()
	basic := testutil.NewBlobBuilder().AddBasicMemoryInfo(639, 1024).Build()

	require.NoError(t, afero.WriteFile(fs, "/mbi.bin", full, 0o644))
	require.NoError(t, afero.WriteFile(fs, "/basic.bin", basic, 0o644))
	require.NoError(t, afero.WriteFile(fs, "/strtab.bin", []byte("\x00.text\x00.shstrtab\x00"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/garbage.bin", []byte{0xff, 0xff, 0xff, 0xff, 0, 0, 0, 0}, 0o644))

	svc, err := services.NewServiceFactory(fs, app.NewNullLogger().WithField("test", t.Name())).BootInfoService()
	require.NoError(t, err)
	return svc
}
