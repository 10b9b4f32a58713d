package dump

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/deploymenttheory/go-multiboot2/internal/memory"
)

// Loader reads boot information dumps and memory images from a filesystem
type Loader struct {
	fs afero.Fs
}

// NewLoader creates a loader over fs. A nil fs means the host filesystem.
func NewLoader(fs afero.Fs) *Loader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Loader{fs: fs}
}

// ReadBlob reads the raw boot information from path
func (l *Loader) ReadBlob(path string) ([]byte, error) {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read boot information dump: %w", err)
	}
	return data, nil
}

// BuildMemory maps every memory image and the blob at startAddress. An image
// that already holds the whole blob, such as a full RAM dump, takes its place.
func (l *Loader) BuildMemory(blob []byte, startAddress uint64, images []MemoryImage) (*memory.Map, error) {
	regions := make([]memory.Region, 0, len(images)+1)
	for _, img := range images {
		data, err := afero.ReadFile(l.fs, img.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read memory image %s: %w", img.Path, err)
		}
		regions = append(regions, memory.Region{Base: img.Base, Data: data})
	}

	blobRegion := memory.Region{Base: startAddress, Data: blob}
	if !coveredBy(blobRegion, regions) {
		regions = append(regions, blobRegion)
	}

	mem, err := memory.NewMap(regions...)
	if err != nil {
		return nil, fmt.Errorf("failed to map memory images: %w", err)
	}
	return mem, nil
}

func coveredBy(r memory.Region, regions []memory.Region) bool {
	for _, other := range regions {
		if other.Base <= r.Base && r.End() <= other.End() {
			return true
		}
	}
	return false
}
