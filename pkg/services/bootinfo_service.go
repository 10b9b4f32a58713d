package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/deploymenttheory/go-multiboot2/internal/dump"
	"github.com/deploymenttheory/go-multiboot2/internal/interfaces"
	bootinformation "github.com/deploymenttheory/go-multiboot2/internal/parsers/boot_information"
)

var (
	// ErrDumpAccess wraps failures to read a dump or memory image
	ErrDumpAccess = errors.New("dump access failed")
	// ErrDecode wraps failures to decode the boot information
	ErrDecode = errors.New("decode failed")
)

// bootInfoService implements BootInfoService
type bootInfoService struct {
	loader *dump.Loader
	logger log.FieldLogger
}

// NewBootInfoService creates a service reading dumps from fs
func NewBootInfoService(fs afero.Fs, logger log.FieldLogger) BootInfoService {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &bootInfoService{
		loader: dump.NewLoader(fs),
		logger: logger,
	}
}

// Load reads a dump and returns the root view over it
func (s *bootInfoService) Load(ctx context.Context, opts LoadOptions) (*bootinformation.BootInformation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := s.logger.WithField("path", opts.Path)
	blob, err := s.loader.ReadBlob(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDumpAccess, err)
	}
	logger.WithField("bytes", len(blob)).Debug("read boot information dump")

	mem, err := s.loader.BuildMemory(blob, opts.StartAddress, opts.MemoryImages)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDumpAccess, err)
	}
	logger.WithField("regions", len(mem.Regions())).Debug("mapped physical memory")

	info, err := bootinformation.Load(blob,
		bootinformation.WithStartAddress(opts.StartAddress),
		bootinformation.WithMemory(mem),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return info, nil
}

// Summarize decodes the selected parts of a loaded blob. Absent tags leave
// their summary field nil.
func (s *bootInfoService) Summarize(ctx context.Context, info *bootinformation.BootInformation, opts SummaryOptions) (*BootInfoSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summary := &BootInfoSummary{
		StartAddress: info.StartAddress(),
		EndAddress:   info.EndAddress(),
		TotalSize:    info.TotalSize(),
	}

	if opts.Tags {
		tagInfos, err := s.summarizeTags(info)
		if err != nil {
			return nil, err
		}
		summary.Tags = tagInfos
	}

	if opts.BasicMemory {
		basic, ok, err := info.BasicMemoryInfo()
		if err != nil {
			return nil, fmt.Errorf("%w: basic memory information: %w", ErrDecode, err)
		}
		if ok {
			summary.BasicMemory = basicMemoryInfo(basic)
		} else {
			s.logger.Debug("no basic memory information tag")
		}
	}

	if opts.MemoryMap {
		mmap, err := s.summarizeMemoryMap(info, opts.IncludeReserved)
		if err != nil {
			return nil, err
		}
		summary.MemoryMap = mmap
	}

	if opts.ElfSections {
		elf, err := s.summarizeElfSections(ctx, info)
		if err != nil {
			return nil, err
		}
		summary.ElfSections = elf
	}

	return summary, nil
}

func (s *bootInfoService) summarizeTags(info *bootinformation.BootInformation) ([]TagInfo, error) {
	out := []TagInfo{}
	it := info.Tags()
	for it.Next() {
		out = append(out, tagInfo(it.Tag()))
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("%w: tag list: %w", ErrDecode, err)
	}
	s.logger.WithField("tags", len(out)).Debug("walked tag list")
	return out, nil
}

func (s *bootInfoService) summarizeMemoryMap(info *bootinformation.BootInformation, includeReserved bool) (*MemoryMapInfo, error) {
	mmap, ok, err := info.MemoryMap()
	if err != nil {
		return nil, fmt.Errorf("%w: memory map: %w", ErrDecode, err)
	}
	if !ok {
		s.logger.Debug("no memory map tag")
		return nil, nil
	}

	out := &MemoryMapInfo{
		EntrySize:    mmap.EntrySize(),
		EntryVersion: mmap.EntryVersion(),
		EntryCount:   mmap.EntryCount(),
		Areas:        []MemoryAreaInfo{},
	}

	available := mmap.MemoryAreas()
	for available.Next() {
		out.AvailableBytes += available.Area().Length()
		if !includeReserved {
			out.Areas = append(out.Areas, memoryAreaInfo(available.Area()))
		}
	}

	if includeReserved {
		entries := mmap.Entries()
		for entries.Next() {
			out.Areas = append(out.Areas, memoryAreaInfo(entries.Area()))
		}
	}

	return out, nil
}

func (s *bootInfoService) summarizeElfSections(ctx context.Context, info *bootinformation.BootInformation) (*ElfSectionsInfo, error) {
	elf, ok, err := info.ElfSections()
	if err != nil {
		return nil, fmt.Errorf("%w: ELF sections: %w", ErrDecode, err)
	}
	if !ok {
		s.logger.Debug("no ELF sections tag")
		return nil, nil
	}

	out := &ElfSectionsInfo{
		Class:              "ELF32",
		Count:              elf.Count(),
		EntrySize:          elf.EntrySize(),
		StringTableIndex:   elf.StringTableIndex(),
		StringTableAddress: elf.StringTableAddress(),
		Sections:           []SectionInfo{},
	}
	if elf.Is64Bit() {
		out.Class = "ELF64"
	}

	var nameErrs *multierror.Error
	it := elf.Sections()
	for it.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		section := it.Section()
		sectionInfo, err := newSectionInfo(section.Index(), section)
		if err != nil {
			nameErrs = multierror.Append(nameErrs, fmt.Errorf("section %d: %w", section.Index(), err))
			continue
		}
		out.Sections = append(out.Sections, sectionInfo)
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("%w: ELF sections: %w", ErrDecode, err)
	}
	if err := nameErrs.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("%w: ELF section names: %w", ErrDecode, err)
	}

	s.logger.WithFields(log.Fields{
		"sections": len(out.Sections),
		"class":    out.Class,
	}).Debug("decoded ELF sections")
	return out, nil
}

func tagInfo(tag interfaces.TagReader) TagInfo {
	return TagInfo{
		Type:   uint32(tag.Type()),
		Name:   tag.Type().String(),
		Size:   tag.Size(),
		Offset: tag.Offset(),
	}
}

func basicMemoryInfo(r interfaces.BasicMemoryInfoReader) *BasicMemoryInfo {
	return &BasicMemoryInfo{LowerKiB: r.MemLower(), UpperKiB: r.MemUpper()}
}

func memoryAreaInfo(a interfaces.MemoryAreaReader) MemoryAreaInfo {
	return MemoryAreaInfo{
		BaseAddress: a.BaseAddress(),
		Length:      a.Length(),
		EndAddress:  a.EndAddress(),
		Type:        a.Type().String(),
		TypeCode:    a.TypeCode(),
		Available:   a.IsAvailable(),
	}
}

func newSectionInfo(index uint32, s interfaces.SectionReader) (SectionInfo, error) {
	name, err := s.Name()
	if err != nil {
		return SectionInfo{}, err
	}
	return SectionInfo{
		Index:        index,
		Name:         name,
		Type:         s.Type().String(),
		TypeCode:     s.TypeCode(),
		StartAddress: s.StartAddress(),
		EndAddress:   s.EndAddress(),
		Size:         s.Size(),
		Flags:        s.Flags().String(),
	}, nil
}
