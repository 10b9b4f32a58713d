package inspect

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/deploymenttheory/go-multiboot2/pkg/services"
)

// FormatOutput writes the response to w in the given format
func FormatOutput(w io.Writer, response *Response, format string) error {
	switch format {
	case "json":
		return formatJSON(w, response)
	case "yaml":
		return formatYAML(w, response)
	case "table", "":
		return formatTable(w, response)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// formatTable renders each decoded part as its own table
func formatTable(w io.Writer, response *Response) error {
	s := response.Summary
	fmt.Fprintf(w, "Boot information: %s\n", s.Source)
	fmt.Fprintf(w, "Address range: %#x - %#x (%s)\n\n", s.StartAddress, s.EndAddress, humanize.IBytes(uint64(s.TotalSize)))

	if response.View == ViewAll || response.View == ViewTags {
		formatTags(w, s.Tags)
	}
	if s.BasicMemory != nil {
		formatBasicMemory(w, s.BasicMemory)
	}
	if s.MemoryMap != nil {
		formatMemoryMap(w, s.MemoryMap)
	}
	if s.ElfSections != nil {
		formatSections(w, s.ElfSections)
	}

	fmt.Fprintf(w, "Report %s decoded in %v\n", response.ReportID, response.DecodeTime)
	return nil
}

func formatTags(out io.Writer, tags []services.TagInfo) {
	fmt.Fprintf(out, "Tags (%d):\n", len(tags))
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "OFFSET\tTYPE\tNAME\tSIZE\n")
	fmt.Fprintf(w, "------\t----\t----\t----\n")
	for _, tag := range tags {
		fmt.Fprintf(w, "%#x\t%d\t%s\t%d\n", tag.Offset, tag.Type, tag.Name, tag.Size)
	}
	w.Flush()
	fmt.Fprintln(out)
}

func formatBasicMemory(out io.Writer, basic *services.BasicMemoryInfo) {
	fmt.Fprintf(out, "Basic memory:\n")
	fmt.Fprintf(out, "  Lower: %s\n", humanize.IBytes(uint64(basic.LowerKiB)*1024))
	fmt.Fprintf(out, "  Upper: %s\n\n", humanize.IBytes(uint64(basic.UpperKiB)*1024))
}

func formatMemoryMap(out io.Writer, mmap *services.MemoryMapInfo) {
	fmt.Fprintf(out, "Memory map (entry size %d, version %d, %d entries, %s available):\n",
		mmap.EntrySize, mmap.EntryVersion, mmap.EntryCount, humanize.IBytes(mmap.AvailableBytes))
	if len(mmap.Areas) == 0 {
		fmt.Fprintf(out, "  No memory areas.\n\n")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "START\tEND\tLENGTH\tTYPE\n")
	fmt.Fprintf(w, "-----\t---\t------\t----\n")
	for _, area := range mmap.Areas {
		fmt.Fprintf(w, "%#016x\t%#016x\t%s\t%s (%d)\n",
			area.BaseAddress, area.EndAddress, humanize.IBytes(area.Length), area.Type, area.TypeCode)
	}
	w.Flush()
	fmt.Fprintln(out)
}

func formatSections(out io.Writer, elf *services.ElfSectionsInfo) {
	fmt.Fprintf(out, "ELF sections (%s, %d headers, string table %d at %#x):\n",
		elf.Class, elf.Count, elf.StringTableIndex, elf.StringTableAddress)
	if len(elf.Sections) == 0 {
		fmt.Fprintf(out, "  No sections.\n\n")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "IDX\tNAME\tTYPE\tSTART\tEND\tSIZE\tFLAGS\n")
	fmt.Fprintf(w, "---\t----\t----\t-----\t---\t----\t-----\n")
	for _, section := range elf.Sections {
		fmt.Fprintf(w, "%d\t%s\t%s\t%#x\t%#x\t%s\t%s\n",
			section.Index, section.Name, section.Type, section.StartAddress, section.EndAddress,
			humanize.IBytes(section.Size), section.Flags)
	}
	w.Flush()
	fmt.Fprintln(out)
}

// formatJSON formats results as JSON
func formatJSON(w io.Writer, response *Response) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}

// formatYAML formats results as YAML
func formatYAML(w io.Writer, response *Response) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(response)
}

// FormatSummary provides a one-line summary for verbose output
func FormatSummary(response *Response) string {
	s := response.Summary
	summary := fmt.Sprintf("%s: %s of boot information", s.Source, humanize.IBytes(uint64(s.TotalSize)))
	if s.Tags != nil {
		summary += fmt.Sprintf(", %d tags", len(s.Tags))
	}
	if s.MemoryMap != nil {
		summary += fmt.Sprintf(", %s available", humanize.IBytes(s.MemoryMap.AvailableBytes))
	}
	if s.ElfSections != nil {
		summary += fmt.Sprintf(", %d ELF sections", len(s.ElfSections.Sections))
	}
	return summary
}
