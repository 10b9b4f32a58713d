package inspect

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/deploymenttheory/go-multiboot2/pkg/services"
)

func sampleResponse() *Response {
	return &Response{
		ReportID:   "5f1c2c0e-8f7a-4a43-9a1e-0c7b8f3c1d2e",
		View:       ViewAll,
		DecodeTime: 1500 * time.Microsecond,
		Summary: &services.BootInfoSummary{
			Source:       "/mbi.bin",
			StartAddress: 0x100000,
			EndAddress:   0x100000 + 4096,
			TotalSize:    4096,
			Tags: []services.TagInfo{
				{Type: 4, Name: "BasicMemoryInfo", Size: 16, Offset: 8},
			},
			BasicMemory: &services.BasicMemoryInfo{LowerKiB: 639, UpperKiB: 523264},
			MemoryMap: &services.MemoryMapInfo{
				EntrySize:      24,
				EntryCount:     1,
				AvailableBytes: 0x9FC00,
				Areas: []services.MemoryAreaInfo{
					{BaseAddress: 0, Length: 0x9FC00, EndAddress: 0x9FC00, Type: "Available", TypeCode: 1, Available: true},
				},
			},
			ElfSections: &services.ElfSectionsInfo{
				Class:              "ELF64",
				Count:              2,
				EntrySize:          64,
				StringTableIndex:   1,
				StringTableAddress: 0x200000,
				Sections: []services.SectionInfo{
					{Index: 1, Name: ".text", Type: "Program", TypeCode: 1, StartAddress: 0x100000, EndAddress: 0x101000, Size: 4096, Flags: "AX"},
				},
			},
		},
	}
}

func TestFormatOutput(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		wantErr  bool
		validate func(*testing.T, string)
	}{
		{
			name:   "table format",
			format: "table",
			validate: func(t *testing.T, output string) {
				assert.Contains(t, output, "Boot information: /mbi.bin")
				assert.Contains(t, output, "(4.0 KiB)")
				assert.Contains(t, output, "Tags (1):")
				assert.Contains(t, output, "BasicMemoryInfo")
				assert.Contains(t, output, "Lower: 639 KiB")
				assert.Contains(t, output, "Upper: 511 MiB")
				assert.Contains(t, output, "9fc00")
				assert.Contains(t, output, "Available (1)")
				assert.Contains(t, output, "ELF64")
				assert.Contains(t, output, ".text")
				assert.Contains(t, output, "AX")
				assert.Contains(t, output, "5f1c2c0e-8f7a-4a43-9a1e-0c7b8f3c1d2e")
			},
		},
		{
			name:   "default format is table",
			format: "",
			validate: func(t *testing.T, output string) {
				assert.True(t, strings.HasPrefix(output, "Boot information:"))
			},
		},
		{
			name:   "json format",
			format: "json",
			validate: func(t *testing.T, output string) {
				var decoded map[string]interface{}
				require.NoError(t, json.Unmarshal([]byte(output), &decoded))
				assert.Equal(t, "all", decoded["view"])
				summary := decoded["summary"].(map[string]interface{})
				assert.Equal(t, float64(4096), summary["total_size"])
			},
		},
		{
			name:   "yaml format",
			format: "yaml",
			validate: func(t *testing.T, output string) {
				var decoded map[string]interface{}
				require.NoError(t, yaml.Unmarshal([]byte(output), &decoded))
				assert.Equal(t, "5f1c2c0e-8f7a-4a43-9a1e-0c7b8f3c1d2e", decoded["report_id"])
				assert.Contains(t, output, "name: .text")
			},
		},
		{
			name:    "unsupported format",
			format:  "xml",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := FormatOutput(&buf, sampleResponse(), tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validate(t, buf.String())
		})
	}
}

func TestFormatOutput_EmptyParts(t *testing.T) {
	resp := sampleResponse()
	resp.Summary.Tags = nil
	resp.Summary.BasicMemory = nil
	resp.Summary.MemoryMap.Areas = nil
	resp.Summary.ElfSections.Sections = nil

	var buf bytes.Buffer
	require.NoError(t, FormatOutput(&buf, resp, "table"))
	output := buf.String()
	assert.Contains(t, output, "Tags (0):")
	assert.NotContains(t, output, "Basic memory:")
	assert.Contains(t, output, "No memory areas.")
	assert.Contains(t, output, "No sections.")
}

func TestFormatOutput_ViewSelectsTagsTable(t *testing.T) {
	tests := []struct {
		name     string
		view     View
		wantTags bool
	}{
		{"all", ViewAll, true},
		{"tags", ViewTags, true},
		{"mmap", ViewMemoryMap, false},
		{"sections", ViewSections, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := sampleResponse()
			resp.View = tt.view
			resp.Summary.Tags = []services.TagInfo{}

			var buf bytes.Buffer
			require.NoError(t, FormatOutput(&buf, resp, "table"))
			if tt.wantTags {
				assert.Contains(t, buf.String(), "Tags (0):")
			} else {
				assert.NotContains(t, buf.String(), "Tags (")
			}
		})
	}
}

func TestFormatSummary(t *testing.T) {
	summary := FormatSummary(sampleResponse())
	assert.Equal(t, "/mbi.bin: 4.0 KiB of boot information, 1 tags, 639 KiB available, 1 ELF sections", summary)
}
