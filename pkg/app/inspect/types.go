package inspect

import (
	"time"

	"github.com/deploymenttheory/go-multiboot2/pkg/app"
	"github.com/deploymenttheory/go-multiboot2/pkg/services"
)

// View selects which part of the boot information a request decodes
type View string

const (
	ViewAll       View = "all"
	ViewTags      View = "tags"
	ViewMemoryMap View = "mmap"
	ViewSections  View = "sections"
)

// Views lists every supported view
var Views = []View{ViewAll, ViewTags, ViewMemoryMap, ViewSections}

// Request represents a boot information inspection request
type Request struct {
	Target app.DumpTarget
	View   View

	// List reserved memory map entries as well as available ones
	ShowReserved bool
	OutputFormat string
}

// Response represents a decoded boot information report
type Response struct {
	ReportID   string                    `json:"report_id" yaml:"report_id"`
	View       View                      `json:"view" yaml:"view"`
	Summary    *services.BootInfoSummary `json:"summary" yaml:"summary"`
	DecodeTime time.Duration             `json:"decode_time" yaml:"decode_time"`
}

// SummaryOptions maps the view onto the parts the service decodes
func (r *Request) SummaryOptions() services.SummaryOptions {
	switch r.View {
	case ViewTags:
		return services.SummaryOptions{Tags: true}
	case ViewMemoryMap:
		return services.SummaryOptions{MemoryMap: true, IncludeReserved: r.ShowReserved}
	case ViewSections:
		return services.SummaryOptions{ElfSections: true}
	default:
		opts := services.AllParts()
		opts.IncludeReserved = r.ShowReserved
		return opts
	}
}
