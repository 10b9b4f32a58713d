package inspect

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/deploymenttheory/go-multiboot2/pkg/app"
	"github.com/deploymenttheory/go-multiboot2/pkg/services"
)

// Handle processes an inspection request
func Handle(ctx *app.Context, svc services.BootInfoService, req *Request) (*Response, error) {
	startTime := time.Now()

	// 1. Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}

	logger := ctx.Logger.WithFields(log.Fields{
		"dump": req.Target.Path,
		"view": req.View,
	})
	logger.Debugf("Inspecting %s", req.Target.String())

	// 2. Load the dump and map physical memory
	info, err := svc.Load(ctx, services.LoadOptions{
		Path:         req.Target.Path,
		StartAddress: req.Target.StartAddress,
		MemoryImages: req.Target.MemoryImages,
	})
	if err != nil {
		return nil, classify(err, "failed to load boot information")
	}
	logger.WithField("total_size", info.TotalSize()).Debug("Loaded boot information")

	// 3. Decode the parts the view asks for
	summary, err := svc.Summarize(ctx, info, req.SummaryOptions())
	if err != nil {
		return nil, classify(err, "failed to decode boot information")
	}
	summary.Source = req.Target.Path

	if err := checkPresent(req.View, summary); err != nil {
		return nil, err
	}

	response := &Response{
		ReportID:   uuid.New().String(),
		View:       req.View,
		Summary:    summary,
		DecodeTime: time.Since(startTime),
	}
	logger.WithField("report_id", response.ReportID).Debugf("Decoded in %v", response.DecodeTime)

	return response, nil
}

// checkPresent fails views that target a single tag when the tag is absent
func checkPresent(view View, summary *services.BootInfoSummary) error {
	switch {
	case view == ViewMemoryMap && summary.MemoryMap == nil:
		return app.NewError(app.ErrCodeTagNotFound, "boot information has no memory map tag", nil)
	case view == ViewSections && summary.ElfSections == nil:
		return app.NewError(app.ErrCodeTagNotFound, "boot information has no ELF sections tag", nil)
	}
	return nil
}

func classify(err error, message string) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return app.NewError(app.ErrCodeTimeout, message, err)
	case errors.Is(err, services.ErrDumpAccess):
		return app.NewError(app.ErrCodeDumpAccess, message, err)
	default:
		return app.NewError(app.ErrCodeDecodeFailed, message, err)
	}
}
