package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-multiboot2/internal/dump"
)

func TestDumpTarget(t *testing.T) {
	tests := []struct {
		name    string
		target  DumpTarget
		wantErr bool
		want    string
	}{
		{
			name:   "path only",
			target: DumpTarget{Path: "mbi.bin"},
			want:   "mbi.bin @ 0x0",
		},
		{
			name:   "one memory image",
			target: DumpTarget{Path: "mbi.bin", StartAddress: 0x100000, MemoryImages: []dump.MemoryImage{{Base: 0x200000, Path: "a.bin"}}},
			want:   "mbi.bin @ 0x100000 (+1 memory image)",
		},
		{
			name: "two memory images",
			target: DumpTarget{Path: "mbi.bin", MemoryImages: []dump.MemoryImage{
				{Base: 0x200000, Path: "a.bin"},
				{Base: 0x300000, Path: "b.bin"},
			}},
			want: "mbi.bin @ 0x0 (+2 memory images)",
		},
		{
			name:    "missing path",
			target:  DumpTarget{},
			wantErr: true,
		},
		{
			name:    "memory image without path",
			target:  DumpTarget{Path: "mbi.bin", MemoryImages: []dump.MemoryImage{{Base: 0x200000}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.target.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, tt.target.String())
		})
	}
}

func TestCommonError(t *testing.T) {
	cause := errors.New("short read")
	err := NewError(ErrCodeDumpAccess, "failed to load", cause)

	assert.Equal(t, "failed to load: short read", err.Error())
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, ExitDumpAccess, err.ExitCode())
	assert.Equal(t, "bare", NewError(ErrCodeInvalidInput, "bare", nil).Error())
	assert.Equal(t, ExitGeneric, NewError("SOMETHING_ELSE", "x", nil).ExitCode())
}

func TestExitCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain error", errors.New("boom"), ExitGeneric},
		{"invalid input", NewError(ErrCodeInvalidInput, "bad", nil), ExitInvalidInput},
		{"decode failed", NewError(ErrCodeDecodeFailed, "bad", nil), ExitDecodeFailed},
		{"tag not found", NewError(ErrCodeTagNotFound, "absent", nil), ExitTagNotFound},
		{"timeout", NewError(ErrCodeTimeout, "slow", nil), ExitGeneric},
		{"wrapped", fmt.Errorf("command: %w", NewError(ErrCodeDumpAccess, "x", nil)), ExitDumpAccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeOf(tt.err))
		})
	}
}

func TestContextVerbosity(t *testing.T) {
	var buf bytes.Buffer
	ctx := NewContext()
	ctx.Logger = NewBufferLogger(&buf)

	assert.Equal(t, "table", ctx.OutputFormat)

	ctx.ApplyVerbosity()
	assert.Equal(t, log.InfoLevel, ctx.Logger.GetLevel())
	ctx.Log("hidden")
	assert.NotContains(t, buf.String(), "hidden")

	ctx.Verbose = true
	ctx.ApplyVerbosity()
	assert.True(t, IsDebugLevel(ctx.Logger))
	ctx.Log("shown")
	assert.Contains(t, buf.String(), "shown")

	// Quiet wins over verbose
	ctx.Quiet = true
	ctx.ApplyVerbosity()
	assert.Equal(t, log.ErrorLevel, ctx.Logger.GetLevel())
	ctx.Error("failure")
	assert.Contains(t, buf.String(), "level=error msg=failure")
}

func TestContextWithTimeout(t *testing.T) {
	ctx := NewContext()
	timed, cancel := ctx.WithTimeout(time.Millisecond)
	defer cancel()

	<-timed.Done()
	assert.ErrorIs(t, timed.Err(), context.DeadlineExceeded)
	assert.NoError(t, ctx.Err())
	assert.Equal(t, ctx.OutputFormat, timed.OutputFormat)
}

func TestNullLogger(t *testing.T) {
	logger := NewNullLogger()
	logger.Info("discarded")
	logger.WithField("k", "v").Warn("discarded")
}
