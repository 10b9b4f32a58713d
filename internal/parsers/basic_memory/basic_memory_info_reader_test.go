package basicmemory

import (
	"testing"

	"github.com/deploymenttheory/go-multiboot2/internal/parsers/tags"
	"github.com/deploymenttheory/go-multiboot2/internal/testutil"
	"github.com/deploymenttheory/go-multiboot2/internal/types"
)

func TestBasicMemoryInfoReader_ValidData(t *testing.T) {
	tag, err := tags.NewTag(testutil.BasicMemoryInfoTag(639, 2096000), 8)
	if err != nil {
		t.Fatalf("NewTag failed: %v", err)
	}

	reader, err := NewBasicMemoryInfoReader(tag)
	if err != nil {
		t.Fatalf("NewBasicMemoryInfoReader failed: %v", err)
	}

	if reader.MemLower() != 639 {
		t.Errorf("MemLower() = %d, want 639", reader.MemLower())
	}
	if reader.MemUpper() != 2096000 {
		t.Errorf("MemUpper() = %d, want 2096000", reader.MemUpper())
	}
}

func TestBasicMemoryInfoReader_ErrorCases(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{"Wrong tag type", testutil.Tag(types.TagTypeMemoryMap, make([]byte, 8))},
		{"Payload too small", testutil.Tag(types.TagTypeBasicMemoryInfo, make([]byte, 4))},
		{"Empty payload", testutil.Tag(types.TagTypeBasicMemoryInfo, nil)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tag, err := tags.NewTag(tc.raw, 8)
			if err != nil {
				t.Fatalf("NewTag failed: %v", err)
			}
			if _, err := NewBasicMemoryInfoReader(tag); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
