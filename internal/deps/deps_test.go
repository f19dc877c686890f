package deps

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\necho 'ffmpeg version 7.0.2 Copyright (c) 2000-2024'\necho 'built with gcc'\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Unset", Command: "  "},
	}

	results := CheckBinaries(context.Background(), reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Path != present {
		t.Fatalf("expected resolved path %q, got %q", present, results[0].Path)
	}
	if results[0].Version != "ffmpeg version 7.0.2 Copyright (c) 2000-2024" {
		t.Fatalf("unexpected version line %q", results[0].Version)
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}

	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatalf("expected detail message for missing binary")
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}

	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("unexpected status for unset command: %#v", results[2])
	}
}

func TestCheckBinariesKeepsAvailableWhenVersionFails(t *testing.T) {
	failing := filepath.Join(t.TempDir(), "ffprobe")
	if err := os.WriteFile(failing, []byte("#!/bin/sh\nexit 2\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	results := CheckBinaries(context.Background(), []Requirement{{Name: "FFprobe", Command: failing}})
	if !results[0].Available {
		t.Fatal("expected binary on disk to be reported available")
	}
	if results[0].Version != "" || results[0].Detail == "" {
		t.Fatalf("expected version failure detail, got %#v", results[0])
	}
}

func TestMissingSkipsOptional(t *testing.T) {
	statuses := []Status{
		{Name: "FFmpeg", Available: true},
		{Name: "FFprobe"},
		{Name: "Extra", Optional: true},
	}
	missing := Missing(statuses)
	if len(missing) != 1 || missing[0].Name != "FFprobe" {
		t.Fatalf("unexpected missing list %#v", missing)
	}
}

func TestFFmpegRequirements(t *testing.T) {
	reqs := FFmpegRequirements("/opt/ffmpeg", "ffprobe")
	if len(reqs) != 2 || reqs[0].Command != "/opt/ffmpeg" || reqs[1].Command != "ffprobe" {
		t.Fatalf("unexpected requirements %#v", reqs)
	}
}
