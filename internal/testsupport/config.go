package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ffkit/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Logging.Dir = filepath.Join(base, "logs")
	if err := os.MkdirAll(cfgVal.Logging.Dir, 0o755); err != nil {
		t.Fatalf("mkdir log dir: %v", err)
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithConcat overrides the concat section of the test config.
func WithConcat(codec string, fps int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Concat.VideoCodec = codec
		b.cfg.Concat.FPS = fps
	}
}

// WithStubbedBinaries writes stub executables that exit 0 for the provided
// names and prepends them to PATH. If names is empty, ffmpeg and ffprobe are
// stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"ffmpeg", "ffprobe"}
		}
		for _, name := range names {
			b.writeStub(name, "exit 0")
		}
	}
}

// WithStubScript writes a stub executable whose body is the given shell
// script. Binaries named ffmpeg or ffprobe are also wired into the config.
func WithStubScript(name, body string) ConfigOption {
	return func(b *configBuilder) {
		b.writeStub(name, body)
	}
}

// WithRecordingFFmpeg installs an ffmpeg stub that writes each argument on
// its own line to RecordedArgsPath and exits with exitCode.
func WithRecordingFFmpeg(exitCode int) ConfigOption {
	return func(b *configBuilder) {
		record := filepath.Join(b.baseDir, "ffmpeg.args")
		b.writeStub("ffmpeg", fmt.Sprintf("for arg in \"$@\"; do printf '%%s\\n' \"$arg\"; done > %q\necho 'ffmpeg stub' >&2\nexit %d", record, exitCode))
	}
}

func (b *configBuilder) writeStub(name, body string) {
	binDir := filepath.Join(b.baseDir, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		b.t.Fatalf("mkdir bin dir: %v", err)
	}
	target := filepath.Join(binDir, name)
	script := []byte("#!/bin/sh\n" + body + "\n")
	if err := os.WriteFile(target, script, 0o755); err != nil {
		b.t.Fatalf("write stub %s: %v", name, err)
	}

	oldPath := os.Getenv("PATH")
	if !strings.HasPrefix(oldPath, binDir+string(os.PathListSeparator)) {
		b.t.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath)
	}

	switch name {
	case "ffmpeg":
		b.cfg.Binaries.FFmpeg = target
	case "ffprobe":
		b.cfg.Binaries.FFprobe = target
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Logging.Dir)
}

// RecordedArgsPath returns the file WithRecordingFFmpeg writes to.
func RecordedArgsPath(cfg *config.Config) string {
	return filepath.Join(BaseDir(cfg), "ffmpeg.args")
}

// RecordedArgs reads the argv captured by WithRecordingFFmpeg.
func RecordedArgs(t testing.TB, cfg *config.Config) []string {
	t.Helper()

	data, err := os.ReadFile(RecordedArgsPath(cfg))
	if err != nil {
		t.Fatalf("read recorded args: %v", err)
	}
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}
