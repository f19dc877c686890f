package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ffkit/internal/config"
	"ffkit/internal/testsupport"
)

const ffprobeStub = `for arg in "$@"; do
  if [ "$arg" = "-version" ]; then echo "ffprobe version test"; exit 0; fi
done
case "$*" in
  *"stream=width,height"*)
    case "$*" in
      *wide*) echo 1920x1080 ;;
      *broken*) echo "no such file" >&2; exit 1 ;;
      *) echo 640x480 ;;
    esac ;;
  *"-select_streams a"*)
    case "$*" in
      *silent*) ;;
      *) echo "1|aac|LC|audio" ;;
    esac ;;
  *"-of json"*)
    echo '{"streams":[{"index":0,"codec_name":"h264","codec_type":"video","width":1920,"height":1080,"r_frame_rate":"30/1"},{"index":1,"codec_name":"aac","codec_type":"audio","channels":2,"sample_rate":"48000"}],"format":{"format_name":"mov,mp4","duration":"10.0","size":"2048","bit_rate":"1638"}}' ;;
  *) exit 1 ;;
esac`

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("FFKIT_FFMPEG", "")
	t.Setenv("FFKIT_FFPROBE", "")

	defaults := []testsupport.ConfigOption{
		testsupport.WithRecordingFFmpeg(0),
		testsupport.WithStubScript("ffprobe", ffprobeStub),
	}
	cfg := testsupport.NewConfig(t, append(defaults, opts...)...)

	configPath := filepath.Join(homeDir, ".config", "ffkit", "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		baseDir:    testsupport.BaseDir(cfg),
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content, err := cfg.Encode()
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
