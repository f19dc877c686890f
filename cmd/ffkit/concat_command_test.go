package main

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"ffkit/internal/concat"
	"ffkit/internal/testsupport"
)

func TestConcatRunsNormalisingCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	output := filepath.Join(env.baseDir, "joined.mp4")
	clips := testsupport.Clips(t, filepath.Join(env.baseDir, "clips"), "wide.mp4", "small.mp4")

	out, _, err := runCLI(t, append([]string{"concat", "-o", output}, clips...), env.configPath)
	if err != nil {
		t.Fatalf("concat: %v", err)
	}
	requireContains(t, out, "Concatenated 2 clips into "+output)

	args := strings.Join(testsupport.RecordedArgs(t, env.cfg), " ")
	requireContains(t, args, "-loglevel info -i "+clips[0]+" -i "+clips[1]+" -filter_complex")
	requireContains(t, args, "[1:v]scale=1920:1080:force_original_aspect_ratio=decrease,pad=1920:1080:(ow-iw)/2:(oh-ih)/2,setsar=1[v1];")
	requireContains(t, args, "[v0][v1]concat=n=2:v=1[outv] -c:v libx264 -r 30 -map [outv] "+output+" -y")
}

func TestConcatFlagsOverrideConfig(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithConcat("libx265", 25))

	out, _, err := runCLI(t, []string{"concat", "--dry-run", "--fps", "50", "-o", "out.mp4", "a.mp4"}, env.configPath)
	if err != nil {
		t.Fatalf("concat --dry-run: %v", err)
	}
	requireContains(t, out, "-c:v libx265 -r 50 -map '[outv]' out.mp4 -y")
}

func TestConcatReportsProbeFailure(t *testing.T) {
	env := setupCLITestEnv(t)
	output := filepath.Join(env.baseDir, "joined.mp4")

	_, _, err := runCLI(t, []string{"concat", "-o", output, "a.mp4", "broken.mp4"}, env.configPath)
	if !errors.Is(err, concat.ErrProbe) {
		t.Fatalf("expected ErrProbe, got %v", err)
	}
}

func TestConcatReportsTranscodeFailure(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithRecordingFFmpeg(1))
	output := filepath.Join(env.baseDir, "joined.mp4")

	_, _, err := runCLI(t, []string{"concat", "-o", output, "a.mp4"}, env.configPath)
	if !errors.Is(err, concat.ErrTranscode) {
		t.Fatalf("expected ErrTranscode, got %v", err)
	}
}

func TestConcatRejectsNonPositiveFPS(t *testing.T) {
	env := setupCLITestEnv(t)

	for _, rate := range []string{"0", "-5"} {
		_, _, err := runCLI(t, []string{"concat", "--dry-run", "--fps=" + rate, "-o", "out.mp4", "a.mp4"}, env.configPath)
		if err == nil || !strings.Contains(err.Error(), "--fps must be positive") {
			t.Fatalf("--fps %s: expected rejection, got %v", rate, err)
		}
	}
}
