package main

import (
	"path/filepath"
	"testing"
)

func TestDoctorReportsHealthyToolchain(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"doctor", "--output-dir", t.TempDir()}, env.configPath)
	// Free space depends on the host; only binaries and access are asserted.
	if err != nil {
		requireContains(t, err.Error(), "checks failed")
	}
	requireContains(t, out, "== ffkit doctor ==")
	requireContains(t, out, env.configPath)
	requireContains(t, out, "[OK] "+env.cfg.Binaries.FFprobe+" (ffprobe version test)")
	requireContains(t, out, "Output directory:")
}

func TestDoctorFailsWhenBinaryMissing(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.Binaries.FFprobe = filepath.Join(env.baseDir, "nope", "ffprobe")
	writeTestConfig(t, env.configPath, env.cfg)

	out, _, err := runCLI(t, []string{"doctor", "--output-dir", t.TempDir()}, env.configPath)
	if err == nil {
		t.Fatal("expected doctor to fail")
	}
	requireContains(t, out, "[ERROR] binary")
	requireContains(t, out, "failed: FFprobe")
}
