package preflight

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"ffkit/internal/config"
	"ffkit/internal/deps"
	"ffkit/internal/services"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckFreeSpace verifies that the filesystem holding path has at least
// minBytes available to unprivileged users.
func CheckFreeSpace(name, path string, minBytes uint64) Result {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}
	free := stat.Bavail * uint64(stat.Bsize) //nolint:gosec
	detail := fmt.Sprintf("%s (%s free)", path, formatBytes(free))
	if free < minBytes {
		return Result{Name: name, Detail: detail + fmt.Sprintf(", need %s", formatBytes(minBytes))}
	}
	return Result{Name: name, Passed: true, Detail: detail}
}

// CheckOutputPath verifies that the directory an output file will be written
// to is accessible.
func CheckOutputPath(output string) Result {
	dir := filepath.Dir(output)
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return CheckDirectoryAccess("Output directory", dir)
}

// CheckSystemDeps evaluates the external binaries configured in cfg.
func CheckSystemDeps(ctx context.Context, cfg *config.Config) []deps.Status {
	return deps.CheckBinaries(ctx, deps.FFmpegRequirements(cfg.Binaries.FFmpeg, cfg.Binaries.FFprobe))
}

// RequireBinaries fails with services.ErrPrecondition when a required binary
// configured in cfg cannot be resolved.
func RequireBinaries(ctx context.Context, cfg *config.Config) error {
	missing := deps.Missing(CheckSystemDeps(ctx, cfg))
	if len(missing) == 0 {
		return nil
	}
	details := make([]string, 0, len(missing))
	for _, status := range missing {
		details = append(details, status.Detail)
	}
	return services.Wrap(services.ErrPrecondition, "preflight", "binaries",
		strings.Join(details, "; ")+" (run ffkit doctor)", nil)
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
