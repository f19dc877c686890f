package preflight

import (
	"context"
	"fmt"

	"ffkit/internal/config"
	"ffkit/internal/deps"
)

// MinFreeBytes is the free space below which an output directory is flagged.
const MinFreeBytes = 1 << 30

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every applicable check for cfg with outputs landing in
// outputDir.
func RunAll(ctx context.Context, cfg *config.Config, outputDir string) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	for _, status := range CheckSystemDeps(ctx, cfg) {
		results = append(results, fromStatus(status))
	}

	if outputDir != "" {
		access := CheckDirectoryAccess("Output directory", outputDir)
		results = append(results, access)
		if access.Passed {
			results = append(results, CheckFreeSpace("Output free space", outputDir, MinFreeBytes))
		}
	}

	// Log directory (when configured)
	if cfg.Logging.Dir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Logging.Dir))
	}

	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}

func fromStatus(status deps.Status) Result {
	result := Result{Name: status.Name, Passed: status.Available || status.Optional}
	switch {
	case !status.Available:
		result.Detail = status.Detail
	case status.Version != "":
		result.Detail = fmt.Sprintf("%s (%s)", status.Path, status.Version)
	default:
		result.Detail = status.Path
	}
	return result
}
