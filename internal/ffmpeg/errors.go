package ffmpeg

import (
	"fmt"

	"ffkit/internal/services"
)

var (
	// ErrNoInput is returned by Run when Input was never called.
	ErrNoInput = fmt.Errorf("%w: input file not specified, use Input(file)", services.ErrPrecondition)
	// ErrNoOutput is returned by Run when Output was never called.
	ErrNoOutput = fmt.Errorf("%w: output file not specified, use Output(file)", services.ErrPrecondition)
)
