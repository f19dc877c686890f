package ffmpeg

// LogLevel is a value accepted by ffmpeg's -loglevel flag.
type LogLevel string

const (
	LogQuiet   LogLevel = "quiet"
	LogPanic   LogLevel = "panic"
	LogFatal   LogLevel = "fatal"
	LogError   LogLevel = "error"
	LogWarning LogLevel = "warning"
	LogInfo    LogLevel = "info"
	LogVerbose LogLevel = "verbose"
	LogDebug   LogLevel = "debug"
	LogTrace   LogLevel = "trace"
)

// CropMode is a value accepted by ffmpeg's -apply_cropping flag.
type CropMode string

const (
	CropNone      CropMode = "none"
	CropAll       CropMode = "all"
	CropCodec     CropMode = "codec"
	CropContainer CropMode = "container"
)

// ComplexFilterOptions carries the value of -filter_complex.
type ComplexFilterOptions struct {
	Filtergraph string
}
