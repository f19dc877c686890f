// Package ffprobe runs the ffprobe binary against single media files.
//
// Key types:
//   - Prober: spawns ffprobe; owns the binary path and logger
//   - Dimensions: width/height of the first video stream
//   - Result: parsed JSON inspection containing streams and format metadata
//
// Entry points:
//   - Prober.Dimensions: compact WxH query for the first video stream
//   - Prober.HasAudioStream: audio stream presence check
//   - Prober.Inspect: full JSON inspection
//
// Non-zero exits surface as *services.ProcessError so callers can inspect
// the exit code with errors.As.
package ffprobe
