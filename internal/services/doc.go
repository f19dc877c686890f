// Package services defines shared utilities consumed by the ffmpeg runner,
// the ffprobe client, and the concatenation workflow.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers and workflow stage names for
//     logging.
//   - Structured error markers, the typed ProcessError for non-zero exits, and
//     the Wrap helper that tags failures with a stage and operation.
package services
