// Package ffmpeg builds and runs ffmpeg command lines.
//
// Key types:
//   - Args: the ordered, append-only token list handed to the binary
//   - Command: fluent builder with one method per flag; every method appends
//     tokens in call order and returns the same *Command
//   - Runner: spawns the binary, streams stdout/stderr lines to the logger,
//     and maps non-zero exits to services.ProcessError
//
// The builder never validates values. Codec names, sizes, and filtergraphs
// are passed through and rejected, if at all, by ffmpeg itself.
package ffmpeg
