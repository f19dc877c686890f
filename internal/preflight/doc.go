// Package preflight provides readiness checks for the binaries and
// filesystem paths ffkit depends on.
//
// The CLI "ffkit doctor" command renders RunAll results, and "ffkit run" /
// "ffkit concat" call CheckOutputPath before spawning ffmpeg so an unwritable
// destination fails fast instead of after a long transcode.
package preflight
