// Package main hosts the ffkit CLI entrypoint and command graph.
//
// The Cobra-based command tree maps flags onto the ffmpeg command builder,
// runs the clip concatenation workflow, prints ffprobe results as tables, and
// reports on the local toolchain. Configuration resolution and logger setup
// live in commandContext so subcommands only deal with their own flags.
package main
