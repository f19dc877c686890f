// Package concat joins clips of differing frame sizes into one video.
//
// Every input is probed concurrently, the largest width and height become the
// target frame, and each input is scaled down to fit and letterboxed onto that
// frame before the concat filter joins them. Audio is dropped.
package concat
