// Package deps resolves the external binaries ffkit shells out to and reports
// whether they are usable.
package deps
