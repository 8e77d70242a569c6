//go:build simdebug
// +build simdebug

package common

import "fmt"

// Assert panics when cond is false. Only active with -tags simdebug.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic("invariant violated: " + fmt.Sprintf(format, args...))
	}
}
