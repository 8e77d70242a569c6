//go:build !simdebug
// +build !simdebug

package common

// Assert is compiled out unless the simdebug build tag is set.
func Assert(cond bool, format string, args ...any) {}
