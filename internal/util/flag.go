package util

import "flag"

// Flag registers a flag.Value under name and returns it, so that
// declaration and registration can happen in the same expression.
func Flag[T flag.Value](name string, value T, usage string) T {
	flag.Var(value, name, usage)
	return value
}
