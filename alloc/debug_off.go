//go:build !arenadebug

package alloc

const debugAsserts = false
