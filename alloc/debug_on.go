//go:build arenadebug

package alloc

// debugAsserts enables variant checks on every link and payload access.
const debugAsserts = true
