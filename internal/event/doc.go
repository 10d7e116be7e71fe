// Package event defines the data model shared by the robot, the host tree
// and the trace log.
//
// This package imports nothing internal. Every other internal package
// imports event; event stays the foundational layer.
//
// Key design constraints:
//   - Caller-supplied fields are Opt values: present or absent, never "zero means unset"
//   - Merge is field-by-field, raw present wins over stored
//   - Built events carry exactly one category payload
//   - Traces use DOM field names (clientX, changedTouches, ...)
package event
