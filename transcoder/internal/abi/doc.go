// Package abi provides internal numeric and reflection helpers for the
// transcoder package.
//
// # Contents
//
//   - coerce.go: any -> int64 / float64 intermediates with range classification
//   - helpers.go: Go type names and sequence detection
//
// This package is internal to the transcoder.
package abi
