// Package bitstream provides wrappers for io.Writer and io.Reader to allow
// bit-granularity access to the stream, following the LSB pattern, where
// least-significant bits are written/read first.
//
// Multi-byte values are packed in little-endian order, so that a uint64 written
// with WriteUint64LE occupies the stream exactly as its bits would occupy a
// packed bit array: bit 0 of the value is bit 0 of the first byte.
package bitstream

type Bit bool

const (
	Zero Bit = false
	One  Bit = true
)
