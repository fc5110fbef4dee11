package bitstream

import (
	"io"
)

// BitWriter writes bits to an io.Writer.
type BitWriter struct {
	stream    io.Writer
	pending   [1]byte
	alignment uint8
}

// NewWriter returns a new instance of BitWriter.
func NewWriter(w io.Writer) *BitWriter {
	bw := new(BitWriter)
	bw.stream = w
	bw.alignment = 0 // less-significant bit
	return bw
}

// Write writes the numBits LS bits of data to the stream, regardless of the alignment.
// Bytes of data are consumed in order; the last one may be partially written,
// LS bits first. data is left unmodified.
func (bw *BitWriter) Write(data []byte, numBits int) error {
	var idx int
	for numBits >= 8 {
		if err := bw.WriteByte(data[idx]); err != nil {
			return err
		}
		numBits -= 8
		idx++
	}

	if numBits > 0 {
		last := data[idx]
		for ; numBits > 0; numBits-- {
			if err := bw.WriteBit(last&1 == 1); err != nil {
				return err
			}
			last >>= 1
		}
	}

	return nil
}

// WriteUint64LE writes the numBits LS bits of val in Little-Endian byte order,
// regardless of the alignment. numBits must be in [0, 64].
func (bw *BitWriter) WriteUint64LE(val uint64, numBits int) error {
	// Eliminate unnecessary MS bits.
	if numBits < 64 {
		val &= 1<<uint(numBits) - 1
	}

	for numBits >= 8 {
		if err := bw.WriteByte(byte(val)); err != nil {
			return err
		}
		val >>= 8
		numBits -= 8
	}

	// Write the remaining bits.
	for ; numBits > 0; numBits-- {
		if err := bw.WriteBit(val&1 == 1); err != nil {
			return err
		}
		val >>= 1
	}

	return nil
}

// WriteByte writes a single byte to the stream, regardless of the alignment.
// If the byte is to be split due to alignment, the LSB pattern is followed in bit-groups.
func (bw *BitWriter) WriteByte(b byte) error {
	// Fill the pending byte MS bits with LS bits.
	bw.pending[0] |= b << bw.alignment

	if err := bw.emit(); err != nil {
		return err
	}

	// Fill the new pending byte LS bits with MS bits.
	bw.pending[0] = b >> (8 - bw.alignment)

	return nil
}

// WriteBit writes a single bit to the stream, LSB first.
func (bw *BitWriter) WriteBit(bit Bit) error {
	if bit {
		bw.pending[0] |= 1 << bw.alignment
	}

	bw.alignment++

	if bw.alignment == 8 {
		if err := bw.emit(); err != nil {
			return err
		}
		bw.pending[0] = 0
		bw.alignment = 0
	}

	return nil
}

// Flush flushes the currently pending byte to the stream by filling it with bit.
func (bw *BitWriter) Flush(bit Bit) error {
	for bw.alignment != 0 {
		if err := bw.WriteBit(bit); err != nil {
			return err
		}
	}

	return nil
}

func (bw *BitWriter) emit() error {
	n, err := bw.stream.Write(bw.pending[:])
	if err != nil {
		return err
	}
	if n != 1 {
		return io.ErrShortWrite
	}
	return nil
}
