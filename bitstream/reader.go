package bitstream

import (
	"io"
)

// BitReader reads bits from an io.Reader.
type BitReader struct {
	stream    io.Reader
	pending   [1]byte
	alignment uint8
}

// NewReader returns a new instance of BitReader.
func NewReader(r io.Reader) *BitReader {
	b := new(BitReader)
	b.stream = r
	b.alignment = 8
	return b
}

// Read reads the next numBits from the stream, regardless of the alignment,
// following the LSB pattern. A trailing partial byte holds its bits in the LS positions.
func (br *BitReader) Read(numBits uint) ([]byte, error) {
	size := numBits / 8
	if numBits%8 > 0 {
		size++
	}

	data := make([]byte, size)
	var idx int

	for numBits >= 8 {
		byt, err := br.ReadByte()
		if err != nil {
			return nil, err
		}

		data[idx] = byt
		idx++
		numBits -= 8
	}

	if numBits > 0 {
		var lastByte byte
		var alignment uint
		for numBits > 0 {
			bit, err := br.ReadBit()
			if err != nil {
				return nil, err
			}

			if bit {
				lastByte |= 1 << alignment
			}

			numBits--
			alignment++
		}
		data[idx] = lastByte
	}

	return data, nil
}

// ReadUint64LE reads the next numBits from the stream as uint64 in Little-Endian byte order,
// regardless of the alignment. numBits must be in [0, 64].
func (br *BitReader) ReadUint64LE(numBits int) (uint64, error) {
	var val uint64
	var shift uint

	for numBits >= 8 {
		byt, err := br.ReadByte()
		if err != nil {
			return 0, err
		}

		val |= uint64(byt) << shift
		shift += 8
		numBits -= 8
	}

	for ; numBits > 0; numBits-- {
		bit, err := br.ReadBit()
		if err != nil {
			return 0, err
		}

		if bit {
			val |= 1 << shift
		}
		shift++
	}

	return val, nil
}

// ReadByte reads the next single byte from the stream, regardless of the alignment.
// If the byte is split, the LSB pattern is followed in bit-groups.
func (br *BitReader) ReadByte() (byte, error) {
	if br.alignment == 8 {
		if err := br.fill(); err != nil {
			return 0, err
		}
		return br.pending[0], nil
	}

	// The byte stream is not aligned.
	// Use the current byte LS bits, combined with the next byte LS bits as MS bits.

	current := br.pending[0]
	if err := br.fill(); err != nil {
		return 0, err
	}

	// Use the next pending byte LS bits to fill MS bits.
	current |= br.pending[0] << (8 - br.alignment)

	// Remove the used LS bits from the next pending byte.
	br.pending[0] >>= br.alignment

	return current, nil
}

// ReadBit reads the next single bit from the stream, LSB first.
func (br *BitReader) ReadBit() (Bit, error) {
	if br.alignment == 8 {
		if err := br.fill(); err != nil {
			return Zero, err
		}
		br.alignment = 0
	}
	br.alignment++

	// Read LS bit.
	lsb := Bit(br.pending[0]&1 == 1)

	// Remove LS bit.
	br.pending[0] >>= 1

	return lsb, nil
}

// fill reads the next byte into pending. It returns io.EOF only if no byte is left.
func (br *BitReader) fill() error {
	_, err := io.ReadFull(br.stream, br.pending[:])
	return err
}
