// Package bitvector implements a fixed-length packed bit array with bit and
// bitfield access.
//
// Bits are packed LSB first: bit i lives in byte i/8 at position i%8, counting
// from the least-significant bit. Words used for construction are consumed in
// order, bit 0 of each word first. This layout is what Hex renders, so it must
// not change.
//
// A Vector is not safe for concurrent use.
package bitvector

import (
	"bytes"
	"fmt"
	"math/bits"

	"github.com/spacemeshos/bitvector/bitstream"
	"github.com/spacemeshos/bitvector/shared"
)

// WordSize is the number of bits contributed by each construction word.
const WordSize = 64

// Vector is a fixed-length bit array backed by a byte buffer.
type Vector struct {
	len  int
	data []byte
}

// New returns a zeroed vector of bitLen bits.
func New(bitLen int) (*Vector, error) {
	if bitLen <= 0 {
		return nil, fmt.Errorf("%w: bit length must be positive, given: %d", shared.ErrInvalidArgument, bitLen)
	}

	return &Vector{
		len:  bitLen,
		data: make([]byte, byteLen(bitLen)),
	}, nil
}

// FromWords returns a vector of bitLen bits filled from words. Each word
// contributes its 64 bits LSB first; bits past bitLen are ignored.
func FromWords(bitLen int, words []uint64) (*Vector, error) {
	v, err := New(bitLen)
	if err != nil {
		return nil, err
	}

	if len(words) < (bitLen+WordSize-1)/WordSize {
		return nil, fmt.Errorf("%w: insufficient data for bit length %d; words: %d",
			shared.ErrInvalidArgument, bitLen, len(words))
	}

	buf := bytes.NewBuffer(make([]byte, 0, len(v.data)))
	w := bitstream.NewWriter(buf)
	remaining := bitLen
	for _, word := range words {
		if remaining == 0 {
			break
		}
		n := min(remaining, WordSize)
		if err := w.WriteUint64LE(word, n); err != nil {
			return nil, err
		}
		remaining -= n
	}
	if err := w.Flush(bitstream.Zero); err != nil {
		return nil, err
	}

	copy(v.data, buf.Bytes())
	v.maskTail()
	return v, nil
}

// Len returns the number of addressable bits.
func (v *Vector) Len() int {
	return v.len
}

// Bit returns whether the bit at pos is set.
func (v *Vector) Bit(pos int) (bool, error) {
	if err := v.checkPos(pos); err != nil {
		return false, err
	}
	return v.bit(pos), nil
}

// SetBit sets or clears the bit at pos.
func (v *Vector) SetBit(pos int, value bool) error {
	if err := v.checkPos(pos); err != nil {
		return err
	}
	v.setBit(pos, value)
	return nil
}

// Words returns the content of v as 64-bit words, the inverse of FromWords.
// Bits past Len in the last word are zero.
func (v *Vector) Words() []uint64 {
	r := bitstream.NewReader(bytes.NewReader(v.data))
	words := make([]uint64, 0, (v.len+WordSize-1)/WordSize)
	for remaining := v.len; remaining > 0; {
		n := min(remaining, WordSize)
		word, err := r.ReadUint64LE(n)
		if err != nil {
			// The buffer always holds Len bits.
			panic(fmt.Sprintf("bitvector: read word: %v", err))
		}
		words = append(words, word)
		remaining -= n
	}
	return words
}

// Bytes returns a copy of the packed buffer.
func (v *Vector) Bytes() []byte {
	return bytes.Clone(v.data)
}

// Clone returns an independent copy of v.
func (v *Vector) Clone() *Vector {
	return &Vector{len: v.len, data: bytes.Clone(v.data)}
}

// Equal reports whether v and o have the same length and bits.
func (v *Vector) Equal(o *Vector) bool {
	if v == nil || o == nil {
		return v == o
	}
	return v.len == o.len && bytes.Equal(v.data, o.data)
}

// Count returns the number of set bits.
func (v *Vector) Count() int {
	var n int
	for _, b := range v.data {
		n += bits.OnesCount8(b)
	}
	return n
}

func (v *Vector) checkPos(pos int) error {
	if pos < 0 || pos >= v.len {
		return &BitPositionError{Pos: pos, BitLen: v.len}
	}
	return nil
}

func (v *Vector) checkRange(offset, length int) error {
	if offset < 0 || length < 0 || offset > v.len-length {
		return &RangeError{Offset: offset, Length: length, BitLen: v.len}
	}
	return nil
}

func (v *Vector) bit(pos int) bool {
	return v.data[pos/8]&(1<<(pos%8)) != 0
}

func (v *Vector) setBit(pos int, value bool) {
	if value {
		v.data[pos/8] |= 1 << (pos % 8)
	} else {
		v.data[pos/8] &^= 1 << (pos % 8)
	}
}

// maskTail clears the bits of the last byte beyond Len.
func (v *Vector) maskTail() {
	if rem := v.len % 8; rem != 0 {
		v.data[len(v.data)-1] &= 1<<rem - 1
	}
}

func byteLen(bitLen int) int {
	return (bitLen + 7) / 8
}
