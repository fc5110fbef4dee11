package bitstream_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/bitvector/bitstream"
	"github.com/spacemeshos/bitvector/shared"
)

const (
	Zero = bitstream.Zero
	One  = bitstream.One
)

var (
	NewWriter = bitstream.NewWriter
	NewReader = bitstream.NewReader
	NumBits   = shared.NumBits
)

func TestUint64LE(t *testing.T) {
	req := require.New(t)

	buf := bytes.NewBuffer(nil)
	w := NewWriter(buf)
	r := NewReader(buf)
	from := uint64(1)
	to := uint64(1 << 15)

	// Write.
	for i := from; i < to; i++ {
		err := w.WriteUint64LE(i, NumBits(i))
		req.NoError(err)
		err = w.WriteUint64LE(i, 64)
		req.NoError(err)

	}
	err := w.Flush(Zero)
	req.NoError(err)

	// Read.
	for i := from; i < to; i++ {
		num, err := r.ReadUint64LE(NumBits(i))
		req.NoError(err)
		req.Equal(i, num)
		num, err = r.ReadUint64LE(64)
		req.NoError(err)
		req.Equal(i, num)
	}
}

func TestUint64LE_Mixed(t *testing.T) {
	req := require.New(t)

	from := uint64(1)
	to := uint64(1 << 15)

	for i := from; i < to; i++ {
		buf := bytes.NewBuffer(nil)
		w := NewWriter(buf)
		r := NewReader(buf)

		// Write 3 arbitrary bits.
		err := w.WriteBit(One)
		req.NoError(err)
		err = w.WriteBit(Zero)
		req.NoError(err)
		err = w.WriteBit(One)
		req.NoError(err)

		// Write i.
		numBits := NumBits(i)
		err = w.WriteUint64LE(i, numBits)
		req.NoError(err)

		// Write the 3 LS bits of 0xFF.
		err = w.Write([]byte{0xFF}, 3)
		req.NoError(err)

		// Write i again.
		err = w.WriteUint64LE(i, numBits)
		req.NoError(err)

		// Write 3 arbitrary bits.
		err = w.WriteBit(One)
		req.NoError(err)
		err = w.WriteBit(Zero)
		req.NoError(err)
		err = w.WriteBit(One)
		req.NoError(err)

		err = w.Flush(Zero)
		req.NoError(err)

		// Read

		bit, err := r.ReadBit()
		req.NoError(err)
		req.Equal(bit, One)

		bit, err = r.ReadBit()
		req.NoError(err)
		req.Equal(bit, Zero)

		bit, err = r.ReadBit()
		req.NoError(err)
		req.Equal(bit, One)

		num, err := r.ReadUint64LE(numBits)
		req.NoError(err)
		req.Equal(i, num)

		data, err := r.Read(3)
		req.Len(data, 1)
		req.Equal(uint8(0x07), data[0])

		num, err = r.ReadUint64LE(numBits)
		req.NoError(err)
		req.Equal(i, num)

		bit, err = r.ReadBit()
		req.NoError(err)
		req.Equal(bit, One)

		bit, err = r.ReadBit()
		req.NoError(err)
		req.Equal(bit, Zero)

		bit, err = r.ReadBit()
		req.NoError(err)
		req.Equal(bit, One)
	}
}

func TestString(t *testing.T) {
	req := require.New(t)

	s := "a string"
	br := NewReader(strings.NewReader(s))
	buf := bytes.NewBuffer(nil)
	bw := NewWriter(buf)

	for {
		bit, err := br.ReadBit()
		if err == io.EOF {
			break
		}
		if err != nil {
			req.Fail(err.Error())
		}
		err = bw.WriteBit(bit)
		req.NoError(err)
	}

	req.Equal(s, buf.String())
}

func TestAlignment(t *testing.T) {
	req := require.New(t)

	s := "a string!" // 9 bytes, 72 bits.
	batchSize := 3   // 72 is divisible by 3.
	br := NewReader(strings.NewReader(s))
	buf := bytes.NewBuffer(nil)
	bw := NewWriter(buf)

	for i := 0; i < batchSize; i++ {
		bit, err := br.ReadBit()
		if err == io.EOF {
			break
		}
		if err != nil {
			req.Fail(err.Error())
		}
		err = bw.WriteBit(bit)
		req.NoError(err)
	}

	for {
		data, err := br.Read(uint(batchSize))
		if err == io.EOF {
			break
		}
		if err != nil {
			req.Fail(err.Error())
		}
		err = bw.Write(data, batchSize)
		req.NoError(err)
	}

	req.Equal(buf.String(), s)
}

func TestEOF_0(t *testing.T) {
	req := require.New(t)

	_, err := NewReader(bytes.NewReader(nil)).ReadBit()
	req.Equal(io.EOF, err)
	_, err = NewReader(bytes.NewReader(nil)).ReadByte()
	req.Equal(io.EOF, err)
	_, err = NewReader(bytes.NewReader([]byte{})).ReadBit()
	req.Equal(io.EOF, err)
	_, err = NewReader(bytes.NewReader([]byte{})).ReadByte()
	req.Equal(io.EOF, err)
}

func TestEOF_1(t *testing.T) {
	req := require.New(t)

	br := NewReader(strings.NewReader("abc"))

	b, err := br.ReadByte()
	req.NoError(err)
	req.Equal(byte('a'), b)
	b, err = br.ReadByte()
	req.NoError(err)
	req.Equal(byte('b'), b)
	b, err = br.ReadByte()
	req.NoError(err)
	req.Equal(byte('c'), b)

	b, err = br.ReadByte()
	req.Equal(io.EOF, err)
	req.Equal(byte(0), b)
}

func TestEOF_2(t *testing.T) {
	req := require.New(t)

	br := NewReader(strings.NewReader("abc"))
	buf := bytes.NewBuffer(nil)
	bw := NewWriter(buf)

	for {
		bit, err := br.ReadBit()
		if err == io.EOF {
			break
		}
		if err != nil {
			req.Fail(err.Error())
		}
		err = bw.WriteBit(bit)
		req.NoError(err)
	}

	req.Equal("abc", buf.String())
}

func TestEOF_3(t *testing.T) {
	req := require.New(t)

	br := NewReader(bytes.NewReader([]byte{0x0F}))
	buf := bytes.NewBuffer(nil)
	bw := NewWriter(buf)

	for i := 0; i < 4; i++ {
		bit, err := br.ReadBit()
		if err == io.EOF {
			break
		}
		if err != nil {
			req.Fail(err.Error())
		}
		err = bw.WriteBit(bit)
		req.NoError(err)
	}

	err := bw.Flush(One)
	req.NoError(err)

	err = bw.WriteByte(0xAA)
	req.NoError(err)

	data := buf.Bytes()
	req.Len(data, 2)
	req.Equal(byte(0xFF), data[0])
	req.Equal(byte(0xAA), data[1])
}

func TestBadWriter_0(t *testing.T) {
	req := require.New(t)

	br := NewWriter(&badWriter{})
	for i := 0; i < 7; i++ {
		err := br.WriteBit(One)
		req.NoError(err)

	}
	err := br.WriteBit(One)
	req.Equal(err, ErrBadWriter)
}

func TestBadWriter_1(t *testing.T) {
	req := require.New(t)

	br := NewWriter(&badWriter{})
	err := br.WriteUint64LE(256, 9)
	req.Equal(err, ErrBadWriter)
}

func TestShortWriter(t *testing.T) {
	req := require.New(t)

	bw := NewWriter(&shortWriter{})
	err := bw.WriteByte(0x01)
	req.Equal(io.ErrShortWrite, err)
}

func TestUint64LE_Layout(t *testing.T) {
	req := require.New(t)

	buf := bytes.NewBuffer(nil)
	w := NewWriter(buf)
	req.NoError(w.WriteUint64LE(0xABCD, 16))
	req.Equal([]byte{0xcd, 0xab}, buf.Bytes())

	buf.Reset()
	req.NoError(w.WriteUint64LE(0xFFF, 12))
	req.NoError(w.Flush(Zero))
	req.Equal([]byte{0xff, 0x0f}, buf.Bytes())

	buf.Reset()
	req.NoError(w.WriteUint64LE(0x0123456789ABCDEF, 64))
	req.Equal([]byte{0xef, 0xcd, 0xab, 0x89, 0x67, 0x45, 0x23, 0x01}, buf.Bytes())

	// MS bits beyond numBits are dropped.
	buf.Reset()
	req.NoError(w.WriteUint64LE(0xFF, 4))
	req.NoError(w.WriteUint64LE(0, 4))
	req.Equal([]byte{0x0f}, buf.Bytes())
}

func TestUint64LE_Unaligned(t *testing.T) {
	req := require.New(t)

	buf := bytes.NewBuffer(nil)
	w := NewWriter(buf)
	req.NoError(w.WriteBit(One))
	req.NoError(w.WriteUint64LE(0xABCD, 16))
	req.NoError(w.Flush(Zero))
	// 0xABCD << 1 | 1 = 0x1579B
	req.Equal([]byte{0x9b, 0x57, 0x01}, buf.Bytes())

	r := NewReader(bytes.NewReader(buf.Bytes()))
	bit, err := r.ReadBit()
	req.NoError(err)
	req.Equal(One, bit)
	v, err := r.ReadUint64LE(16)
	req.NoError(err)
	req.Equal(uint64(0xABCD), v)
}

func TestWrite_DoesNotModifyData(t *testing.T) {
	req := require.New(t)

	buf := bytes.NewBuffer(nil)
	w := NewWriter(buf)
	data := []byte{0xAA, 0x05}
	req.NoError(w.Write(data, 11))
	req.NoError(w.Flush(Zero))
	req.Equal([]byte{0xAA, 0x05}, data)
	req.Equal([]byte{0xAA, 0x05}, buf.Bytes())
}

func TestReadUint64LE_EOF(t *testing.T) {
	req := require.New(t)

	r := NewReader(bytes.NewReader([]byte{0x01}))
	_, err := r.ReadUint64LE(9)
	req.Equal(io.EOF, err)
}

type badWriter struct{}

var ErrBadWriter = errors.New("bad writer")

func (w *badWriter) Write(p []byte) (n int, err error) {
	return 0, ErrBadWriter
}

type shortWriter struct{}

func (w *shortWriter) Write(p []byte) (n int, err error) {
	return 0, nil
}
