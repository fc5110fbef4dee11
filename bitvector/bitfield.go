package bitvector

import (
	"fmt"

	"github.com/spacemeshos/bitvector/shared"
)

// MaxFieldBits is the widest bitfield that can be read or written as an integer.
const MaxFieldBits = 64

// Source is the content written by SetBitfield. It is one of *Vector, Field or Clear.
type Source interface {
	isSource()
}

// Field is an integer bitfield source: the Len LS bits of Value.
type Field struct {
	Value uint64
	Len   int
}

// Clear is a bitfield source of Len zero bits.
type Clear struct {
	Len int
}

func (*Vector) isSource() {}
func (Field) isSource()   {}
func (Clear) isSource()   {}

// SetBitfield writes src at offset. Bits outside [offset, offset+length of src)
// are left unchanged, and nothing is written if an error is returned.
func (v *Vector) SetBitfield(offset int, src Source) error {
	switch src := src.(type) {
	case *Vector:
		if src == nil {
			return fmt.Errorf("%w: nil vector", shared.ErrUnsupportedType)
		}
		if err := v.checkRange(offset, src.len); err != nil {
			return err
		}
		if src == v {
			src = src.Clone()
		}
		for i := 0; i < src.len; i++ {
			v.setBit(offset+i, src.bit(i))
		}
		return nil

	case Field:
		if err := checkFieldLen(src.Len); err != nil {
			return err
		}
		if err := v.checkRange(offset, src.Len); err != nil {
			return err
		}
		for i := 0; i < src.Len; i++ {
			v.setBit(offset+i, src.Value&(1<<i) != 0)
		}
		return nil

	case Clear:
		if src.Len < 0 {
			return fmt.Errorf("%w: negative bitfield length: %d", shared.ErrInvalidArgument, src.Len)
		}
		if err := v.checkRange(offset, src.Len); err != nil {
			return err
		}
		for i := 0; i < src.Len; i++ {
			v.setBit(offset+i, false)
		}
		return nil

	default:
		return fmt.Errorf("%w: bitfield source %T", shared.ErrUnsupportedType, src)
	}
}

// Bitfield returns a new vector holding the length bits starting at offset.
func (v *Vector) Bitfield(offset, length int) (*Vector, error) {
	if length < 0 {
		return nil, fmt.Errorf("%w: negative bitfield length: %d", shared.ErrInvalidArgument, length)
	}
	if err := v.checkRange(offset, length); err != nil {
		return nil, err
	}

	field, err := New(length)
	if err != nil {
		return nil, err
	}
	for i := 0; i < length; i++ {
		field.setBit(i, v.bit(offset+i))
	}
	return field, nil
}

// Uint64 returns the length bits starting at offset as an integer, where bit j
// of the result is bit offset+j of v.
func (v *Vector) Uint64(offset, length int) (uint64, error) {
	if err := checkFieldLen(length); err != nil {
		return 0, err
	}
	if err := v.checkRange(offset, length); err != nil {
		return 0, err
	}

	var val uint64
	for i := 0; i < length; i++ {
		if v.bit(offset + i) {
			val |= 1 << i
		}
	}
	return val, nil
}

func checkFieldLen(length int) error {
	if length < 0 {
		return fmt.Errorf("%w: negative bitfield length: %d", shared.ErrInvalidArgument, length)
	}
	if length > MaxFieldBits {
		return fmt.Errorf("%w: integer bitfield limited to %d bits, given: %d", shared.ErrInvalidArgument, MaxFieldBits, length)
	}
	return nil
}
