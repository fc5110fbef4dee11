package bitvector

import (
	"fmt"

	"github.com/spacemeshos/bitvector/shared"
)

// BitPositionError is returned when a single bit is addressed outside of a vector.
type BitPositionError struct {
	Pos    int
	BitLen int
}

func (err *BitPositionError) Error() string {
	return fmt.Sprintf("bit position %d out of range (0..%d)", err.Pos, err.BitLen-1)
}

func (err *BitPositionError) Is(target error) bool {
	return target == shared.ErrOutOfRange
}

// RangeError is returned when a bitfield is addressed partly or fully outside of a vector.
type RangeError struct {
	Offset int
	Length int
	BitLen int
}

func (err *RangeError) Error() string {
	return fmt.Sprintf("bitfield out of range; offset: %d, length: %d, bit length: %d", err.Offset, err.Length, err.BitLen)
}

func (err *RangeError) Is(target error) bool {
	return target == shared.ErrOutOfRange
}
