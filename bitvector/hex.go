package bitvector

import (
	"encoding/hex"
	"fmt"

	"github.com/spacemeshos/bitvector/shared"
)

// Hex returns the lowercase hex dump of the packed buffer, byte 0 first.
// It is not a big-endian number: FromWords(16, []uint64{0xABCD}) renders as "cdab".
// The bit length is not encoded.
func (v *Vector) Hex() string {
	return hex.EncodeToString(v.data)
}

// String implements fmt.Stringer with the Hex rendering.
func (v *Vector) String() string {
	return v.Hex()
}

// GoString renders v with its bit length for %#v.
func (v *Vector) GoString() string {
	return fmt.Sprintf("bitvector.Vector(%d, %q)", v.len, v.Hex())
}

// ParseHex decodes a hex dump produced by Hex back into a vector of bitLen bits.
// The dump must hold exactly the bytes needed for bitLen, with the bits past
// bitLen in the last byte cleared.
func ParseHex(bitLen int, s string) (*Vector, error) {
	v, err := New(bitLen)
	if err != nil {
		return nil, err
	}

	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}
	if len(data) != len(v.data) {
		return nil, fmt.Errorf("%w: hex of %d bytes does not match bit length %d; expected: %d bytes",
			shared.ErrInvalidArgument, len(data), bitLen, len(v.data))
	}
	if rem := bitLen % 8; rem != 0 && data[len(data)-1]>>rem != 0 {
		return nil, fmt.Errorf("%w: last byte 0b%08b has bits set past bit length %d",
			shared.ErrInvalidArgument, data[len(data)-1], bitLen)
	}

	v.data = data
	return v, nil
}
