package bitvector

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/spacemeshos/bitvector/shared"
)

// Positions returns the indices of the set bits as a bitmap.
func (v *Vector) Positions() (*roaring.Bitmap, error) {
	if uint64(v.len) > math.MaxUint32+1 {
		return nil, fmt.Errorf("%w: bit length %d exceeds bitmap range", shared.ErrOutOfRange, v.len)
	}

	bm := roaring.New()
	for i, b := range v.data {
		for ; b != 0; b &= b - 1 {
			bm.Add(uint32(i*8 + bits.TrailingZeros8(b)))
		}
	}
	return bm, nil
}

// FromPositions returns a vector of bitLen bits with the bits in bm set.
func FromPositions(bitLen int, bm *roaring.Bitmap) (*Vector, error) {
	v, err := New(bitLen)
	if err != nil {
		return nil, err
	}
	if bm == nil || bm.IsEmpty() {
		return v, nil
	}
	if last := int(bm.Maximum()); last >= bitLen {
		return nil, &BitPositionError{Pos: last, BitLen: bitLen}
	}

	it := bm.Iterator()
	for it.HasNext() {
		v.setBit(int(it.Next()), true)
	}
	return v, nil
}
