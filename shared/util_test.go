package shared

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsPowerOfTwo(t *testing.T) {
	r := require.New(t)

	r.False(IsPowerOfTwo(0))
	r.False(IsPowerOfTwo(3))
	r.False(IsPowerOfTwo(5))
	r.False(IsPowerOfTwo(6))
	r.False(IsPowerOfTwo(7))
	r.False(IsPowerOfTwo(9))
	r.False(IsPowerOfTwo(127))
	r.False(IsPowerOfTwo(129))

	r.True(IsPowerOfTwo(1))
	r.True(IsPowerOfTwo(2))
	r.True(IsPowerOfTwo(4))
	r.True(IsPowerOfTwo(8))
	r.True(IsPowerOfTwo(16))
	r.True(IsPowerOfTwo(32))
	r.True(IsPowerOfTwo(64))
	r.True(IsPowerOfTwo(1024))
}

func TestIsPowerOfTwo_NonPositive(t *testing.T) {
	r := require.New(t)

	for _, n := range []int64{0, -1, -2, -4, -8, -16, math.MinInt64} {
		r.False(IsPowerOfTwo(n), "n = %d", n)
	}
}

func TestIsPowerOfTwo_AllBits(t *testing.T) {
	r := require.New(t)

	for i := 0; i < 63; i++ {
		n := int64(1) << i
		r.True(IsPowerOfTwo(n), "2^%d", i)
		if i > 1 {
			r.False(IsPowerOfTwo(n+1), "2^%d+1", i)
			r.False(IsPowerOfTwo(n-1), "2^%d-1", i)
		}
	}
	r.False(IsPowerOfTwo(int64(math.MaxInt64)))

	r.True(IsPowerOfTwo(uint64(1) << 63))
	r.False(IsPowerOfTwo(uint64(math.MaxUint64)))
	r.True(IsPowerOfTwo(uint8(128)))
	r.False(IsPowerOfTwo(uint8(255)))
}

func TestNumBits(t *testing.T) {
	r := require.New(t)

	r.Equal(0, NumBits(0))
	r.Equal(1, NumBits(1))
	r.Equal(2, NumBits(2))
	r.Equal(2, NumBits(3))
	r.Equal(8, NumBits(255))
	r.Equal(9, NumBits(256))
	r.Equal(64, NumBits(math.MaxUint64))
}
