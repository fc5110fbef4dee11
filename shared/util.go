package shared

// Integer is the set of types IsPowerOfTwo accepts.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// IsPowerOfTwo reports whether n is positive and has exactly one set bit.
func IsPowerOfTwo[T Integer](n T) bool {
	return n > 0 && n&(n-1) == 0
}

// NumBits returns the number of bits needed to represent n.
func NumBits(n uint64) int {
	var bits int
	for n > 0 {
		n >>= 1
		bits++
	}
	return bits
}
