package shared

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Number is the set of types accepted as choice weights.
type Number interface {
	Integer | ~float32 | ~float64
}

type choiceOpts struct {
	x   *float64
	rnd *rand.Rand
}

// ChoiceOption configures WeightedChoice.
type ChoiceOption func(*choiceOpts)

// WithDraw fixes the uniform draw used to select an element. x must be in [0, 1].
func WithDraw(x float64) ChoiceOption {
	return func(opts *choiceOpts) {
		opts.x = &x
	}
}

// WithRand sets the random source used when no draw is given.
func WithRand(rnd *rand.Rand) ChoiceOption {
	return func(opts *choiceOpts) {
		opts.rnd = rnd
	}
}

// WeightedChoice picks an element with probability proportional to its weight.
// If all weights are zero, the element is picked uniformly.
func WeightedChoice[T any, W Number](elements []T, weights []W, opts ...ChoiceOption) (T, error) {
	var zero T
	if len(elements) != len(weights) {
		return zero, fmt.Errorf("%w: elements and weights must have the same length; elements: %d, weights: %d",
			ErrInvalidArgument, len(elements), len(weights))
	}
	if len(elements) == 0 {
		return zero, fmt.Errorf("%w: elements list cannot be empty", ErrInvalidArgument)
	}

	options := choiceOpts{}
	for _, opt := range opts {
		opt(&options)
	}

	var maxWeight float64
	for i, w := range weights {
		fw := float64(w)
		if !(fw >= 0) || math.IsInf(fw, 1) {
			return zero, fmt.Errorf("%w: weights must be non-negative and finite; index: %d, given: %v", ErrInvalidArgument, i, w)
		}
		maxWeight = math.Max(maxWeight, fw)
	}

	cumulative, total := prefixSums(weights, 1)
	if math.IsInf(total, 1) {
		// Scaled weights are at most 1, so the sum stays finite.
		cumulative, total = prefixSums(weights, maxWeight)
	}

	var x float64
	switch {
	case options.x != nil:
		x = *options.x
		if !(x >= 0 && x <= 1) {
			return zero, fmt.Errorf("%w: x must be in [0, 1], given: %v", ErrInvalidArgument, x)
		}
	case options.rnd != nil:
		x = options.rnd.Float64()
	default:
		x = rand.Float64()
	}

	if total <= 0 {
		idx := int(x * float64(len(elements)))
		if idx >= len(elements) {
			idx = len(elements) - 1
		}
		return elements[idx], nil
	}

	target := x * total
	idx := sort.Search(len(cumulative), func(i int) bool { return cumulative[i] > target })
	if idx == len(cumulative) {
		// x == 1 lands past the last prefix sum.
		idx = lastWeighted(weights)
	}
	return elements[idx], nil
}

func lastWeighted[W Number](weights []W) int {
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return len(weights) - 1
}

func prefixSums[W Number](weights []W, scale float64) ([]float64, float64) {
	cumulative := make([]float64, len(weights))
	var total float64
	for i, w := range weights {
		total += float64(w) / scale
		cumulative[i] = total
	}
	return cumulative, total
}
