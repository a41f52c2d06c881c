package remap

import (
	"errors"
	"fmt"
	"math"
)

// ErrDegenerateInterval is returned when an input interval has zero width.
var ErrDegenerateInterval = errors.New("degenerate interval")

// Interval maps val from [inLo, inHi] onto [outLo, outHi] with an affine
// transform. It does not clamp: values outside the input interval
// extrapolate.
func Interval(val, inLo, inHi, outLo, outHi float64) (float64, error) {
	if inHi == inLo {
		return 0, fmt.Errorf("%w: [%v, %v]", ErrDegenerateInterval, inLo, inHi)
	}
	return affine(val, inLo, inHi, outLo, outHi), nil
}

func affine(val, inLo, inHi, outLo, outHi float64) float64 {
	return (val-inLo)/(inHi-inLo)*(outHi-outLo) + outLo
}

// Channel bounds.
const (
	ChannelMin = 0
	ChannelMax = 255
)

// Channel maps val from [-1, 1] to [0, 255] and truncates toward zero.
// The result is not clamped, so inputs outside [-1, 1] give out of gamut
// values. NaN maps to 0 and infinities saturate to the int32 range.
func Channel(val float64) int {
	v := affine(val, -1, 1, ChannelMin, ChannelMax)
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v <= math.MinInt32:
		return math.MinInt32
	}
	return int(v)
}

// ClampChannel clamps c into [0, 255].
func ClampChannel(c int) uint8 {
	switch {
	case c < ChannelMin:
		return ChannelMin
	case c > ChannelMax:
		return ChannelMax
	}
	return uint8(c)
}

// Byte converts an evaluator output to a channel byte. inGamut is false
// when val was outside [-1, 1] (or NaN) and the value had to be clamped.
func Byte(val float64) (b uint8, inGamut bool) {
	return ClampChannel(Channel(val)), InGamut(val)
}

// InGamut reports whether val lies in [-1, 1].
func InGamut(val float64) bool {
	return val >= -1 && val <= 1
}
