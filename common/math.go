package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Epsilon is the tolerance used when flooring timers and comparing vectors.
const Epsilon = 1e-9

// Clamp limits v to [lo, hi]. When hi < lo the lower bound wins.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// IsZero reports whether v is the zero vector (within Epsilon).
func IsZero(v cp.Vector) bool {
	return math.Abs(v.X) <= Epsilon && math.Abs(v.Y) <= Epsilon
}

// Normalize returns the unit vector of v. cp.Vector.Normalize yields NaN for
// the zero vector, so that case reports false instead.
func Normalize(v cp.Vector) (cp.Vector, bool) {
	if IsZero(v) {
		return cp.Vector{}, false
	}
	return v.Normalize(), true
}

// RotateDegrees rotates v counter-clockwise by deg degrees.
func RotateDegrees(v cp.Vector, deg float64) cp.Vector {
	return v.Rotate(cp.ForAngle(deg * math.Pi / 180))
}

// FloorTimer decrements a countdown and floors it at zero, snapping values
// within Epsilon of zero so that repeated float subtraction settles exactly.
func FloorTimer(t, dt float64) float64 {
	t -= dt
	if t <= Epsilon {
		return 0
	}
	return t
}
