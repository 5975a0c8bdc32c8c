package fixed

// Vec is a 2D point or displacement in fixed-point world units.
type Vec struct {
	X Fx `json:"x"`
	Y Fx `json:"y"`
}

// V builds a vector from whole units.
func V(x, y int64) Vec {
	return Vec{X: FromInt(x), Y: FromInt(y)}
}

// Add returns a + b.
func (a Vec) Add(b Vec) Vec {
	return Vec{X: a.X + b.X, Y: a.Y + b.Y}
}

// Sub returns a - b.
func (a Vec) Sub(b Vec) Vec {
	return Vec{X: a.X - b.X, Y: a.Y - b.Y}
}

// Scale multiplies both components by s.
func (a Vec) Scale(s Fx) Vec {
	return Vec{X: Mul(a.X, s), Y: Mul(a.Y, s)}
}

// IsZero reports whether both components are zero.
func (a Vec) IsZero() bool {
	return a.X == 0 && a.Y == 0
}

// LengthSq returns |a|² as a raw 64-bit product sum. Callers that only
// compare distances use this form to avoid the Sqrt truncation entirely.
func (a Vec) LengthSq() int64 {
	return int64(a.X)*int64(a.X) + int64(a.Y)*int64(a.Y)
}

// Length returns |a| in fixed point.
func (a Vec) Length() Fx {
	sq := a.LengthSq()
	// The squared form carries 28 fractional bits; take the integer root
	// and it comes out with exactly 14 again.
	return Fx(isqrt(uint64(sq)))
}

// Distance returns |a-b| in fixed point.
func Distance(a, b Vec) Fx {
	return a.Sub(b).Length()
}

// DistanceSq returns |a-b|² as a raw 64-bit value. The squared form carries
// 28 fractional bits, so radius checks must square the radius the same way;
// WithinRange does that.
func DistanceSq(a, b Vec) int64 {
	return a.Sub(b).LengthSq()
}

// WithinRange reports whether a and b are at most r apart. The comparison is
// done on squared lengths so no root truncation is involved.
func WithinRange(a, b Vec, r Fx) bool {
	if r < 0 {
		return false
	}
	return DistanceSq(a, b) <= int64(r)*int64(r)
}

// Toward returns a displacement of the given length pointing from a to b.
// When the points coincide it returns the zero vector.
func Toward(a, b Vec, length Fx) Vec {
	delta := b.Sub(a)
	dist := delta.Length()
	if dist == 0 {
		return Vec{}
	}
	return Vec{
		X: Mul(Div(delta.X, dist), length),
		Y: Mul(Div(delta.Y, dist), length),
	}
}

// StepToward moves from a toward b by at most step, stopping exactly on b
// when it is closer than the step.
func StepToward(a, b Vec, step Fx) Vec {
	if step <= 0 {
		return a
	}
	if WithinRange(a, b, step) {
		return b
	}
	return a.Add(Toward(a, b, step))
}

// ClampLength shortens a to the given maximum length, leaving shorter
// vectors untouched.
func ClampLength(a Vec, max Fx) Vec {
	if max <= 0 {
		return Vec{}
	}
	length := a.Length()
	if length <= max {
		return a
	}
	scale := Div(max, length)
	return Vec{X: Mul(a.X, scale), Y: Mul(a.Y, scale)}
}
