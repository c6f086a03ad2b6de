package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Round32 will round a float32 to a given precision.
func Round32(val float32, precision int) float32 {
	pwr := math32.Pow(10, float32(precision))
	return math32.Round(val*pwr) / pwr
}

// Float32ApproxEq determines whether two floating point numbers are close enough to each other
// by a threshold of 1e-5.
func Float32ApproxEq(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-5
}

// Clamp01 clamps the value into [0, 1].
func Clamp01(v float32) float32 {
	return ClampFloat(v, 0, 1)
}

// ClampFloat clamps the value into [min, max].
func ClampFloat(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Normalize returns the unit vector of v along with the original length. Vectors too short to
// normalize come back as the zero vector with a zero length, never NaN.
func Normalize(v mgl32.Vec3) (mgl32.Vec3, float32) {
	l := v.Len()
	if l <= SqrDistEpsilon {
		return mgl32.Vec3{}, 0
	}
	return v.Mul(1 / l), l
}

// SafeNormalize is Normalize without the length.
func SafeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	n, _ := Normalize(v)
	return n
}

// AbsVec32 will return the given vector, but all the values of it are switched to their absolute values.
func AbsVec32(vec mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{math32.Abs(vec.X()), math32.Abs(vec.Y()), math32.Abs(vec.Z())}
}

// Vec3HzDistSqr returns the squared horizontal distance in a vector.
func Vec3HzDistSqr(vec3 mgl32.Vec3) float32 {
	return vec3.X()*vec3.X() + vec3.Z()*vec3.Z()
}

// Horizontal returns the vector with its vertical component removed.
func Horizontal(vec3 mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{vec3.X(), 0, vec3.Z()}
}

// MinVec3 returns the component-wise minimum of two vectors.
func MinVec3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{math32.Min(a[0], b[0]), math32.Min(a[1], b[1]), math32.Min(a[2], b[2])}
}

// MaxVec3 returns the component-wise maximum of two vectors.
func MaxVec3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{math32.Max(a[0], b[0]), math32.Max(a[1], b[1]), math32.Max(a[2], b[2])}
}

// IsFiniteVec3 reports whether no component of the vector is NaN or infinite.
func IsFiniteVec3(v mgl32.Vec3) bool {
	for _, c := range v {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}
