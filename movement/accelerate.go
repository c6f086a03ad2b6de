package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/capsim/game"
)

// accelerate turns vel towards wishDir. Sharp turns reduce the speed aimed for, down to a fifth of
// wishSpeed when turning around, and speed is gained at most accel*dt per call.
func accelerate(vel, wishDir mgl32.Vec3, wishSpeed, accel, dt float32) mgl32.Vec3 {
	dir, current := game.Normalize(vel)
	wishSpeed *= game.Clamp01(dir.Dot(wishDir))*0.8 + 0.2

	add := wishSpeed - current
	if add <= 0 {
		return wishDir.Mul(wishSpeed)
	}
	accelSpeed := accel * dt
	if accelSpeed > add {
		accelSpeed = add
	}
	return wishDir.Mul(current + accelSpeed)
}
