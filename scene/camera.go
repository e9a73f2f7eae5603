package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultYaw   = -90.0
	DefaultPitch = 0.0
	DefaultFov   = 45.0

	MinFov   = 1.0
	MaxFov   = 45.0
	MaxPitch = 89.0

	DefaultSpeed       = 2.5
	DefaultSensitivity = 0.1

	NearPlane = 0.1
	FarPlane  = 100.0
)

// Camera is a free-flying camera. Angles are in degrees.
type Camera struct {
	Position mgl32.Vec3
	Front    mgl32.Vec3
	Up       mgl32.Vec3

	Yaw   float32
	Pitch float32
	Fov   float32

	// Speed is the movement in units per second before the speed bias.
	Speed float32
	// Sensitivity converts cursor pixels to degrees.
	Sensitivity float32
}

func NewCamera() Camera {
	return Camera{
		Position:    mgl32.Vec3{0, 0, 3},
		Front:       mgl32.Vec3{0, 0, -1},
		Up:          mgl32.Vec3{0, 1, 0},
		Yaw:         DefaultYaw,
		Pitch:       DefaultPitch,
		Fov:         DefaultFov,
		Speed:       DefaultSpeed,
		Sensitivity: DefaultSensitivity,
	}
}

// Right is the normalized cross product of front and up.
func (c *Camera) Right() mgl32.Vec3 {
	return c.Front.Cross(c.Up).Normalize()
}

// Look turns the camera by a cursor delta in pixels. Moving right lowers the
// yaw; moving down raises the pitch.
func (c *Camera) Look(dx, dy float32) {
	c.Yaw -= dx * c.Sensitivity
	c.Pitch += dy * c.Sensitivity
	c.Pitch = mgl32.Clamp(c.Pitch, -MaxPitch, MaxPitch)
	c.updateFront()
}

func (c *Camera) updateFront() {
	yaw := mgl32.DegToRad(c.Yaw)
	pitch := mgl32.DegToRad(c.Pitch)
	c.Front = mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}.Normalize()
}

// Zoom narrows the field of view by a wheel offset.
func (c *Camera) Zoom(offset float32) {
	c.Fov = mgl32.Clamp(c.Fov-offset, MinFov, MaxFov)
}

func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}

func (c *Camera) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.Fov), aspect, NearPlane, FarPlane)
}
