package scene

import "github.com/go-gl/mathgl/mgl32"

// SlotCount is the number of cube instances drawn each frame.
const SlotCount = 10

var (
	// TiltAxis carries the static per-slot rotation.
	TiltAxis = mgl32.Vec3{1.0, 0.3, 0.5}
	// SpinAxis carries the continuous time-based rotation.
	SpinAxis = mgl32.Vec3{0.5, 1.0, 0.0}
)

var basePositions = [SlotCount]mgl32.Vec3{
	{0.0, 0.0, 0.0},
	{2.0, 5.0, -15.0},
	{-1.5, -2.2, -2.5},
	{-3.8, -2.0, -12.3},
	{2.4, -0.4, -3.5},
	{-1.7, 3.0, -7.5},
	{1.3, -2.0, -2.5},
	{1.5, 2.0, -2.5},
	{1.5, 0.2, -1.5},
	{-1.3, 1.0, -1.5},
}

// ObjectSlot is one fixed cube instance.
type ObjectSlot struct {
	Index int
	Base  mgl32.Vec3
	// Tilt is the static rotation about TiltAxis in degrees.
	Tilt float32
	// SpinRate is the rotation about SpinAxis in degrees per second of phase.
	SpinRate float32
}

// Slots returns the ten object slots in draw order.
func Slots() [SlotCount]ObjectSlot {
	var slots [SlotCount]ObjectSlot
	for i := range slots {
		slots[i] = ObjectSlot{
			Index:    i,
			Base:     basePositions[i],
			Tilt:     -10.0 * float32(i),
			SpinRate: 50.0 + 50.0*float32(i),
		}
	}
	return slots
}

// BaseModel returns translate(identity, Base) * rotate(Tilt, TiltAxis).
func (s ObjectSlot) BaseModel() mgl32.Mat4 {
	m := mgl32.Translate3D(s.Base.X(), s.Base.Y(), s.Base.Z())
	return m.Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(s.Tilt), TiltAxis.Normalize()))
}

// Model returns the slot's model matrix at the given phase, which is the
// elapsed time plus the time warp offset.
func (s ObjectSlot) Model(phase float32) mgl32.Mat4 {
	spin := mgl32.HomogRotate3D(phase*mgl32.DegToRad(s.SpinRate), SpinAxis.Normalize())
	return s.BaseModel().Mul4(spin)
}
