package scene

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/spincube/graphics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func held(keys ...graphics.Key) graphics.KeySnapshot {
	var k graphics.KeySnapshot
	for _, key := range keys {
		k[key] = true
	}
	return k
}

func assertVec3(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-5, "component %d: want %v got %v", i, want, got)
	}
}

func TestForwardMovesByBaseSpeed(t *testing.T) {
	s := NewState(800, 800)
	start := s.Camera.Position
	front := s.Camera.Front

	s.ApplyKeys(held(graphics.KeyW), 1.0)
	assertVec3(t, start.Add(front.Mul(2.5)), s.Camera.Position)

	s.ApplyKeys(held(graphics.KeyS), 1.0)
	assertVec3(t, start, s.Camera.Position)
}

func TestStrafeUsesRightVector(t *testing.T) {
	s := NewState(800, 800)
	start := s.Camera.Position
	right := s.Camera.Front.Cross(s.Camera.Up).Normalize()

	s.ApplyKeys(held(graphics.KeyD), 0.5)
	assertVec3(t, start.Add(right.Mul(1.25)), s.Camera.Position)

	s.ApplyKeys(held(graphics.KeyA, graphics.KeyD), 0.5)
	assertVec3(t, start.Add(right.Mul(1.25)), s.Camera.Position)
}

func TestSpeedBiasIsUnbounded(t *testing.T) {
	s := NewState(800, 800)
	for i := 0; i < 300; i++ {
		s.ApplyKeys(held(graphics.KeyPageDown), 0)
	}
	assert.InDelta(t, -3.0, s.Input.SpeedBias, 1e-3)

	// A negative bias with no elapsed time moves the camera backwards.
	start := s.Camera.Position
	s.ApplyKeys(held(graphics.KeyW), 0)
	assertVec3(t, start.Add(s.Camera.Front.Mul(s.Input.SpeedBias)), s.Camera.Position)
	assert.Greater(t, s.Camera.Position.Z(), start.Z())
}

func TestSpeedBiasAppliesFromNextFrame(t *testing.T) {
	s := NewState(800, 800)
	start := s.Camera.Position
	s.ApplyKeys(held(graphics.KeyW, graphics.KeyPageUp), 0)
	assertVec3(t, start, s.Camera.Position)
	assert.InDelta(t, 0.01, s.Input.SpeedBias, 1e-6)
}

func TestTimeWarpAsymmetry(t *testing.T) {
	s := NewState(800, 800)
	s.ApplyKeys(held(graphics.KeySpace), 0.5)
	assert.InDelta(t, 2.0, s.Input.TimeWarp, 1e-6)
	s.ApplyKeys(held(graphics.KeyBackspace), 0.5)
	assert.InDelta(t, -1.0, s.Input.TimeWarp, 1e-6)
	assert.InDelta(t, 9.0, s.Phase(10), 1e-6)
}

func TestPolygonModeKeys(t *testing.T) {
	s := NewState(800, 800)
	s.ApplyKeys(held(graphics.Key2), 0)
	assert.True(t, s.Wireframe)
	s.ApplyKeys(held(graphics.Key1), 0)
	assert.False(t, s.Wireframe)
}

func TestPitchClamped(t *testing.T) {
	c := NewCamera()
	for i := 0; i < 100; i++ {
		c.Look(0, 500)
		assert.LessOrEqual(t, c.Pitch, float32(MaxPitch))
	}
	assert.Equal(t, float32(MaxPitch), c.Pitch)

	c.Look(0, -1e6)
	assert.Equal(t, float32(-MaxPitch), c.Pitch)
}

func TestFrontIsUnitLength(t *testing.T) {
	c := NewCamera()
	deltas := [][2]float32{{10, 3}, {-250, 40}, {1e4, -1e4}, {0.3, 0.7}, {-33, 900}}
	for _, d := range deltas {
		c.Look(d[0], d[1])
		assert.InDelta(t, 1.0, c.Front.Len(), 1e-5)
	}
}

func TestLookDirection(t *testing.T) {
	c := NewCamera()
	c.Look(0, 0)
	assertVec3(t, mgl32.Vec3{0, 0, -1}, c.Front)

	// Moving the cursor right by 900 px lowers the yaw by 90 degrees.
	c.Look(900, 0)
	assert.InDelta(t, -180, c.Yaw, 1e-4)
	assertVec3(t, mgl32.Vec3{-1, 0, 0}, c.Front)
}

func TestFovClamped(t *testing.T) {
	c := NewCamera()
	c.Zoom(-10)
	assert.Equal(t, float32(MaxFov), c.Fov)
	c.Zoom(10)
	assert.Equal(t, float32(35), c.Fov)
	c.Zoom(100)
	assert.Equal(t, float32(MinFov), c.Fov)
}

func TestEventsDriveLookAndZoom(t *testing.T) {
	s := NewState(800, 800)
	s.HandleEvents([]graphics.Event{
		{Type: graphics.EventScroll, Y: 5},
		{Type: graphics.EventMouseMotion, X: 410, Y: 400},
		{Type: graphics.EventKeyUp, X: 1000, Y: 1000},
	})
	assert.Equal(t, float32(40), s.Camera.Fov)
	assert.InDelta(t, -91, s.Camera.Yaw, 1e-4)
	assert.InDelta(t, 0, s.Camera.Pitch, 1e-4)
	assert.True(t, s.Running())
}

func TestLookOnKeyUp(t *testing.T) {
	s := NewState(800, 800)
	s.LookOnKeyUp = true
	s.HandleEvents([]graphics.Event{
		{Type: graphics.EventMouseMotion, X: 0, Y: 0},
		{Type: graphics.EventKeyUp, X: 400, Y: 410},
	})
	assert.InDelta(t, -90, s.Camera.Yaw, 1e-4)
	assert.InDelta(t, 1, s.Camera.Pitch, 1e-4)
}

func TestCloseIsTerminal(t *testing.T) {
	s := NewState(800, 800)
	require.True(t, s.Running())

	s.ApplyKeys(held(graphics.KeyEscape), 0.016)
	assert.Equal(t, Closed, s.RunState())

	s.ApplyKeys(graphics.KeySnapshot{}, 0.016)
	s.HandleEvents(nil)
	assert.Equal(t, Closed, s.RunState())

	q := NewState(800, 800)
	q.HandleEvents([]graphics.Event{{Type: graphics.EventQuit}})
	assert.False(t, q.Running())
}

func TestTickFirstFrameIsAbsolute(t *testing.T) {
	s := NewState(800, 800)
	assert.InDelta(t, 1.5, s.Tick(1.5), 1e-6)
	assert.InDelta(t, 0.25, s.Tick(1.75), 1e-6)
}

func TestSlotModelAtPhaseZero(t *testing.T) {
	for _, slot := range Slots() {
		want := mgl32.Translate3D(slot.Base.X(), slot.Base.Y(), slot.Base.Z()).
			Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(slot.Tilt), TiltAxis.Normalize()))
		assert.True(t, slot.Model(0).ApproxEqual(want), "slot %d", slot.Index)
	}
}

func TestSlotTable(t *testing.T) {
	slots := Slots()
	require.Len(t, slots, SlotCount)
	assert.Equal(t, mgl32.Vec3{2.0, 5.0, -15.0}, slots[1].Base)
	assert.Equal(t, float32(-30), slots[3].Tilt)
	assert.Equal(t, float32(500), slots[9].SpinRate)
}

func TestSlotSpinKeepsTranslation(t *testing.T) {
	slot := Slots()[4]
	m := slot.Model(1.7)
	assertVec3(t, slot.Base, m.Col(3).Vec3())
	assert.False(t, m.ApproxEqual(slot.Model(0)))
}

func TestCubeMesh(t *testing.T) {
	assert.Len(t, CubeVertices, CubeVertexCount*CubeStride)
}

func TestViewProjection(t *testing.T) {
	c := NewCamera()
	view := c.View()
	origin := view.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, -3, origin.Z(), 1e-5)

	proj := c.Projection(1)
	assert.InDelta(t, 1/math32.Tan(mgl32.DegToRad(22.5)), proj.At(1, 1), 1e-4)
}
