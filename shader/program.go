package shader

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/spincube/gpu"
)

// Program is a linked vertex/fragment program with by-name uniform access.
// Setters act on the program currently in use, so call Use first.
type Program struct {
	device    gpu.Device
	id        uint32
	linked    bool
	locations map[string]int32
	aliases   map[string]string
}

// CompileAndLink compiles both stages and links them. A Program is returned
// even when compilation or linking fails so that rendering can continue in a
// degraded state; the error is then a *CompileError (one per failed stage,
// joined) or a *LinkError.
func CompileAndLink(device gpu.Device, vertexSource, fragmentSource string) (*Program, error) {
	var errs []error

	vertex, infoLog, ok := device.CompileShader(gpu.VertexStage, vertexSource)
	if !ok {
		errs = append(errs, &CompileError{Stage: gpu.VertexStage, Log: infoLog})
	}
	fragment, infoLog, ok := device.CompileShader(gpu.FragmentStage, fragmentSource)
	if !ok {
		errs = append(errs, &CompileError{Stage: gpu.FragmentStage, Log: infoLog})
	}

	id, infoLog, linked := device.LinkProgram(vertex, fragment)
	if !linked && len(errs) == 0 {
		errs = append(errs, &LinkError{Log: infoLog})
	}
	device.DeleteShader(vertex)
	device.DeleteShader(fragment)

	p := &Program{
		device:    device,
		id:        id,
		linked:    linked,
		locations: make(map[string]int32),
	}
	return p, errors.Join(errs...)
}

// ID returns the device handle of the program.
func (p *Program) ID() uint32 { return p.id }

// Linked reports whether the program linked successfully.
func (p *Program) Linked() bool { return p.linked }

// SetAliases maps source uniform names to the names the device knows them
// by, as produced by the shader translator.
func (p *Program) SetAliases(aliases map[string]string) {
	p.aliases = aliases
	p.locations = make(map[string]int32)
}

func (p *Program) Use() {
	p.device.UseProgram(p.id)
}

func (p *Program) Delete() {
	p.device.DeleteProgram(p.id)
	p.id = 0
	p.linked = false
}

// location resolves and caches a uniform location. The program is never
// re-linked, so a cached location stays valid for its lifetime.
func (p *Program) location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	mapped := name
	if alias, ok := p.aliases[name]; ok {
		mapped = alias
	}
	loc := p.device.UniformLocation(p.id, mapped)
	p.locations[name] = loc
	return loc
}

func (p *Program) setFloats(name string, kind gpu.UniformKind, v []float32) {
	if loc := p.location(name); loc != -1 {
		p.device.UniformFloats(loc, kind, v)
	}
}

func (p *Program) getFloats(name string, dst []float32) {
	if loc := p.location(name); loc != -1 {
		p.device.GetUniformFloats(p.id, loc, dst)
	}
}

func (p *Program) SetBool(name string, value bool) {
	var v int32
	if value {
		v = 1
	}
	p.SetInt(name, v)
}

func (p *Program) SetInt(name string, value int32) {
	if loc := p.location(name); loc != -1 {
		p.device.UniformInt(loc, value)
	}
}

func (p *Program) SetFloat(name string, value float32) {
	p.setFloats(name, gpu.Float, []float32{value})
}

func (p *Program) SetVec2(name string, v mgl32.Vec2) { p.setFloats(name, gpu.Vec2, v[:]) }
func (p *Program) SetVec3(name string, v mgl32.Vec3) { p.setFloats(name, gpu.Vec3, v[:]) }
func (p *Program) SetVec4(name string, v mgl32.Vec4) { p.setFloats(name, gpu.Vec4, v[:]) }
func (p *Program) SetMat2(name string, m mgl32.Mat2) { p.setFloats(name, gpu.Mat2, m[:]) }
func (p *Program) SetMat3(name string, m mgl32.Mat3) { p.setFloats(name, gpu.Mat3, m[:]) }
func (p *Program) SetMat4(name string, m mgl32.Mat4) { p.setFloats(name, gpu.Mat4, m[:]) }

func (p *Program) GetBool(name string) bool {
	return p.GetInt(name) != 0
}

func (p *Program) GetInt(name string) int32 {
	loc := p.location(name)
	if loc == -1 {
		return 0
	}
	return p.device.GetUniformInt(p.id, loc)
}

func (p *Program) GetFloat(name string) float32 {
	var v [1]float32
	p.getFloats(name, v[:])
	return v[0]
}

func (p *Program) GetVec2(name string) (v mgl32.Vec2) { p.getFloats(name, v[:]); return }
func (p *Program) GetVec3(name string) (v mgl32.Vec3) { p.getFloats(name, v[:]); return }
func (p *Program) GetVec4(name string) (v mgl32.Vec4) { p.getFloats(name, v[:]); return }
func (p *Program) GetMat2(name string) (m mgl32.Mat2) { p.getFloats(name, m[:]); return }
func (p *Program) GetMat3(name string) (m mgl32.Mat3) { p.getFloats(name, m[:]); return }
func (p *Program) GetMat4(name string) (m mgl32.Mat4) { p.getFloats(name, m[:]); return }
