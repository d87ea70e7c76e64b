// Package sampling computes point values of cell centred (and face
// staggered) flow fields at monitor coordinates on a Cartesian block with
// guide cells.
package sampling

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/cartprobe/grid"
	"github.com/notargets/cartprobe/types"
)

type Mode uint8

const (
	All Mode = iota
	FluidOnly
	SolidOnly
)

var ModeNameMap = map[string]Mode{
	"all":   All,
	"fluid": FluidOnly,
	"solid": SolidOnly,
}

func NewMode(label string) (m Mode, err error) {
	var ok bool
	if m, ok = ModeNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown sampling mode %q, must be one of all, fluid, solid", label)
	}
	return
}

func (m Mode) String() string {
	switch m {
	case All:
		return "all"
	case FluidOnly:
		return "fluid"
	case SolidOnly:
		return "solid"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

type Method uint8

const (
	MethodNearest Method = iota
	MethodSmoothing
	MethodInterpolation
	MethodInterpolationStaggered
)

var MethodNameMap = map[string]Method{
	"nearest":                 MethodNearest,
	"smoothing":               MethodSmoothing,
	"interpolation":           MethodInterpolation,
	"interpolation_staggered": MethodInterpolationStaggered,
	"interpolationstgv":       MethodInterpolationStaggered,
}

func NewMethod(label string) (m Method, err error) {
	var ok bool
	if m, ok = MethodNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown sampling method %q, must be one of nearest, smoothing, "+
			"interpolation, interpolation_staggered", label)
	}
	return
}

func (m Method) String() string {
	switch m {
	case MethodNearest:
		return "nearest"
	case MethodSmoothing:
		return "smoothing"
	case MethodInterpolation:
		return "interpolation"
	case MethodInterpolationStaggered:
		return "interpolation_staggered"
	}
	return fmt.Sprintf("Method(%d)", uint8(m))
}

// PointStatus tells whether the cell containing a monitor point matches the
// requested mode. It is advisory and never changes what a sampler returns.
type PointStatus uint8

const (
	PointStatusOK PointStatus = iota
	UnexpectedSolid
	UnexpectedFluid
)

func (ps PointStatus) String() string {
	switch ps {
	case PointStatusOK:
		return "ok"
	case UnexpectedSolid:
		return "unexpected_solid"
	case UnexpectedFluid:
		return "unexpected_fluid"
	}
	return fmt.Sprintf("PointStatus(%d)", uint8(ps))
}

// Sampler is implemented by every sampling method. Field buffers are
// borrowed for the duration of a call and never written; a Sampler is
// immutable after construction and safe for concurrent use.
type Sampler interface {
	Velocity(v []float64) (r3.Vec, error)
	Pressure(p []float64) (float64, error)
	Temperature(t []float64) (float64, error)
	TotalPressure(v, p []float64) (float64, error)
	Vorticity(v []float64) (r3.Vec, error)
	CheckMonitorPoint() PointStatus
	Cell() grid.Index
	Method() Method
	Mode() Mode
}

var (
	_ Sampler = &Nearest{}
	_ Sampler = &Smoothing{}
	_ Sampler = &Interpolation{}
	_ Sampler = &InterpolationStaggered{}
)

// New builds the sampler for method. flags is borrowed and must outlive the
// sampler.
func New(method Method, mode Mode, geom grid.Geometry, crd, v00 r3.Vec,
	flags types.CellFlags) (s Sampler, err error) {
	switch method {
	case MethodNearest:
		var n *Nearest
		if n, err = NewNearest(mode, geom, crd, v00, flags); err == nil {
			s = n
		}
	case MethodSmoothing:
		var sm *Smoothing
		if sm, err = NewSmoothing(mode, geom, crd, v00, flags); err == nil {
			s = sm
		}
	case MethodInterpolation:
		var in *Interpolation
		if in, err = NewInterpolation(mode, geom, crd, v00, flags); err == nil {
			s = in
		}
	case MethodInterpolationStaggered:
		var st *InterpolationStaggered
		if st, err = NewInterpolationStaggered(mode, geom, crd, v00, flags); err == nil {
			s = st
		}
	default:
		err = fmt.Errorf("unknown sampling method %v", method)
	}
	return
}

type base struct {
	method Method
	mode   Mode
	geom   grid.Geometry
	cell   grid.Index // cell containing the monitor point
	v00    r3.Vec     // frame velocity
	flags  types.CellFlags
}

func newBase(method Method, mode Mode, geom grid.Geometry, crd, v00 r3.Vec,
	flags types.CellFlags) (b base, err error) {
	if err = geom.Validate(); err != nil {
		return
	}
	b = base{
		method: method,
		mode:   mode,
		geom:   geom,
		cell:   geom.Resolve(crd),
		v00:    v00,
		flags:  flags,
	}
	if len(flags) != geom.NumCells() {
		err = b.fail("construct", b.cell, ErrFlagsSize)
		return
	}
	if !geom.Contains(b.cell) {
		err = b.fail("construct", b.cell, ErrOutOfDomain)
	}
	return
}

func (b *base) Cell() grid.Index { return b.cell }
func (b *base) Method() Method   { return b.method }
func (b *base) Mode() Mode       { return b.mode }

func (b *base) CheckMonitorPoint() PointStatus {
	switch {
	case b.mode == FluidOnly && !b.isFluid(b.cell):
		return UnexpectedSolid
	case b.mode == SolidOnly && b.isFluid(b.cell):
		return UnexpectedFluid
	}
	return PointStatusOK
}

// mismatch reports whether the material of idx differs from the mode.
func (b *base) mismatch(idx grid.Index) bool {
	switch b.mode {
	case FluidOnly:
		return !b.isFluid(idx)
	case SolidOnly:
		return b.isFluid(idx)
	}
	return false
}

func (b *base) isFluid(idx grid.Index) bool {
	return b.flags[b.geom.Offset(idx)].IsFluid()
}

func (b *base) scalar(s []float64, idx grid.Index) float64 {
	return s[b.geom.Offset(idx)]
}

func (b *base) vector(v []float64, idx grid.Index) r3.Vec {
	m := 3 * b.geom.Offset(idx)
	return r3.Vec{X: v[m], Y: v[m+1], Z: v[m+2]}
}

func (b *base) checkScalar(op string, s []float64) error {
	if len(s) < b.geom.NumCells() {
		return b.fail(op, b.cell, ErrFieldSize)
	}
	return nil
}

func (b *base) checkVector(op string, v []float64) error {
	if len(v) < 3*b.geom.NumCells() {
		return b.fail(op, b.cell, ErrFieldSize)
	}
	return nil
}

func (b *base) fail(op string, idx grid.Index, err error) error {
	return &Error{Op: op, Method: b.method, Index: idx, Err: err}
}
