package sampling

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/cartprobe/grid"
	"github.com/notargets/cartprobe/types"
)

/*
Interpolation blends the 8 cells surrounding the monitor point trilinearly.
If any of those cells other than the one containing the point has a material
different from the mode (solid in fluid mode, fluid in solid mode), every
sample falls back to the containing cell value. Mode all never falls back.
*/
type Interpolation struct {
	base
	basis      grid.Basis
	onBoundary bool
}

func NewInterpolation(mode Mode, geom grid.Geometry, crd, v00 r3.Vec, flags types.CellFlags) (in *Interpolation, err error) {
	return newInterpolation(MethodInterpolation, mode, geom, crd, v00, flags)
}

func newInterpolation(method Method, mode Mode, geom grid.Geometry, crd, v00 r3.Vec,
	flags types.CellFlags) (in *Interpolation, err error) {
	var b base
	if b, err = newBase(method, mode, geom, crd, v00, flags); err != nil {
		return
	}
	in = &Interpolation{
		base:  b,
		basis: geom.ResolveBasis(crd),
	}
	for n := 0; n < grid.NumCorners; n++ {
		c := in.basis.Corner(n)
		if !geom.Contains(c) {
			return nil, in.fail("construct", c, ErrOutOfDomain)
		}
		if c != in.cell && in.mismatch(c) {
			in.onBoundary = true
		}
	}
	return
}

func (in *Interpolation) Basis() grid.Basis { return in.basis }

// OnBoundary reports whether samples fall back to the containing cell.
func (in *Interpolation) OnBoundary() bool { return in.onBoundary }

func (in *Interpolation) Velocity(v []float64) (vel r3.Vec, err error) {
	if err = in.checkVector("velocity", v); err != nil {
		return
	}
	if in.onBoundary {
		return in.vector(v, in.cell), nil
	}
	for n := 0; n < grid.NumCorners; n++ {
		vel = r3.Add(vel, r3.Scale(in.basis.Weight(n), in.vector(v, in.basis.Corner(n))))
	}
	return
}

func (in *Interpolation) Pressure(p []float64) (float64, error) {
	return in.samplingScalar("pressure", p)
}

func (in *Interpolation) Temperature(t []float64) (float64, error) {
	return in.samplingScalar("temperature", t)
}

func (in *Interpolation) TotalPressure(v, p []float64) (tp float64, err error) {
	var (
		vel r3.Vec
		prs float64
	)
	if vel, err = in.Velocity(v); err != nil {
		return
	}
	if prs, err = in.samplingScalar("total pressure", p); err != nil {
		return
	}
	return TotalPressure(vel, prs, in.v00), nil
}

// Vorticity blends the central difference vorticity of the 8 stencil cells,
// the curl of the trilinearly interpolated velocity.
func (in *Interpolation) Vorticity(v []float64) (omg r3.Vec, err error) {
	if err = in.checkVector("vorticity", v); err != nil {
		return
	}
	if in.onBoundary {
		return in.vorticityAt("vorticity", v, in.cell)
	}
	for n := 0; n < grid.NumCorners; n++ {
		var o r3.Vec
		if o, err = in.vorticityAt("vorticity", v, in.basis.Corner(n)); err != nil {
			return
		}
		omg = r3.Add(omg, r3.Scale(in.basis.Weight(n), o))
	}
	return
}

func (in *Interpolation) samplingScalar(op string, s []float64) (val float64, err error) {
	if err = in.checkScalar(op, s); err != nil {
		return
	}
	if in.onBoundary {
		return in.scalar(s, in.cell), nil
	}
	for n := 0; n < grid.NumCorners; n++ {
		val += in.basis.Weight(n) * in.scalar(s, in.basis.Corner(n))
	}
	return
}
