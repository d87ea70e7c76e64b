package sampling

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/cartprobe/grid"
	"github.com/notargets/cartprobe/types"
)

// Nearest returns the value stored in the cell containing the monitor point,
// whatever its material.
type Nearest struct {
	base
}

func NewNearest(mode Mode, geom grid.Geometry, crd, v00 r3.Vec, flags types.CellFlags) (n *Nearest, err error) {
	var b base
	if b, err = newBase(MethodNearest, mode, geom, crd, v00, flags); err != nil {
		return
	}
	n = &Nearest{base: b}
	return
}

func (n *Nearest) Velocity(v []float64) (vel r3.Vec, err error) {
	if err = n.checkVector("velocity", v); err != nil {
		return
	}
	return n.vector(v, n.cell), nil
}

func (n *Nearest) Pressure(p []float64) (float64, error) {
	return n.samplingScalar("pressure", p)
}

func (n *Nearest) Temperature(t []float64) (float64, error) {
	return n.samplingScalar("temperature", t)
}

func (n *Nearest) TotalPressure(v, p []float64) (tp float64, err error) {
	if err = n.checkVector("total pressure", v); err != nil {
		return
	}
	if err = n.checkScalar("total pressure", p); err != nil {
		return
	}
	return TotalPressure(n.vector(v, n.cell), n.scalar(p, n.cell), n.v00), nil
}

func (n *Nearest) Vorticity(v []float64) (omg r3.Vec, err error) {
	if err = n.checkVector("vorticity", v); err != nil {
		return
	}
	return n.vorticityAt("vorticity", v, n.cell)
}

func (n *Nearest) samplingScalar(op string, s []float64) (val float64, err error) {
	if err = n.checkScalar(op, s); err != nil {
		return
	}
	return n.scalar(s, n.cell), nil
}
