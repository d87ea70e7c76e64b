package sampling

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/cartprobe/grid"
	"github.com/notargets/cartprobe/types"
)

/*
InterpolationStaggered is Interpolation for a velocity stored on cell faces:
component d of cell (i,j,k) lives on the upper face of the cell along axis d.
Each component is blended over its own stencil, face aligned along d and cell
centred along the other two axes. Scalars are cell centred and sampled as in
Interpolation.

Total pressure and vorticity are not available for this layout.
*/
type InterpolationStaggered struct {
	Interpolation
	face grid.Basis
}

func NewInterpolationStaggered(mode Mode, geom grid.Geometry, crd, v00 r3.Vec,
	flags types.CellFlags) (st *InterpolationStaggered, err error) {
	var in *Interpolation
	if in, err = newInterpolation(MethodInterpolationStaggered, mode, geom, crd, v00, flags); err != nil {
		return
	}
	st = &InterpolationStaggered{
		Interpolation: *in,
		face:          geom.ResolveFaceBasis(crd),
	}
	for d := 0; d < 3; d++ {
		b := st.componentBasis(d)
		for n := 0; n < grid.NumCorners; n++ {
			if c := b.Corner(n); !geom.Contains(c) {
				return nil, st.fail("construct", c, ErrOutOfDomain)
			}
		}
	}
	return
}

// FaceBasis is the face aligned basis used along each component's own axis.
func (st *InterpolationStaggered) FaceBasis() grid.Basis { return st.face }

func (st *InterpolationStaggered) componentBasis(d int) grid.Basis {
	return st.basis.Mix(st.face, d)
}

func (st *InterpolationStaggered) Velocity(v []float64) (vel r3.Vec, err error) {
	if err = st.checkVector("velocity", v); err != nil {
		return
	}
	if st.onBoundary {
		return st.vector(v, st.cell), nil
	}
	var comp [3]float64
	for d := 0; d < 3; d++ {
		b := st.componentBasis(d)
		for n := 0; n < grid.NumCorners; n++ {
			comp[d] += b.Weight(n) * v[st.geom.VectorOffset(b.Corner(n), d)]
		}
	}
	return r3.Vec{X: comp[0], Y: comp[1], Z: comp[2]}, nil
}

func (st *InterpolationStaggered) TotalPressure(v, p []float64) (float64, error) {
	return 0, st.fail("total pressure", st.cell, ErrUnsupportedOperation)
}

func (st *InterpolationStaggered) Vorticity(v []float64) (r3.Vec, error) {
	return r3.Vec{}, st.fail("vorticity", st.cell, ErrUnsupportedOperation)
}
