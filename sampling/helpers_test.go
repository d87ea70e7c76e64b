package sampling

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/cartprobe/grid"
	"github.com/notargets/cartprobe/types"
)

func newTestGeometry(t *testing.T, pitch r3.Vec) grid.Geometry {
	g, err := grid.NewGeometry([3]int{10, 10, 10}, 2, r3.Vec{}, pitch)
	require.NoError(t, err)
	return g
}

func unitPitch() r3.Vec { return r3.Vec{X: 1, Y: 1, Z: 1} }

func forAllCells(g grid.Geometry, f func(idx grid.Index)) {
	for k := 1 - g.Guide; k <= g.Size[2]+g.Guide; k++ {
		for j := 1 - g.Guide; j <= g.Size[1]+g.Guide; j++ {
			for i := 1 - g.Guide; i <= g.Size[0]+g.Guide; i++ {
				f(grid.NewIndex(i, j, k))
			}
		}
	}
}

func scalarField(g grid.Geometry, f func(x r3.Vec) float64) (s []float64) {
	s = make([]float64, g.NumCells())
	forAllCells(g, func(idx grid.Index) {
		s[g.Offset(idx)] = f(g.CellCenter(idx))
	})
	return
}

func vectorField(g grid.Geometry, f func(x r3.Vec) r3.Vec) (v []float64) {
	v = make([]float64, 3*g.NumCells())
	forAllCells(g, func(idx grid.Index) {
		val := f(g.CellCenter(idx))
		m := g.VectorOffset(idx, 0)
		v[m], v[m+1], v[m+2] = val.X, val.Y, val.Z
	})
	return
}

// staggeredField stores component d at the upper face of each cell along d.
func staggeredField(g grid.Geometry, f func(x r3.Vec) r3.Vec) (v []float64) {
	v = make([]float64, 3*g.NumCells())
	forAllCells(g, func(idx grid.Index) {
		v[g.VectorOffset(idx, 0)] = f(g.FaceCenter(idx, 0)).X
		v[g.VectorOffset(idx, 1)] = f(g.FaceCenter(idx, 1)).Y
		v[g.VectorOffset(idx, 2)] = f(g.FaceCenter(idx, 2)).Z
	})
	return
}

func allFluid(g grid.Geometry) types.CellFlags {
	return types.NewCellFlags(g.NumCells(), types.Fluid)
}

// mixedMaterial marks roughly a quarter of the cells solid in a fixed pattern.
func mixedMaterial(g grid.Geometry) (flags types.CellFlags) {
	flags = allFluid(g)
	forAllCells(g, func(idx grid.Index) {
		if (7*idx.I+3*idx.J+idx.K)%4 == 0 {
			setSolid(g, flags, idx)
		}
	})
	return
}

func setSolid(g grid.Geometry, flags types.CellFlags, idx grid.Index) {
	m := g.Offset(idx)
	flags[m] = flags[m].WithState(types.Solid)
}

func linearScalar(x r3.Vec) float64 {
	return 2*x.X + 3*x.Y - x.Z + 1
}

// linearVelocity has the curl (0, 1, 2) everywhere.
func linearVelocity(x r3.Vec) r3.Vec {
	return r3.Vec{X: -x.Y + x.Z + 1, Y: x.X - 0.5, Z: 0.25}
}

var linearCurl = r3.Vec{X: 0, Y: 1, Z: 2}

var allMethods = []Method{MethodNearest, MethodSmoothing, MethodInterpolation, MethodInterpolationStaggered}

var allModes = []Mode{All, FluidOnly, SolidOnly}
