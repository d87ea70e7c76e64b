package fields

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/cartprobe/grid"
	"github.com/notargets/cartprobe/types"
)

func TestFields(t *testing.T) {
	geom, err := grid.NewGeometry([3]int{4, 3, 2}, 1, r3.Vec{X: -1, Y: 0, Z: 0}, r3.Vec{X: 0.5, Y: 1, Z: 2})
	require.NoError(t, err)
	{ // Test allocation and storage order
		s, err := NewSet(geom)
		require.NoError(t, err)
		assert.Equal(t, 6*5*4, len(s.Pressure))
		assert.Equal(t, 3*6*5*4, len(s.Velocity))
		var count int
		ForEachCell(geom, func(idx grid.Index, m int) {
			assert.Equal(t, geom.Offset(idx), m)
			count++
		})
		assert.Equal(t, geom.NumCells(), count)
		_, err = NewSet(grid.Geometry{})
		assert.Error(t, err)
	}
	{ // Test expression evaluation at cell centres
		ev, err := NewEvaluator(map[string]string{
			"u": "2*x + time",
			"v": "sin(pi*y)",
			"W": "",
			"p": "x*y*z",
			"t": "300 + pow(z, 2)",
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"p = x*y*z", "t = 300 + pow(z, 2)", "u = 2*x + time", "v = sin(pi*y)"}, ev.Expressions())
		s, err := NewSet(geom)
		require.NoError(t, err)
		require.NoError(t, ev.Fill(s, 0.5))
		idx := grid.NewIndex(2, 3, 1)
		c := geom.CellCenter(idx)
		m := geom.Offset(idx)
		assert.InDelta(t, 2*c.X+0.5, s.Velocity[3*m], 1.e-12)
		assert.InDelta(t, math.Sin(math.Pi*c.Y), s.Velocity[3*m+1], 1.e-12)
		assert.Equal(t, 0., s.Velocity[3*m+2])
		assert.InDelta(t, c.X*c.Y*c.Z, s.Pressure[m], 1.e-12)
		assert.InDelta(t, 300+c.Z*c.Z, s.Temperature[m], 1.e-12)

		require.NoError(t, ev.FillStaggered(s, 0.5))
		f := geom.FaceCenter(idx, 0)
		assert.InDelta(t, 2*f.X+0.5, s.Velocity[3*m], 1.e-12)
		assert.InDelta(t, c.X*c.Y*c.Z, s.Pressure[m], 1.e-12)

		st := ScalarStats(geom, s.Temperature)
		assert.InDelta(t, 301., st.Min, 1.e-12) // interior z centres are 1 and 3
		assert.InDelta(t, 309., st.Max, 1.e-12)
		assert.InDelta(t, 305., st.Mean, 1.e-12)
	}
	{ // Test expression errors
		_, err := NewEvaluator(map[string]string{"q": "x"})
		assert.Error(t, err)
		_, err = NewEvaluator(map[string]string{"u": "2*("})
		assert.Error(t, err)
		_, err = NewEvaluator(map[string]string{"u": "2*r"})
		assert.Error(t, err)
	}
	{ // Test painting of solid boxes
		flags, painted, err := NewMaterial(geom, []Box{
			{Min: r3.Vec{X: -1, Y: 0, Z: 0}, Max: r3.Vec{X: -0.5, Y: 3, Z: 4}, Component: 2},
		})
		require.NoError(t, err)
		// interior i=1 centres at x=-0.75, all j and k
		assert.Equal(t, 3*2, painted)
		assert.False(t, flags[geom.Offset(grid.NewIndex(1, 2, 2))].IsFluid())
		assert.Equal(t, 2, flags[geom.Offset(grid.NewIndex(1, 2, 2))].Component())
		assert.True(t, flags[geom.Offset(grid.NewIndex(2, 2, 2))].IsFluid())
		flags, painted, err = NewMaterial(geom, []Box{
			{Min: r3.Vec{X: -1, Y: 1, Z: 2}, Max: r3.Vec{X: -0.5, Y: 2, Z: 4}, Component: 4, State: types.Fluid},
			{Min: r3.Vec{X: -1, Y: 0, Z: 0}, Max: r3.Vec{X: -0.5, Y: 3, Z: 4}, Component: 2},
		})
		require.NoError(t, err)
		assert.Equal(t, 3*2-1, painted)
		assert.True(t, flags[geom.Offset(grid.NewIndex(1, 2, 2))].IsFluid())
		assert.Equal(t, 4, flags[geom.Offset(grid.NewIndex(1, 2, 2))].Component())
		assert.False(t, flags[geom.Offset(grid.NewIndex(1, 1, 2))].IsFluid())
		assert.Equal(t, 6*5*4-5, flags.CountFluid())
		_, _, err = NewMaterial(geom, []Box{{Min: r3.Vec{X: 1}, Max: r3.Vec{}}})
		assert.Error(t, err)
	}
	{ // Test speed statistics
		s, err := NewSet(geom)
		require.NoError(t, err)
		for i := range s.Velocity {
			if i%3 == 0 {
				s.Velocity[i] = 3
			} else if i%3 == 1 {
				s.Velocity[i] = 4
			}
		}
		st := SpeedStats(geom, s.Velocity)
		assert.InDelta(t, 5., st.Min, 1.e-12)
		assert.InDelta(t, 5., st.Max, 1.e-12)
	}
}
