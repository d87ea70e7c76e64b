package grid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func testGeometry(t *testing.T) Geometry {
	g, err := NewGeometry([3]int{10, 10, 10}, 2, r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1})
	require.NoError(t, err)
	return g
}

func TestGeometry(t *testing.T) {
	{ // Test validation
		_, err := NewGeometry([3]int{0, 10, 10}, 2, r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1})
		assert.True(t, errors.Is(err, ErrInvalidGeometry))
		_, err = NewGeometry([3]int{10, 10, 10}, -1, r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1})
		assert.True(t, errors.Is(err, ErrInvalidGeometry))
		_, err = NewGeometry([3]int{10, 10, 10}, 1, r3.Vec{}, r3.Vec{X: 1, Y: 0, Z: 1})
		assert.True(t, errors.Is(err, ErrInvalidGeometry))
	}
	g := testGeometry(t)
	{ // Test flattening, first addressable cell is offset 0 and i varies fastest
		assert.Equal(t, 14*14*14, g.NumCells())
		assert.Equal(t, 0, g.Offset(NewIndex(-1, -1, -1)))
		assert.Equal(t, 2+14*(2+14*2), g.Offset(NewIndex(1, 1, 1)))
		assert.Equal(t, 1, g.Offset(NewIndex(0, -1, -1)))
		assert.Equal(t, 14, g.Offset(NewIndex(-1, 0, -1)))
		assert.Equal(t, 14*14, g.Offset(NewIndex(-1, -1, 0)))
		assert.Equal(t, g.NumCells()-1, g.Offset(NewIndex(12, 12, 12)))
		assert.Equal(t, 3*g.Offset(NewIndex(4, 5, 6))+2, g.VectorOffset(NewIndex(4, 5, 6), 2))
	}
	{ // Test containment including guide cells
		assert.True(t, g.Contains(NewIndex(-1, 1, 12)))
		assert.False(t, g.Contains(NewIndex(-2, 1, 1)))
		assert.False(t, g.Contains(NewIndex(1, 13, 1)))
		assert.True(t, g.IsInterior(NewIndex(1, 10, 5)))
		assert.False(t, g.IsInterior(NewIndex(0, 10, 5)))
		assert.True(t, g.InRegion(r3.Vec{X: 0, Y: 9.99, Z: 5}))
		assert.False(t, g.InRegion(r3.Vec{X: 10, Y: 5, Z: 5}))
	}
	{ // Test resolution of the containing cell
		assert.Equal(t, NewIndex(4, 4, 4), g.Resolve(r3.Vec{X: 3.5, Y: 3.5, Z: 3.5}))
		assert.Equal(t, NewIndex(1, 1, 1), g.Resolve(r3.Vec{}))
		assert.Equal(t, NewIndex(0, 1, 10), g.Resolve(r3.Vec{X: -0.5, Y: 0.999, Z: 9.5}))
		shifted, err := NewGeometry([3]int{4, 4, 4}, 1, r3.Vec{X: 10, Y: -2, Z: 0}, r3.Vec{X: 0.5, Y: 2, Z: 0.25})
		require.NoError(t, err)
		assert.Equal(t, NewIndex(3, 2, 5), shifted.Resolve(r3.Vec{X: 11.2, Y: 1, Z: 1.1}))
		for _, idx := range []Index{{1, 1, 1}, {3, 2, 4}, {4, 4, 4}} {
			assert.Equal(t, idx, shifted.Resolve(shifted.CellCenter(idx)))
		}
	}
	{ // Test interpolation basis
		b := g.ResolveBasis(r3.Vec{X: 3.5, Y: 3.5, Z: 3.5})
		assert.Equal(t, NewIndex(4, 4, 4), b.Base)
		assert.Equal(t, [3]float64{0, 0, 0}, b.Coef)
		b = g.ResolveBasis(r3.Vec{X: 3.75, Y: 4.25, Z: 0.0})
		assert.Equal(t, NewIndex(4, 4, 0), b.Base)
		assert.InDeltaSlice(t, []float64{0.25, 0.75, 0.5}, b.Coef[:], 1.e-12)
		fb := g.ResolveFaceBasis(r3.Vec{X: 3.5, Y: 3.0, Z: 0.25})
		assert.Equal(t, NewIndex(3, 3, 0), fb.Base)
		assert.InDeltaSlice(t, []float64{0.5, 0, 0.25}, fb.Coef[:], 1.e-12)
		for _, x := range []float64{0, 0.1, 0.49999, 0.5, 2.7, 9.999} {
			b = g.ResolveBasis(r3.Vec{X: x, Y: x, Z: x})
			for d := 0; d < 3; d++ {
				assert.True(t, b.Coef[d] >= 0 && b.Coef[d] < 1)
			}
		}
	}
	{ // Test trilinear weights sum to one and the mixed basis
		b := Basis{Base: NewIndex(2, 3, 4), Coef: [3]float64{0.2, 0.7, 0.4}}
		var sum float64
		for n := 0; n < NumCorners; n++ {
			sum += b.Weight(n)
		}
		assert.InDelta(t, 1., sum, 1.e-14)
		assert.InDelta(t, 0.8*0.3*0.6, b.Weight(0), 1.e-14)
		assert.InDelta(t, 0.2*0.7*0.4, b.Weight(7), 1.e-14)
		assert.Equal(t, NewIndex(3, 4, 5), b.Corner(7))
		m := b.Mix(Basis{Base: NewIndex(9, 9, 9), Coef: [3]float64{0.5, 0.5, 0.5}}, 1)
		assert.Equal(t, NewIndex(2, 9, 4), m.Base)
		assert.Equal(t, [3]float64{0.2, 0.5, 0.4}, m.Coef)
	}
	{ // Test neighbor shifts
		idx := NewIndex(4, 4, 4)
		assert.Equal(t, NewIndex(3, 4, 4), Neighbor(idx, XMinus))
		assert.Equal(t, NewIndex(4, 5, 4), Neighbor(idx, YPlus))
		assert.Equal(t, NewIndex(4, 4, 3), Neighbor(idx, ZMinus))
		assert.Equal(t, "+z", ZPlus.String())
	}
}
