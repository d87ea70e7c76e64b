package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypes(t *testing.T) {
	{ // Test state bit packing
		cf := NewCellFlag(Fluid, 0)
		assert.True(t, cf.IsFluid())
		assert.True(t, cf < 0) // state bit is the sign bit of the int32
		assert.Equal(t, 0, cf.Component())

		cf = NewCellFlag(Solid, 17)
		assert.False(t, cf.IsFluid())
		assert.Equal(t, 17, cf.Component())
		assert.Equal(t, CellFlag(17), cf)

		cf = cf.WithState(Fluid)
		assert.True(t, cf.IsFluid())
		assert.Equal(t, 17, cf.Component())
		assert.Equal(t, Fluid, cf.State())

		cf = cf.WithComponent(3).WithState(Solid)
		assert.Equal(t, CellFlag(3), cf)
		assert.Equal(t, Solid, cf.State())
	}
	{ // Test that unrelated bits survive state changes
		cf := CellFlag(1 << 10).WithState(Fluid).WithComponent(MaxComponent)
		assert.Equal(t, 1<<10, int(uint32(cf)&(1<<10)))
		cf = cf.WithState(Solid)
		assert.Equal(t, CellFlag(1<<10|MaxComponent), cf)
	}
	{ // Test flag arrays
		cf := NewCellFlags(27, Fluid)
		assert.Equal(t, 27, cf.CountFluid())
		cf[13] = cf[13].WithState(Solid)
		assert.Equal(t, 26, cf.CountFluid())
	}
	{ // Test state labels
		tokens := []string{"Fluid", " solid", "FLUID"}
		states := []CellState{Fluid, Solid, Fluid}
		for i, token := range tokens {
			cs, err := NewCellState(token)
			assert.NoError(t, err)
			assert.Equal(t, states[i], cs)
		}
		_, err := NewCellState("gas")
		assert.Error(t, err)
		assert.Equal(t, "fluid", Fluid.String())
	}
	{ // Test component bounds
		assert.Panics(t, func() { NewCellFlag(Fluid, MaxComponent+1) })
	}
}
