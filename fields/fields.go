// Package fields holds the per timestep field snapshot that monitor points
// sample: interleaved velocity, pressure and temperature on a guide cell
// inclusive block.
package fields

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/cartprobe/grid"
)

type Set struct {
	Geom        grid.Geometry
	Velocity    []float64 // 3 components per cell, interleaved
	Pressure    []float64
	Temperature []float64
}

func NewSet(geom grid.Geometry) (s *Set, err error) {
	if err = geom.Validate(); err != nil {
		return nil, errors.Wrap(err, "allocating field set")
	}
	N := geom.NumCells()
	s = &Set{
		Geom:        geom,
		Velocity:    make([]float64, 3*N),
		Pressure:    make([]float64, N),
		Temperature: make([]float64, N),
	}
	return
}

// ForEachCell visits every addressable cell, guide cells included, with i
// varying fastest so that offsets are visited in storage order.
func ForEachCell(geom grid.Geometry, f func(idx grid.Index, m int)) {
	var (
		g = geom.Guide
		m int
	)
	for k := 1 - g; k <= geom.Size[2]+g; k++ {
		for j := 1 - g; j <= geom.Size[1]+g; j++ {
			for i := 1 - g; i <= geom.Size[0]+g; i++ {
				f(grid.NewIndex(i, j, k), m)
				m++
			}
		}
	}
}

type Stats struct {
	Min, Max, Mean float64
}

// ScalarStats summarizes the interior cells of a scalar field.
func ScalarStats(geom grid.Geometry, s []float64) (st Stats) {
	interior := make([]float64, 0, geom.Size[0]*geom.Size[1]*geom.Size[2])
	ForEachCell(geom, func(idx grid.Index, m int) {
		if geom.IsInterior(idx) {
			interior = append(interior, s[m])
		}
	})
	st.Min = floats.Min(interior)
	st.Max = floats.Max(interior)
	st.Mean = floats.Sum(interior) / float64(len(interior))
	return
}

// SpeedStats summarizes the velocity magnitude over the interior cells.
func SpeedStats(geom grid.Geometry, v []float64) (st Stats) {
	speed := make([]float64, 0, geom.Size[0]*geom.Size[1]*geom.Size[2])
	ForEachCell(geom, func(idx grid.Index, m int) {
		if geom.IsInterior(idx) {
			speed = append(speed, floats.Norm(v[3*m:3*m+3], 2))
		}
	})
	st.Min = floats.Min(speed)
	st.Max = floats.Max(speed)
	st.Mean = floats.Sum(speed) / float64(len(speed))
	return
}
