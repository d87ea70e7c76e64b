package sampling

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/cartprobe/grid"
	"github.com/notargets/cartprobe/types"
)

/*
Smoothing averages the cell containing the monitor point with its face
neighbours:
  - mode all:   every neighbour that exists
  - mode fluid: fluid neighbours only
  - mode solid: solid neighbours only
The neighbour set is fixed at construction.
*/
type Smoothing struct {
	base
	add  [grid.NumDirections]bool
	nAdd int // number of neighbours taking part, the center cell excluded
}

func NewSmoothing(mode Mode, geom grid.Geometry, crd, v00 r3.Vec, flags types.CellFlags) (s *Smoothing, err error) {
	var b base
	if b, err = newBase(MethodSmoothing, mode, geom, crd, v00, flags); err != nil {
		return
	}
	s = &Smoothing{base: b}
	for dir := grid.Direction(0); dir < grid.NumDirections; dir++ {
		nb := grid.Neighbor(s.cell, dir)
		if geom.Contains(nb) && !s.mismatch(nb) {
			s.add[dir] = true
			s.nAdd++
		}
	}
	return
}

// NAdd is the number of neighbours averaged with the center cell.
func (s *Smoothing) NAdd() int { return s.nAdd }

// Eligible reports whether the neighbour in direction dir takes part.
func (s *Smoothing) Eligible(dir grid.Direction) bool { return s.add[dir] }

func (s *Smoothing) Velocity(v []float64) (vel r3.Vec, err error) {
	if err = s.checkVector("velocity", v); err != nil {
		return
	}
	return s.samplingVector(v), nil
}

func (s *Smoothing) Pressure(p []float64) (float64, error) {
	return s.samplingScalar("pressure", p)
}

func (s *Smoothing) Temperature(t []float64) (float64, error) {
	return s.samplingScalar("temperature", t)
}

func (s *Smoothing) TotalPressure(v, p []float64) (tp float64, err error) {
	var (
		vel r3.Vec
		prs float64
	)
	if vel, err = s.Velocity(v); err != nil {
		return
	}
	if prs, err = s.samplingScalar("total pressure", p); err != nil {
		return
	}
	return TotalPressure(vel, prs, s.v00), nil
}

// Vorticity averages the cell vorticities over the same cells as the
// velocity, which equals the curl of the smoothed velocity.
func (s *Smoothing) Vorticity(v []float64) (omg r3.Vec, err error) {
	if err = s.checkVector("vorticity", v); err != nil {
		return
	}
	if omg, err = s.vorticityAt("vorticity", v, s.cell); err != nil {
		return
	}
	for dir := grid.Direction(0); dir < grid.NumDirections; dir++ {
		if !s.add[dir] {
			continue
		}
		var o r3.Vec
		if o, err = s.vorticityAt("vorticity", v, grid.Neighbor(s.cell, dir)); err != nil {
			return
		}
		omg = r3.Add(omg, o)
	}
	omg = s.average(omg)
	return
}

func (s *Smoothing) samplingScalar(op string, f []float64) (val float64, err error) {
	if err = s.checkScalar(op, f); err != nil {
		return
	}
	val = s.scalar(f, s.cell)
	for dir := grid.Direction(0); dir < grid.NumDirections; dir++ {
		if s.add[dir] {
			val += s.scalar(f, grid.Neighbor(s.cell, dir))
		}
	}
	val /= float64(1 + s.nAdd)
	return
}

func (s *Smoothing) samplingVector(v []float64) (vel r3.Vec) {
	vel = s.vector(v, s.cell)
	for dir := grid.Direction(0); dir < grid.NumDirections; dir++ {
		if s.add[dir] {
			vel = r3.Add(vel, s.vector(v, grid.Neighbor(s.cell, dir)))
		}
	}
	return s.average(vel)
}

func (s *Smoothing) average(sum r3.Vec) r3.Vec {
	n := float64(1 + s.nAdd)
	return r3.Vec{X: sum.X / n, Y: sum.Y / n, Z: sum.Z / n}
}
