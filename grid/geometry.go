package grid

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

var ErrInvalidGeometry = errors.New("grid: invalid geometry")

// Geometry describes the local block of a Cartesian grid: interior cell
// counts, a uniform guide cell width, the cell pitch and the local origin.
type Geometry struct {
	Size   [3]int
	Guide  int
	Pitch  r3.Vec
	Origin r3.Vec
}

func NewGeometry(size [3]int, guide int, origin, pitch r3.Vec) (g Geometry, err error) {
	g = Geometry{
		Size:   size,
		Guide:  guide,
		Pitch:  pitch,
		Origin: origin,
	}
	err = g.Validate()
	return
}

func (g Geometry) Validate() (err error) {
	for d := 0; d < 3; d++ {
		if g.Size[d] < 1 {
			return fmt.Errorf("%w: size[%d] = %d, must be positive", ErrInvalidGeometry, d, g.Size[d])
		}
		if p := Component(g.Pitch, d); !(p > 0) {
			return fmt.Errorf("%w: pitch[%d] = %v, must be positive", ErrInvalidGeometry, d, p)
		}
	}
	if g.Guide < 0 {
		return fmt.Errorf("%w: guide = %d, must not be negative", ErrInvalidGeometry, g.Guide)
	}
	return
}

// Extent is the number of cells along each axis including guide cells.
func (g Geometry) Extent() (ext [3]int) {
	for d := 0; d < 3; d++ {
		ext[d] = g.Size[d] + 2*g.Guide
	}
	return
}

// NumCells is the length of a scalar field buffer.
func (g Geometry) NumCells() int {
	ext := g.Extent()
	return ext[0] * ext[1] * ext[2]
}

// Offset flattens a 1-based index with i varying fastest.
func (g Geometry) Offset(idx Index) int {
	var (
		t1 = 2 * g.Guide
		t2 = g.Guide - 1
		t3 = g.Size[0] + t1
	)
	return t3*((g.Size[1]+t1)*(idx.K+t2)+idx.J+t2) + idx.I + t2
}

// VectorOffset is the position of component l of a 3-wide interleaved vector
// field.
func (g Geometry) VectorOffset(idx Index, l int) int {
	return 3*g.Offset(idx) + l
}

// Contains reports whether idx is addressable, guide cells included.
func (g Geometry) Contains(idx Index) bool {
	for d := 0; d < 3; d++ {
		c := idx.Axis(d)
		if c < 1-g.Guide || c > g.Size[d]+g.Guide {
			return false
		}
	}
	return true
}

// IsInterior reports whether idx lies in 1..size along every axis.
func (g Geometry) IsInterior(idx Index) bool {
	for d := 0; d < 3; d++ {
		c := idx.Axis(d)
		if c < 1 || c > g.Size[d] {
			return false
		}
	}
	return true
}

// InRegion reports whether crd lies inside the interior region of the block.
func (g Geometry) InRegion(crd r3.Vec) bool {
	for d := 0; d < 3; d++ {
		x := Component(crd, d) - Component(g.Origin, d)
		if x < 0 || x >= float64(g.Size[d])*Component(g.Pitch, d) {
			return false
		}
	}
	return true
}

func (g Geometry) CellCenter(idx Index) r3.Vec {
	return r3.Vec{
		X: g.Origin.X + (float64(idx.I)-0.5)*g.Pitch.X,
		Y: g.Origin.Y + (float64(idx.J)-0.5)*g.Pitch.Y,
		Z: g.Origin.Z + (float64(idx.K)-0.5)*g.Pitch.Z,
	}
}

// FaceCenter is the position of the upper face of idx along axis d, where a
// staggered velocity component d is stored.
func (g Geometry) FaceCenter(idx Index, d int) r3.Vec {
	c := g.CellCenter(idx)
	switch d {
	case 0:
		c.X += 0.5 * g.Pitch.X
	case 1:
		c.Y += 0.5 * g.Pitch.Y
	case 2:
		c.Z += 0.5 * g.Pitch.Z
	}
	return c
}

// Local returns (crd - origin) / pitch.
func (g Geometry) Local(crd r3.Vec) r3.Vec {
	return r3.Vec{
		X: (crd.X - g.Origin.X) / g.Pitch.X,
		Y: (crd.Y - g.Origin.Y) / g.Pitch.Y,
		Z: (crd.Z - g.Origin.Z) / g.Pitch.Z,
	}
}

// Resolve returns the index of the cell containing crd. No bounds checking is
// done here.
func (g Geometry) Resolve(crd r3.Vec) Index {
	c := g.Local(crd)
	return Index{
		I: int(math.Floor(c.X)) + 1,
		J: int(math.Floor(c.Y)) + 1,
		K: int(math.Floor(c.Z)) + 1,
	}
}

// ResolveBasis returns the trilinear basis over cell centers: the low corner
// of the 8 cells surrounding crd and the fractional position inside them.
func (g Geometry) ResolveBasis(crd r3.Vec) Basis {
	c := g.Local(crd)
	return newBasis(r3.Sub(c, r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}), 1)
}

// ResolveFaceBasis returns the trilinear basis over upper cell faces. Face i
// sits at i*pitch from the origin.
func (g Geometry) ResolveFaceBasis(crd r3.Vec) Basis {
	return newBasis(g.Local(crd), 0)
}

func newBasis(c r3.Vec, shift int) (b Basis) {
	for d := 0; d < 3; d++ {
		x := Component(c, d)
		f := math.Floor(x)
		r := x - f
		if r >= 1 { // x a hair below an integer
			f, r = f+1, 0
		}
		b.Base = b.Base.WithAxis(d, int(f)+shift)
		b.Coef[d] = r
	}
	return
}

// Component returns v.X, v.Y or v.Z for d = 0, 1, 2.
func Component(v r3.Vec, d int) float64 {
	switch d {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	}
	panic("grid: axis out of range")
}
