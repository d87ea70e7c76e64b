package sampling

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/cartprobe/grid"
)

// TotalPressure is 0.5*|v-v00|^2 + p, the kinetic energy measured in the
// frame moving with v00 plus the static pressure.
func TotalPressure(v r3.Vec, p float64, v00 r3.Vec) float64 {
	v1 := r3.Sub(v, v00)
	return 0.5*r3.Norm2(v1) + p
}

// vorticityAt is the curl of the cell centred velocity at idx using second
// order central differences over the six face neighbours.
func (b *base) vorticityAt(op string, v []float64, idx grid.Index) (omg r3.Vec, err error) {
	var vn [grid.NumDirections]r3.Vec
	for dir := grid.Direction(0); dir < grid.NumDirections; dir++ {
		nb := grid.Neighbor(idx, dir)
		if !b.geom.Contains(nb) {
			err = b.fail(op, nb, ErrOutOfDomain)
			return
		}
		vn[dir] = b.vector(v, nb)
	}
	var (
		dx2 = 2 * b.geom.Pitch.X
		dy2 = 2 * b.geom.Pitch.Y
		dz2 = 2 * b.geom.Pitch.Z
		xm  = vn[grid.XMinus]
		xp  = vn[grid.XPlus]
		ym  = vn[grid.YMinus]
		yp  = vn[grid.YPlus]
		zm  = vn[grid.ZMinus]
		zp  = vn[grid.ZPlus]
	)
	omg.X = (yp.Z-ym.Z)/dy2 - (zp.Y-zm.Y)/dz2
	omg.Y = (zp.X-zm.X)/dz2 - (xp.Z-xm.Z)/dx2
	omg.Z = (xp.Y-xm.Y)/dx2 - (yp.X-ym.X)/dy2
	return
}
