package grid

// Basis is the low corner of a trilinear stencil and the fractional offsets
// of the sample point inside it, each in [0,1).
type Basis struct {
	Base Index
	Coef [3]float64
}

// Weight is the trilinear weight of corner n.
func (b Basis) Weight(n int) (w float64) {
	w = 1
	for d := 0; d < 3; d++ {
		if CornerOffset(n, d) == 1 {
			w *= b.Coef[d]
		} else {
			w *= 1 - b.Coef[d]
		}
	}
	return
}

// Corner returns the n-th stencil cell.
func (b Basis) Corner(n int) Index {
	return Corner(b.Base, n)
}

// Mix returns a basis equal to b except along axis d, where it takes the base
// and coefficient of other.
func (b Basis) Mix(other Basis, d int) Basis {
	b.Base = b.Base.WithAxis(d, other.Base.Axis(d))
	b.Coef[d] = other.Coef[d]
	return b
}
