package grid

// Index is a 1-based cell index. Index 1 is the first interior cell, guide
// cells occupy 1-guide..0 and size+1..size+guide.
type Index struct {
	I, J, K int
}

func NewIndex(i, j, k int) Index {
	return Index{I: i, J: j, K: k}
}

// Axis returns the component along axis d (0=i, 1=j, 2=k).
func (idx Index) Axis(d int) int {
	switch d {
	case 0:
		return idx.I
	case 1:
		return idx.J
	case 2:
		return idx.K
	}
	panic("grid: axis out of range")
}

// WithAxis returns a copy of idx with the component along axis d replaced.
func (idx Index) WithAxis(d, val int) Index {
	switch d {
	case 0:
		idx.I = val
	case 1:
		idx.J = val
	case 2:
		idx.K = val
	default:
		panic("grid: axis out of range")
	}
	return idx
}

func Shift(idx Index, di, dj, dk int) Index {
	return Index{I: idx.I + di, J: idx.J + dj, K: idx.K + dk}
}

// Corners of the unit cube spanned by a base index, ordered with i varying
// fastest: (0,0,0), (1,0,0), (0,1,0), (1,1,0), (0,0,1), (1,0,1), (0,1,1), (1,1,1).
var cornerOffsets = [8][3]int{
	{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1},
}

const NumCorners = 8

// Corner returns the n-th corner of the trilinear stencil based at base.
func Corner(base Index, n int) Index {
	o := cornerOffsets[n]
	return Shift(base, o[0], o[1], o[2])
}

// CornerOffset reports whether corner n sits on the upper side along axis d.
func CornerOffset(n, d int) int {
	return cornerOffsets[n][d]
}

type Direction uint8

const (
	XMinus Direction = iota
	XPlus
	YMinus
	YPlus
	ZMinus
	ZPlus
)

const NumDirections = 6

var directionNames = [NumDirections]string{"-x", "+x", "-y", "+y", "-z", "+z"}

func (dir Direction) String() string {
	if int(dir) < NumDirections {
		return directionNames[dir]
	}
	return "unknown"
}

// Neighbor returns the face-adjacent cell of idx in direction dir.
func Neighbor(idx Index, dir Direction) Index {
	switch dir {
	case XMinus:
		return Shift(idx, -1, 0, 0)
	case XPlus:
		return Shift(idx, 1, 0, 0)
	case YMinus:
		return Shift(idx, 0, -1, 0)
	case YPlus:
		return Shift(idx, 0, 1, 0)
	case ZMinus:
		return Shift(idx, 0, 0, -1)
	case ZPlus:
		return Shift(idx, 0, 0, 1)
	}
	panic("grid: unknown direction")
}
