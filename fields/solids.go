package fields

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/cartprobe/grid"
	"github.com/notargets/cartprobe/types"
)

// Box is an axis aligned region painted with State, solid by default. A cell
// is inside when its centre is.
type Box struct {
	Min, Max  r3.Vec
	Component int
	State     types.CellState
}

func (b Box) Contains(x r3.Vec) bool {
	return x.X >= b.Min.X && x.X <= b.Max.X &&
		x.Y >= b.Min.Y && x.Y <= b.Max.Y &&
		x.Z >= b.Min.Z && x.Z <= b.Max.Z
}

// NewMaterial returns an all fluid flag array for geom with the boxes painted
// in, and the number of interior cells painted solid. The first box holding a
// cell centre decides that cell, so a fluid box listed ahead of a solid one
// carves a hole in it.
func NewMaterial(geom grid.Geometry, boxes []Box) (flags types.CellFlags, painted int, err error) {
	for i, b := range boxes {
		if b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z {
			return nil, 0, fmt.Errorf("solid box %d has min %v above max %v", i, b.Min, b.Max)
		}
		if b.Component < 0 || b.Component > types.MaxComponent {
			return nil, 0, fmt.Errorf("solid box %d: component ID %d out of range [0,%d]", i, b.Component, types.MaxComponent)
		}
	}
	flags = types.NewCellFlags(geom.NumCells(), types.Fluid)
	ForEachCell(geom, func(idx grid.Index, m int) {
		c := geom.CellCenter(idx)
		for _, b := range boxes {
			if b.Contains(c) {
				flags[m] = types.NewCellFlag(b.State, b.Component)
				if b.State == types.Solid && geom.IsInterior(idx) {
					painted++
				}
				return
			}
		}
	})
	return
}
