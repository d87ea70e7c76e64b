package types

import (
	"fmt"
	"strings"
)

/*
CellFlag packs the per cell classification used by the solver into an int32:
  - bits 0-4:  component (boundary/medium) ID, 0 = unpainted
  - bit 31:    state bit, 1 = fluid, 0 = solid
Remaining bits are carried through untouched.
*/
type CellFlag int32

const (
	StateBit      = 31
	ComponentBits = 5
	ComponentMask = 1<<ComponentBits - 1
	MaxComponent  = ComponentMask

	stateMask uint32 = 1 << StateBit
)

type CellState uint8

const (
	Solid CellState = iota
	Fluid
)

var CellStateNameMap = map[string]CellState{
	"solid": Solid,
	"fluid": Fluid,
}

func NewCellState(label string) (cs CellState, err error) {
	var ok bool
	if cs, ok = CellStateNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown cell state %q, must be one of fluid, solid", label)
	}
	return
}

func (cs CellState) String() string {
	if cs == Fluid {
		return "fluid"
	}
	return "solid"
}

func NewCellFlag(state CellState, component int) (cf CellFlag) {
	if component < 0 || component > MaxComponent {
		panic(fmt.Errorf("component ID %d does not fit in %d bits", component, ComponentBits))
	}
	return CellFlag(0).WithComponent(component).WithState(state)
}

func (cf CellFlag) IsFluid() bool {
	return uint32(cf)&stateMask != 0
}

func (cf CellFlag) State() CellState {
	if cf.IsFluid() {
		return Fluid
	}
	return Solid
}

func (cf CellFlag) WithState(state CellState) CellFlag {
	u := uint32(cf)
	if state == Fluid {
		u |= stateMask
	} else {
		u &^= stateMask
	}
	return CellFlag(int32(u))
}

func (cf CellFlag) Component() int {
	return int(uint32(cf) & ComponentMask)
}

func (cf CellFlag) WithComponent(component int) CellFlag {
	u := uint32(cf)&^ComponentMask | uint32(component)&ComponentMask
	return CellFlag(int32(u))
}

// CellFlags is a guide cell inclusive flag array in field layout.
type CellFlags []CellFlag

func NewCellFlags(N int, state CellState) (cf CellFlags) {
	cf = make(CellFlags, N)
	fill := NewCellFlag(state, 0)
	for i := range cf {
		cf[i] = fill
	}
	return
}

func (cf CellFlags) CountFluid() (n int) {
	for _, f := range cf {
		if f.IsFluid() {
			n++
		}
	}
	return
}
