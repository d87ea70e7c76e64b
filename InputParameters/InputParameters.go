package InputParameters

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ghodss/yaml"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/cartprobe/fields"
	"github.com/notargets/cartprobe/grid"
	"github.com/notargets/cartprobe/monitor"
	"github.com/notargets/cartprobe/sampling"
	"github.com/notargets/cartprobe/types"
)

type GridParameters struct {
	Size   [3]int     `yaml:"Size" toml:"Size"`
	Guide  int        `yaml:"Guide" toml:"Guide"`
	Origin [3]float64 `yaml:"Origin" toml:"Origin"`
	Pitch  [3]float64 `yaml:"Pitch" toml:"Pitch"`
}

type BoxParameters struct {
	Min       [3]float64 `yaml:"Min" toml:"Min"`
	Max       [3]float64 `yaml:"Max" toml:"Max"`
	Component int        `yaml:"Component" toml:"Component"`
	State     string     `yaml:"State" toml:"State"` // solid (default) or fluid
}

type MonitorParameters struct {
	Name      string       `yaml:"Name" toml:"Name"`
	Method    string       `yaml:"Method" toml:"Method"`
	Mode      string       `yaml:"Mode" toml:"Mode"`
	Variables []string     `yaml:"Variables" toml:"Variables"`
	Points    [][3]float64 `yaml:"Points" toml:"Points"`
}

// Parameters obtained from the YAML or TOML case file
type InputParametersProbe struct {
	Title         string              `yaml:"Title" toml:"Title"`
	Grid          GridParameters      `yaml:"Grid" toml:"Grid"`
	FrameVelocity [3]float64          `yaml:"FrameVelocity" toml:"FrameVelocity"`
	Steps         int                 `yaml:"Steps" toml:"Steps"`
	DT            float64             `yaml:"DT" toml:"DT"`
	Staggered     bool                `yaml:"Staggered" toml:"Staggered"` // Velocity stored on upper cell faces
	Fields        map[string]string   `yaml:"Fields" toml:"Fields"`       // Field name -> expression of x, y, z, time
	Solids        []BoxParameters     `yaml:"Solids" toml:"Solids"`
	Monitors      []MonitorParameters `yaml:"Monitors" toml:"Monitors"`
}

func (ip *InputParametersProbe) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

// ParseTOML reads the TOML form of the case file. Real valued entries must be
// written with a decimal point.
func (ip *InputParametersProbe) ParseTOML(data []byte) (err error) {
	_, err = toml.Decode(string(data), ip)
	return
}

// ReadFile parses fileName as TOML when it ends in .toml and as YAML otherwise.
func (ip *InputParametersProbe) ReadFile(fileName string) (err error) {
	var data []byte
	if data, err = os.ReadFile(fileName); err != nil {
		return
	}
	if strings.EqualFold(filepath.Ext(fileName), ".toml") {
		err = ip.ParseTOML(data)
	} else {
		err = ip.Parse(data)
	}
	if err != nil {
		err = fmt.Errorf("parsing %s: %w", fileName, err)
	}
	return
}

func (ip *InputParametersProbe) Print() {
	g := ip.Grid
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%d,%d,%d]\t\t= Grid Size\n", g.Size[0], g.Size[1], g.Size[2])
	fmt.Printf("[%d]\t\t\t= Guide Cells\n", g.Guide)
	fmt.Printf("%v\t= Origin\n", g.Origin)
	fmt.Printf("%v\t= Pitch\n", g.Pitch)
	fmt.Printf("%v\t= Frame Velocity\n", ip.FrameVelocity)
	fmt.Printf("[%d]\t\t\t= Steps\n", ip.Steps)
	fmt.Printf("%8.5f\t\t= DT\n", ip.DT)
	fmt.Printf("[%v]\t\t\t= Staggered\n", ip.Staggered)
	keys := make([]string, len(ip.Fields))
	i := 0
	for k := range ip.Fields {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("Fields[%s] = %s\n", key, ip.Fields[key])
	}
	for i, b := range ip.Solids {
		fmt.Printf("Solids[%d] = %v to %v, component %d %s\n", i, b.Min, b.Max, b.Component, b.State)
	}
	for _, m := range ip.Monitors {
		fmt.Printf("Monitors[%s] = %s/%s %v, %d points\n", m.Name, m.Method, m.Mode, m.Variables, len(m.Points))
	}
}

func vec(a [3]float64) r3.Vec {
	return r3.Vec{X: a[0], Y: a[1], Z: a[2]}
}

func (ip *InputParametersProbe) Geometry() (grid.Geometry, error) {
	g := ip.Grid
	return grid.NewGeometry(g.Size, g.Guide, vec(g.Origin), vec(g.Pitch))
}

func (ip *InputParametersProbe) V00() r3.Vec {
	return vec(ip.FrameVelocity)
}

func (ip *InputParametersProbe) Boxes() (boxes []fields.Box, err error) {
	for i, b := range ip.Solids {
		box := fields.Box{Min: vec(b.Min), Max: vec(b.Max), Component: b.Component}
		if len(strings.TrimSpace(b.State)) != 0 {
			if box.State, err = types.NewCellState(b.State); err != nil {
				return nil, fmt.Errorf("solid box %d: %w", i, err)
			}
		}
		boxes = append(boxes, box)
	}
	return
}

// Groups converts the monitor entries, checking method, mode and variable
// names and that every point lies inside the block.
func (ip *InputParametersProbe) Groups(geom grid.Geometry) (groups []monitor.Group, err error) {
	for _, mp := range ip.Monitors {
		g := monitor.Group{Name: mp.Name}
		if g.Method, err = sampling.NewMethod(mp.Method); err != nil {
			return nil, fmt.Errorf("monitor %s: %w", mp.Name, err)
		}
		if len(strings.TrimSpace(mp.Mode)) == 0 {
			g.Mode = sampling.All
		} else if g.Mode, err = sampling.NewMode(mp.Mode); err != nil {
			return nil, fmt.Errorf("monitor %s: %w", mp.Name, err)
		}
		for _, label := range mp.Variables {
			var v monitor.Variable
			if v, err = monitor.NewVariable(label); err != nil {
				return nil, fmt.Errorf("monitor %s: %w", mp.Name, err)
			}
			g.Variables = append(g.Variables, v)
		}
		if staggered := g.Method == sampling.MethodInterpolationStaggered; staggered != ip.Staggered && usesVelocity(g.Variables) {
			return nil, fmt.Errorf("monitor %s: method %s does not match the velocity layout (Staggered: %v)",
				mp.Name, g.Method, ip.Staggered)
		}
		for n, p := range mp.Points {
			crd := vec(p)
			if !geom.InRegion(crd) {
				return nil, fmt.Errorf("monitor %s: point %d %v lies outside the grid", mp.Name, n, p)
			}
			g.Points = append(g.Points, crd)
		}
		groups = append(groups, g)
	}
	return
}

// usesVelocity reports whether any of vars is read from the velocity field.
func usesVelocity(vars []monitor.Variable) bool {
	for _, v := range vars {
		switch v {
		case monitor.Velocity, monitor.TotalPressure, monitor.Vorticity:
			return true
		}
	}
	return false
}

func (ip *InputParametersProbe) Validate() (err error) {
	var geom grid.Geometry
	if geom, err = ip.Geometry(); err != nil {
		return
	}
	if ip.Steps < 1 {
		return fmt.Errorf("Steps must be at least 1, have %d", ip.Steps)
	}
	if ip.DT < 0 {
		return fmt.Errorf("DT must not be negative, have %g", ip.DT)
	}
	if len(ip.Monitors) == 0 {
		return fmt.Errorf("no Monitors defined")
	}
	if _, err = fields.NewEvaluator(ip.Fields); err != nil {
		return
	}
	if _, err = ip.Boxes(); err != nil {
		return
	}
	_, err = ip.Groups(geom)
	return
}
