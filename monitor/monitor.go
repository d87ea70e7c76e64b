// Package monitor samples groups of monitor points from a field snapshot
// every step and writes their history.
package monitor

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/cartprobe/fields"
	"github.com/notargets/cartprobe/grid"
	"github.com/notargets/cartprobe/sampling"
	"github.com/notargets/cartprobe/types"
	"github.com/notargets/cartprobe/utils"
)

type Variable uint8

const (
	Velocity Variable = iota
	Pressure
	Temperature
	TotalPressure
	Vorticity
)

var VariableNameMap = map[string]Variable{
	"velocity":       Velocity,
	"pressure":       Pressure,
	"temperature":    Temperature,
	"total_pressure": TotalPressure,
	"totalpressure":  TotalPressure,
	"vorticity":      Vorticity,
}

func NewVariable(label string) (v Variable, err error) {
	var ok bool
	if v, ok = VariableNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown monitor variable %q, must be one of velocity, pressure, "+
			"temperature, total_pressure, vorticity", label)
	}
	return
}

func (v Variable) String() string {
	switch v {
	case Velocity:
		return "velocity"
	case Pressure:
		return "pressure"
	case Temperature:
		return "temperature"
	case TotalPressure:
		return "total_pressure"
	case Vorticity:
		return "vorticity"
	}
	return fmt.Sprintf("Variable(%d)", uint8(v))
}

// Columns names the history columns written for v.
func (v Variable) Columns() []string {
	switch v {
	case Velocity:
		return []string{"u", "v", "w"}
	case Pressure:
		return []string{"p"}
	case Temperature:
		return []string{"t"}
	case TotalPressure:
		return []string{"tp"}
	case Vorticity:
		return []string{"ox", "oy", "oz"}
	}
	return nil
}

// Group is a named set of monitor points sharing a method, mode and variable
// list.
type Group struct {
	Name      string
	Method    sampling.Method
	Mode      sampling.Mode
	Variables []Variable
	Points    []r3.Vec
}

type Point struct {
	Coord   r3.Vec
	Sampler sampling.Sampler
	Status  sampling.PointStatus
}

type Monitor struct {
	Group
	Points []Point
	stride int // values per point
}

// Width is the number of values in one record of m.
func (m *Monitor) Width() int {
	return m.stride * len(m.Points)
}

// Record holds the values of one monitor group for one step, ordered by
// point then variable then component.
type Record struct {
	Name   string
	Step   int
	Time   float64
	Values []float64
}

type List struct {
	Geom           grid.Geometry
	Monitors       []*Monitor
	ParallelDegree int
	logger         logrus.FieldLogger
}

// NewList builds a sampler for every point of every group. flags is borrowed
// for the life of the list.
func NewList(geom grid.Geometry, flags types.CellFlags, v00 r3.Vec, groups []Group,
	logger logrus.FieldLogger) (l *List, err error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	l = &List{
		Geom:           geom,
		ParallelDegree: runtime.NumCPU(),
		logger:         logger,
	}
	names := make(map[string]bool, len(groups))
	for _, g := range groups {
		var m *Monitor
		if names[g.Name] {
			return nil, fmt.Errorf("duplicate monitor name %q", g.Name)
		}
		names[g.Name] = true
		if m, err = newMonitor(geom, flags, v00, g, logger); err != nil {
			return nil, err
		}
		l.Monitors = append(l.Monitors, m)
	}
	return
}

func newMonitor(geom grid.Geometry, flags types.CellFlags, v00 r3.Vec, g Group,
	logger logrus.FieldLogger) (m *Monitor, err error) {
	switch {
	case len(strings.TrimSpace(g.Name)) == 0:
		return nil, fmt.Errorf("monitor group has no name")
	case strings.ContainsAny(g.Name, " \t\n"):
		return nil, fmt.Errorf("monitor name %q contains whitespace", g.Name)
	case len(g.Variables) == 0:
		return nil, fmt.Errorf("monitor %s has no variables", g.Name)
	case len(g.Points) == 0:
		return nil, fmt.Errorf("monitor %s has no points", g.Name)
	}
	m = &Monitor{Group: g}
	for _, v := range g.Variables {
		if g.Method == sampling.MethodInterpolationStaggered && (v == TotalPressure || v == Vorticity) {
			return nil, errors.Wrapf(sampling.ErrUnsupportedOperation,
				"monitor %s: %s with method %s", g.Name, v, g.Method)
		}
		if len(v.Columns()) == 0 {
			return nil, fmt.Errorf("monitor %s: unknown variable %v", g.Name, v)
		}
		m.stride += len(v.Columns())
	}
	m.Points = make([]Point, len(g.Points))
	for n, crd := range g.Points {
		var s sampling.Sampler
		if s, err = sampling.New(g.Method, g.Mode, geom, crd, v00, flags); err != nil {
			return nil, errors.Wrapf(err, "monitor %s point %d", g.Name, n)
		}
		st := s.CheckMonitorPoint()
		m.Points[n] = Point{Coord: crd, Sampler: s, Status: st}
		pointStatus.WithLabelValues(st.String()).Inc()
		if sm, ok := s.(*sampling.Smoothing); ok {
			logger.WithFields(logrus.Fields{
				"monitor":    g.Name,
				"point":      n,
				"neighbours": eligible(sm),
			}).Debug("smoothing stencil")
		}
		if st != sampling.PointStatusOK {
			cell := s.Cell()
			logger.WithFields(logrus.Fields{
				"monitor": g.Name,
				"point":   n,
				"cell":    fmt.Sprintf("(%d,%d,%d)", cell.I, cell.J, cell.K),
				"status":  st,
			}).Warn("monitor point cell does not match the sampling mode")
		}
	}
	return
}

func eligible(sm *sampling.Smoothing) string {
	dirs := make([]string, 0, sm.NAdd())
	for dir := grid.Direction(0); dir < grid.NumDirections; dir++ {
		if sm.Eligible(dir) {
			dirs = append(dirs, dir.String())
		}
	}
	return strings.Join(dirs, " ")
}

// Sample evaluates every monitor of the list on s. Records come back in
// monitor order.
func (l *List) Sample(ctx context.Context, step int, simTime float64, s *fields.Set) (recs []Record, err error) {
	if err = ctx.Err(); err != nil {
		return
	}
	if s.Geom != l.Geom {
		return nil, fmt.Errorf("field set geometry %+v does not match monitor geometry %+v", s.Geom, l.Geom)
	}
	defer observe(time.Now())
	recs = make([]Record, len(l.Monitors))
	g, gctx := errgroup.WithContext(ctx)
	for i, m := range l.Monitors {
		g.Go(func() error {
			vals, err := m.sample(gctx, s, l.ParallelDegree)
			if err != nil {
				sampleErrors.WithLabelValues(m.Name).Inc()
				return errors.Wrapf(err, "sampling monitor %s at step %d", m.Name, step)
			}
			samplesTotal.WithLabelValues(m.Name).Add(float64(len(m.Points)))
			if utils.IsNan(vals) {
				l.logger.WithFields(logrus.Fields{
					"monitor": m.Name,
					"step":    step,
				}).Warn("NaN in monitor sample")
			}
			recs[i] = Record{Name: m.Name, Step: step, Time: simTime, Values: vals}
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}
	return
}

func (m *Monitor) sample(ctx context.Context, s *fields.Set, parallelDegree int) (vals []float64, err error) {
	var (
		pm   = utils.NewPartitionMap(parallelDegree, len(m.Points))
		errs = make([]error, pm.ParallelDegree)
	)
	vals = make([]float64, m.Width())
	pm.Run(func(bn, kMin, kMax int) {
		for n := kMin; n < kMax; n++ {
			if errs[bn] = ctx.Err(); errs[bn] != nil {
				return
			}
			if errs[bn] = m.samplePoint(m.Points[n].Sampler, s, vals[n*m.stride:(n+1)*m.stride]); errs[bn] != nil {
				errs[bn] = errors.Wrapf(errs[bn], "point %d", n)
				return
			}
		}
	})
	for _, err = range errs {
		if err != nil {
			return nil, err
		}
	}
	return
}

func (m *Monitor) samplePoint(smp sampling.Sampler, s *fields.Set, out []float64) (err error) {
	var (
		ii  int
		vec r3.Vec
		val float64
	)
	for _, v := range m.Variables {
		switch v {
		case Velocity:
			vec, err = smp.Velocity(s.Velocity)
		case Vorticity:
			vec, err = smp.Vorticity(s.Velocity)
		case Pressure:
			val, err = smp.Pressure(s.Pressure)
		case Temperature:
			val, err = smp.Temperature(s.Temperature)
		case TotalPressure:
			val, err = smp.TotalPressure(s.Velocity, s.Pressure)
		}
		if err != nil {
			return
		}
		if len(v.Columns()) == 3 {
			out[ii], out[ii+1], out[ii+2] = vec.X, vec.Y, vec.Z
			ii += 3
		} else {
			out[ii] = val
			ii++
		}
	}
	return
}

func observe(start time.Time) {
	sampleDuration.Observe(time.Since(start).Seconds())
}
