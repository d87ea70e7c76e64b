package fields

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Knetic/govaluate"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/cartprobe/grid"
)

// Field names accepted by NewEvaluator. u, v, w are the velocity components,
// p the pressure and t the temperature.
var FieldNames = []string{"u", "v", "w", "p", "t"}

// Evaluator fills a Set from analytic expressions of x, y, z and time.
type Evaluator struct {
	exprs [5]*govaluate.EvaluableExpression
	src   [5]string
}

var functions = map[string]govaluate.ExpressionFunction{
	"sin":  unary(math.Sin),
	"cos":  unary(math.Cos),
	"tan":  unary(math.Tan),
	"exp":  unary(math.Exp),
	"log":  unary(math.Log),
	"sqrt": unary(math.Sqrt),
	"abs":  unary(math.Abs),
	"tanh": unary(math.Tanh),
	"pow": func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("pow takes 2 arguments, have %d", len(args))
		}
		a, ok1 := args[0].(float64)
		b, ok2 := args[1].(float64)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("pow takes numeric arguments")
		}
		return math.Pow(a, b), nil
	},
}

func unary(f func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("function takes 1 argument, have %d", len(args))
		}
		x, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("function takes a numeric argument, have %v", args[0])
		}
		return f(x), nil
	}
}

// NewEvaluator compiles one expression per field. Missing fields are zero.
func NewEvaluator(exprs map[string]string) (ev *Evaluator, err error) {
	ev = &Evaluator{}
	for name, src := range exprs {
		var (
			n     = fieldNumber(name)
			input = strings.TrimSpace(src)
		)
		if n < 0 {
			return nil, fmt.Errorf("unknown field %q, must be one of %s", name, strings.Join(FieldNames, ", "))
		}
		if len(input) == 0 {
			continue
		}
		if ev.exprs[n], err = govaluate.NewEvaluableExpressionWithFunctions(input, functions); err != nil {
			return nil, errors.Wrapf(err, "parsing expression for field %s", name)
		}
		for _, v := range ev.exprs[n].Vars() {
			switch v {
			case "x", "y", "z", "time", "pi":
			default:
				return nil, fmt.Errorf("field %s: unknown variable %q, expressions may use x, y, z, time, pi", name, v)
			}
		}
		ev.src[n] = input
	}
	return
}

func fieldNumber(name string) int {
	for i, fn := range FieldNames {
		if strings.EqualFold(strings.TrimSpace(name), fn) {
			return i
		}
	}
	return -1
}

// Expressions returns the compiled sources sorted by field name.
func (ev *Evaluator) Expressions() (list []string) {
	for n, src := range ev.src {
		if ev.exprs[n] != nil {
			list = append(list, FieldNames[n]+" = "+src)
		}
	}
	sort.Strings(list)
	return
}

// Eval returns velocity, pressure and temperature at x.
func (ev *Evaluator) Eval(x r3.Vec, time float64) (vel r3.Vec, p, t float64, err error) {
	var (
		params = map[string]interface{}{
			"x": x.X, "y": x.Y, "z": x.Z, "time": time, "pi": math.Pi,
		}
		vals [5]float64
	)
	for n, expr := range ev.exprs {
		if expr == nil {
			continue
		}
		var res interface{}
		if res, err = expr.Evaluate(params); err != nil {
			err = errors.Wrapf(err, "evaluating field %s at (%g,%g,%g)", FieldNames[n], x.X, x.Y, x.Z)
			return
		}
		val, ok := res.(float64)
		if !ok {
			err = fmt.Errorf("field %s: expression is not numeric, have %v", FieldNames[n], res)
			return
		}
		vals[n] = val
	}
	vel = r3.Vec{X: vals[0], Y: vals[1], Z: vals[2]}
	p, t = vals[3], vals[4]
	return
}

// Fill evaluates every field at the cell centres of s, guide cells included.
func (ev *Evaluator) Fill(s *Set, time float64) (err error) {
	ForEachCell(s.Geom, func(idx grid.Index, m int) {
		if err != nil {
			return
		}
		var vel r3.Vec
		if vel, s.Pressure[m], s.Temperature[m], err = ev.Eval(s.Geom.CellCenter(idx), time); err != nil {
			return
		}
		s.Velocity[3*m], s.Velocity[3*m+1], s.Velocity[3*m+2] = vel.X, vel.Y, vel.Z
	})
	return
}

// FillStaggered is Fill with velocity component d evaluated on the upper face
// of each cell along d.
func (ev *Evaluator) FillStaggered(s *Set, time float64) (err error) {
	if err = ev.Fill(s, time); err != nil {
		return
	}
	ForEachCell(s.Geom, func(idx grid.Index, m int) {
		if err != nil {
			return
		}
		for d := 0; d < 3; d++ {
			var vel r3.Vec
			if vel, _, _, err = ev.Eval(s.Geom.FaceCenter(idx, d), time); err != nil {
				return
			}
			s.Velocity[3*m+d] = grid.Component(vel, d)
		}
	})
	return
}
