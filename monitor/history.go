package monitor

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// WriteHeader describes the run and every monitor of l as comment lines.
func (l *List) WriteHeader(w io.Writer, runID uuid.UUID) (err error) {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# cartprobe monitor history\n")
	fmt.Fprintf(bw, "# run %s\n", runID)
	g := l.Geom
	fmt.Fprintf(bw, "# grid %d x %d x %d guide %d origin (%g,%g,%g) pitch (%g,%g,%g)\n",
		g.Size[0], g.Size[1], g.Size[2], g.Guide,
		g.Origin.X, g.Origin.Y, g.Origin.Z, g.Pitch.X, g.Pitch.Y, g.Pitch.Z)
	for _, m := range l.Monitors {
		fmt.Fprintf(bw, "# monitor %s method %s mode %s points %d\n", m.Name, m.Method, m.Mode, len(m.Points))
		for n, p := range m.Points {
			cell := p.Sampler.Cell()
			fmt.Fprintf(bw, "#   point %d (%g,%g,%g) cell (%d,%d,%d) %s\n",
				n, p.Coord.X, p.Coord.Y, p.Coord.Z, cell.I, cell.J, cell.K, p.Status)
		}
		fmt.Fprintf(bw, "#   columns: %s\n", strings.Join(m.Columns(), " "))
	}
	if err = bw.Flush(); err != nil {
		err = errors.Wrap(err, "writing monitor header")
	}
	return
}

// Columns returns the column labels of a history line for m.
func (m *Monitor) Columns() (cols []string) {
	cols = []string{"name", "step", "time"}
	for n := range m.Points {
		for _, v := range m.Variables {
			for _, c := range v.Columns() {
				cols = append(cols, fmt.Sprintf("%s_%d", c, n))
			}
		}
	}
	return
}

// WriteRecords writes one whitespace separated line per record.
func WriteRecords(w io.Writer, recs []Record) (err error) {
	bw := bufio.NewWriter(w)
	for _, r := range recs {
		fmt.Fprintf(bw, "%s %d %.8e", r.Name, r.Step, r.Time)
		for _, v := range r.Values {
			fmt.Fprintf(bw, " %.8e", v)
		}
		bw.WriteByte('\n')
	}
	if err = bw.Flush(); err != nil {
		err = errors.Wrap(err, "writing monitor records")
	}
	return
}
