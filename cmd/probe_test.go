package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/cartprobe/InputParameters"
	"github.com/notargets/cartprobe/sampling"
)

func TestProbe(t *testing.T) {
	fileInput := []byte(`
Title: Probe Test
Grid:
  Size: [8, 8, 8]
  Guide: 1
  Origin: [0, 0, 0]
  Pitch: [1, 1, 1]
Steps: 3
DT: 0.5
Fields:
  u: "1"
  p: x + time
Solids:
  - Min: [6, 6, 6]
    Max: [8, 8, 8]
Monitors:
  - Name: m
    Method: nearest
    Variables: [pressure]
    Points:
      - [2.2, 3.3, 4.4]
  - Name: s
    Method: smoothing
    Mode: fluid
    Variables: [velocity]
    Points:
      - [2.2, 3.3, 4.4]
`)
	parse := func() *InputParameters.InputParametersProbe {
		ip := &InputParameters.InputParametersProbe{}
		require.NoError(t, ip.Parse(fileInput))
		require.NoError(t, ip.Validate())
		return ip
	}
	logger, hook := logrustest.NewNullLogger()
	{ // Test history written to a buffer
		var buf bytes.Buffer
		require.NoError(t, Probe(context.Background(), parse(), &buf, 2, logger))
		var records []string
		for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
			if !strings.HasPrefix(line, "#") {
				records = append(records, line)
			}
		}
		require.Len(t, records, 6)
		// Cell (3,4,5) centred at x = 2.5
		assert.Equal(t, "m 0 0.00000000e+00 2.50000000e+00", records[0])
		assert.Equal(t, "s 0 0.00000000e+00 1.00000000e+00 0.00000000e+00 0.00000000e+00", records[1])
		assert.Equal(t, "m 2 1.00000000e+00 3.50000000e+00", records[4])
		assert.Contains(t, buf.String(), "# monitor s method smoothing mode fluid points 1\n")
		entry := hook.LastEntry()
		require.NotNil(t, entry)
		assert.Equal(t, "probe finished", entry.Message)
		assert.Equal(t, 3, entry.Data["steps"])
	}
	{ // Test history written to a file
		mp := &ModelProbe{OutputFile: filepath.Join(t.TempDir(), "history.txt")}
		require.NoError(t, RunProbe(context.Background(), mp, parse(), logger))
		data, err := os.ReadFile(mp.OutputFile)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "# cartprobe monitor history\n"))
	}
	{ // Test staggered fields reject derived quantities
		ip := parse()
		ip.Staggered = true
		ip.Monitors[1].Method = "interpolation_staggered"
		ip.Monitors[1].Variables = []string{"vorticity"}
		var buf bytes.Buffer
		err := Probe(context.Background(), ip, &buf, 0, logger)
		assert.True(t, errors.Is(err, sampling.ErrUnsupportedOperation))
	}
	{ // Test the velocity layout must match the method of groups reading velocity
		ip := parse()
		ip.Staggered = true
		var buf bytes.Buffer
		err := Probe(context.Background(), ip, &buf, 0, logger)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "monitor s: method smoothing does not match the velocity layout")
		assert.Error(t, ip.Validate())

		ip = parse()
		ip.Monitors[1].Method = "interpolation_staggered"
		err = Probe(context.Background(), ip, &buf, 0, logger)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "monitor s: method interpolation_staggered does not match the velocity layout")
		assert.Error(t, ip.Validate())
		assert.Empty(t, buf.String())
	}
	{ // Test face stored velocity sampled by a staggered group
		ip := parse()
		ip.Staggered = true
		ip.Fields["u"] = "x"
		ip.Monitors[1].Method = "interpolation_staggered"
		require.NoError(t, ip.Validate())
		var buf bytes.Buffer
		require.NoError(t, Probe(context.Background(), ip, &buf, 0, logger))
		assert.Contains(t, buf.String(), "\ns 0 0.00000000e+00 2.20000000e+00 0.00000000e+00 0.00000000e+00\n")
	}
	{ // Test a field expression failing at run time
		ip := parse()
		ip.Fields["t"] = "sin(x, y)"
		var buf bytes.Buffer
		err := Probe(context.Background(), ip, &buf, 0, logger)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "filling fields at step 0")
	}
}
