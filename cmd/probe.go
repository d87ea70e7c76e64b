/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/notargets/cartprobe/InputParameters"
	"github.com/notargets/cartprobe/fields"
	"github.com/notargets/cartprobe/monitor"
	"github.com/notargets/cartprobe/utils"
)

type ModelProbe struct {
	ICFile         string
	OutputFile     string
	Profile        bool
	ParallelDegree int
}

// ProbeCmd represents the probe command
var ProbeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Sample monitor points of an analytic flow field over a number of steps",
	Long: `
Builds the grid and material from the case file, fills the fields from their
expressions at every step and writes the monitor history.

cartprobe probe -I case.yaml [-o history.txt] [--profile]`,
	Run: func(cmd *cobra.Command, args []string) {
		var err error
		mp := &ModelProbe{}
		if mp.ICFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			panic(err)
		}
		mp.OutputFile, _ = cmd.Flags().GetString("output")
		mp.Profile, _ = cmd.Flags().GetBool("profile")
		mp.ParallelDegree, _ = cmd.Flags().GetInt("parallel")
		ip := processProbeInput(mp)
		if mp.Profile {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		}
		if err = RunProbe(context.Background(), mp, ip, logger); err != nil {
			logger.Error(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(ProbeCmd)
	ProbeCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML (or .toml) case file with the grid, fields, solids and monitors")
	ProbeCmd.Flags().StringP("output", "o", "", "history file, default is standard output")
	ProbeCmd.Flags().Bool("profile", false, "write a CPU profile to the current directory")
	ProbeCmd.Flags().IntP("parallel", "n", 0, "goroutines per monitor group, 0 uses the number of CPUs")
}

const exampleProbeFile = `
########################################
Title: "Test Case"
Grid:
  Size: [32, 16, 16]
  Guide: 2
  Origin: [0, 0, 0]
  Pitch: [0.1, 0.1, 0.1]
Steps: 10
DT: 0.05
Fields:
  u: 1 + 0.1*sin(pi*y)
  p: 1 - 0.01*x
Solids:
  - Min: [1.0, 0.0, 0.0]
    Max: [1.4, 0.8, 1.6]
Monitors:
  - Name: wake
    Method: interpolation # nearest, smoothing, interpolation, interpolation_staggered
    Mode: fluid           # all, fluid, solid
    Variables: [velocity, total_pressure, vorticity]
    Points:
      - [2.0, 0.4, 0.8]
########################################
`

func processProbeInput(mp *ModelProbe) (ip *InputParameters.InputParametersProbe) {
	var err error
	if len(mp.ICFile) == 0 {
		err = fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile)")
		fmt.Printf("error: %s\n", err.Error())
		fmt.Printf("Example File:%s\n", exampleProbeFile)
		os.Exit(1)
	}
	ip = &InputParameters.InputParametersProbe{}
	if err = ip.ReadFile(mp.ICFile); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	if err = ip.Validate(); err != nil {
		fmt.Printf("error: %s: %s\n", mp.ICFile, err.Error())
		os.Exit(1)
	}
	// Standard output carries the history when no output file is given
	if len(mp.OutputFile) != 0 {
		ip.Print()
	}
	return
}

// RunProbe samples the monitors of ip for every step and writes the history
// to mp.OutputFile, or standard output when it is empty.
func RunProbe(ctx context.Context, mp *ModelProbe, ip *InputParameters.InputParametersProbe,
	logger logrus.FieldLogger) (err error) {
	var w io.Writer = os.Stdout
	if len(mp.OutputFile) != 0 {
		var f *os.File
		if f, err = os.Create(mp.OutputFile); err != nil {
			return
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}
	return Probe(ctx, ip, w, mp.ParallelDegree, logger)
}

// Probe runs the case described by ip, writing the history to w.
func Probe(ctx context.Context, ip *InputParameters.InputParametersProbe, w io.Writer,
	parallelDegree int, logger logrus.FieldLogger) (err error) {
	geom, err := ip.Geometry()
	if err != nil {
		return
	}
	boxes, err := ip.Boxes()
	if err != nil {
		return
	}
	flags, painted, err := fields.NewMaterial(geom, boxes)
	if err != nil {
		return
	}
	logger.WithFields(logrus.Fields{
		"title":   ip.Title,
		"cells":   geom.NumCells(),
		"solid":   painted,
		"fluid":   flags.CountFluid(),
		"guide":   geom.Guide,
		"stagger": ip.Staggered,
	}).Info("grid built")
	groups, err := ip.Groups(geom)
	if err != nil {
		return
	}
	list, err := monitor.NewList(geom, flags, ip.V00(), groups, logger)
	if err != nil {
		return
	}
	if parallelDegree > 0 {
		list.ParallelDegree = parallelDegree
	}
	ev, err := fields.NewEvaluator(ip.Fields)
	if err != nil {
		return
	}
	for _, expr := range ev.Expressions() {
		logger.Debugf("field %s", expr)
	}
	set, err := fields.NewSet(geom)
	if err != nil {
		return
	}
	runID := uuid.New()
	if err = list.WriteHeader(w, runID); err != nil {
		return
	}
	for step := 0; step < ip.Steps; step++ {
		var (
			time = float64(step) * ip.DT
			recs []monitor.Record
		)
		if ip.Staggered {
			err = ev.FillStaggered(set, time)
		} else {
			err = ev.Fill(set, time)
		}
		if err != nil {
			return errors.Wrapf(err, "filling fields at step %d", step)
		}
		if recs, err = list.Sample(ctx, step, time, set); err != nil {
			return
		}
		if err = monitor.WriteRecords(w, recs); err != nil {
			return
		}
	}
	ps := fields.ScalarStats(geom, set.Pressure)
	ss := fields.SpeedStats(geom, set.Velocity)
	logger.WithFields(logrus.Fields{
		"run":      runID,
		"steps":    ip.Steps,
		"pressure": fmt.Sprintf("[%g, %g] mean %g", ps.Min, ps.Max, ps.Mean),
		"speed":    fmt.Sprintf("[%g, %g] mean %g", ss.Min, ss.Max, ss.Mean),
	}).Info("probe finished")
	logger.Debug(utils.GetMemUsage())
	return
}
