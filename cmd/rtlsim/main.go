// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command rtlsim elaborates and runs the designs bundled with hwlib.
//
package main

import (
	"fmt"
	"os"

	"github.com/db47h/rtlsim"
	"github.com/db47h/rtlsim/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type options struct {
	design  string
	width   int
	cycles  int
	cap     int
	debug   bool
	metrics bool
}

func (o *options) addFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.design, "design", "d", "adder", "design to simulate, one of "+fmt.Sprint(demoNames()))
	fs.IntVarP(&o.width, "width", "w", 4, "data path width in bits")
	fs.BoolVar(&o.debug, "debug", false, "use debug log level")
}

func (o *options) logger(cmd *cobra.Command) *logrus.Logger {
	l := logrus.New()
	l.Out = cmd.ErrOrStderr()
	if o.debug {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

func (o *options) elaborate(cmd *cobra.Command) (demo, *rtlsim.Component, *rtlsim.Design, error) {
	dm, c, err := lookupDemo(o.design, o.width)
	if err != nil {
		return dm, nil, nil, err
	}
	d, err := rtlsim.Elaborate(c, rtlsim.WithLogger(o.logger(cmd).WithField("design", c.Name())))
	return dm, c, d, err
}

func newRunCmd() *cobra.Command {
	o := options{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate a design",
		Long: `Elaborates one of the bundled designs, drives it for the requested
number of cycles and prints its outputs after each cycle.

	$ rtlsim run --design counter --width 8 --cycles 300`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd)
		},
	}
	o.addFlags(cmd.Flags())
	cmd.Flags().IntVarP(&o.cycles, "cycles", "n", 8, "number of cycles to run")
	cmd.Flags().IntVar(&o.cap, "iteration-cap", 0, "maximum number of passes per combinational settle (0 for the default)")
	cmd.Flags().BoolVar(&o.metrics, "metrics", false, "print prometheus metrics when done")
	return cmd
}

func (o *options) run(cmd *cobra.Command) error {
	dm, c, d, err := o.elaborate(cmd)
	if err != nil {
		return err
	}
	opts := []rtlsim.Option{rtlsim.WithIterationCap(o.cap)}
	reg := prometheus.NewRegistry()
	if o.metrics {
		col, err := metrics.NewCollector(reg, d.Name())
		if err != nil {
			return err
		}
		opts = append(opts, rtlsim.WithObserver(col))
	}
	s := rtlsim.NewSim(d, opts...)
	if dm.init != nil {
		if err = dm.init(s, c); err != nil {
			return err
		}
	}
	out := cmd.OutOrStdout()
	for i := 0; i < o.cycles; i++ {
		if err = dm.cycle(s, c, i, out); err != nil {
			return err
		}
	}
	st := s.Stats()
	o.logger(cmd).WithFields(logrus.Fields{
		"executions": st.Executions,
		"settles":    st.Settles,
		"passes":     st.Passes,
		"cycles":     st.Cycles,
	}).Debug("done")

	if !o.metrics {
		return nil
	}
	mfs, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if _, err = expfmt.MetricFamilyToText(out, mf); err != nil {
			return err
		}
	}
	return nil
}

func newOrderCmd() *cobra.Command {
	o := options{}
	cmd := &cobra.Command{
		Use:          "order",
		Short:        "Print the evaluation order of combinational blocks",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, d, err := o.elaborate(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d signals, %d nets, %d blocks\n", d.Name(), len(d.Signals()), d.NetCount(), d.BlockCount())
			for i, b := range d.Order() {
				fmt.Fprintf(out, "%4d %s\n", i, b)
			}
			return nil
		},
	}
	o.addFlags(cmd.Flags())
	return cmd
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rtlsim",
		Short: "Cycle-accurate hardware simulator",
	}
	cmd.AddCommand(newRunCmd(), newOrderCmd())
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
