// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/db47h/rtlsim"
	"github.com/db47h/rtlsim/hwlib"
	"github.com/pkg/errors"
)

// a demo is a bundled design and the stimulus used to drive it.
type demo struct {
	build func(width int) (*rtlsim.Component, error)
	// init is called once before the first cycle.
	init func(s *rtlsim.Sim, c *rtlsim.Component) error
	// cycle drives cycle i and prints the results.
	cycle func(s *rtlsim.Sim, c *rtlsim.Component, i int, w io.Writer) error
}

var demos = map[string]demo{
	"adder": {
		build: func(width int) (*rtlsim.Component, error) {
			return hwlib.RippleCarryAdder("adder", width), nil
		},
		cycle: func(s *rtlsim.Sim, c *rtlsim.Component, i int, w io.Writer) error {
			in0, in1, sum := c.PortArray("in0"), c.PortArray("in1"), c.PortArray("sum")
			a, b := uint64(i*3), uint64(i*5)
			if err := hwlib.SetInputs(s, in0, a); err != nil {
				return err
			}
			if err := hwlib.SetInputs(s, in1, b); err != nil {
				return err
			}
			if err := s.EvalCombinational(); err != nil {
				return err
			}
			_, err := fmt.Fprintf(w, "%d: %d + %d = %d\n", i, hwlib.Uint(s, in0), hwlib.Uint(s, in1), hwlib.Uint(s, sum))
			return err
		},
	},
	"counter": {
		build: func(width int) (*rtlsim.Component, error) {
			return hwlib.Counter("counter", width), nil
		},
		init: func(s *rtlsim.Sim, c *rtlsim.Component) error {
			if err := s.Reset(); err != nil {
				return err
			}
			return s.SetInput(c.Port("en"), 1)
		},
		cycle: func(s *rtlsim.Sim, c *rtlsim.Component, i int, w io.Writer) error {
			if err := s.Tick(); err != nil {
				return err
			}
			_, err := fmt.Fprintf(w, "%d: count=%v\n", s.Cycles(), s.Get(c.Port("count")))
			return err
		},
	},
	"splitter": {
		build: func(width int) (*rtlsim.Component, error) {
			if width%4 != 0 {
				return nil, errors.Errorf("splitter width must be a multiple of 4, got %d", width)
			}
			return hwlib.Splitter("splitter", width, 4), nil
		},
		cycle: func(s *rtlsim.Sim, c *rtlsim.Component, i int, w io.Writer) error {
			in := c.Port("in")
			if err := s.SetInput(in, uint64(i)*0x1111111111111111+0x0123456789abcdef); err != nil {
				return err
			}
			if err := s.EvalCombinational(); err != nil {
				return err
			}
			var b strings.Builder
			for _, o := range c.PortArray("out") {
				fmt.Fprintf(&b, " %x", s.Get(o))
			}
			_, err := fmt.Fprintf(w, "%d: %v =>%s\n", i, s.Get(in), b.String())
			return err
		},
	},
}

func demoNames() []string {
	var names []string
	for n := range demos {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func lookupDemo(name string, width int) (demo, *rtlsim.Component, error) {
	d, ok := demos[name]
	if !ok {
		return d, nil, errors.Errorf("unknown design %q, must be one of %s", name, strings.Join(demoNames(), ", "))
	}
	if width <= 0 || width > rtlsim.MaxWidth {
		return d, nil, errors.Errorf("invalid width %d", width)
	}
	c, err := d.build(width)
	return d, c, err
}
