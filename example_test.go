// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim_test

import (
	"fmt"

	hw "github.com/db47h/rtlsim"
)

// mux4 is a custom 4 bits mux.
//
type mux4 struct {
	A   *hw.Signal `hw:"in,4"`     // input "a"
	B   *hw.Signal `hw:"in,4"`     // input "b"
	S   *hw.Signal `hw:"in,1,sel"` // the third tag value forces the signal name to "sel"
	Out *hw.Signal `hw:"out,4"`    // output "out"
}

// Comb implements CombLogic.
//
func (m *mux4) Comb(s *hw.Sim) {
	if s.Get(m.S).Bool() {
		s.Set(m.Out, s.Get(m.B))
	} else {
		s.Set(m.Out, s.Get(m.A))
	}
}

// Build example with a custom Mux4
func ExampleBuild() {
	m := new(mux4)
	c, err := hw.Build("mux4", m)
	if err != nil {
		panic(err)
	}
	d, err := hw.Elaborate(c)
	if err != nil {
		panic(err)
	}
	s := hw.NewSim(d)

	s.SetInput(m.A, 1)
	s.SetInput(m.B, 15)
	for _, sel := range []uint64{0, 1} {
		s.SetInput(m.S, sel)
		if err = s.EvalCombinational(); err != nil {
			panic(err)
		}
		fmt.Printf("a=%d, b=%d, sel=%d => out=%v\n", s.Get(m.A), s.Get(m.B), sel, s.Get(m.Out))
	}

	// Output:
	// a=1, b=15, sel=0 => out=4'h1
	// a=1, b=15, sel=1 => out=4'hf
}

func ExampleComponent() {
	c := hw.NewComponent("top")
	in, out := c.In("in", 8), c.Out("out", 8)
	sub := c.Child("inc")
	x, y := sub.In("x", 8), sub.Out("y", 8)
	sub.Comb("logic", func(s *hw.Sim) {
		s.Set(y, s.Get(x).Add(hw.V(8, 1)))
	}, hw.Reads(x), hw.Writes(y))
	c.Connect(x, in)
	c.Connect(out, y)

	d, err := hw.Elaborate(c)
	if err != nil {
		panic(err)
	}
	s := hw.NewSim(d)
	for _, v := range []uint64{0, 41, 255} {
		s.SetInput(in, v)
		s.EvalCombinational()
		fmt.Printf("%s=%d %s=%d (net %s)\n", in.Path(), s.Get(in), y.Path(), s.Get(out), d.NetName(y))
	}

	// Output:
	// top.in=0 top.inc.y=1 (net top.out)
	// top.in=41 top.inc.y=42 (net top.out)
	// top.in=255 top.inc.y=0 (net top.out)
}
