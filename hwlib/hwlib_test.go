// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib_test

import (
	"testing"

	hw "github.com/db47h/rtlsim"
)

func newSim(t *testing.T, c *hw.Component, opts ...hw.Option) *hw.Sim {
	t.Helper()
	d, err := hw.Elaborate(c)
	if err != nil {
		t.Fatal(err)
	}
	return hw.NewSim(d, opts...)
}

func eval(t *testing.T, s *hw.Sim) {
	t.Helper()
	if err := s.EvalCombinational(); err != nil {
		t.Fatal(err)
	}
}

func tick(t *testing.T, s *hw.Sim) {
	t.Helper()
	if err := s.Tick(); err != nil {
		t.Fatal(err)
	}
}

func set(t *testing.T, s *hw.Sim, sig *hw.Signal, x uint64) {
	t.Helper()
	if err := s.SetInput(sig, x); err != nil {
		t.Fatal(err)
	}
}

// testGate runs a component through all its input combinations. The first
// input is the most significant bit of the combination index.
//
func testGate(t *testing.T, c *hw.Component, result [][]bool) {
	t.Helper()
	s := newSim(t, c)
	in, out := s.Design().Inputs(), s.Design().Outputs()
	tot := 1 << uint(len(in))
	for i := 0; i < tot; i++ {
		for k, p := range in {
			set(t, s, p, uint64(i>>uint(len(in)-k-1))&1)
		}
		eval(t, s)
		for o, p := range out {
			if exp, got := result[o][i], s.Get(p).Bool(); exp != got {
				t.Errorf("%s %d: %s = %v, got %v", c.Name(), i, p.Name(), exp, got)
			}
		}
	}
}
