// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"math/bits"

	"github.com/db47h/rtlsim"
)

// selBits returns the width of a selector for n ways.
func selBits(n int) int {
	if n <= 1 {
		return 1
	}
	return bits.Len(uint(n - 1))
}

// Mux returns a multiplexer.
//
//	Inputs: a[bits], b[bits], sel
//	Outputs: out[bits]
//	Function: if sel == 0 { out = a } else { out = b }
//
func Mux(name string, bits int) *rtlsim.Component {
	c := rtlsim.NewComponent(name)
	a, b, sel := c.In(pA, bits), c.In(pB, bits), c.In(pSel, 1)
	out := c.Out(pOut, bits)
	// sets are traced: the sentinel patterns exercise both branches.
	c.Comb("logic", func(s *rtlsim.Sim) {
		if s.Get(sel).Bool() {
			s.Set(out, s.Get(b))
		} else {
			s.Set(out, s.Get(a))
		}
	})
	return c
}

// MuxN returns a N-way multiplexer.
//
//	Inputs: in[ways][bits], sel[log2(ways)]
//	Outputs: out[bits]
//	Function: out = in[sel], or 0 if sel >= ways
//
func MuxN(name string, ways, bits int) *rtlsim.Component {
	c := rtlsim.NewComponent(name)
	in := c.InArray(pIn, ways, bits)
	sel := c.In(pSel, selBits(ways))
	out := c.Out(pOut, bits)
	c.Comb("logic", func(s *rtlsim.Sim) {
		if i := s.GetUint(sel); i < uint64(len(in)) {
			s.Set(out, s.Get(in[i]))
		} else {
			s.SetUint(out, 0)
		}
	}, rtlsim.Reads(append(append([]*rtlsim.Signal(nil), in...), sel)...), rtlsim.Writes(out))
	return c
}

// DMux returns a demultiplexer.
//
//	Inputs: in[bits], sel
//	Outputs: a[bits], b[bits]
//	Function: if sel == 0 { a = in; b = 0 } else { a = 0; b = in }
//
func DMux(name string, bits int) *rtlsim.Component {
	c := rtlsim.NewComponent(name)
	in, sel := c.In(pIn, bits), c.In(pSel, 1)
	a, b := c.Out(pA, bits), c.Out(pB, bits)
	c.Comb("logic", func(s *rtlsim.Sim) {
		if s.Get(sel).Bool() {
			s.SetUint(a, 0)
			s.Set(b, s.Get(in))
		} else {
			s.Set(a, s.Get(in))
			s.SetUint(b, 0)
		}
	}, rtlsim.Reads(in, sel), rtlsim.Writes(a, b))
	return c
}

// Crossbar returns a crossbar switch, the datapath unit of a network router.
//
//	Inputs: in[ports][bits], sel[ports][log2(ports)]
//	Outputs: out[ports][bits]
//	Function: for i := range out { out[i] = in[sel[i]] }, or 0 if sel[i] >= ports
//
func Crossbar(name string, ports, bits int) *rtlsim.Component {
	c := rtlsim.NewComponent(name)
	in := c.InArray(pIn, ports, bits)
	sel := c.InArray(pSel, ports, selBits(ports))
	out := c.OutArray(pOut, ports, bits)
	reads := append(append([]*rtlsim.Signal(nil), in...), sel...)
	c.Comb("logic", func(s *rtlsim.Sim) {
		for i, o := range out {
			if j := s.GetUint(sel[i]); j < uint64(ports) {
				s.Set(o, s.Get(in[j]))
			} else {
				s.SetUint(o, 0)
			}
		}
	}, rtlsim.Reads(reads...), rtlsim.Writes(out...))
	return c
}
