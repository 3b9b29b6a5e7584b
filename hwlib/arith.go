// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/rtlsim"
)

// HalfAdder returns a half adder.
//
//	Inputs: a, b
//	Outputs: s, c
//	Function: s = lsb(a + b)
//	          c = msb(a + b)
//
func HalfAdder(name string) *rtlsim.Component {
	c := rtlsim.NewComponent(name)
	a, b := c.In(pA, 1), c.In(pB, 1)
	sum, cout := c.Out("s", 1), c.Out("c", 1)
	c.Comb("logic", func(s *rtlsim.Sim) {
		va, vb := s.Get(a), s.Get(b)
		s.Set(sum, va.Xor(vb))
		s.Set(cout, va.And(vb))
	})
	return c
}

// FullAdder returns a 1 bit full adder. Its read and write sets are derived
// by tracing.
//
//	Inputs: in0, in1, cin
//	Outputs: sum, cout
//	Function: sum = in0 ^ in1 ^ cin
//	          cout = majority(in0, in1, cin)
//
func FullAdder(name string) *rtlsim.Component {
	c := rtlsim.NewComponent(name)
	in0, in1, cin := c.In("in0", 1), c.In("in1", 1), c.In("cin", 1)
	sum, cout := c.Out("sum", 1), c.Out("cout", 1)
	c.Comb("logic", func(s *rtlsim.Sim) {
		a, b, cc := s.Get(in0), s.Get(in1), s.Get(cin)
		s.Set(sum, a.Xor(b).Xor(cc))
		s.Set(cout, a.And(b).Or(a.And(cc)).Or(b.And(cc)))
	})
	return c
}

// RippleCarryAdder returns a n bits ripple carry adder built from n full
// adders. Operands and result are arrays of 1 bit ports. The carry in of the
// first stage is tied to 0 and the last carry out is dropped.
//
//	Inputs: in0[n], in1[n]
//	Outputs: sum[n]
//	Function: sum = (in0 + in1) mod 2^n
//
func RippleCarryAdder(name string, n int) *rtlsim.Component {
	c := rtlsim.NewComponent(name)
	in0, in1 := c.InArray("in0", n, 1), c.InArray("in1", n, 1)
	sum := c.OutArray("sum", n, 1)
	adders := make([]*rtlsim.Component, n)
	for i := range adders {
		a := FullAdder(rtlsim.ArrayName("adders", i))
		if err := c.Add(a); err != nil {
			panic(err)
		}
		adders[i] = a
		c.Connect(a.Port("in0"), in0[i])
		c.Connect(a.Port("in1"), in1[i])
		c.Connect(a.Port("sum"), sum[i])
	}
	for i := 0; i < n-1; i++ {
		c.Connect(adders[i+1].Port("cin"), adders[i].Port("cout"))
	}
	c.Tie(adders[0].Port("cin"), 0)
	return c
}

// Adder returns a behavioral n bits adder.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits], c
//	Function: out = lsb(a + b), c = carry out
//
func Adder(name string, bits int) *rtlsim.Component {
	c := rtlsim.NewComponent(name)
	a, b := c.In(pA, bits), c.In(pB, bits)
	out, cout := c.Out(pOut, bits), c.Out("c", 1)
	c.Comb("logic", func(s *rtlsim.Sim) {
		va, vb := s.Get(a), s.Get(b)
		sum := va.Add(vb)
		s.Set(out, sum)
		s.Set(cout, rtlsim.Bool(sum.Lt(va)))
	}, rtlsim.Reads(a, b), rtlsim.Writes(out, cout))
	return c
}
