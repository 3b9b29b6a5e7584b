// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import "github.com/db47h/rtlsim"

// Register returns a clocked register.
//
//	Inputs: in[bits]
//	Outputs: out[bits]
//	Function: out(t) = in(t-1) // where t is the current clock cycle.
//
func Register(name string, bits int) *rtlsim.Component {
	c := rtlsim.NewComponent(name)
	in, out := c.In(pIn, bits), c.Out(pOut, bits)
	c.Seq("seq", func(s *rtlsim.Sim) {
		s.Set(out, s.Get(in))
	}, rtlsim.Reads(in), rtlsim.Writes(out))
	return c
}

// RegisterEn returns a register with a load enable.
//
//	Inputs: in[bits], en
//	Outputs: out[bits]
//	Function: if en(t-1) { out(t) = in(t-1) } else { out(t) = out(t-1) }
//
func RegisterEn(name string, bits int) *rtlsim.Component {
	c := rtlsim.NewComponent(name)
	in, en, out := c.In(pIn, bits), c.In("en", 1), c.Out(pOut, bits)
	c.Seq("seq", func(s *rtlsim.Sim) {
		if s.Get(en).Bool() {
			s.Set(out, s.Get(in))
		}
	}, rtlsim.Reads(in, en), rtlsim.Writes(out))
	return c
}

// Counter returns a counter with synchronous reset.
//
//	Inputs: reset, en
//	Outputs: count[bits]
//	Function: if reset { count = 0 } else if en { count = count + 1 }
//
func Counter(name string, bits int) *rtlsim.Component {
	c := rtlsim.NewComponent(name)
	rst, en := c.In(rtlsim.ResetName, 1), c.In("en", 1)
	count := c.Out("count", bits)
	c.Seq("seq", func(s *rtlsim.Sim) {
		switch {
		case s.Get(rst).Bool():
			s.SetUint(count, 0)
		case s.Get(en).Bool():
			s.Set(count, s.Get(count).Add(rtlsim.V(bits, 1)))
		}
	}, rtlsim.Reads(rst, en, count), rtlsim.Writes(count))
	return c
}
