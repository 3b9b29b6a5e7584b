// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/rtlsim"
)

func checkGroup(bits, group int) {
	if group <= 0 || bits%group != 0 {
		panic("group size " + strconv.Itoa(group) + " does not divide " + strconv.Itoa(bits))
	}
}

// Splitter returns a component splitting its input into bits/group outputs.
//
//	Inputs: in[bits]
//	Outputs: out[bits/group][group]
//	Function: out[i] = in[i*group : (i+1)*group]
//
func Splitter(name string, bits, group int) *rtlsim.Component {
	checkGroup(bits, group)
	c := rtlsim.NewComponent(name)
	in := c.In(pIn, bits)
	out := c.OutArray(pOut, bits/group, group)
	c.Comb("logic", func(s *rtlsim.Sim) {
		v := s.Get(in)
		for i, o := range out {
			s.Set(o, v.Slice(i*group, (i+1)*group))
		}
	}, rtlsim.Reads(in), rtlsim.Writes(out...))
	return c
}

// Merger returns a component merging bits/group inputs into a single
// output.
//
//	Inputs: in[bits/group][group]
//	Outputs: out[bits]
//	Function: out[i*group : (i+1)*group] = in[i]
//
func Merger(name string, bits, group int) *rtlsim.Component {
	checkGroup(bits, group)
	c := rtlsim.NewComponent(name)
	in := c.InArray(pIn, bits/group, group)
	out := c.Out(pOut, bits)
	c.Comb("logic", func(s *rtlsim.Sim) {
		for i, p := range in {
			s.SetSlice(out, i*group, (i+1)*group, s.Get(p))
		}
	}, rtlsim.Reads(in...), rtlsim.Writes(out))
	return c
}
