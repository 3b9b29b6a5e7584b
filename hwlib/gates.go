// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwlib provides a library of reusable components for rtlsim.
//
// Each constructor returns a new component tree; ports are retrieved with
// Component.Port and Component.PortArray.
//
package hwlib

import (
	"github.com/db47h/rtlsim"
)

// common pin names
const (
	pA   = "a"
	pB   = "b"
	pIn  = "in"
	pSel = "sel"
	pOut = "out"
)

// Not returns a NOT gate.
//
//	Inputs: in[bits]
//	Outputs: out[bits]
//	Function: out = ^in
//
func Not(name string, bits int) *rtlsim.Component {
	c := rtlsim.NewComponent(name)
	in, out := c.In(pIn, bits), c.Out(pOut, bits)
	c.Comb("logic", func(s *rtlsim.Sim) {
		s.Set(out, s.Get(in).Not())
	}, rtlsim.Reads(in), rtlsim.Writes(out))
	return c
}

// other gates
type gate func(a, b rtlsim.Value) rtlsim.Value

func (g gate) component(name string, bits int) *rtlsim.Component {
	c := rtlsim.NewComponent(name)
	a, b, out := c.In(pA, bits), c.In(pB, bits), c.Out(pOut, bits)
	c.Comb("logic", func(s *rtlsim.Sim) {
		s.Set(out, g(s.Get(a), s.Get(b)))
	}, rtlsim.Reads(a, b), rtlsim.Writes(out))
	return c
}

var (
	and  = gate(rtlsim.Value.And)
	nand = gate(func(a, b rtlsim.Value) rtlsim.Value { return a.And(b).Not() })
	or   = gate(rtlsim.Value.Or)
	nor  = gate(func(a, b rtlsim.Value) rtlsim.Value { return a.Or(b).Not() })
	xor  = gate(rtlsim.Value.Xor)
	xnor = gate(func(a, b rtlsim.Value) rtlsim.Value { return a.Xor(b).Not() })
)

// And returns a AND gate.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits]
//	Function: out = a & b
//
func And(name string, bits int) *rtlsim.Component { return and.component(name, bits) }

// Nand returns a NAND gate.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits]
//	Function: out = ^(a & b)
//
func Nand(name string, bits int) *rtlsim.Component { return nand.component(name, bits) }

// Or returns a OR gate.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits]
//	Function: out = a | b
//
func Or(name string, bits int) *rtlsim.Component { return or.component(name, bits) }

// Nor returns a NOR gate.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits]
//	Function: out = ^(a | b)
//
func Nor(name string, bits int) *rtlsim.Component { return nor.component(name, bits) }

// Xor returns a XOR gate.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits]
//	Function: out = a ^ b
//
func Xor(name string, bits int) *rtlsim.Component { return xor.component(name, bits) }

// Xnor returns a XNOR gate.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits]
//	Function: out = ^(a ^ b)
//
func Xnor(name string, bits int) *rtlsim.Component { return xnor.component(name, bits) }

// OrReduce returns a N-Way OR gate.
//
//	Inputs: in[bits]
//	Outputs: out
//	Function: out = in[0] | in[1] | ... | in[bits-1]
//
func OrReduce(name string, bits int) *rtlsim.Component {
	c := rtlsim.NewComponent(name)
	in, out := c.In(pIn, bits), c.Out(pOut, 1)
	c.Comb("logic", func(s *rtlsim.Sim) {
		s.Set(out, rtlsim.Bool(s.Get(in).Bool()))
	}, rtlsim.Reads(in), rtlsim.Writes(out))
	return c
}

// AndReduce returns a N-Way AND gate.
//
//	Inputs: in[bits]
//	Outputs: out
//	Function: out = in[0] & in[1] & ... & in[bits-1]
//
func AndReduce(name string, bits int) *rtlsim.Component {
	c := rtlsim.NewComponent(name)
	in, out := c.In(pIn, bits), c.Out(pOut, 1)
	c.Comb("logic", func(s *rtlsim.Sim) {
		s.Set(out, rtlsim.Bool(s.Get(in).Ones() == bits))
	}, rtlsim.Reads(in), rtlsim.Writes(out))
	return c
}
