// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

import (
	"strconv"

	"github.com/pkg/errors"
)

// Dir is the direction of a signal relative to its component.
//
type Dir int

// Signal directions.
//
const (
	Internal Dir = iota
	Input
	Output
)

func (d Dir) String() string {
	switch d {
	case Input:
		return "in"
	case Output:
		return "out"
	}
	return "wire"
}

// A Signal is a fixed width port or wire of a component. Signals do not
// hold values: once elaborated, each signal maps to a net whose value lives
// in a Sim.
//
type Signal struct {
	name  string
	width int
	dir   Dir
	comp  *Component
	id    int
	d     *Design
}

// Name returns the signal name within its component.
//
func (s *Signal) Name() string { return s.name }

// Path returns the full hierarchical name of the signal.
//
func (s *Signal) Path() string { return s.comp.Path() + "." + s.name }

// Width returns the signal width in bits.
//
func (s *Signal) Width() int { return s.width }

// Dir returns the signal direction.
//
func (s *Signal) Dir() Dir { return s.dir }

// Component returns the component the signal belongs to.
//
func (s *Signal) Component() *Component { return s.comp }

func (s *Signal) String() string { return s.Path() }

// Kind is the kind of an update block.
//
type Kind int

// Update block kinds.
//
const (
	Combinational Kind = iota
	Sequential
)

func (k Kind) String() string {
	if k == Sequential {
		return "seq"
	}
	return "comb"
}

// An UpdateFn is the body of an update block. It reads and writes signals
// through the Sim it is given and must not keep references to it.
//
type UpdateFn func(s *Sim)

type blockSpec struct {
	name     string
	comp     *Component
	kind     Kind
	fn       UpdateFn
	reads    []*Signal
	writes   []*Signal
	declared bool
}

// A BlockOption configures an update block.
//
type BlockOption func(*blockSpec)

// Reads declares signals read by an update block. Blocks declared with
// neither Reads nor Writes have their read and write sets derived by
// tracing at elaboration time.
//
func Reads(sigs ...*Signal) BlockOption {
	return func(b *blockSpec) {
		b.reads = append(b.reads, sigs...)
		b.declared = true
	}
}

// Writes declares signals written by an update block.
//
func Writes(sigs ...*Signal) BlockOption {
	return func(b *blockSpec) {
		b.writes = append(b.writes, sigs...)
		b.declared = true
	}
}

type tie struct {
	sig *Signal
	x   uint64
}

// A Component is a named container of signals, sub-components and update
// blocks. It has no behavior of its own: after elaboration, the component
// hierarchy is only used for naming.
//
// A simple pass-through component can be built like this:
//
//	c := rtlsim.NewComponent("PassThrough")
//	in, out := c.In("in", 16), c.Out("out", 16)
//	c.Comb("logic", func(s *rtlsim.Sim) {
//		s.Set(out, s.Get(in))
//	}, rtlsim.Reads(in), rtlsim.Writes(out))
//
type Component struct {
	name     string
	parent   *Component
	children []*Component
	signals  []*Signal
	conns    [][2]*Signal
	ties     []tie
	blocks   []*blockSpec
	d        *Design
}

// NewComponent returns a new root component.
//
func NewComponent(name string) *Component {
	return &Component{name: name}
}

// Name returns the component name.
//
func (c *Component) Name() string { return c.name }

// Parent returns the parent component or nil for a root component.
//
func (c *Component) Parent() *Component { return c.parent }

// Path returns the hierarchical name of the component.
//
func (c *Component) Path() string {
	if c.parent == nil {
		return c.name
	}
	return c.parent.Path() + "." + c.name
}

// Child creates a new sub-component.
//
func (c *Component) Child(name string) *Component {
	sub := &Component{name: name, parent: c}
	c.children = append(c.children, sub)
	return sub
}

// Add adds a root component built elsewhere as a sub-component of c.
// Components that are part of an elaborated tree cannot be added or added
// to.
//
func (c *Component) Add(sub *Component) error {
	if sub.parent != nil {
		return errors.New("component " + sub.Path() + " already has a parent")
	}
	if sub.d != nil || c.d != nil {
		return errors.New("cannot add " + sub.name + " to " + c.Path() + ": already elaborated")
	}
	for p := c; p != nil; p = p.parent {
		if p == sub {
			return errors.New("component " + sub.name + " cannot be added to itself")
		}
	}
	sub.parent = c
	c.children = append(c.children, sub)
	return nil
}

// Children returns the sub-components of c.
//
func (c *Component) Children() []*Component { return c.children }

// Signals returns the signals of c in declaration order.
//
func (c *Component) Signals() []*Signal { return c.signals }

// Signal returns the signal with the given name or nil.
//
func (c *Component) Signal(name string) *Signal {
	for _, s := range c.signals {
		if s.name == name {
			return s
		}
	}
	return nil
}

// Port returns the signal with the given name. It panics if no such signal
// exists.
//
func (c *Component) Port(name string) *Signal {
	s := c.Signal(name)
	if s == nil {
		panic("signal " + c.Path() + "." + name + " does not exist")
	}
	return s
}

func (c *Component) newSignal(name string, width int, dir Dir) *Signal {
	checkWidth(width)
	if c.Signal(name) != nil {
		panic("duplicate signal name " + c.Path() + "." + name)
	}
	s := &Signal{name: name, width: width, dir: dir, comp: c, id: -1}
	c.signals = append(c.signals, s)
	return s
}

// PortArray returns the signals name[0], name[1], ... of a signal array.
// This function panics if the array does not exist.
//
func (c *Component) PortArray(name string) []*Signal {
	var out []*Signal
	for i := 0; ; i++ {
		s := c.Signal(ArrayName(name, i))
		if s == nil {
			break
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		panic("signal array " + c.Path() + "." + name + " does not exist")
	}
	return out
}

// In creates an input port.
//
func (c *Component) In(name string, width int) *Signal { return c.newSignal(name, width, Input) }

// Out creates an output port.
//
func (c *Component) Out(name string, width int) *Signal { return c.newSignal(name, width, Output) }

// Wire creates an internal signal.
//
func (c *Component) Wire(name string, width int) *Signal { return c.newSignal(name, width, Internal) }

func (c *Component) array(name string, n, width int, dir Dir) []*Signal {
	r := make([]*Signal, n)
	for i := range r {
		r[i] = c.newSignal(ArrayName(name, i), width, dir)
	}
	return r
}

// InArray creates n input ports named name[0] through name[n-1].
//
func (c *Component) InArray(name string, n, width int) []*Signal {
	return c.array(name, n, width, Input)
}

// OutArray creates n output ports named name[0] through name[n-1].
//
func (c *Component) OutArray(name string, n, width int) []*Signal {
	return c.array(name, n, width, Output)
}

// WireArray creates n internal signals named name[0] through name[n-1].
//
func (c *Component) WireArray(name string, n, width int) []*Signal {
	return c.array(name, n, width, Internal)
}

// ArrayName returns the name of the i-th element of a signal array.
//
func ArrayName(name string, i int) string {
	return name + "[" + strconv.Itoa(i) + "]"
}

// Connect wires a and b together. Connected signals share the same net.
// Width checks are deferred to elaboration.
//
func (c *Component) Connect(a, b *Signal) {
	if a == nil || b == nil {
		panic("nil signal in connection")
	}
	c.conns = append(c.conns, [2]*Signal{a, b})
}

// Tie ties sig to a constant value.
//
func (c *Component) Tie(sig *Signal, x uint64) {
	if sig == nil {
		panic("nil signal in tie-off")
	}
	c.ties = append(c.ties, tie{sig, x})
}

func (c *Component) addBlock(name string, k Kind, fn UpdateFn, opts []BlockOption) {
	if fn == nil {
		panic("nil update function for block " + c.Path() + "." + name)
	}
	b := &blockSpec{name: name, comp: c, kind: k, fn: fn}
	for _, o := range opts {
		o(b)
	}
	c.blocks = append(c.blocks, b)
}

// Comb registers a combinational update block.
//
func (c *Component) Comb(name string, fn UpdateFn, opts ...BlockOption) {
	c.addBlock(name, Combinational, fn, opts)
}

// Seq registers a sequential update block, run once per clock edge.
// Writes done by sequential blocks become visible only once all sequential
// blocks have run.
//
func (c *Component) Seq(name string, fn UpdateFn, opts ...BlockOption) {
	c.addBlock(name, Sequential, fn, opts)
}

// Walk calls fn for c and all its sub-components, depth first.
//
func (c *Component) Walk(fn func(*Component)) {
	fn(c)
	for _, sub := range c.children {
		sub.Walk(fn)
	}
}
