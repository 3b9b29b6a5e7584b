// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ResetName is the name of the optional top-level reset input used by
// Sim.Reset.
//
const ResetName = "reset"

// A Design is an elaborated component tree: the hierarchy is flattened into
// arenas of nets and update blocks, and combinational blocks are sorted in
// evaluation order.
//
// A Design is immutable and can be shared by any number of Sims, including
// Sims running in different goroutines.
//
type Design struct {
	name    string
	top     *Component
	sigs    []*Signal
	sigNet  []int
	nets    []net
	blocks  []block
	readers [][]int // combinational readers of each net
	order   []int   // combinational blocks in evaluation order
	rank    []int   // position of each block in order, -1 for sequential blocks
	seq     []int   // sequential blocks
	seqNets []int   // nets written by sequential blocks
	reset   *Signal
	byPath  map[string]*Signal
	log     logrus.FieldLogger
}

// Elaborate flattens the component tree rooted at top into a Design.
//
// Input ports of top are the design's top-level inputs. Elaboration fails
// with ErrWidthMismatch if connected signals have different widths, with
// ErrMultipleDrivers if a net has more than one driver (top-level input,
// tie-off or update block), and with ErrCombinationalLoop if combinational
// blocks depend on each other in a cycle.
//
// A component tree can only be elaborated once, and cannot include
// components of another elaborated tree.
//
func Elaborate(top *Component, opts ...Option) (*Design, error) {
	cfg := newConfig(opts)
	var done *Component
	top.Walk(func(c *Component) {
		if done == nil && c.d != nil {
			done = c
		}
	})
	if done != nil {
		return nil, errors.New("component " + done.Path() + " already elaborated")
	}
	d := &Design{
		name:   top.Path(),
		top:    top,
		byPath: make(map[string]*Signal),
		log:    cfg.log,
	}
	if d.log == nil {
		d.log = discard
	}

	var (
		conns [][2]*Signal
		ties  []tie
		specs []*blockSpec
	)
	top.Walk(func(c *Component) {
		for _, s := range c.signals {
			s.id = len(d.sigs)
			s.d = d
			d.sigs = append(d.sigs, s)
		}
		conns = append(conns, c.conns...)
		ties = append(ties, c.ties...)
		specs = append(specs, c.blocks...)
	})
	for _, s := range d.sigs {
		p := s.Path()
		if d.byPath[p] != nil {
			return nil, errors.New("duplicate signal " + p)
		}
		d.byPath[p] = s
	}
	for _, c := range conns {
		for _, s := range c {
			if s.d != d {
				return nil, errors.Errorf("connection %s:%s: signal %s is not part of design %s", c[0].Path(), c[1].Path(), s.Path(), d.name)
			}
		}
	}
	for _, t := range ties {
		if t.sig.d != d {
			return nil, errors.Errorf("tie-off on signal %s which is not part of design %s", t.sig.Path(), d.name)
		}
	}

	if err := d.resolveNets(top, conns, ties); err != nil {
		return nil, errors.Wrap(err, "elaborate "+d.name)
	}
	if err := d.registerBlocks(specs); err != nil {
		return nil, errors.Wrap(err, "elaborate "+d.name)
	}
	if err := d.schedule(); err != nil {
		return nil, errors.Wrap(err, "elaborate "+d.name)
	}

	if r := top.Signal(ResetName); r != nil && r.dir == Input && r.width == 1 {
		d.reset = r
	}
	top.Walk(func(c *Component) { c.d = d })

	d.log.WithFields(logrus.Fields{
		"design":  d.name,
		"signals": len(d.sigs),
		"nets":    len(d.nets),
		"blocks":  len(d.blocks),
		"comb":    len(d.order),
		"seq":     len(d.seq),
	}).Debug("design elaborated")

	return d, nil
}

// Name returns the name of the design's top component.
//
func (d *Design) Name() string { return d.name }

// Signal returns the signal with the given hierarchical path, or nil.
//
func (d *Design) Signal(path string) *Signal { return d.byPath[path] }

// Signals returns all the signals of the design, in depth first order.
//
func (d *Design) Signals() []*Signal { return d.sigs }

// NetCount returns the number of nets in the design.
//
func (d *Design) NetCount() int { return len(d.nets) }

// BlockCount returns the number of update blocks in the design.
//
func (d *Design) BlockCount() int { return len(d.blocks) }

// NetName returns the name of the net sig belongs to, which is the path of
// its first signal in depth first order.
//
func (d *Design) NetName(sig *Signal) string { return d.nets[d.netOf(sig)].name }

// Order returns the names of combinational blocks in evaluation order.
//
func (d *Design) Order() []string {
	r := make([]string, len(d.order))
	for i, b := range d.order {
		r[i] = d.blocks[b].name
	}
	return r
}

// Inputs returns the top-level input signals.
//
func (d *Design) Inputs() []*Signal { return d.ports(Input) }

// Outputs returns the top-level output signals.
//
func (d *Design) Outputs() []*Signal { return d.ports(Output) }

func (d *Design) ports(dir Dir) []*Signal {
	var r []*Signal
	for _, s := range d.sigs {
		if s.comp != d.top {
			break
		}
		if s.dir == dir {
			r = append(r, s)
		}
	}
	return r
}

func (d *Design) netOf(sig *Signal) int {
	if sig == nil {
		panic("nil signal")
	}
	if sig.d != d {
		panic("signal " + sig.Path() + " is not part of design " + d.name)
	}
	return d.sigNet[sig.id]
}
