// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

import (
	"github.com/pkg/errors"
)

// a net is a set of connected signals sharing a single value.
type net struct {
	name  string // path of the first signal in the net
	width int
	input bool   // driven by a top-level input
	val   uint64 // constant value
	drv   string // driver description, empty if undriven
}

// unionFind is a disjoint set forest over signal indices. Roots hold the
// negated size of their set.
type unionFind []int

func newUnionFind(n int) unionFind {
	u := make(unionFind, n)
	for i := range u {
		u[i] = -1
	}
	return u
}

func (u unionFind) find(i int) int {
	for u[i] >= 0 {
		if p := u[i]; u[p] >= 0 {
			u[i] = u[p]
		}
		i = u[i]
	}
	return i
}

func (u unionFind) union(a, b int) {
	a, b = u.find(a), u.find(b)
	if a == b {
		return
	}
	if u[a] > u[b] {
		a, b = b, a
	}
	u[a] += u[b]
	u[b] = a
}

// resolveNets collapses connected signals into nets and records top-level
// inputs and constant tie-offs as net drivers.
//
func (d *Design) resolveNets(top *Component, conns [][2]*Signal, ties []tie) error {
	u := newUnionFind(len(d.sigs))
	for _, c := range conns {
		a, b := c[0], c[1]
		if a.width != b.width {
			return errors.Wrapf(ErrWidthMismatch, "connect %s (%d bits) to %s (%d bits)", a.Path(), a.width, b.Path(), b.width)
		}
		u.union(a.id, b.id)
	}

	d.sigNet = make([]int, len(d.sigs))
	ids := make(map[int]int)
	for i, s := range d.sigs {
		r := u.find(i)
		n, ok := ids[r]
		if !ok {
			n = len(d.nets)
			ids[r] = n
			d.nets = append(d.nets, net{name: s.Path(), width: s.width})
		}
		d.sigNet[i] = n
	}

	for _, s := range top.signals {
		if s.dir != Input {
			continue
		}
		if err := d.addDriver(d.sigNet[s.id], "input "+s.Path()); err != nil {
			return err
		}
		d.nets[d.sigNet[s.id]].input = true
	}

	for _, t := range ties {
		n := d.sigNet[t.sig.id]
		if err := d.addDriver(n, "tie-off on "+t.sig.Path()); err != nil {
			return err
		}
		d.nets[n].val = t.x & mask(d.nets[n].width)
	}
	return nil
}

func (d *Design) addDriver(n int, desc string) error {
	if drv := d.nets[n].drv; drv != "" {
		return errors.Wrapf(ErrMultipleDrivers, "net %s driven by %s and %s", d.nets[n].name, drv, desc)
	}
	d.nets[n].drv = desc
	return nil
}
