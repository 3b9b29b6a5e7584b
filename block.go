// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

import (
	"sort"

	"github.com/pkg/errors"
)

// block is an elaborated update block. reads and writes are sorted net
// indices.
type block struct {
	name   string
	kind   Kind
	fn     UpdateFn
	reads  []int
	writes []int
}

func hasNet(set []int, n int) bool {
	i := sort.SearchInts(set, n)
	return i < len(set) && set[i] == n
}

func (b *block) canRead(n int) bool  { return hasNet(b.reads, n) }
func (b *block) canWrite(n int) bool { return hasNet(b.writes, n) }

func sortedNets(m map[int]bool) []int {
	r := make([]int, 0, len(m))
	for n := range m {
		r = append(r, n)
	}
	sort.Ints(r)
	return r
}

func (d *Design) netsOf(b *blockSpec, sigs []*Signal) ([]int, error) {
	m := make(map[int]bool, len(sigs))
	for _, s := range sigs {
		if s == nil || s.d != d {
			return nil, errors.Errorf("block %s.%s: signal %v is not part of design %s", b.comp.Path(), b.name, s, d.name)
		}
		m[d.sigNet[s.id]] = true
	}
	return sortedNets(m), nil
}

// registerBlocks builds the block arena, deriving read and write sets by
// tracing where they are not declared, and checks that every net has at
// most one driver.
//
func (d *Design) registerBlocks(specs []*blockSpec) error {
	d.blocks = make([]block, 0, len(specs))
	d.readers = make([][]int, len(d.nets))
	seqNets := make(map[int]bool)

	for _, sp := range specs {
		b := block{name: sp.comp.Path() + "." + sp.name, kind: sp.kind, fn: sp.fn}
		var err error
		if sp.declared {
			if b.reads, err = d.netsOf(sp, sp.reads); err != nil {
				return err
			}
			if b.writes, err = d.netsOf(sp, sp.writes); err != nil {
				return err
			}
		} else if b.reads, b.writes, err = d.trace(b.name, sp.fn); err != nil {
			return err
		}

		bi := len(d.blocks)
		for _, n := range b.writes {
			if err := d.addDriver(n, b.kind.String()+" block "+b.name); err != nil {
				return err
			}
			if b.kind == Sequential {
				seqNets[n] = true
			}
		}
		if b.kind == Combinational {
			for _, n := range b.reads {
				d.readers[n] = append(d.readers[n], bi)
			}
		} else {
			d.seq = append(d.seq, bi)
		}
		d.blocks = append(d.blocks, b)
	}
	d.seqNets = sortedNets(seqNets)
	return nil
}
