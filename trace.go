// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

import (
	"github.com/pkg/errors"
)

// sentinel values used to trace update blocks. Running a block against both
// all zeros and all ones catches both branches of single-bit selects.
var tracePatterns = [...]uint64{0, ^uint64(0)}

type tracer struct {
	reads  map[int]bool
	writes map[int]bool
}

// trace derives the read and write sets of an update function by running it
// against a scratch net store.
//
func (d *Design) trace(name string, fn UpdateFn) (reads, writes []int, err error) {
	t := &tracer{reads: make(map[int]bool), writes: make(map[int]bool)}
	s := &Sim{
		d:     d,
		cur:   make([]Value, len(d.nets)),
		next:  make([]Value, len(d.nets)),
		blk:   -1,
		trace: t,
	}
	for _, p := range tracePatterns {
		for n := range d.nets {
			s.cur[n] = V(d.nets[n].width, p)
			s.next[n] = s.cur[n]
		}
		if err := s.traceRun(fn); err != nil {
			return nil, nil, errors.Wrapf(err, "trace block %s", name)
		}
	}
	return sortedNets(t.reads), sortedNets(t.writes), nil
}

func (s *Sim) traceRun(fn UpdateFn) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("panic: %v (declare the read and write sets of this block)", r)
		}
	}()
	fn(s)
	err, s.err = s.err, nil
	return err
}
