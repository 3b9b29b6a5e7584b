// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides utility functions for testing circuits.
//
package hwtest

import (
	"fmt"
	"math/rand"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/db47h/rtlsim"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// maximum total input width tested exhaustively.
const exhaustiveBits = 12

// Options configures CompareDesigns.
//
type Options struct {
	// Clocked designs are ticked after each input vector instead of only
	// being settled.
	Clocked bool
	// Iterations is the number of random input vectors used when the
	// inputs are too wide to be tested exhaustively. Defaults to 4096.
	Iterations int
	// Workers is the number of goroutines used. Each goroutine runs its own
	// pair of Sims over the shared designs. Defaults to GOMAXPROCS.
	Workers int
	// Seed for random vectors. Defaults to the current time.
	Seed int64
}

type port struct {
	name  string
	width int
}

func ports(sigs []*rtlsim.Signal) []port {
	r := make([]port, len(sigs))
	for i, s := range sigs {
		r[i] = port{s.Name(), s.Width()}
	}
	return r
}

func checkInterface(kind string, a, b []*rtlsim.Signal) error {
	pa, pb := ports(a), ports(b)
	if len(pa) != len(pb) {
		return errors.Errorf("%s count mismatch: %d != %d", kind, len(pa), len(pb))
	}
	for i := range pa {
		if pa[i] != pb[i] {
			return errors.Errorf("%s %d mismatch: %s[%d] != %s[%d]", kind, i, pa[i].name, pa[i].width, pb[i].name, pb[i].width)
		}
	}
	return nil
}

// CompareDesigns takes two components and compares their outputs given the
// same inputs. Both components must have the same input/output interface
// (port names, widths and declaration order).
//
// Inputs are tested exhaustively if their total width is at most 12 bits,
// with random vectors otherwise.
//
func CompareDesigns(t testing.TB, c1, c2 *rtlsim.Component, opts Options) {
	t.Helper()

	d1, err := rtlsim.Elaborate(c1)
	if err != nil {
		t.Fatal(err)
	}
	d2, err := rtlsim.Elaborate(c2)
	if err != nil {
		t.Fatal(err)
	}
	if err = checkInterface("input", d1.Inputs(), d2.Inputs()); err != nil {
		t.Fatal(err)
	}
	if err = checkInterface("output", d1.Outputs(), d2.Outputs()); err != nil {
		t.Fatal(err)
	}

	vecs := vectors(d1.Inputs(), opts)
	nvec := len(vecs)
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(-1)
	}
	size := (len(vecs) + workers - 1) / workers

	start := time.Now()
	var g errgroup.Group
	for len(vecs) > 0 {
		if size > len(vecs) {
			size = len(vecs)
		}
		chunk := vecs[:size]
		vecs = vecs[size:]
		g.Go(func() error {
			return compare(d1, d2, chunk, opts.Clocked)
		})
	}
	if err = g.Wait(); err != nil {
		t.Fatal(err)
	}
	t.Logf("%d+%d blocks. %d vectors in %v", d1.BlockCount(), d2.BlockCount(), nvec, time.Since(start))
}

// vectors returns the input vectors. A vector holds one value per input,
// truncated to the input width by SetInput.
func vectors(in []*rtlsim.Signal, opts Options) [][]uint64 {
	var w int
	for _, s := range in {
		w += s.Width()
	}
	if w <= exhaustiveBits {
		r := make([][]uint64, 1<<uint(w))
		for i := range r {
			v, x := make([]uint64, len(in)), uint64(i)
			for j, s := range in {
				v[j] = x
				x >>= uint(s.Width())
			}
			r[i] = v
		}
		return r
	}
	n := opts.Iterations
	if n <= 0 {
		n = 4096
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(seed))
	// all 0 and all 1 first
	r := [][]uint64{make([]uint64, len(in)), make([]uint64, len(in))}
	for j := range r[1] {
		r[1][j] = ^uint64(0)
	}
	for len(r) < n {
		v := make([]uint64, len(in))
		for j := range v {
			v[j] = rnd.Uint64()
		}
		r = append(r, v)
	}
	return r
}

func apply(s *rtlsim.Sim, v []uint64) error {
	for i, in := range s.Design().Inputs() {
		if err := s.SetInput(in, v[i]); err != nil {
			return err
		}
	}
	return nil
}

func step(s *rtlsim.Sim, clocked bool) error {
	if clocked {
		return s.Tick()
	}
	return s.EvalCombinational()
}

func compare(d1, d2 *rtlsim.Design, vecs [][]uint64, clocked bool) error {
	s1, s2 := rtlsim.NewSim(d1), rtlsim.NewSim(d2)
	o1, o2 := d1.Outputs(), d2.Outputs()
	for _, v := range vecs {
		for _, s := range [...]*rtlsim.Sim{s1, s2} {
			if err := apply(s, v); err != nil {
				return err
			}
			if err := step(s, clocked); err != nil {
				return err
			}
		}
		for i := range o1 {
			if x, y := s1.Get(o1[i]), s2.Get(o2[i]); !x.Equal(y) {
				return errors.New(mismatch(s1, o1[i].Name(), x, y))
			}
		}
	}
	return nil
}

func mismatch(s *rtlsim.Sim, out string, ex, got rtlsim.Value) string {
	var b strings.Builder
	for _, in := range s.Design().Inputs() {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", in.Name(), s.Get(in))
	}
	return fmt.Sprintf("\nExpected %s => %s=%v\nGot %v", b.String(), out, ex, got)
}
