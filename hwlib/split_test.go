// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib_test

import (
	"testing"

	hl "github.com/db47h/rtlsim/hwlib"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestSplitter(t *testing.T) {
	td := []struct {
		bits, group int
		in          uint64
		out         []uint64
	}{
		{8, 4, 0xf0, []uint64{0x0, 0xf}},
		{8, 1, 0xf0, []uint64{0, 0, 0, 0, 1, 1, 1, 1}},
		{16, 4, 0xf0ca, []uint64{0xa, 0xc, 0x0, 0xf}},
		{16, 8, 0xf0ca, []uint64{0xca, 0xf0}},
		{16, 16, 0xf0ca, []uint64{0xf0ca}},
		{16, 1, 0xf0ca, []uint64{0, 1, 0, 1, 0, 0, 1, 1, 0, 0, 0, 0, 1, 1, 1, 1}},
	}
	for _, d := range td {
		c := hl.Splitter("split", d.bits, d.group)
		s := newSim(t, c)
		set(t, s, c.Port("in"), d.in)
		eval(t, s)
		var got []uint64
		for _, o := range c.PortArray("out") {
			require.Equal(t, d.group, o.Width())
			got = append(got, s.GetUint(o))
		}
		if diff := cmp.Diff(d.out, got); diff != "" {
			t.Errorf("split %d/%d %#x: (-want +got)\n%s", d.bits, d.group, d.in, diff)
		}
	}
}

func TestMerger(t *testing.T) {
	c := hl.Merger("merge", 16, 4)
	s := newSim(t, c)
	in := c.PortArray("in")
	require.Len(t, in, 4)
	require.NoError(t, hl.SetInputs(s, in, 0xf0ca))
	eval(t, s)
	require.EqualValues(t, 0xf0ca, s.GetUint(c.Port("out")))

	// single slice change
	set(t, s, in[2], 0x5)
	eval(t, s)
	require.EqualValues(t, 0xf5ca, s.GetUint(c.Port("out")))
}

func TestSplitter_badGroup(t *testing.T) {
	require.Panics(t, func() { hl.Splitter("split", 8, 3) })
	require.Panics(t, func() { hl.Merger("merge", 8, 0) })
}
