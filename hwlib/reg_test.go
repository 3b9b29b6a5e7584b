// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib_test

import (
	"testing"

	hw "github.com/db47h/rtlsim"
	hl "github.com/db47h/rtlsim/hwlib"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	c := hl.Register("reg", 8)
	in, out := c.Port("in"), c.Port("out")
	s := newSim(t, c)

	set(t, s, in, 5)
	eval(t, s)
	require.EqualValues(t, 0, s.GetUint(out))
	tick(t, s)
	require.EqualValues(t, 5, s.GetUint(out))

	set(t, s, in, 7)
	eval(t, s)
	require.EqualValues(t, 5, s.GetUint(out), "register output must not change before the clock edge")
	tick(t, s)
	require.EqualValues(t, 7, s.GetUint(out))
	require.EqualValues(t, 2, s.Cycles())
}

// two registers in a row form a two stage delay line.
func TestRegister_chain(t *testing.T) {
	c := hw.NewComponent("delay")
	in, out := c.In("in", 8), c.Out("out", 8)
	r0, r1 := add(t, c, hl.Register("r0", 8)), add(t, c, hl.Register("r1", 8))
	c.Connect(r0.Port("in"), in)
	c.Connect(r1.Port("in"), r0.Port("out"))
	c.Connect(r1.Port("out"), out)
	s := newSim(t, c)

	for i, exp := range []uint64{0, 0, 1, 2, 3} {
		set(t, s, in, uint64(i))
		tick(t, s)
		require.Equal(t, exp, s.GetUint(out), "cycle %d", i)
	}
}

func TestRegisterEn(t *testing.T) {
	c := hl.RegisterEn("reg", 4)
	in, en, out := c.Port("in"), c.Port("en"), c.Port("out")
	s := newSim(t, c)

	set(t, s, in, 3)
	tick(t, s)
	require.EqualValues(t, 0, s.GetUint(out))
	set(t, s, en, 1)
	tick(t, s)
	require.EqualValues(t, 3, s.GetUint(out))
	set(t, s, en, 0)
	set(t, s, in, 9)
	tick(t, s)
	require.EqualValues(t, 3, s.GetUint(out))
}

func TestCounter(t *testing.T) {
	c := hl.Counter("cnt", 4)
	en, count := c.Port("en"), c.Port("count")
	s := newSim(t, c)

	require.NoError(t, s.Reset())
	require.EqualValues(t, 0, s.GetUint(count))
	require.EqualValues(t, 0, s.Cycles())

	for i := 0; i < 3; i++ {
		tick(t, s)
	}
	require.EqualValues(t, 0, s.GetUint(count))

	set(t, s, en, 1)
	for i := 0; i < 17; i++ {
		tick(t, s)
	}
	require.EqualValues(t, 1, s.GetUint(count), "17 mod 16")
	require.EqualValues(t, 20, s.Cycles())

	require.NoError(t, s.Reset())
	require.EqualValues(t, 0, s.GetUint(count))
	require.EqualValues(t, 0, s.Cycles())
}
