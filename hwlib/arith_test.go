// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib_test

import (
	"testing"
	"testing/quick"

	hw "github.com/db47h/rtlsim"
	hl "github.com/db47h/rtlsim/hwlib"
	"github.com/db47h/rtlsim/hwtest"
	"github.com/stretchr/testify/require"
)

func add(t *testing.T, c, sub *hw.Component) *hw.Component {
	t.Helper()
	require.NoError(t, c.Add(sub))
	return sub
}

func myHalfAdder(t *testing.T, name string) *hw.Component {
	c := hw.NewComponent(name)
	a, b := c.In("a", 1), c.In("b", 1)
	s, cout := c.Out("s", 1), c.Out("c", 1)
	x, n := add(t, c, hl.Xor("xor", 1)), add(t, c, hl.And("and", 1))
	c.Connect(x.Port("a"), a)
	c.Connect(x.Port("b"), b)
	c.Connect(x.Port("out"), s)
	c.Connect(n.Port("a"), a)
	c.Connect(n.Port("b"), b)
	c.Connect(n.Port("out"), cout)
	return c
}

func TestHalfAdder(t *testing.T) {
	hwtest.CompareDesigns(t, hl.HalfAdder("ha"), myHalfAdder(t, "myHalfAdder"), hwtest.Options{})
}

func TestFullAdder(t *testing.T) {
	c := hw.NewComponent("myFullAdder")
	in0, in1, cin := c.In("in0", 1), c.In("in1", 1), c.In("cin", 1)
	sum, cout := c.Out("sum", 1), c.Out("cout", 1)
	h0, h1 := add(t, c, myHalfAdder(t, "h0")), add(t, c, myHalfAdder(t, "h1"))
	or := add(t, c, hl.Or("or", 1))
	c.Connect(h0.Port("a"), in0)
	c.Connect(h0.Port("b"), in1)
	c.Connect(h1.Port("a"), h0.Port("s"))
	c.Connect(h1.Port("b"), cin)
	c.Connect(h1.Port("s"), sum)
	c.Connect(or.Port("a"), h0.Port("c"))
	c.Connect(or.Port("b"), h1.Port("c"))
	c.Connect(or.Port("out"), cout)
	hwtest.CompareDesigns(t, hl.FullAdder("fa"), c, hwtest.Options{})
}

func TestFullAdder_truthTable(t *testing.T) {
	// in0, in1, cin => sum, cout
	testGate(t, hl.FullAdder("fa"), [][]bool{
		{false, true, true, false, true, false, false, true},
		{false, false, false, true, false, true, true, true},
	})
}

func TestRippleCarryAdder(t *testing.T) {
	c := hl.RippleCarryAdder("rca", 4)
	in0, in1, sum := c.PortArray("in0"), c.PortArray("in1"), c.PortArray("sum")
	s := newSim(t, c)
	d := s.Design()
	require.Len(t, d.Order(), 4)

	addN := func(a, b uint64) uint64 {
		t.Helper()
		require.NoError(t, hl.SetInputs(s, in0, a))
		require.NoError(t, hl.SetInputs(s, in1, b))
		eval(t, s)
		return hl.Uint(s, sum)
	}

	require.EqualValues(t, 4, addN(2, 2))
	require.EqualValues(t, 15, addN(11, 4))

	// no input change
	n := s.Stats().Executions
	eval(t, s)
	require.EqualValues(t, 15, hl.Uint(s, sum))
	require.Equal(t, n, s.Stats().Executions)

	// operand change without eval
	require.NoError(t, hl.SetInputs(s, in0, 9))
	require.EqualValues(t, 15, hl.Uint(s, sum))

	require.EqualValues(t, 13, addN(9, 4))
	require.EqualValues(t, 1, addN(5, 12))
}

func TestAdder(t *testing.T) {
	c := hl.Adder("add16", 16)
	a, b, out, cout := c.Port("a"), c.Port("b"), c.Port("out"), c.Port("c")
	s := newSim(t, c)
	f := func(x, y uint16) bool {
		set(t, s, a, uint64(x))
		set(t, s, b, uint64(y))
		eval(t, s)
		r := uint32(x) + uint32(y)
		return s.GetUint(out) == uint64(r&0xffff) && s.GetUint(cout) == uint64(r>>16)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

// behavioral adder wrapped in a merger/splitter pair so that its interface
// matches RippleCarryAdder.
func wrappedAdder(t *testing.T, n int) *hw.Component {
	c := hw.NewComponent("wrapped")
	in0, in1 := c.InArray("in0", n, 1), c.InArray("in1", n, 1)
	sum := c.OutArray("sum", n, 1)
	m0, m1 := add(t, c, hl.Merger("m0", n, 1)), add(t, c, hl.Merger("m1", n, 1))
	adder := add(t, c, hl.Adder("adder", n))
	sp := add(t, c, hl.Splitter("split", n, 1))
	for i := 0; i < n; i++ {
		c.Connect(m0.PortArray("in")[i], in0[i])
		c.Connect(m1.PortArray("in")[i], in1[i])
		c.Connect(sp.PortArray("out")[i], sum[i])
	}
	c.Connect(adder.Port("a"), m0.Port("out"))
	c.Connect(adder.Port("b"), m1.Port("out"))
	c.Connect(sp.Port("in"), adder.Port("out"))
	return c
}

func TestRippleCarryAdder_compare(t *testing.T) {
	hwtest.CompareDesigns(t, hl.RippleCarryAdder("rca", 4), wrappedAdder(t, 4), hwtest.Options{})
	hwtest.CompareDesigns(t, hl.RippleCarryAdder("rca", 16), wrappedAdder(t, 16), hwtest.Options{Iterations: 1000, Seed: 42})
}
