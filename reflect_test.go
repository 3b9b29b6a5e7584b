// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim_test

import (
	"testing"

	hw "github.com/db47h/rtlsim"
	hl "github.com/db47h/rtlsim/hwlib"
	"github.com/db47h/rtlsim/hwtest"
	"github.com/stretchr/testify/require"
)

type testPart struct {
	A   [4]*hw.Signal `hw:"in"`
	B   [4]*hw.Signal `hw:"in"`
	Sel *hw.Signal    `hw:"in"`
	Out [4]*hw.Signal `hw:"out"`
}

func (p *testPart) Comb(s *hw.Sim) {
	src := p.A
	if s.Get(p.Sel).Bool() {
		src = p.B
	}
	for i, o := range p.Out {
		s.Set(o, s.Get(src[i]))
	}
}

func TestBuild(t *testing.T) {
	m := hw.NewComponent("myMux4")
	a, b := m.InArray("a", 4, 1), m.InArray("b", 4, 1)
	sel := m.In("sel", 1)
	out := m.OutArray("out", 4, 1)
	for i := range out {
		mux := hl.Mux(hw.ArrayName("mux", i), 1)
		require.NoError(t, m.Add(mux))
		m.Connect(mux.Port("a"), a[i])
		m.Connect(mux.Port("b"), b[i])
		m.Connect(mux.Port("sel"), sel)
		m.Connect(mux.Port("out"), out[i])
	}

	p := new(testPart)
	c, err := hw.Build("testPart", p)
	require.NoError(t, err)
	require.Equal(t, p.Sel, c.Port("sel"))
	require.Equal(t, p.Out[3], c.Port("out[3]"))
	hwtest.CompareDesigns(t, m, c, hwtest.Options{})
}

type reg struct {
	D   *hw.Signal `hw:"in,8,d"`
	Q   *hw.Signal `hw:"out,8,q"`
	Tmp *hw.Signal `hw:"wire,8"`
}

func (r *reg) Comb(s *hw.Sim) { s.Set(r.Tmp, s.Get(r.D).Not()) }
func (r *reg) Seq(s *hw.Sim)  { s.Set(r.Q, s.Get(r.Tmp)) }

func TestBuild_seq(t *testing.T) {
	r := new(reg)
	c, err := hw.Build("reg", r)
	require.NoError(t, err)
	require.Equal(t, hw.Internal, r.Tmp.Dir())
	require.Equal(t, "tmp", r.Tmp.Name())
	require.Equal(t, 8, r.Tmp.Width())

	d, err := hw.Elaborate(c)
	require.NoError(t, err)
	require.Equal(t, []string{"reg.comb"}, d.Order())
	s := hw.NewSim(d)
	require.NoError(t, s.SetInput(r.D, 0x0f))
	require.NoError(t, s.EvalCombinational())
	require.EqualValues(t, 0, s.GetUint(r.Q))
	require.NoError(t, s.Tick())
	require.EqualValues(t, 0xf0, s.GetUint(r.Q))
}

func TestBuild_errors(t *testing.T) {
	td := []struct {
		name string
		v    interface{}
	}{
		{"not a pointer", testPart{}},
		{"nil", (*testPart)(nil)},
		{"not a struct", new(int)},
		{"bad direction", &struct {
			A *hw.Signal `hw:"inout"`
		}{}},
		{"bad width", &struct {
			A *hw.Signal `hw:"in,x"`
		}{}},
		{"too wide", &struct {
			A *hw.Signal `hw:"in,65"`
		}{}},
		{"too many tag values", &struct {
			A *hw.Signal `hw:"in,1,a,b"`
		}{}},
		{"bad type", &struct {
			A int `hw:"in"`
		}{}},
		{"unexported", &struct {
			a *hw.Signal `hw:"in"`
		}{}},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			_, err := hw.Build("bad", d.v)
			require.Error(t, err)
		})
	}
}
