/*
Package rtlsim provides a cycle-accurate simulation kernel for register
transfer level designs described in Go.

A design is a tree of Components. Components own fixed width Signals (ports
and wires), structural connections between signals, constant tie-offs and
update blocks. Update blocks are plain Go functions that read and write
signals through a Sim:

	c := rtlsim.NewComponent("PassThrough")
	in, out := c.In("in", 16), c.Out("out", 16)
	c.Comb("logic", func(s *rtlsim.Sim) {
		s.Set(out, s.Get(in))
	}, rtlsim.Reads(in), rtlsim.Writes(out))

Combinational blocks (Comb) run whenever a signal they read changes.
Sequential blocks (Seq) run once per clock edge and behave like registers:
their writes become visible only after every sequential block has run.

Elaborate flattens a component tree into an immutable Design: connected
signals are collapsed into nets, each net is checked for a single driver and
combinational blocks are sorted in dependency order. Combinational loops are
reported as a *LoopError. Blocks declared without Reads or Writes have their
read and write sets derived by tracing.

A Sim holds the net values of a Design. Several Sims can share the same
Design, including from different goroutines:

	d, err := rtlsim.Elaborate(c)
	if err != nil {
		// handle error
	}
	s := rtlsim.NewSim(d)
	s.SetInput(in, 8)
	s.EvalCombinational()
	fmt.Println(s.Get(out)) // 16'h8

EvalCombinational only runs blocks downstream of changed nets. Tick settles
combinational logic, clocks sequential blocks, then settles again.

Package hwlib provides ready made components (gates, multiplexers, adders,
registers) and package hwtest compares two designs with identical stimulus.
*/
package rtlsim
