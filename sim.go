// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// State is the state of a Sim.
//
type State int

// Sim states.
//
const (
	Idle State = iota
	CombinationalSettle
	Clocked
)

func (s State) String() string {
	switch s {
	case CombinationalSettle:
		return "settle"
	case Clocked:
		return "clocked"
	}
	return "idle"
}

// Stats holds simulation counters.
//
type Stats struct {
	Executions uint64 // update block executions
	Settles    uint64 // combinational settles
	Passes     uint64 // settle passes
	Cycles     uint64 // clock edges since the last reset
}

// Sim is a simulation instance of a Design. Each Sim owns its net values;
// the Design itself is shared.
//
// A Sim is not safe for concurrent use. Update blocks run one at a time,
// in the goroutine calling EvalCombinational or Tick.
//
type Sim struct {
	d     *Design
	cur   []Value // current net values
	next  []Value // next values written by sequential blocks
	dirty []bool  // nets changed since their readers last ran
	dlist []int

	pending  []bool // combinational blocks to run, by rank
	npending int
	pos      int // rank of the running combinational block

	state State
	blk   int   // running block or -1
	err   error // error raised by the running block
	fatal error

	stats Stats
	cap   int
	log   logrus.FieldLogger
	obs   Observer
	trace *tracer
}

// NewSim returns a new simulation of d. All nets start at zero except
// constant nets. The first call to EvalCombinational or Tick runs every
// combinational block.
//
func NewSim(d *Design, opts ...Option) *Sim {
	cfg := newConfig(opts)
	s := &Sim{
		d:       d,
		cur:     make([]Value, len(d.nets)),
		next:    make([]Value, len(d.nets)),
		dirty:   make([]bool, len(d.nets)),
		pending: make([]bool, len(d.order)),
		blk:     -1,
		cap:     cfg.cap,
		log:     cfg.log,
		obs:     cfg.obs,
	}
	if s.cap <= 0 {
		s.cap = len(d.order) + 1
	}
	if s.log == nil {
		s.log = d.log
	}
	if s.obs == nil {
		s.obs = nopObserver{}
	}
	for n, nt := range d.nets {
		s.cur[n] = V(nt.width, nt.val)
	}
	for r := range s.pending {
		s.pending[r] = true
	}
	s.npending = len(s.pending)
	return s
}

// Design returns the simulated design.
//
func (s *Sim) Design() *Design { return s.d }

// State returns the current state of the simulation.
//
func (s *Sim) State() State { return s.state }

// Stats returns the simulation counters.
//
func (s *Sim) Stats() Stats { return s.stats }

// Cycles returns the number of clock edges since the simulation started or
// since the last call to Reset.
//
func (s *Sim) Cycles() uint64 { return s.stats.Cycles }

// Err returns the fatal error that stopped the simulation, if any.
//
func (s *Sim) Err() error { return s.fatal }

// Get returns the current value of sig.
//
// When called from an update block, sig must be in the block's read set.
//
func (s *Sim) Get(sig *Signal) Value {
	n := s.d.netOf(sig)
	switch {
	case s.trace != nil:
		s.trace.reads[n] = true
	case s.blk >= 0 && !s.d.blocks[s.blk].canRead(n):
		s.fail(errors.Wrapf(ErrUndeclaredAccess, "read %s", sig.Path()))
	}
	return s.cur[n]
}

// GetUint returns the current value of sig as an uint64.
//
func (s *Sim) GetUint(sig *Signal) uint64 { return s.Get(sig).Uint() }

// Set sets the value of sig. v is truncated or zero-extended to the width of
// sig. Set must only be called from update blocks, on signals of the block's
// write set. In sequential blocks, the new value becomes visible once all
// sequential blocks have run.
//
func (s *Sim) Set(sig *Signal, v Value) {
	n := s.d.netOf(sig)
	if !s.writable(sig, n) {
		return
	}
	s.store(n, s.cur[n].assign(v))
}

// SetSlice sets bits i through j-1 of sig. The width of v must be exactly
// j-i, otherwise the running operation fails with ErrWidthMismatch.
//
func (s *Sim) SetSlice(sig *Signal, i, j int, v Value) {
	n := s.d.netOf(sig)
	if !s.writable(sig, n) {
		return
	}
	base := s.cur[n]
	if s.state == Clocked {
		base = s.next[n]
	}
	nv, err := base.SetSlice(i, j, v)
	if err != nil {
		s.fail(errors.Wrap(err, sig.Path()))
		return
	}
	s.store(n, nv)
}

// SetUint is a shorthand for s.Set(sig, V(sig.Width(), x)).
//
func (s *Sim) SetUint(sig *Signal, x uint64) { s.Set(sig, V(sig.width, x)) }

func (s *Sim) writable(sig *Signal, n int) bool {
	switch {
	case s.trace != nil:
		s.trace.writes[n] = true
		return true
	case s.blk < 0:
		panic("Set called on " + sig.Path() + " outside of an update block")
	case s.err != nil:
		return false
	case !s.d.blocks[s.blk].canWrite(n):
		s.fail(errors.Wrapf(ErrUndeclaredAccess, "write %s", sig.Path()))
		return false
	}
	return true
}

func (s *Sim) store(n int, v Value) {
	switch {
	case s.trace != nil:
		s.cur[n] = v
	case s.state == Clocked:
		s.next[n] = v
	case s.cur[n] != v:
		s.cur[n] = v
		s.changed(n)
	}
}

// changed schedules the combinational readers of net n.
func (s *Sim) changed(n int) {
	for _, b := range s.d.readers[n] {
		r := s.d.rank[b]
		if s.blk < 0 || r <= s.pos {
			s.markDirty(n)
			return
		}
		if !s.pending[r] {
			s.pending[r] = true
			s.npending++
		}
	}
}

func (s *Sim) markDirty(n int) {
	if !s.dirty[n] {
		s.dirty[n] = true
		s.dlist = append(s.dlist, n)
	}
}

func (s *Sim) fail(err error) {
	switch {
	case s.err != nil:
	case s.blk < 0:
		// tracing, traceRun adds the block name
		s.err = err
	default:
		s.err = errors.Wrapf(err, "block %s", s.d.blocks[s.blk].name)
	}
}

// SetValue sets the value of a top-level input. v is truncated or
// zero-extended to the width of sig. The new value is visible to update
// blocks at the next call to EvalCombinational or Tick.
//
// SetValue fails with ErrIllegalStimulus if sig is not connected to a
// top-level input.
//
func (s *Sim) SetValue(sig *Signal, v Value) error {
	if s.blk >= 0 {
		return errors.New("SetValue called from update block " + s.d.blocks[s.blk].name)
	}
	n := s.d.netOf(sig)
	if !s.d.nets[n].input {
		return errors.Wrapf(ErrIllegalStimulus, "%s is not a top-level input", sig.Path())
	}
	v = s.cur[n].assign(v)
	if s.cur[n] != v {
		s.cur[n] = v
		s.markDirty(n)
	}
	return nil
}

// SetInput is a shorthand for s.SetValue(sig, V(sig.Width(), x)).
//
func (s *Sim) SetInput(sig *Signal, x uint64) error {
	return s.SetValue(sig, V(sig.width, x))
}

// run executes block b.
func (s *Sim) run(b int) error {
	blk := &s.d.blocks[b]
	s.blk = b
	blk.fn(s)
	s.blk = -1
	s.stats.Executions++
	s.obs.BlockExecuted(blk.kind)
	if s.err != nil {
		s.fatal, s.err = s.err, nil
		return s.fatal
	}
	return nil
}

// EvalCombinational runs combinational blocks until no net changes.
//
// Only blocks reading nets changed since the last settle are executed, in
// dependency order, so that calling EvalCombinational twice in a row
// executes no block the second time.
//
func (s *Sim) EvalCombinational() error {
	if s.fatal != nil {
		return s.fatal
	}
	s.state = CombinationalSettle
	err := s.settle()
	s.state = Idle
	return err
}

func (s *Sim) settle() error {
	var passes, executed int
	for len(s.dlist) > 0 || s.npending > 0 {
		if passes >= s.cap {
			s.fatal = errors.Wrapf(ErrNonConvergence, "%d passes", passes)
			return s.fatal
		}
		passes++
		for _, n := range s.dlist {
			s.dirty[n] = false
			for _, b := range s.d.readers[n] {
				if r := s.d.rank[b]; !s.pending[r] {
					s.pending[r] = true
					s.npending++
				}
			}
		}
		s.dlist = s.dlist[:0]

		for r, b := range s.d.order {
			if !s.pending[r] {
				continue
			}
			s.pending[r] = false
			s.npending--
			s.pos = r
			executed++
			if err := s.run(b); err != nil {
				return err
			}
		}
	}
	if passes > 0 {
		s.stats.Settles++
		s.stats.Passes += uint64(passes)
		s.log.WithFields(logrus.Fields{"passes": passes, "executed": executed}).Debug("settled")
	}
	s.obs.Settled(passes, executed)
	return nil
}

// Tick simulates a rising clock edge.
//
// Combinational logic is settled first, then every sequential block runs
// exactly once. Values written by sequential blocks are committed only
// after all of them have run, then combinational logic is settled again so
// that register outputs are propagated when Tick returns.
//
func (s *Sim) Tick() error {
	if s.fatal != nil {
		return s.fatal
	}
	defer func() { s.state = Idle }()

	s.state = CombinationalSettle
	if err := s.settle(); err != nil {
		return err
	}

	s.state = Clocked
	for _, n := range s.d.seqNets {
		s.next[n] = s.cur[n]
	}
	for _, b := range s.d.seq {
		if err := s.run(b); err != nil {
			return err
		}
	}
	for _, n := range s.d.seqNets {
		if s.next[n] != s.cur[n] {
			s.cur[n] = s.next[n]
			s.markDirty(n)
		}
	}

	s.state = CombinationalSettle
	if err := s.settle(); err != nil {
		return err
	}
	s.stats.Cycles++
	s.log.WithField("cycle", s.stats.Cycles).Debug("tick")
	s.obs.Ticked(s.stats.Cycles)
	return nil
}

// Reset asserts the design's 1-bit reset input for two clock cycles, then
// releases it and resets the cycle counter. It fails if the top component
// has no 1-bit input named "reset".
//
func (s *Sim) Reset() error {
	r := s.d.reset
	if r == nil {
		return errors.New("design " + s.d.name + " has no reset input")
	}
	if err := s.SetInput(r, 1); err != nil {
		return err
	}
	for i := 0; i < 2; i++ {
		if err := s.Tick(); err != nil {
			return errors.Wrap(err, "reset")
		}
	}
	if err := s.SetInput(r, 0); err != nil {
		return err
	}
	if err := s.EvalCombinational(); err != nil {
		return errors.Wrap(err, "reset")
	}
	s.stats.Cycles = 0
	return nil
}
