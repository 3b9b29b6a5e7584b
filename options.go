// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

import (
	"io"

	"github.com/sirupsen/logrus"
)

// An Observer is notified of simulation events. It is called synchronously
// from the goroutine running the Sim.
//
type Observer interface {
	// BlockExecuted is called after each update block execution.
	BlockExecuted(k Kind)
	// Settled is called at the end of each combinational settle with the
	// number of passes and block executions it took.
	Settled(passes, executed int)
	// Ticked is called at the end of each clock edge.
	Ticked(cycle uint64)
}

type nopObserver struct{}

func (nopObserver) BlockExecuted(Kind) {}
func (nopObserver) Settled(int, int)   {}
func (nopObserver) Ticked(uint64)      {}

type config struct {
	log logrus.FieldLogger
	cap int
	obs Observer
}

// An Option configures Elaborate or NewSim.
//
type Option func(*config)

// WithLogger sets the logger. By default, nothing is logged.
// A Sim inherits the logger of its Design unless given its own.
//
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) { c.log = l }
}

// WithIterationCap sets the maximum number of passes of a combinational
// settle before it fails with ErrNonConvergence. The default is the number
// of combinational blocks plus one. Ignored by Elaborate.
//
func WithIterationCap(n int) Option {
	return func(c *config) { c.cap = n }
}

// WithObserver sets a simulation observer. Ignored by Elaborate.
//
func WithObserver(o Observer) Option {
	return func(c *config) { c.obs = o }
}

var discard = func() *logrus.Logger {
	l := logrus.New()
	l.Out = io.Discard
	return l
}()

func newConfig(opts []Option) *config {
	c := new(config)
	for _, o := range opts {
		o(c)
	}
	return c
}
