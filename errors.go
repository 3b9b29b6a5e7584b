// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

import (
	"strings"

	"github.com/pkg/errors"
)

// Error kinds. Errors returned by this package wrap one of these; use
// errors.Cause (or errors.Is) to check the kind.
//
var (
	// ErrWidthMismatch is returned when connecting signals of different
	// widths or when assigning a value to a slice of a different width.
	ErrWidthMismatch = errors.New("width mismatch")
	// ErrCombinationalLoop is returned by Elaborate when combinational
	// blocks depend on each other's outputs in a cycle.
	ErrCombinationalLoop = errors.New("combinational loop")
	// ErrMultipleDrivers is returned by Elaborate when a net has more than
	// one driver.
	ErrMultipleDrivers = errors.New("multiple drivers")
	// ErrIllegalStimulus is returned by Sim.SetValue for signals that are
	// not connected to a top-level input.
	ErrIllegalStimulus = errors.New("illegal stimulus")
	// ErrNonConvergence is returned when a settle pass exceeds its
	// iteration cap. It can only happen if a block misbehaves.
	ErrNonConvergence = errors.New("combinational logic did not converge")
	// ErrUndeclaredAccess is returned when a block reads or writes a signal
	// outside of its read or write set.
	ErrUndeclaredAccess = errors.New("undeclared signal access")
)

// LoopError describes a combinational loop. Blocks[i] drives Nets[i], which
// is read by Blocks[i+1] (wrapping around to Blocks[0]).
//
type LoopError struct {
	Blocks []string
	Nets   []string
}

func (e *LoopError) Error() string {
	var b strings.Builder
	b.WriteString(ErrCombinationalLoop.Error())
	b.WriteString(": ")
	for i := range e.Blocks {
		b.WriteString(e.Blocks[i])
		b.WriteString(" -(")
		b.WriteString(e.Nets[i])
		b.WriteString(")-> ")
	}
	b.WriteString(e.Blocks[0])
	return b.String()
}

// Cause makes LoopError play along with errors.Cause.
//
func (e *LoopError) Cause() error { return ErrCombinationalLoop }

// Unwrap makes LoopError play along with errors.Is.
//
func (e *LoopError) Unwrap() error { return ErrCombinationalLoop }
