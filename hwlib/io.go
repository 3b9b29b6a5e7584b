// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/rtlsim"
)

// Uint returns the values of an array of signals packed into an uint64.
// sigs[0] ends up in the least significant bits.
//
func Uint(s *rtlsim.Sim, sigs []*rtlsim.Signal) uint64 {
	var out uint64
	var shift uint
	for _, sig := range sigs {
		out |= s.GetUint(sig) << shift
		shift += uint(sig.Width())
	}
	return out
}

// SetInputs sets an array of top-level inputs from the bits of x. sigs[0]
// gets the least significant bits.
//
func SetInputs(s *rtlsim.Sim, sigs []*rtlsim.Signal, x uint64) error {
	for _, sig := range sigs {
		if err := s.SetInput(sig, x); err != nil {
			return err
		}
		x >>= uint(sig.Width())
	}
	return nil
}
