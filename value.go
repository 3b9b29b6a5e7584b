// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

import (
	"fmt"
	"math/bits"
	"strconv"

	"github.com/pkg/errors"
)

// MaxWidth is the widest bit-vector supported.
//
const MaxWidth = 64

// A Value is a fixed width bit-vector. The payload is always masked to
// the vector's width, so that arithmetic wraps around like in hardware.
//
// The zero Value has width 0 and is only returned for invalid lookups.
//
type Value struct {
	w uint8
	x uint64
}

func mask(w int) uint64 {
	if w >= MaxWidth {
		return ^uint64(0)
	}
	return 1<<uint(w) - 1
}

func checkWidth(w int) {
	if w <= 0 || w > MaxWidth {
		panic("invalid bit-vector width " + strconv.Itoa(w))
	}
}

// V returns a new Value of the given width. x is truncated to width bits.
//
func V(width int, x uint64) Value {
	checkWidth(width)
	return Value{uint8(width), x & mask(width)}
}

// Bool returns a 1 bit Value.
//
func Bool(b bool) Value {
	if b {
		return Value{1, 1}
	}
	return Value{1, 0}
}

// Width returns the width of v in bits.
//
func (v Value) Width() int { return int(v.w) }

// Uint returns the payload of v.
//
func (v Value) Uint() uint64 { return v.x }

// Bool returns true if any bit of v is set.
//
func (v Value) Bool() bool { return v.x != 0 }

// Bit returns bit i of v.
//
func (v Value) Bit(i int) bool {
	if i < 0 || i >= int(v.w) {
		panic("bit index " + strconv.Itoa(i) + " out of range for width " + strconv.Itoa(int(v.w)))
	}
	return v.x>>uint(i)&1 != 0
}

// Resize returns v zero-extended or truncated to width bits.
//
func (v Value) Resize(width int) Value {
	return V(width, v.x)
}

// assign returns o resized to the width of v.
func (v Value) assign(o Value) Value {
	return Value{v.w, o.x & mask(int(v.w))}
}

// Equal returns true if v and o have the same width and payload.
//
func (v Value) Equal(o Value) bool { return v == o }

// Eq compares v and o modulo the width of v.
//
func (v Value) Eq(o Value) bool { return v.x == v.assign(o).x }

// Lt returns true if v < o, o being truncated to the width of v.
//
func (v Value) Lt(o Value) bool { return v.x < v.assign(o).x }

// Add returns v + o, truncated to the width of v.
//
func (v Value) Add(o Value) Value { return v.assign(Value{x: v.x + o.x}) }

// Sub returns v - o, truncated to the width of v.
//
func (v Value) Sub(o Value) Value { return v.assign(Value{x: v.x - o.x}) }

// Mul returns v * o, truncated to the width of v.
//
func (v Value) Mul(o Value) Value { return v.assign(Value{x: v.x * o.x}) }

// And returns v & o.
//
func (v Value) And(o Value) Value { return v.assign(Value{x: v.x & o.x}) }

// Or returns v | o, truncated to the width of v.
//
func (v Value) Or(o Value) Value { return v.assign(Value{x: v.x | o.x}) }

// Xor returns v ^ o, truncated to the width of v.
//
func (v Value) Xor(o Value) Value { return v.assign(Value{x: v.x ^ o.x}) }

// Not returns the bitwise complement of v.
//
func (v Value) Not() Value { return v.assign(Value{x: ^v.x}) }

// Shl returns v << n, truncated to the width of v.
//
func (v Value) Shl(n uint) Value {
	if n >= MaxWidth {
		return Value{w: v.w}
	}
	return v.assign(Value{x: v.x << n})
}

// Shr returns v >> n.
//
func (v Value) Shr(n uint) Value {
	if n >= MaxWidth {
		return Value{w: v.w}
	}
	return Value{v.w, v.x >> n}
}

// Ones returns the number of set bits in v.
//
func (v Value) Ones() int { return bits.OnesCount64(v.x) }

func (v Value) checkRange(i, j int) {
	if i < 0 || j > int(v.w) || i >= j {
		panic(fmt.Sprintf("invalid slice [%d:%d] of %d bits value", i, j, v.w))
	}
}

// Slice returns bits i through j-1 of v as a j-i bits Value.
//
func (v Value) Slice(i, j int) Value {
	v.checkRange(i, j)
	return V(j-i, v.x>>uint(i))
}

// SetSlice returns a copy of v where bits i through j-1 are replaced by x.
// The width of x must be exactly j-i.
//
func (v Value) SetSlice(i, j int, x Value) (Value, error) {
	v.checkRange(i, j)
	if x.Width() != j-i {
		return v, errors.Wrapf(ErrWidthMismatch, "assign %d bits value to slice [%d:%d]", x.Width(), i, j)
	}
	m := mask(j-i) << uint(i)
	return Value{v.w, v.x&^m | x.x<<uint(i)&m}, nil
}

// Concat concatenates the given values. The first value ends up in the
// most significant bits.
//
func Concat(vs ...Value) Value {
	var w int
	var x uint64
	for _, v := range vs {
		w += v.Width()
		if w > MaxWidth {
			panic("concatenation wider than " + strconv.Itoa(MaxWidth) + " bits")
		}
		x = x<<uint(v.w) | v.x
	}
	return V(w, x)
}

// String returns v in Verilog notation, e.g. 4'h2.
//
func (v Value) String() string {
	return strconv.Itoa(int(v.w)) + "'h" + strconv.FormatUint(v.x, 16)
}

// Format implements fmt.Formatter. The b, d, o, x and X verbs print the
// payload only, v and s print v.String().
//
func (v Value) Format(f fmt.State, c rune) {
	switch c {
	case 'b', 'd', 'o', 'x', 'X':
		fmt.Fprintf(f, fmt.FormatString(f, c), v.x)
	default:
		f.Write([]byte(v.String()))
	}
}
