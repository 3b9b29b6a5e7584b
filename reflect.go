// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// CombLogic is implemented by types passed to Build that have a
// combinational update block.
//
type CombLogic interface {
	Comb(s *Sim)
}

// SeqLogic is implemented by types passed to Build that have a sequential
// update block.
//
type SeqLogic interface {
	Seq(s *Sim)
}

var signalType = reflect.TypeOf((*Signal)(nil))

// Build creates a component from a pointer to a struct whose signals are
// identified by field tags.
//
// The field tag must be `hw:"in,width"`, `hw:"out,width"` or
// `hw:"wire,width"`. The width defaults to 1. By default, the signal name
// is the field name in lowercase. A specific name can be forced by adding it
// in the tag: `hw:"in,8,in_"`.
//
// Fields must be of type *Signal or arrays of *Signal. Array elements are
// named name[0], name[1], etc.
//
// Build allocates the signals and assigns them to the struct fields. If v
// implements CombLogic or SeqLogic, the Comb and Seq methods are registered
// as update blocks named "comb" and "seq", with read and write sets derived
// by tracing at elaboration time.
//
func Build(name string, v interface{}) (*Component, error) {
	pv := reflect.ValueOf(v)
	if pv.Kind() != reflect.Ptr || pv.IsNil() || pv.Elem().Kind() != reflect.Struct {
		return nil, errors.Errorf("unsupported type %T for component %q: need a pointer to a struct", v, name)
	}
	e := pv.Elem()
	typ := e.Type()
	c := NewComponent(name)

	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag, ok := f.Tag.Lookup("hw")
		if !ok {
			continue
		}
		tv := strings.Split(tag, ",")
		pin := strings.ToLower(f.Name)
		width := 1
		if len(tv) > 3 {
			return nil, errors.Errorf("invalid tag %q for field %q in %q", tag, f.Name, typ.Name())
		}
		if len(tv) == 3 && tv[2] != "" {
			pin = tv[2]
		}
		if len(tv) >= 2 && tv[1] != "" {
			w, err := strconv.Atoi(tv[1])
			if err != nil || w <= 0 || w > MaxWidth {
				return nil, errors.Errorf("invalid width in tag %q for field %q in %q", tag, f.Name, typ.Name())
			}
			width = w
		}
		var dir Dir
		switch tv[0] {
		case "in":
			dir = Input
		case "out":
			dir = Output
		case "wire":
			dir = Internal
		default:
			return nil, errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name())
		}

		fv := e.Field(i)
		if !fv.CanSet() {
			return nil, errors.Errorf("unexported field %q in %q", f.Name, typ.Name())
		}
		ft := f.Type
		switch {
		case ft == signalType:
			fv.Set(reflect.ValueOf(c.newSignal(pin, width, dir)))
		case ft.Kind() == reflect.Array && ft.Elem() == signalType:
			for j, s := range c.array(pin, ft.Len(), width, dir) {
				fv.Index(j).Set(reflect.ValueOf(s))
			}
		default:
			return nil, errors.Errorf("unsupported type %q for field %q in %q", ft, f.Name, typ.Name())
		}
	}

	if l, ok := v.(CombLogic); ok {
		c.Comb("comb", l.Comb)
	}
	if l, ok := v.(SeqLogic); ok {
		c.Seq("seq", l.Seq)
	}
	return c, nil
}
