// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package gatelib builds common composite parts out of catalog gates.
//
// Every function adds nodes and nets to a circuit and returns the nets
// carrying its outputs. Inputs are nets too, so parts can be chained freely:
//
//	_, a, _ := gatelib.Input(c)
//	_, b, _ := gatelib.Input(c)
//	s, co, err := gatelib.HalfAdder(c, a, b)
//
package gatelib

import (
	"github.com/db47h/gatesim"
	"github.com/pkg/errors"
)

// builder remembers the first error so that parts can be written as plain
// sequences of gates.
type builder struct {
	c   *gatesim.Circuit
	err error
}

func (b *builder) gate(k gatesim.Kind, in ...gatesim.ID) gatesim.ID {
	if b.err != nil {
		return gatesim.ID{}
	}
	var out gatesim.ID
	out, b.err = Gate(b.c, k, in...)
	return out
}

// Gate adds a node of kind k reading the nets in and returns a new net
// attached to its output.
//
func Gate(c *gatesim.Circuit, k gatesim.Kind, in ...gatesim.ID) (gatesim.ID, error) {
	ni, no := k.Arity()
	if ni != len(in) || no != 1 {
		return gatesim.ID{}, errors.Errorf("%v: %d inputs for %d ports", k, len(in), ni)
	}
	id, err := c.CreateNode(k, gatesim.Point{})
	if err != nil {
		return gatesim.ID{}, err
	}
	n, err := c.Node(id)
	if err != nil {
		return gatesim.ID{}, err
	}
	for i, net := range in {
		if err = c.Attach(n.Inputs[i], net); err != nil {
			return gatesim.ID{}, errors.Wrapf(err, "%v input %d", k, i)
		}
	}
	return c.CreateNet(n.Outputs[0])
}

// Input adds a Switch node and returns it together with its output net.
//
func Input(c *gatesim.Circuit) (sw, out gatesim.ID, err error) {
	if sw, err = c.CreateNode(gatesim.Switch, gatesim.Point{}); err != nil {
		return
	}
	n, err := c.Node(sw)
	if err != nil {
		return
	}
	out, err = c.CreateNet(n.Outputs[0])
	return
}

// InputN adds bits Switch nodes. Bit 0 is the least significant.
//
func InputN(c *gatesim.Circuit, bits int) (sws, outs []gatesim.ID, err error) {
	sws = make([]gatesim.ID, bits)
	outs = make([]gatesim.ID, bits)
	for i := range sws {
		if sws[i], outs[i], err = Input(c); err != nil {
			return nil, nil, err
		}
	}
	return sws, outs, nil
}

// Int64 returns the settled value of the given nets as an integer. Bit 0 is
// the least significant.
//
func Int64(c *gatesim.Circuit, nets []gatesim.ID) int64 {
	var v int64
	for i, n := range nets {
		if c.Settled(n) {
			v |= 1 << uint(i)
		}
	}
	return v
}

// SetInt64 sets the given switches to the bits of v.
//
func SetInt64(c *gatesim.Circuit, sws []gatesim.ID, v int64) error {
	for i, sw := range sws {
		if err := c.SetSwitch(sw, v&(1<<uint(i)) != 0); err != nil {
			return err
		}
	}
	return nil
}
