// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatelib

import (
	"github.com/db47h/gatesim"
	"github.com/pkg/errors"
)

// Mux adds a multiplexer.
//
//	Inputs: a, b, sel
//	Outputs: out
//	Function: If sel=0 then out=a else out=b.
//
func Mux(c *gatesim.Circuit, a, b, sel gatesim.ID) (gatesim.ID, error) {
	bd := builder{c: c}
	ns := bd.gate(gatesim.Not, sel)
	x := bd.gate(gatesim.And, a, ns)
	y := bd.gate(gatesim.And, b, sel)
	out := bd.gate(gatesim.Or, x, y)
	return out, bd.err
}

// DMux adds a demultiplexer.
//
//	Inputs: in, sel
//	Outputs: a, b
//	Function: If sel=0 then {a=in, b=0} else {a=0, b=in}
//
func DMux(c *gatesim.Circuit, in, sel gatesim.ID) (a, b gatesim.ID, err error) {
	bd := builder{c: c}
	ns := bd.gate(gatesim.Not, sel)
	a = bd.gate(gatesim.And, in, ns)
	b = bd.gate(gatesim.And, in, sel)
	return a, b, bd.err
}

// OrNWay adds an n-way Or gate as a balanced tree of Or gates.
//
//	Inputs: in[n]
//	Outputs: out
//	Function: out = Or(in[0], in[1], ..., in[n-1])
//
func OrNWay(c *gatesim.Circuit, in []gatesim.ID) (gatesim.ID, error) {
	return tree(c, gatesim.Or, in)
}

// AndNWay adds an n-way And gate as a balanced tree of And gates.
//
//	Inputs: in[n]
//	Outputs: out
//	Function: out = And(in[0], in[1], ..., in[n-1])
//
func AndNWay(c *gatesim.Circuit, in []gatesim.ID) (gatesim.ID, error) {
	return tree(c, gatesim.And, in)
}

func tree(c *gatesim.Circuit, k gatesim.Kind, in []gatesim.ID) (gatesim.ID, error) {
	switch len(in) {
	case 0:
		return gatesim.ID{}, errors.Errorf("%v: no inputs", k)
	case 1:
		return Gate(c, gatesim.Wire, in[0])
	}
	bd := builder{c: c}
	for len(in) > 1 {
		var next []gatesim.ID
		for i := 0; i+1 < len(in); i += 2 {
			next = append(next, bd.gate(k, in[i], in[i+1]))
		}
		if len(in)%2 != 0 {
			next = append(next, in[len(in)-1])
		}
		in = next
	}
	return in[0], bd.err
}

// SRLatch adds a set/reset latch made of two cross-coupled Nor gates.
//
//	Inputs: s, r
//	Outputs: q, qn
//	Function: s=1 sets q, r=1 resets q. s=r=1 is forbidden.
//
// A latch starting with both outputs false oscillates until s or r is set.
//
func SRLatch(c *gatesim.Circuit, s, r gatesim.ID) (q, qn gatesim.ID, err error) {
	top, err := c.CreateNode(gatesim.Nor, gatesim.Point{})
	if err != nil {
		return
	}
	bottom, err := c.CreateNode(gatesim.Nor, gatesim.Point{})
	if err != nil {
		return
	}
	t, _ := c.Node(top)
	b, _ := c.Node(bottom)
	if q, err = c.CreateNet(t.Outputs[0]); err != nil {
		return
	}
	if qn, err = c.CreateNet(b.Outputs[0]); err != nil {
		return
	}
	for _, a := range [...]struct{ p, n gatesim.ID }{
		{t.Inputs[0], r}, {t.Inputs[1], qn},
		{b.Inputs[0], s}, {b.Inputs[1], q},
	} {
		if err = c.Attach(a.p, a.n); err != nil {
			return gatesim.ID{}, gatesim.ID{}, errors.Wrap(err, "sr latch")
		}
	}
	return q, qn, nil
}
