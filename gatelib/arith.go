// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatelib

import (
	"github.com/db47h/gatesim"
	"github.com/pkg/errors"
)

// HalfAdder adds a half adder.
//
//	Inputs: a, b
//	Outputs: s, c
//	Function: s = lsb(a + b)
//	          c = msb(a + b)
//
func HalfAdder(c *gatesim.Circuit, a, b gatesim.ID) (s, co gatesim.ID, err error) {
	bd := builder{c: c}
	s = bd.gate(gatesim.Xor, a, b)
	co = bd.gate(gatesim.And, a, b)
	return s, co, bd.err
}

// FullAdder adds a 3 bit adder.
//
//	Inputs: a, b, cin
//	Outputs: s, c
//	Function: s = lsb(a + b + cin)
//	          c = msb(a + b + cin)
//
func FullAdder(c *gatesim.Circuit, a, b, cin gatesim.ID) (s, co gatesim.ID, err error) {
	bd := builder{c: c}
	ab := bd.gate(gatesim.Xor, a, b)
	s = bd.gate(gatesim.Xor, ab, cin)
	c1 := bd.gate(gatesim.And, a, b)
	c2 := bd.gate(gatesim.And, ab, cin)
	co = bd.gate(gatesim.Or, c1, c2)
	return s, co, bd.err
}

// AdderN adds a ripple carry adder of len(a) bits.
//
//	Inputs: a[bits], b[bits]
//	Outputs: s[bits], c
//	Function: s = a + b, c is the carry out of the most significant bit
//
func AdderN(c *gatesim.Circuit, a, b []gatesim.ID) (s []gatesim.ID, co gatesim.ID, err error) {
	if len(a) != len(b) || len(a) == 0 {
		return nil, gatesim.ID{}, errors.Errorf("adder: %d bits + %d bits", len(a), len(b))
	}
	s = make([]gatesim.ID, len(a))
	if s[0], co, err = HalfAdder(c, a[0], b[0]); err != nil {
		return nil, gatesim.ID{}, err
	}
	for i := 1; i < len(a); i++ {
		if s[i], co, err = FullAdder(c, a[i], b[i], co); err != nil {
			return nil, gatesim.ID{}, errors.Wrapf(err, "adder bit %d", i)
		}
	}
	return s, co, nil
}
