// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Kind is the kind of a node. The set of kinds is closed.
//
type Kind uint8

// Node kinds.
//
const (
	// On is a constant true source.
	//
	//	Outputs: out
	//	Function: out = true
	//
	On Kind = iota + 1

	// Off is a constant false source.
	//
	//	Outputs: out
	//	Function: out = false
	//
	Off

	// Wire is a passive connection node, forwarding its input one tick later.
	//
	//	Inputs: in
	//	Outputs: out
	//	Function: out = in
	//
	Wire

	// Not is an inverter.
	//
	//	Inputs: in
	//	Outputs: out
	//	Function: out = !in
	//
	Not

	// And gate.
	//
	//	Inputs: a, b
	//	Outputs: out
	//	Function: out = a && b
	//
	And

	// Or gate.
	//
	//	Inputs: a, b
	//	Outputs: out
	//	Function: out = a || b
	//
	Or

	// Nand gate.
	//
	//	Inputs: a, b
	//	Outputs: out
	//	Function: out = !(a && b)
	//
	Nand

	// Nor gate.
	//
	//	Inputs: a, b
	//	Outputs: out
	//	Function: out = !(a || b)
	//
	Nor

	// Xor gate.
	//
	//	Inputs: a, b
	//	Outputs: out
	//	Function: out = a != b
	//
	Xor

	// Xnor gate.
	//
	//	Inputs: a, b
	//	Outputs: out
	//	Function: out = a == b
	//
	Xnor

	// Switch is a manual source. Its state is changed with
	// Circuit.ToggleSwitch, never by evaluation.
	//
	//	Outputs: out
	//	Function: out = toggle state
	//
	Switch

	kindCount
)

// max arity over all kinds.
const (
	maxInputs  = 2
	maxOutputs = 1
)

type kindSpec struct {
	name string
	in   int
	out  int
}

var kinds = [kindCount]kindSpec{
	On:     {"On", 0, 1},
	Off:    {"Off", 0, 1},
	Wire:   {"Wire", 1, 1},
	Not:    {"Not", 1, 1},
	And:    {"And", 2, 1},
	Or:     {"Or", 2, 1},
	Nand:   {"Nand", 2, 1},
	Nor:    {"Nor", 2, 1},
	Xor:    {"Xor", 2, 1},
	Xnor:   {"Xnor", 2, 1},
	Switch: {"Switch", 0, 1},
}

// Kinds returns all node kinds in catalog order.
//
func Kinds() []Kind {
	ks := make([]Kind, 0, kindCount-1)
	for k := On; k < kindCount; k++ {
		ks = append(ks, k)
	}
	return ks
}

// Valid reports whether k is a catalog kind.
//
func (k Kind) Valid() bool { return k >= On && k < kindCount }

func (k Kind) String() string {
	if k.Valid() {
		return kinds[k].name
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Arity returns the number of input and output ports of nodes of kind k.
//
func (k Kind) Arity() (in, out int) {
	if !k.Valid() {
		return 0, 0
	}
	return kinds[k].in, kinds[k].out
}

// Eval computes the outputs of a node of kind k given its inputs. in and out
// must have the lengths returned by Arity. toggled is the state of a Switch and
// is ignored by other kinds.
//
// Eval is a total function: callers never pass undefined inputs, nodes with an
// unconnected input are not evaluated at all.
//
func (k Kind) Eval(in, out []bool, toggled bool) {
	switch k {
	case On:
		out[0] = true
	case Off:
		out[0] = false
	case Wire:
		out[0] = in[0]
	case Not:
		out[0] = !in[0]
	case And:
		out[0] = in[0] && in[1]
	case Or:
		out[0] = in[0] || in[1]
	case Nand:
		out[0] = !(in[0] && in[1])
	case Nor:
		out[0] = !(in[0] || in[1])
	case Xor:
		out[0] = in[0] != in[1]
	case Xnor:
		out[0] = in[0] == in[1]
	case Switch:
		out[0] = toggled
	default:
		panic("eval of invalid node kind " + k.String())
	}
}

// layout hints, in the same units as node positions.
const (
	portDX = 30
	portDY = 15
)

// PortOffsets returns the position of each input and output port relative to
// the node position. These are layout hints for renderers and pointer focus;
// evaluation ignores them.
//
func (k Kind) PortOffsets() (in, out []Point) {
	ni, no := k.Arity()
	return column(-portDX, ni), column(portDX, no)
}

// column spreads n points vertically around the x axis.
func column(x float64, n int) []Point {
	ps := make([]Point, n)
	for i := range ps {
		ps[i] = Point{x, (float64(i) - float64(n-1)/2) * 2 * portDY}
	}
	return ps
}

// ParseKind returns the Kind with the given name. Matching is case insensitive
// and a "Node" suffix is ignored, so that "and", "AND" and "AndNode" all map to
// And.
//
func ParseKind(name string) (Kind, error) {
	n := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), "node")
	if n == "connection" {
		return Wire, nil
	}
	for k := On; k < kindCount; k++ {
		if strings.ToLower(kinds[k].name) == n {
			return k, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownKind, "%q", name)
}
