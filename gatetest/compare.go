// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package gatetest provides utility functions for testing circuits.
//
package gatetest

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/db47h/gatesim"
)

// maxExhaustive is the largest number of inputs tested exhaustively. Larger
// probes are tested with 1<<maxExhaustive random input vectors.
const maxExhaustive = 12

// A Probe is a circuit under test: Switch nodes driving its inputs and nets
// carrying its outputs.
//
type Probe struct {
	Circuit *gatesim.Circuit
	Inputs  []gatesim.ID // Switch nodes
	Outputs []gatesim.ID // nets
	// Ticks is the number of ticks to run after setting the inputs. If 0,
	// the depth of the circuit is used, which requires it to be acyclic.
	Ticks int
}

func (p *Probe) ticks(t *testing.T) int {
	t.Helper()
	if p.Ticks > 0 {
		return p.Ticks
	}
	r, err := p.Circuit.Analyze()
	if err != nil {
		t.Fatal(err)
	}
	if !r.Acyclic {
		t.Fatalf("circuit has %d feedback loops, set Probe.Ticks", len(r.Cycles))
	}
	return r.Depth
}

func (p *Probe) set(t *testing.T, in []bool) {
	t.Helper()
	for i, id := range p.Inputs {
		if err := p.Circuit.SetSwitch(id, in[i]); err != nil {
			t.Fatal(err)
		}
	}
}

func (p *Probe) read(out []bool) {
	for i, id := range p.Outputs {
		out[i] = p.Circuit.Settled(id)
	}
}

func vecString(v []bool) string {
	var b strings.Builder
	for i, x := range v {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d=%v", i, x)
	}
	return b.String()
}

// vectors calls fn with all 0, all 1 and then every input vector or, for wide
// probes, random ones. It stops at the first call returning false.
func vectors(n int, fn func(in []bool) bool) {
	in := make([]bool, n)
	if !fn(in) {
		return
	}
	for i := range in {
		in[i] = true
	}
	if !fn(in) {
		return
	}
	if n <= maxExhaustive {
		for v := 0; v < 1<<uint(n); v++ {
			for i := range in {
				in[i] = v&(1<<uint(i)) != 0
			}
			if !fn(in) {
				return
			}
		}
		return
	}
	rnd := rand.New(rand.NewSource(int64(n)))
	for v := 0; v < 1<<maxExhaustive; v++ {
		for i := range in {
			in[i] = rnd.Intn(2) != 0
		}
		if !fn(in) {
			return
		}
	}
}

// CompareFunc drives the inputs of p and checks its outputs against those
// returned by the reference function fn.
//
func CompareFunc(t *testing.T, p Probe, fn func(in []bool) []bool) {
	t.Helper()
	ticks := p.ticks(t)
	got := make([]bool, len(p.Outputs))
	vectors(len(p.Inputs), func(in []bool) bool {
		p.set(t, in)
		p.Circuit.Run(ticks)
		p.read(got)
		ex := fn(in)
		for o := range got {
			if got[o] != ex[o] {
				t.Errorf("\nExpected %s => output %d = %v\nGot %v", vecString(in), o, ex[o], got[o])
				return false
			}
		}
		return true
	})
}

// CompareProbes drives two probes with the same inputs and compares their
// outputs. Both probes must have the same number of inputs and outputs.
//
func CompareProbes(t *testing.T, p1, p2 Probe) {
	t.Helper()
	if len(p1.Inputs) != len(p2.Inputs) {
		t.Fatalf("%d inputs != %d inputs", len(p1.Inputs), len(p2.Inputs))
	}
	if len(p1.Outputs) != len(p2.Outputs) {
		t.Fatalf("%d outputs != %d outputs", len(p1.Outputs), len(p2.Outputs))
	}
	ex := make([]bool, len(p2.Outputs))
	CompareFunc(t, p1, func(in []bool) []bool {
		p2.set(t, in)
		p2.Circuit.Run(p2.ticks(t))
		p2.read(ex)
		return ex
	})
}
