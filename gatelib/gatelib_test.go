// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatelib_test

import (
	"testing"

	"github.com/db47h/gatesim"
	"github.com/db47h/gatesim/gatelib"
	"github.com/db47h/gatesim/gatetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCircuit(t *testing.T) *gatesim.Circuit {
	c := gatesim.New(gatesim.Workers(1))
	t.Cleanup(c.Dispose)
	return c
}

func inputs(t *testing.T, c *gatesim.Circuit, n int) (sws, nets []gatesim.ID) {
	sws, nets, err := gatelib.InputN(c, n)
	require.NoError(t, err)
	return sws, nets
}

func TestGate(t *testing.T) {
	for _, k := range gatesim.Kinds() {
		c := newCircuit(t)
		ni, _ := k.Arity()
		sws, in := inputs(t, c, ni)
		out, err := gatelib.Gate(c, k, in...)
		require.NoError(t, err, k.String())
		if k == gatesim.Switch {
			continue
		}
		gatetest.CompareFunc(t, gatetest.Probe{Circuit: c, Inputs: sws, Outputs: []gatesim.ID{out}},
			func(v []bool) []bool {
				r := make([]bool, 1)
				k.Eval(v, r, false)
				return r
			})
	}

	c := newCircuit(t)
	_, in := inputs(t, c, 1)
	_, err := gatelib.Gate(c, gatesim.And, in...)
	assert.Error(t, err)
}

func TestHalfAdder(t *testing.T) {
	c := newCircuit(t)
	sws, in := inputs(t, c, 2)
	s, co, err := gatelib.HalfAdder(c, in[0], in[1])
	require.NoError(t, err)
	gatetest.CompareFunc(t, gatetest.Probe{Circuit: c, Inputs: sws, Outputs: []gatesim.ID{s, co}},
		func(v []bool) []bool { return []bool{v[0] != v[1], v[0] && v[1]} })
}

func TestFullAdder(t *testing.T) {
	c := newCircuit(t)
	sws, in := inputs(t, c, 3)
	s, co, err := gatelib.FullAdder(c, in[0], in[1], in[2])
	require.NoError(t, err)
	gatetest.CompareFunc(t, gatetest.Probe{Circuit: c, Inputs: sws, Outputs: []gatesim.ID{s, co}},
		func(v []bool) []bool {
			n := 0
			for _, b := range v {
				if b {
					n++
				}
			}
			return []bool{n&1 != 0, n&2 != 0}
		})
}

func TestAdderN(t *testing.T) {
	const bits = 8
	c := newCircuit(t)
	as, a := inputs(t, c, bits)
	bs, b := inputs(t, c, bits)
	s, co, err := gatelib.AdderN(c, a, b)
	require.NoError(t, err)
	rep, err := c.Analyze()
	require.NoError(t, err)

	for _, v := range [][2]int64{{0, 0}, {1, 1}, {100, 27}, {255, 1}, {200, 200}, {255, 255}} {
		require.NoError(t, gatelib.SetInt64(c, as, v[0]))
		require.NoError(t, gatelib.SetInt64(c, bs, v[1]))
		c.Run(rep.Depth)
		sum := v[0] + v[1]
		assert.Equal(t, sum&0xff, gatelib.Int64(c, s), "%d + %d", v[0], v[1])
		assert.Equal(t, sum > 0xff, c.Settled(co), "%d + %d carry", v[0], v[1])
	}

	_, _, err = gatelib.AdderN(c, a, b[:3])
	assert.Error(t, err)
}

func TestMux(t *testing.T) {
	c := newCircuit(t)
	sws, in := inputs(t, c, 3)
	out, err := gatelib.Mux(c, in[0], in[1], in[2])
	require.NoError(t, err)
	gatetest.CompareFunc(t, gatetest.Probe{Circuit: c, Inputs: sws, Outputs: []gatesim.ID{out}},
		func(v []bool) []bool {
			if v[2] {
				return []bool{v[1]}
			}
			return []bool{v[0]}
		})
}

func TestDMux(t *testing.T) {
	c := newCircuit(t)
	sws, in := inputs(t, c, 2)
	a, b, err := gatelib.DMux(c, in[0], in[1])
	require.NoError(t, err)
	gatetest.CompareFunc(t, gatetest.Probe{Circuit: c, Inputs: sws, Outputs: []gatesim.ID{a, b}},
		func(v []bool) []bool { return []bool{v[0] && !v[1], v[0] && v[1]} })
}

func TestNWay(t *testing.T) {
	for _, n := range []int{1, 2, 5, 8} {
		c := newCircuit(t)
		sws, in := inputs(t, c, n)
		or, err := gatelib.OrNWay(c, in)
		require.NoError(t, err)
		and, err := gatelib.AndNWay(c, in)
		require.NoError(t, err)
		gatetest.CompareFunc(t, gatetest.Probe{Circuit: c, Inputs: sws, Outputs: []gatesim.ID{or, and}},
			func(v []bool) []bool {
				o, a := false, true
				for _, b := range v {
					o, a = o || b, a && b
				}
				return []bool{o, a}
			})
	}
	_, err := gatelib.OrNWay(newCircuit(t), nil)
	assert.Error(t, err)
}

func TestSRLatch(t *testing.T) {
	c := newCircuit(t)
	sws, in := inputs(t, c, 2)
	q, qn, err := gatelib.SRLatch(c, in[0], in[1])
	require.NoError(t, err)
	rep, err := c.Analyze()
	require.NoError(t, err)
	require.False(t, rep.Acyclic)

	pulse := func(sw gatesim.ID) {
		require.NoError(t, c.SetSwitch(sw, true))
		c.Run(4)
		require.NoError(t, c.SetSwitch(sw, false))
		c.Run(4)
	}
	for i := 0; i < 3; i++ {
		pulse(sws[0])
		assert.True(t, c.Settled(q))
		assert.False(t, c.Settled(qn))
		pulse(sws[1])
		assert.False(t, c.Settled(q))
		assert.True(t, c.Settled(qn))
	}
}
