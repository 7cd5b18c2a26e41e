// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim_test

import (
	"testing"

	gs "github.com/db47h/gatesim"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireCause(t *testing.T, err, cause error) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, cause, errors.Cause(err), "%v", err)
}

func TestCreateNode(t *testing.T) {
	c := newCircuit(t)
	for _, k := range gs.Kinds() {
		n := addNode(t, c, k)
		ni, no := k.Arity()
		require.Equal(t, k, n.Kind)
		require.Len(t, n.Inputs, ni, k.String())
		require.Len(t, n.Outputs, no, k.String())
		for i, p := range n.Inputs {
			pi, err := c.Port(p)
			require.NoError(t, err)
			assert.Equal(t, gs.PortInfo{ID: p, Node: n.ID, Dir: gs.Input, Index: i}, pi)
			assert.Empty(t, c.LiveNets(p))
		}
		for i, p := range n.Outputs {
			pi, err := c.Port(p)
			require.NoError(t, err)
			assert.Equal(t, gs.PortInfo{ID: p, Node: n.ID, Dir: gs.Output, Index: i}, pi)
		}
	}
	assert.Equal(t, len(gs.Kinds()), c.Size())
	assert.Empty(t, c.Nets())

	_, err := c.CreateNode(gs.Kind(0), gs.Point{})
	requireCause(t, err, gs.ErrUnknownKind)
	_, err = c.CreateNode(gs.Kind(200), gs.Point{})
	requireCause(t, err, gs.ErrUnknownKind)
}

func TestAttach(t *testing.T) {
	c := newCircuit(t)
	on := addNode(t, c, gs.On)
	and := addNode(t, c, gs.And)
	n := connect(t, c, on.Outputs[0], and.Inputs[0])

	// attaching twice is a no-op
	require.NoError(t, c.Attach(and.Inputs[0], n))
	assert.Equal(t, []gs.ID{n}, c.Attachments(and.Inputs[0]))
	assert.ElementsMatch(t, []gs.ID{on.Outputs[0], and.Inputs[0]}, c.NetPorts(n))

	// same net on both inputs
	require.NoError(t, c.Attach(and.Inputs[1], n))
	out := probe(t, c, and)
	c.Run(2)
	assert.True(t, c.Settled(out))

	requireCause(t, c.Attach(n, n), gs.ErrEntityKind)
	requireCause(t, c.Attach(and.Inputs[0], on.ID), gs.ErrEntityKind)
	requireCause(t, c.Attach(gs.ID{}, n), gs.ErrEntityKind)

	require.NoError(t, c.Detach(and.Inputs[1], n))
	assert.Empty(t, c.LiveNets(and.Inputs[1]))
	assert.NotContains(t, c.NetPorts(n), and.Inputs[1])
	requireCause(t, c.Detach(and.Inputs[1], n), gs.ErrNotFound)
}

func TestSharedInputNet(t *testing.T) {
	c := newCircuit(t)
	sw := addNode(t, c, gs.Switch)
	xor := addNode(t, c, gs.Xnor)
	n := connect(t, c, sw.Outputs[0], xor.Inputs[0])
	require.NoError(t, c.Attach(xor.Inputs[1], n))
	out := probe(t, c, xor)
	for i := 0; i < 4; i++ {
		require.NoError(t, c.ToggleSwitch(sw.ID))
		c.Run(2)
		assert.True(t, c.Settled(out))
	}
}

func TestSwitchErrors(t *testing.T) {
	c := newCircuit(t)
	and := addNode(t, c, gs.And)
	requireCause(t, c.ToggleSwitch(and.ID), gs.ErrNotSwitch)
	requireCause(t, c.SetSwitch(and.ID, true), gs.ErrNotSwitch)
	_, err := c.SwitchState(and.ID)
	requireCause(t, err, gs.ErrNotSwitch)
	requireCause(t, c.ToggleSwitch(and.Inputs[0]), gs.ErrEntityKind)
}

func TestDeleteNet(t *testing.T) {
	c := newCircuit(t)
	on := addNode(t, c, gs.On)
	not := addNode(t, c, gs.Not)
	n := connect(t, c, on.Outputs[0], not.Inputs[0])
	out := probe(t, c, not)
	c.Tick()
	require.True(t, c.Settled(out))

	require.NoError(t, c.Delete(n))
	assert.False(t, c.Swept())
	_, err := c.Net(n)
	requireCause(t, err, gs.ErrNotFound)
	requireCause(t, c.Delete(n), gs.ErrNotFound)

	// references stay until the next sweep, but are never followed.
	assert.Equal(t, []gs.ID{n}, c.Attachments(on.Outputs[0]))
	assert.Equal(t, []gs.ID{n}, c.Attachments(not.Inputs[0]))
	assert.Empty(t, c.LiveNets(on.Outputs[0]))
	assert.Empty(t, c.LiveNets(not.Inputs[0]))
	assert.False(t, c.Settled(n))

	assert.Equal(t, 2, c.Sweep())
	assert.True(t, c.Swept())
	assert.Empty(t, c.Attachments(on.Outputs[0]))
	assert.Empty(t, c.Attachments(not.Inputs[0]))
	assert.Equal(t, 0, c.Sweep())

	// not is now skipped and holds its last output.
	c.Run(3)
	assert.True(t, c.Settled(out))
}

func TestDeleteNetSweptByTick(t *testing.T) {
	c := newCircuit(t)
	on := addNode(t, c, gs.On)
	w := addNode(t, c, gs.Wire)
	n := connect(t, c, on.Outputs[0], w.Inputs[0])
	require.NoError(t, c.Delete(n))
	c.Tick()
	assert.True(t, c.Swept())
	assert.Empty(t, c.Attachments(w.Inputs[0]))
}

func TestDeleteNode(t *testing.T) {
	c := newCircuit(t)
	on := addNode(t, c, gs.On)
	not := addNode(t, c, gs.Not)
	in := connect(t, c, on.Outputs[0], not.Inputs[0])
	out := probe(t, c, not)

	require.NoError(t, c.Delete(not.ID))
	_, err := c.Node(not.ID)
	requireCause(t, err, gs.ErrNotFound)
	for _, p := range append(not.Inputs, not.Outputs...) {
		_, err := c.Port(p)
		requireCause(t, err, gs.ErrNotFound)
	}
	// out had no other attachment, in is still driven by on.
	_, err = c.Net(out)
	requireCause(t, err, gs.ErrNotFound)
	_, err = c.Net(in)
	require.NoError(t, err)
	assert.Equal(t, []gs.ID{on.Outputs[0]}, c.NetPorts(in))

	requireCause(t, c.Delete(not.ID), gs.ErrNotFound)
	requireCause(t, c.Delete(on.Outputs[0]), gs.ErrEntityKind)
	requireCause(t, c.Delete(gs.ID{}), gs.ErrEntityKind)
}

func TestDeleteDriver(t *testing.T) {
	c := newCircuit(t)
	on := addNode(t, c, gs.On)
	w := addNode(t, c, gs.Wire)
	not := addNode(t, c, gs.Not)
	connect(t, c, on.Outputs[0], w.Inputs[0])
	mid := connect(t, c, w.Outputs[0], not.Inputs[0])
	out := probe(t, c, not)

	require.NoError(t, c.Delete(w.ID))
	_, err := c.Net(mid)
	requireCause(t, err, gs.ErrNotFound)
	assert.Empty(t, c.LiveNets(not.Inputs[0]))

	// not has no input anymore: it is skipped instead of reading false.
	c.Run(5)
	assert.False(t, c.Settled(out))
}

func TestDeleteDriverHoldsOutput(t *testing.T) {
	c := newCircuit(t)
	off := addNode(t, c, gs.Off)
	w := addNode(t, c, gs.Wire)
	not := addNode(t, c, gs.Not)
	connect(t, c, off.Outputs[0], w.Inputs[0])
	connect(t, c, w.Outputs[0], not.Inputs[0])
	out := probe(t, c, not)
	c.Run(3)
	require.True(t, c.Settled(out))

	require.NoError(t, c.Delete(w.ID))
	c.Sweep()
	c.Run(3)
	assert.True(t, c.Settled(out), "not must hold the value it drove before the deletion")
	st, err := c.Net(out)
	require.NoError(t, err)
	assert.False(t, st.Changed)
}

func TestDeleteKeepsSharedNet(t *testing.T) {
	c := newCircuit(t)
	on := addNode(t, c, gs.On)
	a, b := addNode(t, c, gs.Wire), addNode(t, c, gs.Wire)
	n := connect(t, c, on.Outputs[0], a.Inputs[0])
	require.NoError(t, c.Attach(b.Inputs[0], n))
	out := probe(t, c, b)

	require.NoError(t, c.Delete(a.ID))
	assert.ElementsMatch(t, []gs.ID{on.Outputs[0], b.Inputs[0]}, c.NetPorts(n))
	c.Run(2)
	assert.True(t, c.Settled(out))
}

func TestStaleIDs(t *testing.T) {
	c := newCircuit(t)
	var dead []gs.ID
	for i := 0; i < 10; i++ {
		n := addNode(t, c, gs.And)
		// not reused before the sweep
		for _, d := range dead {
			assert.NotEqual(t, d, n.ID)
		}
		dead = append(dead, n.ID)
		require.NoError(t, c.Delete(n.ID))
	}
	c.Sweep()
	for i := 0; i < 10; i++ {
		n := addNode(t, c, gs.And)
		for _, d := range dead {
			require.NotEqual(t, d, n.ID)
		}
	}
	for _, d := range dead {
		_, err := c.Node(d)
		requireCause(t, err, gs.ErrNotFound)
		requireCause(t, c.SetPosition(d, gs.Point{}), gs.ErrNotFound)
	}
	assert.Equal(t, 10, c.Size())
}

func TestClear(t *testing.T) {
	c := newCircuit(t)
	randomCircuit(t, c, 42, 30, true)
	c.Run(3)
	nodes := c.Nodes()
	require.NotEmpty(t, nodes)

	c.Clear()
	assert.Empty(t, c.Nodes())
	assert.Empty(t, c.Nets())
	assert.Zero(t, c.Size())
	assert.Zero(t, c.Steps())
	assert.True(t, c.Swept())
	for _, n := range nodes {
		_, err := c.Node(n)
		requireCause(t, err, gs.ErrNotFound)
	}
	c.Tick()
	assert.Equal(t, uint64(1), c.Steps())
}

func TestBendsAndPosition(t *testing.T) {
	c := newCircuit(t)
	on := addNode(t, c, gs.On)
	n := probe(t, c, on)
	bends := []gs.Point{{X: 1, Y: 2}, {X: 3, Y: 4}}
	require.NoError(t, c.SetBends(n, bends))
	bends[0].X = 100
	assert.Equal(t, []gs.Point{{X: 1, Y: 2}, {X: 3, Y: 4}}, c.Bends(n))

	require.NoError(t, c.SetPosition(on.ID, gs.Point{X: 10, Y: 20}))
	ni, err := c.Node(on.ID)
	require.NoError(t, err)
	assert.Equal(t, gs.Point{X: 10, Y: 20}, ni.Pos)

	requireCause(t, c.SetBends(on.ID, nil), gs.ErrEntityKind)
}

func TestIDString(t *testing.T) {
	var id gs.ID
	assert.True(t, id.IsZero())
	assert.Equal(t, gs.NoEntity, id.Kind())
	c := newCircuit(t)
	n := addNode(t, c, gs.On)
	assert.False(t, n.ID.IsZero())
	assert.Equal(t, gs.NodeEntity, n.ID.Kind())
	assert.Equal(t, gs.PortEntity, n.Outputs[0].Kind())
	assert.Equal(t, "node#0.1", n.ID.String())
}
