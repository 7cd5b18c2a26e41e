// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim_test

import (
	"math/rand"
	"testing"

	gs "github.com/db47h/gatesim"
	"github.com/stretchr/testify/require"
)

func newCircuit(t *testing.T, opts ...gs.Option) *gs.Circuit {
	t.Helper()
	if len(opts) == 0 {
		opts = []gs.Option{gs.Workers(1)}
	}
	c := gs.New(opts...)
	t.Cleanup(c.Dispose)
	return c
}

func addNode(t *testing.T, c *gs.Circuit, k gs.Kind) gs.NodeInfo {
	t.Helper()
	id, err := c.CreateNode(k, gs.Point{})
	require.NoError(t, err)
	n, err := c.Node(id)
	require.NoError(t, err)
	return n
}

// connect creates a net from port from to port to.
func connect(t *testing.T, c *gs.Circuit, from, to gs.ID) gs.ID {
	t.Helper()
	n, err := c.CreateNet(from)
	require.NoError(t, err)
	require.NoError(t, c.Attach(to, n))
	return n
}

// probe attaches a new net to the output port of a node.
func probe(t *testing.T, c *gs.Circuit, n gs.NodeInfo) gs.ID {
	t.Helper()
	id, err := c.CreateNet(n.Outputs[0])
	require.NoError(t, err)
	return id
}

type snapshot map[gs.ID]gs.NetState

func snap(t *testing.T, c *gs.Circuit) snapshot {
	t.Helper()
	s := make(snapshot)
	for _, n := range c.Nets() {
		st, err := c.Net(n)
		require.NoError(t, err)
		s[n] = st
	}
	return s
}

// randomCircuit populates c with n random nodes. With cyclic false, inputs are
// only fed by nodes created earlier. The same seed always builds the same
// circuit.
func randomCircuit(t *testing.T, c *gs.Circuit, seed int64, n int, cyclic bool) {
	t.Helper()
	r := rand.New(rand.NewSource(seed))
	kinds := gs.Kinds()
	var (
		nodes []gs.NodeInfo
		outs  []gs.ID
	)
	link := func(src, in gs.ID) {
		if ns := c.LiveNets(src); len(ns) > 0 && r.Intn(2) == 0 {
			require.NoError(t, c.Attach(in, ns[0]))
			return
		}
		connect(t, c, src, in)
	}
	for i := 0; i < n; i++ {
		nd := addNode(t, c, kinds[r.Intn(len(kinds))])
		if nd.Kind == gs.Switch && r.Intn(2) == 0 {
			require.NoError(t, c.ToggleSwitch(nd.ID))
		}
		if !cyclic {
			for _, in := range nd.Inputs {
				if len(outs) > 0 {
					link(outs[r.Intn(len(outs))], in)
				}
			}
		}
		nodes = append(nodes, nd)
		outs = append(outs, nd.Outputs...)
	}
	if cyclic {
		for _, nd := range nodes {
			for _, in := range nd.Inputs {
				link(outs[r.Intn(len(outs))], in)
			}
		}
	}
	// make sure every output drives something
	for _, o := range outs {
		if len(c.LiveNets(o)) == 0 {
			_, err := c.CreateNet(o)
			require.NoError(t, err)
		}
	}
}
