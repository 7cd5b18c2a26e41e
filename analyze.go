// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

import (
	"sort"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
)

// A Report describes the topology of a circuit as seen by the tick engine.
//
type Report struct {
	// Acyclic is true if no node output feeds back into its own inputs.
	Acyclic bool
	// Cycles lists the groups of nodes that form feedback loops (strongly
	// connected components with at least one edge).
	Cycles [][]ID
	// Depth is the number of nodes on the longest producer to consumer chain.
	// Starting from a reset, an acyclic circuit is stable after Depth ticks.
	// Depth is 0 for cyclic circuits.
	Depth int
	// MultiDriven lists nets written by more than one output port. The value
	// of such nets is undefined.
	MultiDriven []ID
	// Floating lists nodes with at least one unconnected input. They are never
	// evaluated.
	Floating []ID
}

func idHash(id ID) ID { return id }

// Analyze inspects the current topology of the circuit: a node A precedes a
// node B if a live net attached to an output of A is attached to an input of
// B. Stale references are ignored, as during evaluation.
//
func (c *Circuit) Analyze() (*Report, error) {
	g := graph.New(idHash, graph.Directed())
	r := &Report{}

	nodes := c.Nodes()
	for _, id := range nodes {
		if err := g.AddVertex(id); err != nil {
			return nil, errors.Wrapf(err, "analyze: add %v", id)
		}
	}
	selfLoop := make(map[ID]bool)
	for _, id := range c.Nets() {
		var drivers, readers []ID
		for _, p := range c.NetPorts(id) {
			pt := c.port(p)
			if pt.dir == Output {
				drivers = append(drivers, pt.node)
			} else if first, ok := c.firstLive(pt.nets); ok && first == id.index {
				readers = append(readers, pt.node)
			}
		}
		if len(drivers) > 1 {
			r.MultiDriven = append(r.MultiDriven, id)
		}
		for _, d := range drivers {
			for _, rd := range readers {
				if d == rd {
					selfLoop[d] = true
				}
				err := g.AddEdge(d, rd)
				if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
					return nil, errors.Wrapf(err, "analyze: edge %v -> %v", d, rd)
				}
			}
		}
	}
	for _, id := range nodes {
		n := c.node(id)
		for _, p := range n.in {
			if _, ok := c.firstLive(c.port(p).nets); !ok {
				r.Floating = append(r.Floating, id)
				break
			}
		}
	}

	sccs, err := graph.StronglyConnectedComponents(g)
	if err != nil {
		return nil, errors.Wrap(err, "analyze")
	}
	for _, scc := range sccs {
		if len(scc) > 1 || selfLoop[scc[0]] {
			sortIDs(scc)
			r.Cycles = append(r.Cycles, scc)
		}
	}
	sort.Slice(r.Cycles, func(i, j int) bool { return lessID(r.Cycles[i][0], r.Cycles[j][0]) })
	r.Acyclic = len(r.Cycles) == 0
	if !r.Acyclic {
		return r, nil
	}

	order, err := graph.TopologicalSort(g)
	if err != nil {
		return nil, errors.Wrap(err, "analyze")
	}
	preds, err := g.PredecessorMap()
	if err != nil {
		return nil, errors.Wrap(err, "analyze")
	}
	level := make(map[ID]int, len(order))
	for _, id := range order {
		l := 1
		for p := range preds[id] {
			if level[p]+1 > l {
				l = level[p] + 1
			}
		}
		level[id] = l
		if l > r.Depth {
			r.Depth = l
		}
	}
	return r, nil
}

func lessID(a, b ID) bool {
	if a.kind != b.kind {
		return a.kind < b.kind
	}
	return a.index < b.index
}

func sortIDs(ids []ID) {
	sort.Slice(ids, func(i, j int) bool { return lessID(ids[i], ids[j]) })
}
