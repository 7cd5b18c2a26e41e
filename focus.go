// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

import "math"

// Point is a position in editor space. The circuit stores points for its
// collaborators and never interprets them beyond distance queries.
//
type Point struct {
	X, Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// Default pointer focus radii.
//
const (
	NodeRadius = 35
	PortRadius = 7.5
)

// PortPosition returns the absolute position of a port: its node position
// plus the layout offset of the port.
//
func (c *Circuit) PortPosition(id ID) (Point, bool) {
	p := c.port(id)
	if p == nil {
		return Point{}, false
	}
	n := c.node(p.node)
	if n == nil {
		return Point{}, false
	}
	in, out := n.kind.PortOffsets()
	off := in
	if p.dir == Output {
		off = out
	}
	return n.pos.Add(off[p.index]), true
}

// NodeAt returns the node nearest to p within radius r.
//
func (c *Circuit) NodeAt(p Point, r float64) (ID, bool) {
	var (
		best  ID
		bestD = math.Inf(1)
	)
	c.nodes.each(func(i, gen uint32, n *node) {
		if d := n.pos.Dist(p); d <= r && d < bestD {
			best, bestD = ID{NodeEntity, i, gen}, d
		}
	})
	return best, !best.IsZero()
}

// PortAt returns the port nearest to p within radius r.
//
func (c *Circuit) PortAt(p Point, r float64) (ID, bool) {
	var (
		best  ID
		bestD = math.Inf(1)
	)
	c.ports.each(func(i, gen uint32, _ *port) {
		id := ID{PortEntity, i, gen}
		pp, ok := c.PortPosition(id)
		if !ok {
			return
		}
		if d := pp.Dist(p); d <= r && d < bestD {
			best, bestD = id, d
		}
	})
	return best, !best.IsZero()
}
