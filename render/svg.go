// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package render draws snapshots of a gatesim circuit.
//
package render

import (
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/db47h/gatesim"
)

// Options controls the output of SVG.
//
type Options struct {
	// Margin around the bounding box of the circuit.
	Margin int
	// Colors of nets whose settled value is true or false.
	High, Low string
	// Labels enables node kind labels.
	Labels bool
}

// DefaultOptions are used by SVG when passed a nil *Options.
//
var DefaultOptions = Options{
	Margin: 40,
	High:   "#e74c3c",
	Low:    "#34495e",
	Labels: true,
}

const (
	nodeSize = 50
	portDot  = 4
)

// SVG writes an SVG image of c to w. Nodes are drawn at their positions, nets
// as polylines from their driving port through their bend points to each of
// their readers, colored after their settled value.
//
func SVG(w io.Writer, c *gatesim.Circuit, opts *Options) {
	if opts == nil {
		opts = &DefaultOptions
	}
	nodes := c.Nodes()
	minX, minY, maxX, maxY := bounds(c, nodes)
	dx := opts.Margin - minX
	dy := opts.Margin - minY
	pt := func(p gatesim.Point) (int, int) {
		return int(math.Round(p.X)) + dx, int(math.Round(p.Y)) + dy
	}

	canvas := svg.New(w)
	canvas.Start(maxX-minX+2*opts.Margin, maxY-minY+2*opts.Margin)
	defer canvas.End()

	canvas.Gid("nets")
	for _, n := range c.Nets() {
		color := opts.Low
		if c.Settled(n) {
			color = opts.High
		}
		style := "fill:none;stroke-width:3;stroke:" + color
		var from []gatesim.Point
		var to []gatesim.Point
		for _, p := range c.NetPorts(n) {
			pi, err := c.Port(p)
			if err != nil {
				continue
			}
			pos, _ := c.PortPosition(p)
			if pi.Dir == gatesim.Output {
				from = append(from, pos)
			} else {
				to = append(to, pos)
			}
		}
		bends := c.Bends(n)
		for _, f := range from {
			for _, t := range to {
				pts := append(append([]gatesim.Point{f}, bends...), t)
				xs, ys := make([]int, len(pts)), make([]int, len(pts))
				for i, p := range pts {
					xs[i], ys[i] = pt(p)
				}
				canvas.Polyline(xs, ys, style)
			}
		}
	}
	canvas.Gend()

	canvas.Gid("nodes")
	for _, id := range nodes {
		n, err := c.Node(id)
		if err != nil {
			continue
		}
		x, y := pt(n.Pos)
		fill := "#ecf0f1"
		if n.Kind == gatesim.Switch && n.Toggled || n.Kind == gatesim.On {
			fill = "#f5b7b1"
		}
		canvas.Rect(x-nodeSize/2, y-nodeSize/2, nodeSize, nodeSize, "stroke:#000;stroke-width:1;fill:"+fill)
		if opts.Labels {
			canvas.Text(x, y+4, n.Kind.String(), "text-anchor:middle;font-size:11px;font-family:sans-serif")
		}
		for _, p := range append(n.Inputs, n.Outputs...) {
			pos, ok := c.PortPosition(p)
			if !ok {
				continue
			}
			px, py := pt(pos)
			fill := "#fff"
			if len(c.LiveNets(p)) > 0 {
				fill = "#000"
			}
			canvas.Circle(px, py, portDot, "stroke:#000;fill:"+fill)
		}
	}
	canvas.Gend()
}

// bounds returns the bounding box of node bodies and net bends.
func bounds(c *gatesim.Circuit, nodes []gatesim.ID) (minX, minY, maxX, maxY int) {
	if len(nodes) == 0 {
		return 0, 0, 0, 0
	}
	x0, y0 := math.Inf(1), math.Inf(1)
	x1, y1 := math.Inf(-1), math.Inf(-1)
	grow := func(p gatesim.Point, r float64) {
		x0, y0 = math.Min(x0, p.X-r), math.Min(y0, p.Y-r)
		x1, y1 = math.Max(x1, p.X+r), math.Max(y1, p.Y+r)
	}
	for _, id := range nodes {
		if n, err := c.Node(id); err == nil {
			grow(n.Pos, nodeSize/2)
		}
	}
	for _, n := range c.Nets() {
		for _, b := range c.Bends(n) {
			grow(b, 0)
		}
	}
	return int(math.Floor(x0)), int(math.Floor(y0)), int(math.Ceil(x1)), int(math.Ceil(y1))
}
