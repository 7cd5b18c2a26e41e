// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

// DefaultFrames is the default number of host frames per tick.
//
const DefaultFrames = 72

// A Pacer drives a circuit from a host loop that runs faster than the
// simulation: it ticks the circuit once every Every frames.
//
type Pacer struct {
	every int
	frame int
}

// NewPacer returns a Pacer ticking once every n frames. If n <= 0,
// DefaultFrames is used.
//
func NewPacer(n int) *Pacer {
	if n <= 0 {
		n = DefaultFrames
	}
	return &Pacer{every: n}
}

// Frame advances the pacer by one host frame and ticks c if a tick is due.
// It reports whether c was ticked.
//
func (p *Pacer) Frame(c *Circuit) bool {
	p.frame++
	if p.frame < p.every {
		return false
	}
	p.frame = 0
	c.Tick()
	return true
}

// Progress returns how far the pacer is between two ticks, in [0, 1).
// Renderers use it to animate net transitions.
//
func (p *Pacer) Progress() float64 {
	return float64(p.frame) / float64(p.every)
}

// Restart rewinds the pacer to the start of a tick period.
//
func (p *Pacer) Restart() { p.frame = 0 }
