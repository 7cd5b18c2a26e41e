// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

// compute evaluates the node in slot i and writes its outputs to the pending
// state of its output nets. It only reads settled states and only writes the
// pending states of nets attached to the node's own outputs, so that any
// number of compute calls may run concurrently.
func (c *Circuit) compute(i uint32) {
	n := &c.nodes.slots[i].val
	var in [maxInputs]bool
	for j, p := range n.in {
		pt := c.port(p)
		if pt == nil {
			return
		}
		k, ok := c.firstLive(pt.nets)
		if !ok {
			// unconnected input: hold outputs.
			return
		}
		in[j] = c.s0[k]
	}
	var out [maxOutputs]bool
	n.kind.Eval(in[:len(n.in)], out[:len(n.out)], n.toggled)
	for j, p := range n.out {
		pt := c.port(p)
		if pt == nil {
			continue
		}
		for _, id := range pt.nets {
			if c.net(id) != nil {
				c.s1[id.index] = out[j]
			}
		}
	}
}

// Tick advances the simulation by one tick: every node is evaluated against the
// states settled by the previous tick, then all pending states are committed.
//
func (c *Circuit) Tick() {
	if c.dirty {
		c.Sweep()
	}

	// compute
	c.order = c.order[:0]
	c.nodes.each(func(i, _ uint32, _ *node) {
		c.order = append(c.order, i)
	})
	if len(c.wc) == 0 {
		for _, i := range c.order {
			c.compute(i)
		}
	} else {
		ns := c.order
		size := (len(ns) + len(c.wc) - 1) / len(c.wc)
		for _, wc := range c.wc {
			if len(ns) == 0 {
				break
			}
			if size > len(ns) {
				size = len(ns)
			}
			c.wg.Add(1)
			wc <- ns[:size]
			ns = ns[size:]
		}
		c.wg.Wait()
	}

	// commit
	for i := range c.s0 {
		c.chg[i] = c.s1[i] != c.s0[i]
	}
	copy(c.s0, c.s1)
	c.tick++
}

// Run runs n ticks.
//
func (c *Circuit) Run(n int) {
	for ; n > 0; n-- {
		c.Tick()
	}
}

// Reset sets the settled and pending states of every net to false and resets
// the tick counter. The topology and the state of Switch nodes are left
// untouched.
//
func (c *Circuit) Reset() {
	for i := range c.s0 {
		c.s0[i], c.s1[i], c.chg[i] = false, false, false
	}
	c.tick = 0
}
