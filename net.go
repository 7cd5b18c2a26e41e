// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type net struct {
	ports []ID    // attached ports, possibly stale until the next sweep
	bends []Point // polyline hint for renderers
}

// NetState is the state of a net.
//
type NetState struct {
	// Settled is the value visible to consumers during the current tick.
	Settled bool
	// Pending is the value written by the producer during the last compute
	// phase. It becomes Settled at the next commit.
	Pending bool
	// Changed reports whether the last commit changed the settled value.
	Changed bool
}

func (c *Circuit) net(id ID) *net {
	if id.kind != NetEntity {
		return nil
	}
	return c.nets.get(id.index, id.gen)
}

func (c *Circuit) lookupNet(id ID) (*net, error) {
	if err := checkKind(id, NetEntity); err != nil {
		return nil, err
	}
	n := c.nets.get(id.index, id.gen)
	if n == nil {
		return nil, errors.Wrap(ErrNotFound, id.String())
	}
	return n, nil
}

// newNet allocates a net with all its states false.
func (c *Circuit) newNet() ID {
	i, gen := c.nets.alloc(net{})
	if int(i) == len(c.s0) {
		c.s0 = append(c.s0, false)
		c.s1 = append(c.s1, false)
		c.chg = append(c.chg, false)
	} else {
		c.s0[i], c.s1[i], c.chg[i] = false, false, false
	}
	return ID{NetEntity, i, gen}
}

func (c *Circuit) removeNet(id ID) {
	if c.nets.remove(id.index, id.gen) {
		c.s0[id.index], c.s1[id.index], c.chg[id.index] = false, false, false
		c.dirty = true
	}
}

// Net returns the state of the given net.
//
func (c *Circuit) Net(id ID) (NetState, error) {
	if _, err := c.lookupNet(id); err != nil {
		return NetState{}, err
	}
	return NetState{Settled: c.s0[id.index], Pending: c.s1[id.index], Changed: c.chg[id.index]}, nil
}

// Settled returns the settled value of a net, false if it does not exist.
//
func (c *Circuit) Settled(id ID) bool {
	if c.net(id) == nil {
		return false
	}
	return c.s0[id.index]
}

// Nets returns the IDs of all nets, in slot order.
//
func (c *Circuit) Nets() []ID {
	ids := make([]ID, 0, c.nets.len())
	c.nets.each(func(i, gen uint32, _ *net) {
		ids = append(ids, ID{NetEntity, i, gen})
	})
	return ids
}

// NetPorts returns the live ports a net is attached to.
//
func (c *Circuit) NetPorts(id ID) []ID {
	n := c.net(id)
	if n == nil {
		return nil
	}
	return lo.Filter(n.ports, func(p ID, _ int) bool { return c.port(p) != nil })
}

// Bends returns the bend points of a net.
//
func (c *Circuit) Bends(id ID) []Point {
	n := c.net(id)
	if n == nil {
		return nil
	}
	return append([]Point(nil), n.bends...)
}

// SetBends sets the bend points of a net. The core stores them for renderers
// and does not interpret them.
//
func (c *Circuit) SetBends(id ID, bends []Point) error {
	n, err := c.lookupNet(id)
	if err != nil {
		return err
	}
	n.bends = append(n.bends[:0], bends...)
	return nil
}
