// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// CreateNode adds a node of the given kind at position pos, together with its
// input and output ports. No nets are attached.
//
func (c *Circuit) CreateNode(k Kind, pos Point) (ID, error) {
	if !k.Valid() {
		return ID{}, errors.Wrapf(ErrUnknownKind, "create node: %v", k)
	}
	ni, no := k.Arity()
	i, gen := c.nodes.alloc(node{kind: k, pos: pos})
	id := ID{NodeEntity, i, gen}
	in := make([]ID, ni)
	for j := range in {
		in[j] = c.newPort(id, Input, j)
	}
	out := make([]ID, no)
	for j := range out {
		out[j] = c.newPort(id, Output, j)
	}
	n := c.nodes.get(i, gen)
	n.in, n.out = in, out
	return id, nil
}

func (c *Circuit) newPort(n ID, dir Direction, index int) ID {
	i, gen := c.ports.alloc(port{node: n, dir: dir, index: index})
	return ID{PortEntity, i, gen}
}

// CreateNet creates a new net attached to the given port. Editors usually start
// from an output port and attach the far end with Attach, but starting from an
// input port is allowed.
//
func (c *Circuit) CreateNet(from ID) (ID, error) {
	if _, err := c.lookupPort(from); err != nil {
		return ID{}, errors.Wrap(err, "create net")
	}
	id := c.newNet()
	// cannot fail: both ends exist
	_ = c.Attach(from, id)
	return id, nil
}

// Delete deletes a node or a net.
//
// Deleting a node deletes its ports, every net that is left without a live
// attachment to another port and every net the node was the only driver of.
// Inputs fed by such nets become unconnected, so their nodes are skipped
// instead of reading a value nobody drives anymore.
//
// Deleting a net leaves references to it in the attachment sets of ports;
// these are ignored by evaluation and pruned by the next Sweep. Ports cannot be
// deleted on their own.
//
func (c *Circuit) Delete(id ID) error {
	switch id.kind {
	case NodeEntity:
		n, err := c.lookupNode(id)
		if err != nil {
			return errors.Wrap(err, "delete")
		}
		c.deleteNode(id, n)
	case NetEntity:
		if _, err := c.lookupNet(id); err != nil {
			return errors.Wrap(err, "delete")
		}
		c.removeNet(id)
	default:
		return errors.Wrapf(ErrEntityKind, "delete %v", id)
	}
	return nil
}

func (c *Circuit) deleteNode(id ID, n *node) {
	dead := append(append([]ID(nil), n.in...), n.out...)
	for _, p := range dead {
		pt := c.port(p)
		if pt == nil {
			continue
		}
		for _, nid := range pt.nets {
			nt := c.net(nid)
			if nt == nil {
				continue
			}
			if c.orphaned(nt, dead) {
				c.removeNet(nid)
			}
		}
	}
	for _, p := range dead {
		c.ports.remove(p.index, p.gen)
	}
	c.nodes.remove(id.index, id.gen)
	c.dirty = true
}

// orphaned reports whether net n does not survive the deletion of the ports in
// dead: either nothing else is attached to it, or it loses its only driver.
func (c *Circuit) orphaned(n *net, dead []ID) bool {
	var others, drivers, lost int
	for _, q := range n.ports {
		p := c.port(q)
		if p == nil {
			continue
		}
		if lo.Contains(dead, q) {
			if p.dir == Output {
				lost++
			}
			continue
		}
		others++
		if p.dir == Output {
			drivers++
		}
	}
	return others == 0 || lost > 0 && drivers == 0
}

// Sweep removes references to deleted entities: deleted nets from port
// attachment sets and deleted ports from net attachment lists. Ports whose
// nets were all deleted are left unconnected. Sweep then releases the slots of
// deleted entities for reuse and returns the number of pruned references.
//
// Tick calls Sweep itself if anything was deleted since the last sweep.
//
func (c *Circuit) Sweep() int {
	pruned := 0
	c.ports.each(func(_, _ uint32, p *port) {
		live := c.liveNets(p.nets)
		pruned += len(p.nets) - len(live)
		p.nets = live
	})
	c.nets.each(func(_, _ uint32, n *net) {
		live := lo.Filter(n.ports, func(q ID, _ int) bool { return c.port(q) != nil })
		pruned += len(n.ports) - len(live)
		n.ports = live
	})
	c.nodes.reclaim()
	c.ports.reclaim()
	c.nets.reclaim()
	c.dirty = false
	return pruned
}

// Swept reports whether no deletion happened since the last sweep.
//
func (c *Circuit) Swept() bool { return !c.dirty }

// Clear deletes every node and net and resets the tick counter.
//
func (c *Circuit) Clear() {
	for _, n := range c.Nodes() {
		c.deleteNode(n, c.node(n))
	}
	for _, n := range c.Nets() {
		c.removeNet(n)
	}
	c.Sweep()
	c.tick = 0
}
