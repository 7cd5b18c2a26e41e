// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Direction is the direction of a port.
//
type Direction uint8

// Port directions.
//
const (
	Input Direction = iota + 1
	Output
)

func (d Direction) String() string {
	switch d {
	case Input:
		return "in"
	case Output:
		return "out"
	}
	return "?"
}

type port struct {
	node  ID
	dir   Direction
	index int
	nets  []ID // attached nets, possibly stale until the next sweep
}

// PortInfo describes a port.
//
type PortInfo struct {
	ID    ID
	Node  ID
	Dir   Direction
	Index int // index within ports of the same direction
}

func (c *Circuit) port(id ID) *port {
	if id.kind != PortEntity {
		return nil
	}
	return c.ports.get(id.index, id.gen)
}

func (c *Circuit) lookupPort(id ID) (*port, error) {
	if err := checkKind(id, PortEntity); err != nil {
		return nil, err
	}
	p := c.ports.get(id.index, id.gen)
	if p == nil {
		return nil, errors.Wrap(ErrNotFound, id.String())
	}
	return p, nil
}

// Port returns information about the given port.
//
func (c *Circuit) Port(id ID) (PortInfo, error) {
	p, err := c.lookupPort(id)
	if err != nil {
		return PortInfo{}, err
	}
	return PortInfo{ID: id, Node: p.node, Dir: p.dir, Index: p.index}, nil
}

// Attach attaches net n to port p. Attaching several nets to an output port
// fans its value out to all of them. An input port may hold several nets but
// only the first live one is read.
//
// Attaching a net that is already attached to p is a no-op.
//
func (c *Circuit) Attach(p, n ID) error {
	pt, err := c.lookupPort(p)
	if err != nil {
		return errors.Wrap(err, "attach")
	}
	nt, err := c.lookupNet(n)
	if err != nil {
		return errors.Wrap(err, "attach")
	}
	if lo.Contains(pt.nets, n) {
		return nil
	}
	pt.nets = append(pt.nets, n)
	if !lo.Contains(nt.ports, p) {
		nt.ports = append(nt.ports, p)
	}
	return nil
}

// Detach removes net n from the attachment set of port p. The net itself is
// not deleted, even if it is left unattached.
//
func (c *Circuit) Detach(p, n ID) error {
	pt, err := c.lookupPort(p)
	if err != nil {
		return errors.Wrap(err, "detach")
	}
	if !lo.Contains(pt.nets, n) {
		return errors.Wrapf(ErrNotFound, "detach: %v not attached to %v", n, p)
	}
	pt.nets = lo.Without(pt.nets, n)
	if nt := c.net(n); nt != nil {
		nt.ports = lo.Without(nt.ports, p)
	}
	return nil
}

// Attachments returns the attachment set of port p as stored, including
// references to nets deleted since the last Sweep.
//
func (c *Circuit) Attachments(p ID) []ID {
	pt := c.port(p)
	if pt == nil {
		return nil
	}
	return append([]ID(nil), pt.nets...)
}

// LiveNets returns the nets attached to port p that still exist.
//
func (c *Circuit) LiveNets(p ID) []ID {
	pt := c.port(p)
	if pt == nil {
		return nil
	}
	return c.liveNets(pt.nets)
}

func (c *Circuit) liveNets(ns []ID) []ID {
	return lo.Filter(ns, func(n ID, _ int) bool { return c.net(n) != nil })
}

// firstLive returns the slot of the first live net in ns.
func (c *Circuit) firstLive(ns []ID) (uint32, bool) {
	for _, n := range ns {
		if c.net(n) != nil {
			return n.index, true
		}
	}
	return 0, false
}
