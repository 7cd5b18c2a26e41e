// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

import "github.com/pkg/errors"

type node struct {
	kind    Kind
	in      []ID
	out     []ID
	pos     Point
	toggled bool // Switch state
}

// NodeInfo describes a node.
//
type NodeInfo struct {
	ID      ID
	Kind    Kind
	Inputs  []ID
	Outputs []ID
	Pos     Point
	Toggled bool // state of a Switch, false for other kinds
}

func (c *Circuit) node(id ID) *node {
	if id.kind != NodeEntity {
		return nil
	}
	return c.nodes.get(id.index, id.gen)
}

func (c *Circuit) lookupNode(id ID) (*node, error) {
	if err := checkKind(id, NodeEntity); err != nil {
		return nil, err
	}
	n := c.nodes.get(id.index, id.gen)
	if n == nil {
		return nil, errors.Wrap(ErrNotFound, id.String())
	}
	return n, nil
}

// Node returns information about the given node.
//
func (c *Circuit) Node(id ID) (NodeInfo, error) {
	n, err := c.lookupNode(id)
	if err != nil {
		return NodeInfo{}, err
	}
	return NodeInfo{
		ID:      id,
		Kind:    n.kind,
		Inputs:  append([]ID(nil), n.in...),
		Outputs: append([]ID(nil), n.out...),
		Pos:     n.pos,
		Toggled: n.toggled,
	}, nil
}

// Nodes returns the IDs of all nodes, in slot order.
//
func (c *Circuit) Nodes() []ID {
	ids := make([]ID, 0, c.nodes.len())
	c.nodes.each(func(i, gen uint32, _ *node) {
		ids = append(ids, ID{NodeEntity, i, gen})
	})
	return ids
}

// SetPosition moves a node.
//
func (c *Circuit) SetPosition(id ID, p Point) error {
	n, err := c.lookupNode(id)
	if err != nil {
		return err
	}
	n.pos = p
	return nil
}

func (c *Circuit) lookupSwitch(id ID) (*node, error) {
	n, err := c.lookupNode(id)
	if err != nil {
		return nil, err
	}
	if n.kind != Switch {
		return nil, errors.Wrapf(ErrNotSwitch, "%v is %v", id, n.kind)
	}
	return n, nil
}

// SwitchState returns the toggle state of a Switch node.
//
func (c *Circuit) SwitchState(id ID) (bool, error) {
	n, err := c.lookupSwitch(id)
	if err != nil {
		return false, err
	}
	return n.toggled, nil
}

// ToggleSwitch flips the state of a Switch node. The new state is seen by the
// next compute phase.
//
func (c *Circuit) ToggleSwitch(id ID) error {
	n, err := c.lookupSwitch(id)
	if err != nil {
		return err
	}
	n.toggled = !n.toggled
	return nil
}

// SetSwitch sets the state of a Switch node.
//
func (c *Circuit) SetSwitch(id ID, on bool) error {
	n, err := c.lookupSwitch(id)
	if err != nil {
		return err
	}
	n.toggled = on
	return nil
}
