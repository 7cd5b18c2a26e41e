// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package gatesim provides a naive digital logic simulator for circuits built
from a fixed catalog of boolean gates.

A Circuit is a graph of nodes (gates, constant sources and switches) whose
ports are connected by nets. Nets carry a single boolean. The graph may contain
cycles.

Every call to Tick evaluates all nodes against the net states settled by the
previous tick, then commits the newly computed states in one step. As a result,
each node adds exactly one tick of delay and the outcome of a tick does not
depend on the order in which nodes are evaluated. Feedback loops need no
special handling: a ring of one Not gate simply oscillates.

	c := gatesim.New(gatesim.Workers(1))
	on, _ := c.CreateNode(gatesim.On, gatesim.Point{})
	not, _ := c.CreateNode(gatesim.Not, gatesim.Point{X: 100})
	onInfo, _ := c.Node(on)
	notInfo, _ := c.Node(not)
	w, _ := c.CreateNet(onInfo.Outputs[0])
	_ = c.Attach(notInfo.Inputs[0], w)
	out, _ := c.CreateNet(notInfo.Outputs[0])
	c.Run(2)
	fmt.Println(c.Settled(out)) // false

Nodes, ports and nets are addressed by generational IDs. Deleting an entity
invalidates its ID forever; references to it held by other entities are
ignored by evaluation and pruned by Sweep.
*/
package gatesim
