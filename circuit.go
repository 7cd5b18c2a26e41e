// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

import (
	"runtime"
	"sync"
)

// Circuit is a runnable circuit simulation: a graph of nodes whose ports are
// connected by nets, together with the state of every net.
//
// A Circuit is not safe for concurrent use. Mutations must happen between
// calls to Tick.
//
type Circuit struct {
	nodes arena[node]
	ports arena[port]
	nets  arena[net]

	// net states, indexed by net slot.
	s0  []bool // settled: visible to readers this tick
	s1  []bool // pending: written by producers this tick
	chg []bool // pending != settled at the last commit

	tick  uint64
	dirty bool // a deletion happened since the last sweep

	order []uint32 // live node slots, rebuilt every tick
	wc    []chan []uint32
	wg    sync.WaitGroup
}

// New returns a new empty circuit.
//
// Unless the Workers(1) option is given, the circuit starts worker goroutines
// and callers must call Dispose once the circuit is no longer needed in order
// to release them.
//
func New(opts ...Option) *Circuit {
	cfg := config{}
	for _, o := range opts {
		o(&cfg)
	}
	workers := cfg.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(-1)
	}
	c := &Circuit{}
	if workers > 1 {
		for i := 0; i < workers; i++ {
			wc := make(chan []uint32, 1)
			c.wc = append(c.wc, wc)
			go worker(c, wc)
		}
	}
	return c
}

// Dispose stops worker goroutines. The circuit must not be ticked afterwards.
//
func (c *Circuit) Dispose() {
	c.wg.Add(len(c.wc))
	for _, wc := range c.wc {
		close(wc)
	}
	c.wg.Wait()
	c.wc = nil
}

func worker(c *Circuit, wc <-chan []uint32) {
	for {
		ns, ok := <-wc
		if !ok {
			c.wg.Done()
			return
		}
		for _, n := range ns {
			c.compute(n)
		}
		c.wg.Done()
	}
}

// Workers returns the number of worker goroutines, 0 when nodes are evaluated
// inline.
//
func (c *Circuit) Workers() int { return len(c.wc) }

// Steps returns the value of the tick counter.
//
func (c *Circuit) Steps() uint64 { return c.tick }

// Size returns the node count in the circuit.
//
func (c *Circuit) Size() int { return c.nodes.len() }
