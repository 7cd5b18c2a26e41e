// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

// An Option configures a Circuit at creation time.
//
type Option func(*config)

type config struct {
	workers int
}

// Workers sets the number of goroutines evaluating nodes during the compute
// phase of a tick. If n <= 0, the value of GOMAXPROCS is used. With n == 1
// nodes are evaluated by the goroutine calling Tick and no workers are started.
//
func Workers(n int) Option {
	return func(c *config) { c.workers = n }
}
