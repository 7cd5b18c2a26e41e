// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command gatesim loads a circuit script and runs it.
//
//	gatesim [flags] circuit.zy
//
// The watched nets are logged after every tick.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/db47h/gatesim"
	"github.com/db47h/gatesim/render"
	"github.com/db47h/gatesim/script"
)

func main() {
	var (
		ticks   = flag.Int("ticks", 16, "number of ticks to run")
		every   = flag.Int("every", gatesim.DefaultFrames, "host frames per tick")
		fps     = flag.Int("fps", 0, "host frames per second, 0 to run unpaced")
		workers = flag.Int("workers", 1, "compute workers, 0 for GOMAXPROCS")
		svgOut  = flag.String("svg", "", "write an SVG snapshot of the final state to this file")
		watch   = flag.String("watch", "", "comma separated list of nets to log, all if empty")
		timeout = flag.Duration("timeout", script.DefaultTimeout, "script evaluation timeout")
	)
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	src, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	lctx, cancel := context.WithTimeout(ctx, *timeout)
	res, err := script.Load(lctx, string(src), gatesim.Workers(*workers))
	cancel()
	if err != nil {
		log.Fatalf("%s: %v", flag.Arg(0), err)
	}
	c := res.Circuit
	defer c.Dispose()

	rep, err := c.Analyze()
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("%d nodes, %d nets, acyclic: %v, depth: %d", c.Size(), len(c.Nets()), rep.Acyclic, rep.Depth)
	for _, cy := range rep.Cycles {
		log.Printf("feedback loop through %d nodes", len(cy))
	}
	for _, n := range rep.MultiDriven {
		log.Printf("warning: net %v has several drivers", n)
	}
	for _, n := range rep.Floating {
		log.Printf("warning: node %v has unconnected inputs", n)
	}

	names := watched(res.Nets, *watch)
	run(ctx, c, *ticks, *every, *fps, func() {
		var b strings.Builder
		for i, n := range names {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(n)
			b.WriteByte('=')
			if c.Settled(res.Nets[n]) {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
		log.Printf("tick %d: %s", c.Steps(), b.String())
	})

	if *svgOut != "" {
		f, err := os.Create(*svgOut)
		if err != nil {
			log.Fatal(err)
		}
		render.SVG(f, c, nil)
		if err := f.Close(); err != nil {
			log.Fatal(err)
		}
	}
}

func watched(nets map[string]gatesim.ID, list string) []string {
	var names []string
	if list == "" {
		for n := range nets {
			names = append(names, n)
		}
		sort.Strings(names)
		return names
	}
	for _, n := range strings.Split(list, ",") {
		n = strings.TrimSpace(n)
		if _, ok := nets[n]; !ok {
			log.Fatalf("unknown net %q", n)
		}
		names = append(names, n)
	}
	return names
}

// run ticks c until ticks ticks have run or ctx is done. With fps > 0, host
// frames are paced by a ticker and the circuit ticks once every every frames.
func run(ctx context.Context, c *gatesim.Circuit, ticks, every, fps int, onTick func()) {
	if fps <= 0 {
		for i := 0; i < ticks && ctx.Err() == nil; i++ {
			c.Tick()
			onTick()
		}
		return
	}
	p := gatesim.NewPacer(every)
	t := time.NewTicker(time.Second / time.Duration(fps))
	defer t.Stop()
	for done := 0; done < ticks; {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if p.Frame(c) {
				done++
				onTick()
			}
		}
	}
}
