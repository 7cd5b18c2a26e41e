// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package script builds gatesim circuits from Lisp descriptions evaluated in a
// sandboxed zygomys interpreter.
//
// A circuit description is a sequence of gate and wire forms:
//
//	; an SR latch
//	(gate :switch :name "s" :at [0 0] :out ["s"])
//	(gate :switch :name "r" :at [0 100] :out ["r"])
//	(gate :nor :at [100 0] :in ["r" "qn"] :out ["q"])
//	(gate :nor :at [100 100] :in ["s" "q"] :out ["qn"])
//	(wire "q" :bends [[150 0] [150 50]])
//
// Each entry of :in and :out connects one port, in order, to the named net.
// An empty name leaves the port unconnected and an array of names attaches
// several nets to the same port. Nets are created the first time they are
// named. A wire form only sets the bend points of a net used by some gate.
//
package script

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/db47h/gatesim"
	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/pkg/errors"
)

// DefaultTimeout bounds the evaluation of a script when the context passed to
// Load has no deadline.
//
const DefaultTimeout = 5 * time.Second

// Error is an evaluation error in a script.
//
type Error struct {
	Line int // 0 if unknown
	Msg  string
	err  error
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return "line " + strconv.Itoa(e.Line) + ": " + e.Msg
	}
	return e.Msg
}

// Unwrap returns the error of the failing builtin, if any.
//
func (e *Error) Unwrap() error { return e.err }

// Result is a circuit built from a script.
//
type Result struct {
	Circuit *gatesim.Circuit
	Nodes   map[string]gatesim.ID // gates given a :name
	Nets    map[string]gatesim.ID
}

type loadResult struct {
	res *Result
	err error
}

// Load evaluates source and returns the circuit it describes. opts are passed
// to gatesim.New. Unless they include gatesim.Workers(1), the circuit runs
// worker goroutines and callers must call Dispose on Result.Circuit once done
// with it.
//
// Evaluation is abandoned when ctx is done. If ctx has no deadline,
// DefaultTimeout applies.
//
func Load(ctx context.Context, source string, opts ...gatesim.Option) (*Result, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()
	}
	ch := make(chan loadResult, 1)
	go func() {
		res, err := load(source, opts)
		ch <- loadResult{res, err}
	}()

	select {
	case r := <-ch:
		return r.res, r.err
	case <-ctx.Done():
		// release the circuit once the interpreter gives up.
		go func() {
			if r := <-ch; r.res != nil {
				r.res.Circuit.Dispose()
			}
		}()
		return nil, errors.Wrap(ctx.Err(), "load")
	}
}

func load(source string, opts []gatesim.Option) (res *Result, err error) {
	b := &builder{
		c:     gatesim.New(opts...),
		nodes: make(map[string]gatesim.ID),
		nets:  make(map[string]gatesim.ID),
		bends: make(map[string][]gatesim.Point),
	}
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("panic during evaluation: %v", r)
		}
		if err != nil {
			b.c.Dispose()
			res = nil
		}
	}()

	if strings.TrimSpace(source) != "" {
		env := zygo.NewZlispSandbox()
		defer env.Stop()
		b.register(env)

		if err := env.LoadString(preprocess(source)); err != nil {
			return nil, evalError(err, nil)
		}
		if _, err := env.Run(); err != nil {
			return nil, evalError(err, b.err)
		}
	}
	if err := b.finish(); err != nil {
		return nil, err
	}
	return &Result{Circuit: b.c, Nodes: b.nodes, Nets: b.nets}, nil
}

var (
	linePattern      = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)
	linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)
)

// evalError converts a zygomys error to an *Error, extracting the line number
// when the message carries one. cause is the error of the failing builtin, if
// any.
func evalError(err error, cause error) *Error {
	msg := err.Error()
	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return &Error{Line: line, Msg: strings.TrimSpace(m[2]), err: cause}
		}
	}
	return &Error{Msg: strings.TrimSpace(msg), err: cause}
}

type builder struct {
	c     *gatesim.Circuit
	nodes map[string]gatesim.ID
	nets  map[string]gatesim.ID
	bends map[string][]gatesim.Point
	err   error // first builtin error
}

func (b *builder) fail(err error) (zygo.Sexp, error) {
	if b.err == nil {
		b.err = err
	}
	return zygo.SexpNull, err
}

func (b *builder) register(env *zygo.Zlisp) {
	env.AddFunction("gate", b.gate)
	env.AddFunction("wire", b.wire)
}

// (gate :kind :name "n" :at [x y] :in [...] :out [...] :state :on)
func (b *builder) gate(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	if len(args) == 0 {
		return b.fail(errors.New("gate: missing kind"))
	}
	pa := parseArgs(args[1:])
	if len(pa.positional) > 0 {
		return b.fail(errors.New("gate: unexpected positional argument"))
	}
	kn, err := toKeywordString(args[0])
	if err != nil {
		return b.fail(errors.Wrap(err, "gate: kind"))
	}
	k, err := gatesim.ParseKind(kn)
	if err != nil {
		return b.fail(errors.Wrap(err, "gate"))
	}
	for kw := range pa.kw {
		switch kw {
		case "name", "at", "in", "out", "state":
		default:
			return b.fail(errors.Errorf("gate: unknown keyword :%s", kw))
		}
	}

	var pos gatesim.Point
	if v, ok := pa.kw["at"]; ok {
		if pos, err = toPoint(v); err != nil {
			return b.fail(errors.Wrap(err, "gate: at"))
		}
	}
	id, err := b.c.CreateNode(k, pos)
	if err != nil {
		return b.fail(errors.Wrap(err, "gate"))
	}
	info, err := b.c.Node(id)
	if err != nil {
		return b.fail(errors.Wrap(err, "gate"))
	}

	label := k.String()
	if v, ok := pa.kw["name"]; ok {
		n, err := toString(v)
		if err != nil {
			return b.fail(errors.Wrap(err, "gate: name"))
		}
		if _, dup := b.nodes[n]; dup {
			return b.fail(errors.Errorf("gate: duplicate name %q", n))
		}
		b.nodes[n] = id
		label = n
	}
	if v, ok := pa.kw["in"]; ok {
		if err := b.connect(info.Inputs, v); err != nil {
			return b.fail(errors.Wrapf(err, "gate %s: in", label))
		}
	}
	if v, ok := pa.kw["out"]; ok {
		if err := b.connect(info.Outputs, v); err != nil {
			return b.fail(errors.Wrapf(err, "gate %s: out", label))
		}
	}
	if v, ok := pa.kw["state"]; ok {
		on, err := toState(v)
		if err != nil {
			return b.fail(errors.Wrapf(err, "gate %s: state", label))
		}
		if err := b.c.SetSwitch(id, on); err != nil {
			return b.fail(errors.Wrapf(err, "gate %s", label))
		}
	}
	return &sexpNode{id: id, label: label}, nil
}

// connect attaches each port in ports to the nets named in v.
func (b *builder) connect(ports []gatesim.ID, v zygo.Sexp) error {
	entries, err := sexpListToSlice(v)
	if err != nil {
		return err
	}
	if len(entries) > len(ports) {
		return errors.Errorf("%d connections for %d ports", len(entries), len(ports))
	}
	for i, e := range entries {
		var names []string
		if s, err := toString(e); err == nil {
			names = []string{s}
		} else {
			l, err := sexpListToSlice(e)
			if err != nil {
				return errors.Errorf("port %d: expected net name or array of names", i)
			}
			for _, x := range l {
				s, err := toString(x)
				if err != nil {
					return errors.Wrapf(err, "port %d", i)
				}
				names = append(names, s)
			}
		}
		for _, n := range names {
			if n == "" {
				continue
			}
			if err := b.attach(ports[i], n); err != nil {
				return errors.Wrapf(err, "port %d", i)
			}
		}
	}
	return nil
}

func (b *builder) attach(p gatesim.ID, name string) error {
	if id, ok := b.nets[name]; ok {
		return b.c.Attach(p, id)
	}
	id, err := b.c.CreateNet(p)
	if err != nil {
		return err
	}
	b.nets[name] = id
	return nil
}

// (wire "name" :bends [[x y] ...])
func (b *builder) wire(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	if len(args) == 0 {
		return b.fail(errors.New("wire: missing name"))
	}
	pa := parseArgs(args[1:])
	n, err := toString(args[0])
	if err != nil {
		return b.fail(errors.Wrap(err, "wire: name"))
	}
	var bends []gatesim.Point
	if v, ok := pa.kw["bends"]; ok {
		l, err := sexpListToSlice(v)
		if err != nil {
			return b.fail(errors.Wrapf(err, "wire %s: bends", n))
		}
		for _, e := range l {
			p, err := toPoint(e)
			if err != nil {
				return b.fail(errors.Wrapf(err, "wire %s: bends", n))
			}
			bends = append(bends, p)
		}
	}
	b.bends[n] = bends
	return zygo.SexpNull, nil
}

// finish applies wire declarations once all gates are known.
func (b *builder) finish() error {
	names := make([]string, 0, len(b.bends))
	for n := range b.bends {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		id, ok := b.nets[n]
		if !ok {
			return &Error{Msg: fmt.Sprintf("wire %q is not connected to any gate", n)}
		}
		if err := b.c.SetBends(id, b.bends[n]); err != nil {
			return errors.Wrapf(err, "wire %s", n)
		}
	}
	return nil
}
