// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package script

import (
	"fmt"
	"strings"

	"github.com/db47h/gatesim"
	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/pkg/errors"
)

// sexpNode is the value of a gate form.
type sexpNode struct {
	id    gatesim.ID
	label string
}

func (n *sexpNode) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(gate %q %s)", n.label, n.id)
}
func (n *sexpNode) Type() *zygo.RegisteredType { return nil }

type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates keyword arguments from positional ones. A trailing
// keyword has a null value.
func parseArgs(args []zygo.Sexp) kwArgs {
	r := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			r.positional = append(r.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			r.kw[name] = args[i+1]
			i++
		} else {
			r.kw[name] = zygo.SexpNull
		}
	}
	return r
}

func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok && !strings.HasPrefix(str.S, kwPrefix) {
		return str.S, nil
	}
	return "", errors.Errorf("expected string, got %s", s.SexpString(nil))
}

// toKeywordString accepts a keyword or a plain string.
func toKeywordString(s zygo.Sexp) (string, error) {
	if name, ok := isKW(s); ok {
		return name, nil
	}
	return toString(s)
}

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, errors.Errorf("expected number, got %s", s.SexpString(nil))
}

func toPoint(s zygo.Sexp) (gatesim.Point, error) {
	l, err := sexpListToSlice(s)
	if err != nil || len(l) != 2 {
		return gatesim.Point{}, errors.Errorf("expected [x y], got %s", s.SexpString(nil))
	}
	x, err := toFloat64(l[0])
	if err != nil {
		return gatesim.Point{}, err
	}
	y, err := toFloat64(l[1])
	if err != nil {
		return gatesim.Point{}, err
	}
	return gatesim.Point{X: x, Y: y}, nil
}

func toState(s zygo.Sexp) (bool, error) {
	v, err := toKeywordString(s)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(v) {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	}
	return false, errors.Errorf("invalid state %q, expected on or off", v)
}

// sexpListToSlice converts a list or an array to a slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, errors.Errorf("expected list or array, got %s", s.SexpString(nil))
}
