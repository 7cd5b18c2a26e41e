// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

import "github.com/pkg/errors"

// Errors returned by Circuit methods. Returned errors wrap one of these values
// with context; use errors.Cause to test for them.
//
var (
	// ErrNotFound is returned for IDs of deleted or unknown entities.
	ErrNotFound = errors.New("entity not found")
	// ErrEntityKind is returned when an ID of the wrong kind is passed, e.g. a
	// net ID where a port is expected.
	ErrEntityKind = errors.New("wrong entity kind")
	// ErrNotSwitch is returned when toggling a node that is not a Switch.
	ErrNotSwitch = errors.New("node is not a switch")
	// ErrUnknownKind is returned for invalid gate kinds.
	ErrUnknownKind = errors.New("unknown node kind")
)

func checkKind(id ID, k EntityKind) error {
	if id.kind != k {
		return errors.Wrapf(ErrEntityKind, "%v: expected %v", id, k)
	}
	return nil
}
