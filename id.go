// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

import "strconv"

// EntityKind identifies the store an ID belongs to.
//
type EntityKind uint8

// Entity kinds.
//
const (
	NoEntity EntityKind = iota
	NodeEntity
	PortEntity
	NetEntity
)

var entityNames = [...]string{"none", "node", "port", "net"}

func (k EntityKind) String() string {
	if int(k) < len(entityNames) {
		return entityNames[k]
	}
	return "entity(" + strconv.Itoa(int(k)) + ")"
}

// An ID is a generational handle to a node, port or net in a Circuit.
//
// IDs are plain values and can be used as map keys. Once the entity they refer
// to is deleted, an ID never resolves again, even after its slot is reused.
// The zero ID is never valid.
//
type ID struct {
	kind  EntityKind
	index uint32
	gen   uint32
}

// Kind returns the kind of entity id refers to.
//
func (id ID) Kind() EntityKind { return id.kind }

// IsZero reports whether id is the zero ID.
//
func (id ID) IsZero() bool { return id == ID{} }

func (id ID) String() string {
	return id.kind.String() + "#" + strconv.FormatUint(uint64(id.index), 10) + "." + strconv.FormatUint(uint64(id.gen), 10)
}
