// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

// slot is one cell of an arena. gen is bumped every time the slot is freed so
// that handles to the previous occupant go stale.
type slot[T any] struct {
	gen   uint32
	alive bool
	val   T
}

// arena is a generational slot map.
//
// Freed slots are parked in retired and only become available for allocation
// after reclaim, which the circuit calls from Sweep once every reference to
// them has been pruned.
type arena[T any] struct {
	slots   []slot[T]
	free    []uint32
	retired []uint32
	live    int
}

func (a *arena[T]) alloc(v T) (index, gen uint32) {
	if n := len(a.free); n > 0 {
		index = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		index = uint32(len(a.slots))
		a.slots = append(a.slots, slot[T]{gen: 1})
	}
	s := &a.slots[index]
	s.alive = true
	s.val = v
	a.live++
	return index, s.gen
}

// get returns the value stored at index if it is alive and of generation gen.
func (a *arena[T]) get(index, gen uint32) *T {
	if int(index) >= len(a.slots) {
		return nil
	}
	s := &a.slots[index]
	if !s.alive || s.gen != gen {
		return nil
	}
	return &s.val
}

func (a *arena[T]) remove(index, gen uint32) bool {
	if a.get(index, gen) == nil {
		return false
	}
	s := &a.slots[index]
	var zero T
	s.val = zero
	s.alive = false
	s.gen++
	a.live--
	a.retired = append(a.retired, index)
	return true
}

// reclaim makes retired slots available for allocation and returns how many
// were released.
func (a *arena[T]) reclaim() int {
	n := len(a.retired)
	a.free = append(a.free, a.retired...)
	a.retired = a.retired[:0]
	return n
}

// each calls fn for every live slot, in index order.
func (a *arena[T]) each(fn func(index, gen uint32, v *T)) {
	for i := range a.slots {
		s := &a.slots[i]
		if s.alive {
			fn(uint32(i), s.gen, &s.val)
		}
	}
}

func (a *arena[T]) len() int { return a.live }

// cap returns the number of slots, live or not.
func (a *arena[T]) cap() int { return len(a.slots) }
