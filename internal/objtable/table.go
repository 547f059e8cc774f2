// Package objtable implements the bridge's object table: a slot array of
// live references addressed by non-negative handles, FIFO-reused on free,
// with an identity map so re-admitting the same reference returns the same
// handle. Grounded on the slot-slice plus free-list handle table in
// _examples/other_examples/nsf-gothic__handles.go, adapted to the
// FIFO free-list-of-indices and IdentityHashMap-keyed admission that the
// original PyJavaExecutor specifies.
package objtable

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrVacant is returned by Resolve and Free when a handle names a slot that
// holds no live reference.
var ErrVacant = errors.New("objtable: vacant handle")

// ErrOutOfRange is returned when a handle does not name any slot ever
// allocated by the table.
var ErrOutOfRange = errors.New("objtable: handle out of range")

type slot struct {
	obj  any
	live bool
}

// Table is the process-wide, non-negative-handle object table. It is
// mutated only by the dispatcher and is not safe for concurrent use, per
// the worker's single-threaded execution model.
type Table struct {
	slots    []slot
	free     []int32 // FIFO queue of vacant slot indices
	identity map[any]int32
}

// New returns an empty object table.
func New() *Table {
	return &Table{identity: make(map[any]int32)}
}

// identityKey reports whether obj can be used as a Go map key (i.e. its
// dynamic type is comparable) and, if so, returns it unchanged. Slice/func/
// map-shaped values have no such key and always get a fresh slot, since Go
// offers no reference-identity hook for them the way Java's
// IdentityHashMap does for every object.
func identityKey(obj any) (any, bool) {
	if obj == nil {
		// A nil result (a void static method's return) is still a valid,
		// comparable map key: every nil collapses to the same identity,
		// exactly as Java's IdentityHashMap treats a null key, so repeated
		// admission of "no value" returns one stable handle.
		return nil, true
	}
	if !reflect.TypeOf(obj).Comparable() {
		return nil, false
	}
	return obj, true
}

// Admit stores obj and returns its handle. If obj was already admitted (by
// identity, not value equality, for comparable reference types) the
// existing handle is returned.
func (t *Table) Admit(obj any) int32 {
	if key, ok := identityKey(obj); ok {
		if h, found := t.identity[key]; found {
			return h
		}
		h := t.allocate(obj)
		t.identity[key] = h
		return h
	}
	return t.allocate(obj)
}

func (t *Table) allocate(obj any) int32 {
	if n := len(t.free); n > 0 {
		h := t.free[0]
		t.free = t.free[1:]
		t.slots[h] = slot{obj: obj, live: true}
		return h
	}
	h := int32(len(t.slots))
	t.slots = append(t.slots, slot{obj: obj, live: true})
	return h
}

// Resolve returns the live reference stored at handle, which must be
// non-negative. Virtual (negative) handles are not slots in this table and
// are resolved elsewhere (internal/reflecthost).
func (t *Table) Resolve(handle int32) (any, error) {
	if handle < 0 || int(handle) >= len(t.slots) {
		return nil, fmt.Errorf("objtable: resolve %d: %w", handle, ErrOutOfRange)
	}
	s := t.slots[handle]
	if !s.live {
		return nil, fmt.Errorf("objtable: resolve %d: %w", handle, ErrVacant)
	}
	return s.obj, nil
}

// Free releases handle: clears the slot, drops the identity entry for it (if
// any), and queues the index for reuse. Freeing an out-of-range or already
// vacant handle is a protocol violation and is reported as an error.
func (t *Table) Free(handle int32) error {
	if handle < 0 || int(handle) >= len(t.slots) {
		return fmt.Errorf("objtable: free %d: %w", handle, ErrOutOfRange)
	}
	s := t.slots[handle]
	if !s.live {
		return fmt.Errorf("objtable: free %d: %w", handle, ErrVacant)
	}
	if key, ok := identityKey(s.obj); ok {
		delete(t.identity, key)
	}
	t.slots[handle] = slot{}
	t.free = append(t.free, handle)
	return nil
}

// Len returns the number of slots ever allocated (live or vacant). It is
// exposed for tests verifying handle-monotonicity.
func (t *Table) Len() int {
	return len(t.slots)
}
