// Package list implements the intrusive doubly-linked list that orders cache
// entries by recency.
//
// Unlike container/list, elements carry a typed key and value so the cache
// never needs a type assertion, and every mutating operation checks that the
// element actually belongs to the list it is called on.
package list

import (
	"errors"
	"fmt"
)

// ErrForeignElement is returned when an element is passed to a list that does
// not own it (including elements that were already removed).
var ErrForeignElement = errors.New("element does not belong to this list")

// Element is a node of a List.
//
// The list owns the element's links. Callers may read and write Key and Value
// but must never retain an element after removing it.
type Element[K any, V any] struct {
	Key   K
	Value V

	prev, next *Element[K, V]
	list       *List[K, V]
}

// Next returns the element after e (towards the tail), or nil.
func (e *Element[K, V]) Next() *Element[K, V] {
	if e.list == nil {
		return nil
	}
	return e.next
}

// Prev returns the element before e (towards the head), or nil.
func (e *Element[K, V]) Prev() *Element[K, V] {
	if e.list == nil {
		return nil
	}
	return e.prev
}

// List is a doubly-linked list with O(1) push-front, arbitrary removal and
// tail removal.
//
// Invariants:
//   - head.prev == nil and tail.next == nil
//   - head == nil iff tail == nil iff len == 0
//
// The zero value is an empty list ready to use. Not safe for concurrent use.
type List[K any, V any] struct {
	head *Element[K, V]
	tail *Element[K, V]
	len  int
}

// New returns an empty list.
func New[K any, V any]() *List[K, V] {
	return new(List[K, V])
}

// Init empties the list. Elements that were linked are detached so stale
// handles are rejected afterwards.
func (l *List[K, V]) Init() *List[K, V] {
	for e := l.head; e != nil; {
		next := e.next
		e.prev, e.next, e.list = nil, nil, nil
		e = next
	}
	l.head, l.tail, l.len = nil, nil, 0
	return l
}

// Len returns the number of elements.
func (l *List[K, V]) Len() int { return l.len }

// Front returns the head (most recently pushed) element, or nil.
func (l *List[K, V]) Front() *Element[K, V] { return l.head }

// Back returns the tail element, or nil.
func (l *List[K, V]) Back() *Element[K, V] { return l.tail }

// PushFront allocates an element for key/value and links it as the new head.
func (l *List[K, V]) PushFront(key K, value V) *Element[K, V] {
	e := &Element[K, V]{Key: key, Value: value}
	l.linkFront(e)
	return e
}

// Remove splices e out of the list and clears its links.
func (l *List[K, V]) Remove(e *Element[K, V]) error {
	if err := l.owns(e); err != nil {
		return fmt.Errorf("remove: %w", err)
	}
	l.unlink(e)
	return nil
}

// MoveToFront makes e the head. It is a no-op when e is already the head.
func (l *List[K, V]) MoveToFront(e *Element[K, V]) error {
	if err := l.owns(e); err != nil {
		return fmt.Errorf("move to front: %w", err)
	}
	if e == l.head {
		return nil
	}
	l.unlink(e)
	l.linkFront(e)
	return nil
}

// RemoveTail unlinks and returns the tail element. The returned element has
// its links cleared; ok is false when the list is empty.
func (l *List[K, V]) RemoveTail() (e *Element[K, V], ok bool) {
	if l.tail == nil {
		return nil, false
	}
	e = l.tail
	l.unlink(e)
	return e, true
}

func (l *List[K, V]) owns(e *Element[K, V]) error {
	if e == nil || e.list != l {
		return ErrForeignElement
	}
	return nil
}

func (l *List[K, V]) linkFront(e *Element[K, V]) {
	e.list = l
	e.prev = nil
	e.next = l.head
	if l.head != nil {
		l.head.prev = e
	} else {
		l.tail = e
	}
	l.head = e
	l.len++
}

func (l *List[K, V]) unlink(e *Element[K, V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		l.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		l.tail = e.prev
	}
	e.prev, e.next, e.list = nil, nil, nil
	l.len--
}
