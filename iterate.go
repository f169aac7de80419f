package rbmap

import (
	"fmt"
	"iter"
)

// TraversalMode selects the order in which All enumerates entries.
type TraversalMode int

const (
	// InOrder enumerates entries sorted by key.
	InOrder TraversalMode = iota
	// PreOrder enumerates a node before its left and right subtrees.
	PreOrder
	// LevelOrder enumerates entries breadth-first, by depth. This is the
	// default mode of a new map.
	LevelOrder
)

func (mode TraversalMode) String() string {
	switch mode {
	case InOrder:
		return "in-order"
	case PreOrder:
		return "pre-order"
	case LevelOrder:
		return "level-order"
	}
	return fmt.Sprintf("TraversalMode(%d)", int(mode))
}

// TraversalMode returns the mode used by All.
func (m *Map[V]) TraversalMode() TraversalMode {
	return m.mode
}

// SetTraversalMode selects the mode used by All. Values other than InOrder,
// PreOrder and LevelOrder are rejected with ErrArgumentOutOfRange and leave
// the current mode unchanged.
func (m *Map[V]) SetTraversalMode(mode TraversalMode) error {
	if mode < InOrder || mode > LevelOrder {
		return fmt.Errorf("%w: traversal mode %d", ErrArgumentOutOfRange, int(mode))
	}
	m.mode = mode
	return nil
}

// All enumerates all entries in the current traversal mode.
func (m *Map[V]) All() iter.Seq2[int32, V] {
	switch m.mode {
	case InOrder:
		return m.AllInOrder()
	case PreOrder:
		return m.AllPreOrder()
	}
	return m.AllLevelOrder()
}

// AllInOrder enumerates all entries sorted by key, independent of the
// traversal mode. For maps with placement PlaceLevelFill the order follows
// the tree structure, which is not sorted.
//
// The sequence is evaluated lazily. Mutating m during iteration is not
// supported.
func (m *Map[V]) AllInOrder() iter.Seq2[int32, V] {
	return func(yield func(int32, V) bool) {
		s := m.scratches.Acquire(newScratch[V])
		defer m.scratches.Release(s)
		cur := m.root
		for cur != nil || s.len() > 0 {
			for cur != nil {
				s.push(cur)
				cur = cur.left
			}
			cur = s.pop()
			if !yield(cur.key, cur.value) {
				return
			}
			cur = cur.right
		}
	}
}

// AllPreOrder enumerates all entries, each node before its left subtree and
// its left subtree before its right subtree.
func (m *Map[V]) AllPreOrder() iter.Seq2[int32, V] {
	return func(yield func(int32, V) bool) {
		if m.root == nil {
			return
		}
		s := m.scratches.Acquire(newScratch[V])
		defer m.scratches.Release(s)
		s.push(m.root)
		for s.len() > 0 {
			n := s.pop()
			if !yield(n.key, n.value) {
				return
			}
			if n.right != nil {
				s.push(n.right)
			}
			if n.left != nil {
				s.push(n.left)
			}
		}
	}
}

// AllLevelOrder enumerates all entries breadth-first, left to right on each
// level.
func (m *Map[V]) AllLevelOrder() iter.Seq2[int32, V] {
	return func(yield func(int32, V) bool) {
		if m.root == nil {
			return
		}
		s := m.scratches.Acquire(newScratch[V])
		defer m.scratches.Release(s)
		s.push(m.root)
		for s.queued() > 0 {
			n := s.dequeue()
			if !yield(n.key, n.value) {
				return
			}
			if n.left != nil {
				s.push(n.left)
			}
			if n.right != nil {
				s.push(n.right)
			}
		}
	}
}

// Keys returns all keys in in-order sequence.
func (m *Map[V]) Keys() []int32 {
	keys := make([]int32, 0, m.Len())
	for k := range m.AllInOrder() {
		keys = append(keys, k)
	}
	return keys
}
