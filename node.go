package rbmap

import (
	"fmt"

	"github.com/npillmayer/rbmap/pool"
)

type color uint8

const (
	red color = iota
	black
)

func (c color) String() string {
	if c == black {
		return "B"
	}
	return "R"
}

// node is a tree node. Nodes are recycled through a pool; a node whose key
// slot is unset is a free placeholder and must never be reachable through
// the map's index.
type node[V any] struct {
	key    int32
	hasKey bool // false marks the empty key slot
	value  V
	color  color
	parent *node[V] // back-reference, not owning
	left   *node[V]
	right  *node[V]
}

func newNode[V any]() *node[V] {
	return &node[V]{}
}

// Key returns the key of n and false if n is an empty placeholder.
func (n *node[V]) Key() (int32, bool) {
	return n.key, n.hasKey
}

func (n *node[V]) SetKey(key int32) {
	n.key = key
	n.hasKey = true
}

func (n *node[V]) Value() V {
	return n.value
}

func (n *node[V]) SetValue(v V) {
	n.value = v
}

func (n *node[V]) IsRed() bool {
	return n != nil && n.color == red
}

// isBlack treats absent children as black.
func isBlack[V any](n *node[V]) bool {
	return n == nil || n.color == black
}

// IsEmpty is true iff the key slot of n is unset.
func (n *node[V]) IsEmpty() bool {
	return !n.hasKey
}

// Reset restores n to a free placeholder: unset key, zero value, red colour
// and no links. Former neighbours are not touched. If n holds a value
// implementing pool.Resetter, the value is reset as well.
//
// Reset is idempotent.
func (n *node[V]) Reset() {
	if n.hasKey {
		if r, ok := any(n.value).(pool.Resetter); ok {
			r.Reset()
		}
	}
	var zero V
	n.key, n.hasKey = 0, false
	n.value = zero
	n.color = red
	n.parent, n.left, n.right = nil, nil, nil
}

func (n *node[V]) isLeftChild() bool {
	return n.parent != nil && n.parent.left == n
}

func (n *node[V]) sibling() *node[V] {
	if n.parent == nil {
		return nil
	}
	if n.isLeftChild() {
		return n.parent.right
	}
	return n.parent.left
}

func (n *node[V]) String() string {
	if n == nil {
		return "<nil>"
	}
	if !n.hasKey {
		return "[ ]"
	}
	return fmt.Sprintf("[%d|%s]", n.key, n.color)
}
