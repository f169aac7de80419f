/*
Package rbmap implements an ordered map keyed by int32, backed by a red-black
tree whose nodes are drawn from, and returned to, type-keyed object pools.

Red-Black Trees

A red-black tree is a binary search tree where every node carries one bit of
colour. The colouring is constrained such that no path from the root to an
absent child is more than twice as long as any other:

1. The root is black.

2. A red node has black children only, i.e. no two red nodes are linked.

3. Every downward path from a node to an absent child carries the same number
of black nodes (the black-height of the node).

Insertions and removals temporarily violate these rules and restore them by
a fix-up pass of recolourings and rotations, walking upwards from the point of
change. Both operations are O(log n).

Pooling

Maps churn small objects: a node per insertion, a scratch stack or queue per
traversal. These are acquired from a pool.Registry and released when no
longer used, so steady-state insert/remove cycles do not allocate. A Map uses
the process-wide registry unless configured otherwise.

Concurrency

A Map is not safe for concurrent mutation. Traversals read structural links
as they are encountered; mutating a map while a traversal is in progress is
undefined. The pools, on the other hand, may be shared between goroutines.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package rbmap

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// MapError is an error type for the rbmap module
type MapError string

func (e MapError) Error() string {
	return string(e)
}

// ErrDuplicateKey is flagged when inserting a key which is already present.
const ErrDuplicateKey = MapError("duplicate key")

// ErrKeyNotFound is flagged when reading a key which is not present.
const ErrKeyNotFound = MapError("key not found")

// ErrArgumentOutOfRange is flagged whenever a configuration value is outside
// of its domain, e.g. an unknown traversal mode.
const ErrArgumentOutOfRange = MapError("argument out of range")

// ErrCapacityExceeded is flagged when inserting into a map which already
// holds MaxSize entries.
const ErrCapacityExceeded = MapError("map capacity exceeded")

// ErrInvalidTree is flagged by Check for violated tree invariants.
const ErrInvalidTree = MapError("invalid tree")
