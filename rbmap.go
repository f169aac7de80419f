package rbmap

import (
	"fmt"

	"github.com/npillmayer/rbmap/pool"
)

// Map is an ordered map from int32 keys to values of type V, implemented as a
// red-black tree.
//
// Nodes and traversal buffers are obtained from the pools of a
// pool.Registry. Map is not safe for concurrent mutation.
//
// The zero value is not usable; create maps with New, NewSized or
// NewWithConfig.
type Map[V any] struct {
	root      *node[V]
	index     *keyIndex // keys physically present in the tree
	mode      TraversalMode
	maxSize   int // 0 = unset
	placement Placement
	registry  *pool.Registry
	nodes     *pool.Pool[*node[V]]
	scratches *pool.Pool[*scratch[V]]
}

// New creates an empty, unbounded map.
func New[V any]() *Map[V] {
	m, _ := NewWithConfig[V](Config{})
	return m
}

// NewSized creates an empty map with a capacity ceiling of maxSize entries.
// A negative maxSize is clamped to zero, which means unbounded.
func NewSized[V any](maxSize int) *Map[V] {
	m, _ := NewWithConfig[V](Config{MaxSize: maxSize})
	return m
}

// NewWithConfig creates an empty map with a validated configuration.
func NewWithConfig[V any](cfg Config) (*Map[V], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.normalized()
	m := &Map[V]{
		mode:      LevelOrder,
		maxSize:   cfg.MaxSize,
		placement: cfg.Placement,
		registry:  cfg.Registry,
		nodes:     pool.For[*node[V]](cfg.Registry),
		scratches: pool.For[*scratch[V]](cfg.Registry),
	}
	m.index = pool.Acquire(m.registry, newKeyIndex)
	return m, nil
}

// Len returns the number of entries. O(1).
func (m *Map[V]) Len() int {
	return m.index.len()
}

// Contains reports whether key is present. O(1), independent of the shape
// of the tree.
func (m *Map[V]) Contains(key int32) bool {
	return m.index.has(key)
}

// Placement returns the insertion policy of m.
func (m *Map[V]) Placement() Placement {
	return m.placement
}

// MaxSize returns the capacity ceiling of m, or 0 if m is unbounded.
func (m *Map[V]) MaxSize() int {
	return m.maxSize
}

// SetMaxSize sets the capacity ceiling of m. The ceiling may be set only once:
// after the first non-zero assignment, further calls are ignored until the map
// is cleared. Negative values are clamped to zero.
//
// Lowering the ceiling below Len() is not possible, as the ceiling is
// write-once; entries are never evicted.
func (m *Map[V]) SetMaxSize(n int) {
	if n < 0 {
		n = 0
	}
	if m.maxSize != 0 {
		if n != m.maxSize {
			T().Infof("rbmap: max size already set to %d, ignoring %d", m.maxSize, n)
		}
		return
	}
	m.maxSize = n
}

// Insert adds a new entry. It fails with ErrDuplicateKey if key is already
// present and with ErrCapacityExceeded if the map is full. In both cases the
// map is unchanged.
func (m *Map[V]) Insert(key int32, value V) error {
	if m.index.has(key) {
		return fmt.Errorf("%w: %d", ErrDuplicateKey, key)
	}
	if m.maxSize > 0 && m.Len() >= m.maxSize {
		T().Debugf("rbmap: rejecting key %d, map is full (%d)", key, m.maxSize)
		return fmt.Errorf("%w: max size is %d", ErrCapacityExceeded, m.maxSize)
	}
	n := m.nodes.Acquire(newNode[V])
	n.SetKey(key)
	n.SetValue(value)
	n.color = red
	if m.placement == PlaceLevelFill {
		m.attachLevelFill(n)
	} else {
		m.attachByKey(n)
		m.fixInsert(n)
	}
	m.root.color = black
	m.index.add(key)
	return nil
}

// Remove deletes the entry for key. Removing an absent key is a no-op.
//
// The node vacated by the removal is released to the pool. If the removed
// value implements pool.Resetter, it is reset.
func (m *Map[V]) Remove(key int32) {
	z := m.locate(key)
	if z == nil {
		return
	}
	if z.left != nil && z.right != nil {
		// move the successor's entry up and detach the successor instead
		s := leftmost(z.right)
		z.key, s.key = s.key, z.key
		z.value, s.value = s.value, z.value
		z = s
	}
	child := z.left
	if child == nil {
		child = z.right
	}
	parent := z.parent
	m.transplant(z, child)
	if z.color == black {
		m.fixRemove(child, parent)
	}
	m.index.remove(key)
	m.nodes.Release(z)
}

// Update replaces the entry for key by removing it (if present) and inserting
// a new entry. This is not an in-place value swap: the entry gets a new node,
// and if Insert fails, the old entry is gone.
func (m *Map[V]) Update(key int32, value V) error {
	m.Remove(key)
	return m.Insert(key, value)
}

// Get returns the value for key, or ErrKeyNotFound.
func (m *Map[V]) Get(key int32) (V, error) {
	if n := m.locate(key); n != nil {
		return n.value, nil
	}
	var zero V
	return zero, fmt.Errorf("%w: %d", ErrKeyNotFound, key)
}

// Lookup returns the value for key and true, or the zero value and false.
func (m *Map[V]) Lookup(key int32) (V, bool) {
	if n := m.locate(key); n != nil {
		return n.value, true
	}
	var zero V
	return zero, false
}

// Set overwrites the value of an existing entry in place and returns true.
// If key is absent, Set does nothing and returns false.
func (m *Map[V]) Set(key int32, value V) bool {
	if n := m.locate(key); n != nil {
		n.value = value
		return true
	}
	return false
}

// Min returns the entry with the smallest key.
func (m *Map[V]) Min() (int32, V, bool) {
	return m.extremum(true)
}

// Max returns the entry with the largest key.
func (m *Map[V]) Max() (int32, V, bool) {
	return m.extremum(false)
}

func (m *Map[V]) extremum(smallest bool) (key int32, value V, ok bool) {
	if m.root == nil {
		return
	}
	if m.placement == PlaceLevelFill { // unordered tree, scan everything
		for k, v := range m.AllLevelOrder() {
			if !ok || (smallest && k < key) || (!smallest && k > key) {
				key, value, ok = k, v, true
			}
		}
		return
	}
	n := m.root
	if smallest {
		n = leftmost(n)
	} else {
		n = rightmost(n)
	}
	return n.key, n.value, true
}

// Height returns the number of nodes on the longest path from the root.
func (m *Map[V]) Height() int {
	var height func(*node[V]) int
	height = func(n *node[V]) int {
		if n == nil {
			return 0
		}
		return 1 + max(height(n.left), height(n.right))
	}
	return height(m.root)
}

// Clear resets m to an empty map and resets MaxSize to unset.
//
// Clear forgets the root, but does not return the nodes of the tree to the
// pool; they are left to the garbage collector. Use Recycle for reclaiming
// every node.
func (m *Map[V]) Clear() {
	m.index.Reset()
	m.root = nil
	m.maxSize = 0
}

// Recycle returns every node of the tree to the pool and then clears m.
// Values implementing pool.Resetter are reset on the way.
func (m *Map[V]) Recycle() {
	if m.root != nil {
		s := m.scratches.Acquire(newScratch[V])
		s.push(m.root)
		for s.len() > 0 {
			n := s.pop()
			if n.left != nil {
				s.push(n.left)
			}
			if n.right != nil {
				s.push(n.right)
			}
			m.nodes.Release(n)
		}
		m.scratches.Release(s)
	}
	m.Clear()
}

// Dispose recycles all nodes and returns the key index to the pool as well.
// m must not be used afterwards.
func (m *Map[V]) Dispose() {
	m.Recycle()
	pool.Release(m.registry, m.index)
	m.index = nil
}

// --- Placement and search --------------------------------------------------

func (m *Map[V]) attachByKey(n *node[V]) {
	var parent *node[V]
	cur := m.root
	for cur != nil {
		parent = cur
		if n.key < cur.key {
			cur = cur.left
		} else {
			cur = cur.right
		}
	}
	n.parent = parent
	switch {
	case parent == nil:
		m.root = n
	case n.key < parent.key:
		parent.left = n
	default:
		parent.right = n
	}
}

// attachLevelFill attaches n at the first free child slot in level order,
// left before right.
func (m *Map[V]) attachLevelFill(n *node[V]) {
	if m.root == nil {
		m.root = n
		return
	}
	s := m.scratches.Acquire(newScratch[V])
	defer m.scratches.Release(s)
	s.push(m.root)
	for s.queued() > 0 {
		cur := s.dequeue()
		if cur.left == nil {
			cur.left, n.parent = n, cur
			return
		}
		if cur.right == nil {
			cur.right, n.parent = n, cur
			return
		}
		s.push(cur.left)
		s.push(cur.right)
	}
}

// search descends from the root by key comparison.
func (m *Map[V]) search(key int32) *node[V] {
	cur := m.root
	for cur != nil {
		switch {
		case key < cur.key:
			cur = cur.left
		case key > cur.key:
			cur = cur.right
		default:
			return cur
		}
	}
	return nil
}

// locate finds the node for an indexed key. For level-filled trees, the
// search may miss a present key, in which case all nodes are scanned.
func (m *Map[V]) locate(key int32) *node[V] {
	if !m.index.has(key) {
		return nil
	}
	if n := m.search(key); n != nil {
		return n
	}
	if m.placement != PlaceLevelFill {
		T().Errorf("rbmap: key %d is indexed but not in tree", key)
		return nil
	}
	s := m.scratches.Acquire(newScratch[V])
	defer m.scratches.Release(s)
	s.push(m.root)
	for s.queued() > 0 {
		cur := s.dequeue()
		if cur.hasKey && cur.key == key {
			return cur
		}
		if cur.left != nil {
			s.push(cur.left)
		}
		if cur.right != nil {
			s.push(cur.right)
		}
	}
	return nil
}

func leftmost[V any](n *node[V]) *node[V] {
	for n.left != nil {
		n = n.left
	}
	return n
}

func rightmost[V any](n *node[V]) *node[V] {
	for n.right != nil {
		n = n.right
	}
	return n
}

// --- Pooled helpers --------------------------------------------------------

// keyIndex is the set of keys present in a map.
type keyIndex struct {
	keys map[int32]struct{}
}

func newKeyIndex() *keyIndex {
	return &keyIndex{keys: make(map[int32]struct{})}
}

func (ix *keyIndex) has(key int32) bool {
	_, ok := ix.keys[key]
	return ok
}

func (ix *keyIndex) add(key int32)    { ix.keys[key] = struct{}{} }
func (ix *keyIndex) remove(key int32) { delete(ix.keys, key) }
func (ix *keyIndex) len() int         { return len(ix.keys) }

func (ix *keyIndex) Reset() {
	clear(ix.keys)
}

// scratch is a traversal buffer, used either as a stack (push/pop) or as a
// queue (push/dequeue), never both at once.
type scratch[V any] struct {
	nodes []*node[V]
	head  int
}

func newScratch[V any]() *scratch[V] {
	return &scratch[V]{nodes: make([]*node[V], 0, 32)}
}

func (s *scratch[V]) push(n *node[V]) {
	s.nodes = append(s.nodes, n)
}

func (s *scratch[V]) pop() *node[V] {
	last := len(s.nodes) - 1
	n := s.nodes[last]
	s.nodes[last] = nil
	s.nodes = s.nodes[:last]
	return n
}

func (s *scratch[V]) len() int {
	return len(s.nodes)
}

func (s *scratch[V]) dequeue() *node[V] {
	n := s.nodes[s.head]
	s.nodes[s.head] = nil
	s.head++
	return n
}

func (s *scratch[V]) queued() int {
	return len(s.nodes) - s.head
}

func (s *scratch[V]) Reset() {
	clear(s.nodes)
	s.nodes = s.nodes[:0]
	s.head = 0
}
