package rbmap

import "fmt"

// Check validates the structural invariants of m.
//
// For every map it checks parent links, that no empty placeholder node is
// reachable and that the tree holds exactly the keys of the index. For maps
// placing by key it additionally checks key order and the red-black rules.
//
// This checker is intended for tests.
func (m *Map[V]) Check() error {
	if m.root == nil {
		if m.Len() != 0 {
			return fmt.Errorf("%w: empty tree but %d indexed keys", ErrInvalidTree, m.Len())
		}
		return nil
	}
	if m.root.parent != nil {
		return fmt.Errorf("%w: root %v has a parent", ErrInvalidTree, m.root)
	}
	count, err := m.checkLinks(m.root)
	if err != nil {
		return err
	}
	if count != m.Len() {
		return fmt.Errorf("%w: %d nodes in tree, %d keys in index", ErrInvalidTree, count, m.Len())
	}
	if m.placement != PlaceByKey {
		return nil
	}
	if m.root.color != black {
		return fmt.Errorf("%w: root %v is red", ErrInvalidTree, m.root)
	}
	if _, err := m.checkColors(m.root); err != nil {
		return err
	}
	var prev int32
	first := true
	for k := range m.AllInOrder() {
		if !first && k <= prev {
			return fmt.Errorf("%w: key %d follows %d in-order", ErrInvalidTree, k, prev)
		}
		prev, first = k, false
	}
	return nil
}

func (m *Map[V]) checkLinks(n *node[V]) (int, error) {
	if n.IsEmpty() {
		return 0, fmt.Errorf("%w: empty node reachable", ErrInvalidTree)
	}
	if !m.index.has(n.key) {
		return 0, fmt.Errorf("%w: key %d not indexed", ErrInvalidTree, n.key)
	}
	count := 1
	for _, child := range []*node[V]{n.left, n.right} {
		if child == nil {
			continue
		}
		if child.parent != n {
			return 0, fmt.Errorf("%w: child %v of %v has parent %v", ErrInvalidTree, child, n, child.parent)
		}
		c, err := m.checkLinks(child)
		if err != nil {
			return 0, err
		}
		count += c
	}
	return count, nil
}

// checkColors returns the black-height of n.
func (m *Map[V]) checkColors(n *node[V]) (int, error) {
	if n == nil {
		return 1, nil
	}
	if n.IsRed() && (n.left.IsRed() || n.right.IsRed()) {
		return 0, fmt.Errorf("%w: red node %v has a red child", ErrInvalidTree, n)
	}
	lh, err := m.checkColors(n.left)
	if err != nil {
		return 0, err
	}
	rh, err := m.checkColors(n.right)
	if err != nil {
		return 0, err
	}
	if lh != rh {
		return 0, fmt.Errorf("%w: black-height %d left of %v, %d right", ErrInvalidTree, lh, n, rh)
	}
	if n.color == black {
		lh++
	}
	return lh, nil
}
