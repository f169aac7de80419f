package rbmap

// rotateLeft makes x's right child the new root of the subtree at x.
//
//	    x                y
//	   / \              / \
//	  a   y     =>     x   c
//	     / \          / \
//	    b   c        a   b
func (m *Map[V]) rotateLeft(x *node[V]) {
	y := x.right
	if y == nil {
		return
	}
	x.right = y.left
	if y.left != nil {
		y.left.parent = x
	}
	m.transplant(x, y)
	y.left = x
	x.parent = y
}

// rotateRight is the mirror image of rotateLeft.
func (m *Map[V]) rotateRight(y *node[V]) {
	x := y.left
	if x == nil {
		return
	}
	y.left = x.right
	if x.right != nil {
		x.right.parent = y
	}
	m.transplant(y, x)
	x.right = y
	y.parent = x
}

// transplant puts v into the parent link of u. v may be nil. u's own links
// are left untouched.
func (m *Map[V]) transplant(u, v *node[V]) {
	switch {
	case u.parent == nil:
		m.root = v
	case u == u.parent.left:
		u.parent.left = v
	default:
		u.parent.right = v
	}
	if v != nil {
		v.parent = u.parent
	}
}

// fixInsert restores the red-black invariants after attaching the red node n.
func (m *Map[V]) fixInsert(n *node[V]) {
	for n != m.root && n.parent.IsRed() {
		p := n.parent
		g := p.parent
		if g == nil {
			break
		}
		if u := p.sibling(); u.IsRed() {
			p.color, u.color, g.color = black, black, red
			n = g
			continue
		}
		if p == g.left {
			if n == p.right { // triangle
				n = p
				m.rotateLeft(n)
				p = n.parent
			}
			p.color, g.color = black, red
			m.rotateRight(g)
		} else {
			if n == p.left {
				n = p
				m.rotateRight(n)
				p = n.parent
			}
			p.color, g.color = black, red
			m.rotateLeft(g)
		}
	}
	m.root.color = black
}

// fixRemove restores the red-black invariants after a black node has been
// detached. x is the node which took its place and may be nil, therefore its
// parent is passed separately.
func (m *Map[V]) fixRemove(x, parent *node[V]) {
	for x != m.root && isBlack(x) && parent != nil {
		if x == parent.left {
			w := parent.right
			if w.IsRed() {
				w.color, parent.color = black, red
				m.rotateLeft(parent)
				w = parent.right
			}
			if w == nil { // only in trees which are not balanced
				x, parent = parent, parent.parent
				continue
			}
			if isBlack(w.left) && isBlack(w.right) {
				w.color = red
				x, parent = parent, parent.parent
				continue
			}
			if isBlack(w.right) {
				w.left.color, w.color = black, red
				m.rotateRight(w)
				w = parent.right
			}
			w.color, parent.color = parent.color, black
			if w.right != nil {
				w.right.color = black
			}
			m.rotateLeft(parent)
			x, parent = m.root, nil
		} else {
			w := parent.left
			if w.IsRed() {
				w.color, parent.color = black, red
				m.rotateRight(parent)
				w = parent.left
			}
			if w == nil {
				x, parent = parent, parent.parent
				continue
			}
			if isBlack(w.left) && isBlack(w.right) {
				w.color = red
				x, parent = parent, parent.parent
				continue
			}
			if isBlack(w.left) {
				w.right.color, w.color = black, red
				m.rotateLeft(w)
				w = parent.left
			}
			w.color, parent.color = parent.color, black
			if w.left != nil {
				w.left.color = black
			}
			m.rotateRight(parent)
			x, parent = m.root, nil
		}
	}
	if x != nil {
		x.color = black
	}
}
