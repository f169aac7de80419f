package rbmap

import (
	"fmt"
	"io"
)

type nodeids[V any] struct {
	idTable map[*node[V]]int
	max     int
}

func newtable[V any]() nodeids[V] {
	return nodeids[V]{
		idTable: make(map[*node[V]]int),
		max:     1,
	}
}

func (ids *nodeids[V]) alloc(n *node[V]) int {
	if id := ids.idTable[n]; id > 0 {
		return id
	}
	ids.idTable[n] = ids.max
	ids.max++
	return ids.max - 1
}

// Map2Dot outputs the internal structure of a Map in Graphviz DOT format
// (for debugging purposes).
func Map2Dot[V any](m *Map[V], w io.Writer) {
	io.WriteString(w, "strict digraph {\n")
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12];\n")
	ids := newtable[V]()
	nodelist, edgelist := "", ""
	if m.root != nil {
		s := m.scratches.Acquire(newScratch[V])
		s.push(m.root)
		for s.queued() > 0 {
			n := s.dequeue()
			ID := ids.alloc(n)
			nodelist += fmt.Sprintf("\"%d\" [label=\"%d\" %s];\n", ID, n.key, nodeDotStyles(n))
			for i, child := range []*node[V]{n.left, n.right} {
				if child == nil {
					nilid := fmt.Sprintf("%d.%d", ID, i)
					nodelist += fmt.Sprintf("\"%s\" %s;\n", nilid, emptyNode())
					edgelist += fmt.Sprintf("\"%d\" -> \"%s\";\n", ID, nilid)
					continue
				}
				edgelist += fmt.Sprintf("\"%d\" -> \"%d\";\n", ID, ids.alloc(child))
				s.push(child)
			}
		}
		m.scratches.Release(s)
	}
	io.WriteString(w, nodelist)
	io.WriteString(w, edgelist)
	io.WriteString(w, "}\n")
}

func emptyNode() string {
	return "[label=\"\",color=black,shape=point]"
}

func nodeDotStyles[V any](n *node[V]) string {
	s := ",style=filled,shape=circle"
	if n.color == black {
		s += ",color=black,fillcolor=black,fontcolor=white"
	} else {
		s += ",color=\"#cc0000\",fillcolor=\"#ff6666\""
	}
	return s
}
