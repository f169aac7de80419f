package rbmap

import (
	"errors"
	"testing"

	"github.com/npillmayer/rbmap/pool"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestNewMapIsEmpty(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	m := New[string]()
	if m.Len() != 0 || m.Contains(0) {
		t.Errorf("expected new map to be empty")
	}
	if m.TraversalMode() != LevelOrder {
		t.Errorf("expected default traversal mode to be level-order, is %s", m.TraversalMode())
	}
	if m.MaxSize() != 0 {
		t.Errorf("expected new map to be unbounded, max size is %d", m.MaxSize())
	}
	if err := m.Check(); err != nil {
		t.Fatal(err)
	}
}

func TestInsertRemoveScenario(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	for _, placement := range []Placement{PlaceByKey, PlaceLevelFill} {
		m, err := NewWithConfig[string](Config{Placement: placement})
		if err != nil {
			t.Fatal(err)
		}
		m.Insert(10, "a")
		m.Insert(20, "b")
		m.Insert(5, "c")
		m.Remove(20)
		if m.Contains(20) {
			t.Errorf("%s: expected key 20 to be removed", placement)
		}
		if m.Len() != 2 {
			t.Errorf("%s: expected count 2, is %d", placement, m.Len())
		}
		if v, err := m.Get(10); err != nil || v != "a" {
			t.Errorf("%s: expected m[10] = a, is %q (%v)", placement, v, err)
		}
		if v, err := m.Get(5); err != nil || v != "c" {
			t.Errorf("%s: expected m[5] = c, is %q (%v)", placement, v, err)
		}
		if err := m.Check(); err != nil {
			t.Errorf("%s: %v", placement, err)
		}
	}
}

func TestInsertDuplicateKey(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	m := New[string]()
	for i, s := range []string{"x", "y", "z"} {
		if err := m.Insert(int32(i), s); err != nil {
			t.Fatal(err)
		}
	}
	err := m.Insert(1, "other")
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
	if m.Len() != 3 {
		t.Errorf("expected count to stay 3, is %d", m.Len())
	}
	for i, s := range []string{"x", "y", "z"} {
		if v, _ := m.Get(int32(i)); v != s {
			t.Errorf("expected m[%d] = %q, is %q", i, s, v)
		}
	}
}

func TestGetAbsentKey(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	m := New[int]()
	m.Insert(7, 49)
	if _, err := m.Get(8); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
	if _, ok := m.Lookup(8); ok {
		t.Errorf("expected lookup of absent key to fail")
	}
	m.Remove(8) // no-op
	if m.Len() != 1 {
		t.Errorf("removing absent key changed count to %d", m.Len())
	}
}

func TestUpdateIsRemoveThenInsert(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	reg := pool.NewRegistry()
	m, _ := NewWithConfig[string](Config{Registry: reg})
	m.Insert(1, "v1")
	m.Insert(2, "w")
	if err := m.Update(1, "v2"); err != nil {
		t.Fatal(err)
	}
	if !m.Contains(1) {
		t.Fatalf("expected key 1 to be present after update")
	}
	if v, _ := m.Get(1); v != "v2" {
		t.Errorf("expected m[1] = v2, is %q", v)
	}
	if err := m.Update(3, "new"); err != nil {
		t.Fatal(err)
	}
	if m.Len() != 3 {
		t.Errorf("expected update of absent key to insert it, count is %d", m.Len())
	}
	if err := m.Check(); err != nil {
		t.Fatal(err)
	}
}

func TestSetOverwritesOnlyExisting(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	m := New[string]()
	m.Insert(4, "four")
	if !m.Set(4, "FOUR") {
		t.Errorf("expected Set of present key to report true")
	}
	if v, _ := m.Get(4); v != "FOUR" {
		t.Errorf("expected m[4] = FOUR, is %q", v)
	}
	if m.Set(5, "five") {
		t.Errorf("expected Set of absent key to report false")
	}
	if m.Contains(5) || m.Len() != 1 {
		t.Errorf("expected Set of absent key to do nothing")
	}
}

func TestMaxSize(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	if m := NewSized[int](-5); m.MaxSize() != 0 {
		t.Errorf("expected negative max size to clamp to 0, is %d", m.MaxSize())
	}
	m := NewSized[int](2)
	m.SetMaxSize(10) // write-once
	if m.MaxSize() != 2 {
		t.Errorf("expected max size to stay 2, is %d", m.MaxSize())
	}
	m.Insert(1, 1)
	m.Insert(2, 2)
	if err := m.Insert(3, 3); !errors.Is(err, ErrCapacityExceeded) {
		t.Errorf("expected ErrCapacityExceeded, got %v", err)
	}
	if m.Contains(3) || m.Len() != 2 {
		t.Errorf("rejected insert changed the map")
	}
	if err := m.Update(2, 20); err != nil {
		t.Errorf("expected update in a full map to succeed, got %v", err)
	}
	m.Clear()
	if m.MaxSize() != 0 {
		t.Errorf("expected Clear to reset max size, is %d", m.MaxSize())
	}
	m.SetMaxSize(0)
	m.SetMaxSize(5)
	if m.MaxSize() != 5 {
		t.Errorf("expected max size 5 after clear, is %d", m.MaxSize())
	}
}

func TestClearDoesNotRecycleNodes(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	reg := pool.NewRegistry()
	m, _ := NewWithConfig[int](Config{Registry: reg})
	for i := range int32(10) {
		m.Insert(i, int(i))
	}
	m.Clear()
	if m.Len() != 0 || m.Contains(3) {
		t.Errorf("expected cleared map to be empty")
	}
	if n := pool.Count[*node[int]](reg); n != 0 {
		t.Errorf("expected Clear not to return nodes to the pool, pool has %d", n)
	}
	for i := range int32(10) {
		m.Insert(i, int(i))
	}
	m.Recycle()
	if n := pool.Count[*node[int]](reg); n != 10 {
		t.Errorf("expected Recycle to return 10 nodes to the pool, pool has %d", n)
	}
	if m.Len() != 0 {
		t.Errorf("expected recycled map to be empty")
	}
	m.Insert(1, 1)
	if n := pool.Count[*node[int]](reg); n != 9 {
		t.Errorf("expected insert to reuse a pooled node, pool has %d", n)
	}
	m.Dispose()
	if n := pool.Count[*keyIndex](reg); n != 1 {
		t.Errorf("expected Dispose to return the key index, pool has %d", n)
	}
}

func TestRemoveReturnsNodeToPool(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	reg := pool.NewRegistry()
	m, _ := NewWithConfig[string](Config{Registry: reg})
	m.Insert(1, "a")
	m.Insert(2, "b")
	m.Insert(3, "c")
	m.Remove(2)
	nodes := pool.For[*node[string]](reg)
	if nodes.Count() != 1 {
		t.Fatalf("expected 1 pooled node, have %d", nodes.Count())
	}
	n := nodes.Acquire(nil)
	if !n.IsEmpty() || n.value != "" || n.parent != nil || n.left != nil || n.right != nil || !n.IsRed() {
		t.Errorf("expected pooled node to be reset, is %v", n)
	}
	nodes.Release(n)
	m.Insert(4, "d")
	if nodes.Count() != 0 {
		t.Errorf("expected insert to take node from pool")
	}
}

type counter struct {
	hits   int
	resets int
}

func (c *counter) Reset() {
	c.hits = 0
	c.resets++
}

func TestRemovedValueIsReset(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	m, _ := NewWithConfig[*counter](Config{Registry: pool.NewRegistry()})
	a, b, c := &counter{hits: 1}, &counter{hits: 2}, &counter{hits: 3}
	m.Insert(2, a)
	m.Insert(1, b)
	m.Insert(3, c)
	m.Remove(2) // root with two children, successor is moved up
	if a.resets != 1 || a.hits != 0 {
		t.Errorf("expected removed value to be reset once, is %+v", a)
	}
	if b.resets != 0 || c.resets != 0 {
		t.Errorf("expected remaining values to be untouched")
	}
	if v, _ := m.Get(3); v != c {
		t.Errorf("expected m[3] to keep its value")
	}
}

func TestNodeReset(t *testing.T) {
	n := newNode[*counter]()
	if !n.IsEmpty() {
		t.Fatalf("expected new node to be empty")
	}
	c := &counter{hits: 5}
	n.SetKey(8)
	n.SetValue(c)
	n.color = black
	n.left, n.right, n.parent = newNode[*counter](), newNode[*counter](), newNode[*counter]()
	left := n.left
	left.parent = n
	n.Reset()
	n.Reset() // idempotent
	if k, ok := n.Key(); ok || k != 0 {
		t.Errorf("expected key slot to be unset, is %d", k)
	}
	if n.Value() != nil || !n.IsRed() || n.left != nil || n.right != nil || n.parent != nil {
		t.Errorf("expected node to be reset, is %v", n)
	}
	if c.resets != 1 {
		t.Errorf("expected value to be reset exactly once, was reset %d times", c.resets)
	}
	if left.parent != n {
		t.Errorf("expected former neighbour to be untouched")
	}
}

func TestInvalidPlacement(t *testing.T) {
	_, err := NewWithConfig[int](Config{Placement: Placement(7)})
	if !errors.Is(err, ErrArgumentOutOfRange) {
		t.Errorf("expected ErrArgumentOutOfRange, got %v", err)
	}
}

func TestMinMaxHeight(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	for _, placement := range []Placement{PlaceByKey, PlaceLevelFill} {
		m, _ := NewWithConfig[int](Config{Placement: placement})
		if _, _, ok := m.Min(); ok {
			t.Errorf("%s: expected no minimum in empty map", placement)
		}
		for _, k := range []int32{40, -3, 17, 99, 0} {
			m.Insert(k, int(k)*2)
		}
		if k, v, ok := m.Min(); !ok || k != -3 || v != -6 {
			t.Errorf("%s: expected min (-3, -6), is (%d, %d)", placement, k, v)
		}
		if k, v, ok := m.Max(); !ok || k != 99 || v != 198 {
			t.Errorf("%s: expected max (99, 198), is (%d, %d)", placement, k, v)
		}
		if h := m.Height(); h != 3 {
			t.Errorf("%s: expected height 3 for 5 entries, is %d", placement, h)
		}
	}
}
