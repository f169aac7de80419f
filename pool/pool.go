package pool

import "sync/atomic"

// Pool is a bag of ready-to-reuse instances of type T.
//
// The bag is a lock-free stack: Acquire pops the most recently released
// item. Cells are never reused, which keeps the compare-and-swap loops free
// of ABA problems.
//
// The zero value is an empty pool without a default factory.
type Pool[T any] struct {
	head    atomic.Pointer[cell[T]]
	depth   atomic.Int64
	factory func() T
}

type cell[T any] struct {
	item T
	next *cell[T]
}

// New creates an empty pool. factory is used by Acquire, Resize and
// Prepopulate whenever they are called with a nil factory. It may be nil.
func New[T any](factory func() T) *Pool[T] {
	return &Pool[T]{factory: factory}
}

// Acquire returns a previously released instance, if there is one. Otherwise
// it manufactures a new instance with factory, falling back to the pool's
// default factory and then to the zero value of T. Acquire never blocks.
func (p *Pool[T]) Acquire(factory func() T) T {
	if p != nil {
		if item, ok := p.pop(); ok {
			return item
		}
	}
	item, _ := p.manufacture(factory)
	return item
}

// Release puts item back into the pool. If item implements Resetter, it is
// reset first.
func (p *Pool[T]) Release(item T) {
	if p == nil {
		return
	}
	if r, ok := any(item).(Resetter); ok {
		r.Reset()
	}
	p.push(item)
}

// Count reports the number of items currently available in the pool.
func (p *Pool[T]) Count() int {
	if p == nil {
		return 0
	}
	return int(p.depth.Load())
}

// Clear drops all pooled items.
func (p *Pool[T]) Clear() {
	if p == nil {
		return
	}
	n := 0
	for {
		if _, ok := p.pop(); !ok {
			break
		}
		n++
	}
	tracer().Debugf("pool: cleared %d items", n)
}

// Resize trims the pool down to target items by discarding, or tops it up to
// target by manufacturing new items. Checked-out items are not affected.
// A negative target is treated as 0.
func (p *Pool[T]) Resize(target int, factory func() T) {
	if p == nil {
		return
	}
	if target < 0 {
		target = 0
	}
	for p.Count() > target {
		if _, ok := p.pop(); !ok {
			break
		}
	}
	for p.Count() < target {
		item, ok := p.manufacture(factory)
		if !ok {
			tracer().Errorf("pool: cannot top up to %d items without a factory", target)
			break
		}
		p.push(item)
	}
	tracer().Debugf("pool: resized to %d items", p.Count())
}

// Prepopulate unconditionally manufactures n new items and puts them into
// the pool. Without any factory it does nothing.
func (p *Pool[T]) Prepopulate(n int, factory func() T) {
	if p == nil {
		return
	}
	for range n {
		item, ok := p.manufacture(factory)
		if !ok {
			return
		}
		p.push(item)
	}
}

// manufacture creates a new item. If neither factory nor a default factory
// is present, it returns the zero value and false.
func (p *Pool[T]) manufacture(factory func() T) (T, bool) {
	if factory != nil {
		return factory(), true
	}
	if p != nil && p.factory != nil {
		return p.factory(), true
	}
	var zero T
	return zero, false
}

func (p *Pool[T]) push(item T) {
	c := &cell[T]{item: item}
	for {
		top := p.head.Load()
		c.next = top
		if p.head.CompareAndSwap(top, c) {
			p.depth.Add(1)
			return
		}
	}
}

func (p *Pool[T]) pop() (item T, ok bool) {
	for {
		top := p.head.Load()
		if top == nil {
			return item, false
		}
		if p.head.CompareAndSwap(top, top.next) {
			p.depth.Add(-1)
			return top.item, true
		}
	}
}
