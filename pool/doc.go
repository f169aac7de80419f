/*
Package pool provides type-keyed object pools for frequently churned small
objects, such as tree nodes and traversal scratch buffers.

A Pool[T] is a bag of ready-to-reuse instances of exactly one type. Acquire
and Release are lock-free and may be called from concurrent goroutines.
Items are handed out in LIFO order.

A Registry routes calls to the pool for a given element type, creating the
pool on first use. Structurally identical but distinct types never share a
pool. Package-level function Default returns a process-wide registry; clients
which need isolation create their own with NewRegistry.

Items implementing Resetter are reset when they are released, so that no
residual state leaks to the next consumer.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package pool

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to a global core-tracer.
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}

// Resetter is an optional capability of pooled items. Reset is called by
// Release before the item is put back into its pool.
type Resetter interface {
	Reset()
}
