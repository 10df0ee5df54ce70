package pool

import "sync"

// float64SlicePool reuses coefficient-sized scratch slices. The rotation
// back-transform needs a short-lived float64 working set on every segment
// switch of a rotated body; pooling it avoids allocating that buffer anew.
// The decoded segment itself is kept as the body's cache and is not pooled.
var float64SlicePool = sync.Pool{
	New: func() any { return &[]float64{} },
}

// GetFloat64Slice retrieves and resizes a float64 slice from the pool.
//
// The returned slice has length size with all elements zeroed. The caller
// must call the returned cleanup function (typically with defer) to return
// the slice to the pool.
//
// Example:
//
//	scratch, cleanup := pool.GetFloat64Slice(3 * ncoe)
//	defer cleanup()
func GetFloat64Slice(size int) ([]float64, func()) {
	ptr, _ := float64SlicePool.Get().(*[]float64)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]float64, size)
	} else {
		slice = slice[:size]
		for i := range slice {
			slice[i] = 0
		}
	}

	*ptr = slice
	cleanup := func() {
		float64SlicePool.Put(ptr)
	}

	return slice, cleanup
}
