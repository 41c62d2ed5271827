package escape

// memo is a get-or-compute cache: each key is computed at most once through
// the configured function and retained for the cache's lifetime. Failed
// computations are not retained.
type memo[K comparable, V any] struct {
	values  map[K]V
	compute func(K) (V, error)
}

func newMemo[K comparable, V any](compute func(K) (V, error)) *memo[K, V] {
	return &memo[K, V]{values: make(map[K]V), compute: compute}
}

// put pre-seeds the cache, overriding whatever compute would produce.
func (m *memo[K, V]) put(k K, v V) {
	m.values[k] = v
}

func (m *memo[K, V]) get(k K) (V, error) {
	v, found := m.values[k]
	if found {
		return v, nil
	}
	v, e := m.compute(k)
	if e != nil {
		var zero V
		return zero, e
	}
	m.values[k] = v
	return v, nil
}
