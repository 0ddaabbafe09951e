package assets

// store memoizes loads by key. A failed load is remembered too, so a
// missing file is read once and not again on every frame.
type store[K comparable, V any] struct {
	items  map[K]V
	failed map[K]error
	loads  int
}

func newStore[K comparable, V any]() *store[K, V] {
	return &store[K, V]{items: make(map[K]V), failed: make(map[K]error)}
}

func (s *store[K, V]) get(key K, load func() (V, error)) (V, error) {
	if v, ok := s.items[key]; ok {
		return v, nil
	}
	if err, ok := s.failed[key]; ok {
		var zero V
		return zero, err
	}
	s.loads++
	v, err := load()
	if err != nil {
		s.failed[key] = err
		var zero V
		return zero, err
	}
	s.items[key] = v
	return v, nil
}

func (s *store[K, V]) len() int {
	return len(s.items)
}
