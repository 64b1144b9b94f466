package cache

import "strings"

// Memo memoizes computed values by key. The first call for a key runs fn and
// stores the result; later calls with an equal key return the stored value
// without running fn. Failed computations are never stored, so a later call
// may retry. Not safe for concurrent use.
type Memo[V any] struct {
	entries map[string]V
}

func NewMemo[V any]() *Memo[V] {
	return &Memo[V]{entries: make(map[string]V)}
}

func (m *Memo[V]) Do(key string, fn func() (V, error)) (V, error) {
	if v, ok := m.entries[key]; ok {
		return v, nil
	}
	v, err := fn()
	if err != nil {
		var zero V
		return zero, err
	}
	m.entries[key] = v
	return v, nil
}

func (m *Memo[V]) Len() int { return len(m.entries) }

// Key builds a composite cache key. Parts are joined with the unit separator
// control character so distinct tuples never collide.
func Key(parts ...string) string {
	return strings.Join(parts, "\x1f")
}
