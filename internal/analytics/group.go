package analytics

// orderedGroups is a keyed accumulator that iterates in first-seen order.
type orderedGroups[V any] struct {
	keys  []string
	index map[string]int
	vals  []V
}

func newOrderedGroups[V any]() *orderedGroups[V] {
	return &orderedGroups[V]{index: make(map[string]int)}
}

// at returns the accumulator for key, creating it on first use. The pointer
// is only valid until the next call to at.
func (g *orderedGroups[V]) at(key string) *V {
	i, ok := g.index[key]
	if !ok {
		i = len(g.vals)
		g.index[key] = i
		g.keys = append(g.keys, key)
		var zero V
		g.vals = append(g.vals, zero)
	}
	return &g.vals[i]
}

func (g *orderedGroups[V]) get(key string) (V, bool) {
	i, ok := g.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	return g.vals[i], true
}

func (g *orderedGroups[V]) each(fn func(key string, v V)) {
	for i, k := range g.keys {
		fn(k, g.vals[i])
	}
}

func (g *orderedGroups[V]) len() int {
	return len(g.keys)
}
