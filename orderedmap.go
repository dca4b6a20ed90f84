package img2mosaic

// OrderedMap is a map that remembers the order in which keys were first
// inserted. It is not safe for concurrent use.
type OrderedMap[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

// NewOrderedMap creates a new OrderedMap
func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		keys:   make([]K, 0),
		values: make(map[K]V),
	}
}

// Set adds a key-value pair. Overwriting an existing key keeps its
// original position.
func (om *OrderedMap[K, V]) Set(key K, value V) {
	if _, exists := om.values[key]; !exists {
		om.keys = append(om.keys, key)
	}
	om.values[key] = value
}

// Get retrieves a value by key
func (om *OrderedMap[K, V]) Get(key K) (V, bool) {
	val, exists := om.values[key]
	return val, exists
}

// Delete removes a key-value pair
func (om *OrderedMap[K, V]) Delete(key K) {
	if _, exists := om.values[key]; exists {
		delete(om.values, key)
		for i, k := range om.keys {
			if k == key {
				om.keys = append(om.keys[:i], om.keys[i+1:]...)
				break
			}
		}
	}
}

// Keys returns a copy of the keys in insertion order
func (om *OrderedMap[K, V]) Keys() []K {
	return append([]K{}, om.keys...)
}

// Iterate calls f for each key-value pair in insertion order
func (om *OrderedMap[K, V]) Iterate(f func(key K, value V)) {
	for _, k := range om.keys {
		f(k, om.values[k])
	}
}

// Len returns the number of elements in the map
func (om *OrderedMap[K, V]) Len() int {
	return len(om.keys)
}

// Clear removes every entry.
func (om *OrderedMap[K, V]) Clear() {
	om.keys = om.keys[:0]
	clear(om.values)
}
