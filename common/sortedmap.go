package common

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// SortedMap implements a memory map for the key-value pairs.
// Its elements are sorted on insertion by the key, and ForEach
// iterates them in the order defined by the comparator.
type SortedMap[K comparable, V any] struct {
	list       []MapEntry[K, V]
	comparator Comparator[K]
	size       int
}

// NewSortedMap creates a new instance.
func NewSortedMap[K comparable, V any](capacity int, comparator Comparator[K]) *SortedMap[K, V] {
	list := make([]MapEntry[K, V], 0, capacity)
	return &SortedMap[K, V]{
		list:       list,
		comparator: comparator,
	}
}

// NewSortedMapFromMap creates a new instance holding all entries of the
// input native map, ordered by the input comparator.
func NewSortedMapFromMap[K constraints.Ordered, V any](source map[K]V, comparator Comparator[K]) *SortedMap[K, V] {
	res := NewSortedMap[K, V](len(source), comparator)
	keys := maps.Keys(source)
	slices.Sort(keys)
	for _, key := range keys {
		res.Put(key, source[key])
	}
	return res
}

// ForEach all entries - calls the callback for each key-value pair in the table
func (m *SortedMap[K, V]) ForEach(callback func(K, V)) {
	for i := 0; i < m.size; i++ {
		callback(m.list[i].Key, m.list[i].Val)
	}
}

// Get returns a value from the table or false.
func (m *SortedMap[K, V]) Get(key K) (val V, exists bool) {
	if index, exists := m.findItem(key); exists {
		return m.list[index].Val, true
	}

	return
}

// Put associates a key to a value.
func (m *SortedMap[K, V]) Put(key K, val V) {
	index, exists := m.findItem(key)
	if exists {
		m.list[index].Val = val
		return
	}

	// found insert
	if index < m.size {
		// shift
		for j := m.size - 1; j >= index; j-- {
			if j+1 == len(m.list) {
				m.list = append(m.list, m.list[j])
			} else {
				m.list[j+1] = m.list[j]
			}
		}

		m.list[index].Key = key
		m.list[index].Val = val

		m.size += 1
		return
	}

	// no place found - put at the end
	m.list = append(m.list, MapEntry[K, V]{key, val})
	m.size += 1
}

// GetEntries returns all key-value pairs in this map in the iteration order.
func (m *SortedMap[K, V]) GetEntries() []MapEntry[K, V] {
	return m.list[0:m.size]
}

// Size returns the number of elements in this map.
func (m *SortedMap[K, V]) Size() int {
	return m.size
}

// Clear removes all elements from this map.
func (m *SortedMap[K, V]) Clear() {
	m.size = 0
	m.list = m.list[0:0]
}

// findItem finds a key in the list, if it exists.
// It returns the index of the key that was found, and it returns true.
// If the key does not exist, it returns false and the index is equal to the
// position where the key would have to be inserted to keep the list sorted.
func (m *SortedMap[K, V]) findItem(key K) (index int, exists bool) {
	start := 0
	end := m.size - 1
	mid := start
	var res int
	for start <= end {
		mid = (start + end) / 2
		res = m.comparator.Compare(&m.list[mid].Key, &key)
		if res == 0 {
			return mid, true
		} else if res < 0 {
			start = mid + 1
		} else {
			end = mid - 1
		}
	}

	if res < 0 {
		mid += 1
	}
	return mid, false
}
