package mesh

// elementList keeps mesh elements in insertion order with O(1) membership
// and removal. Removed slots become holes that are squeezed out lazily.
type elementList[T comparable] struct {
	items []T
	index map[T]int
	holes int
}

func newElementList[T comparable]() elementList[T] {
	return elementList[T]{index: make(map[T]int)}
}

func (l *elementList[T]) push(x T) {
	l.index[x] = len(l.items)
	l.items = append(l.items, x)
}

func (l *elementList[T]) remove(x T) bool {
	i, ok := l.index[x]
	if !ok {
		return false
	}
	delete(l.index, x)
	var zero T
	l.items[i] = zero
	l.holes++
	return true
}

func (l *elementList[T]) contains(x T) bool {
	_, ok := l.index[x]
	return ok
}

func (l *elementList[T]) len() int {
	return len(l.index)
}

func (l *elementList[T]) compact() {
	if l.holes == 0 {
		return
	}
	var zero T
	items := make([]T, 0, len(l.index))
	for _, x := range l.items {
		if x == zero {
			continue
		}
		l.index[x] = len(items)
		items = append(items, x)
	}
	l.items = items
	l.holes = 0
}

func (l *elementList[T]) at(i int) (T, bool) {
	l.compact()
	if i < 0 || i >= len(l.items) {
		var zero T
		return zero, false
	}
	return l.items[i], true
}

// snapshot returns a copy, so callers may edit the mesh while iterating.
func (l *elementList[T]) snapshot() []T {
	l.compact()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

func (l *elementList[T]) clear() {
	l.items = nil
	l.index = make(map[T]int)
	l.holes = 0
}
