package set

type Set[T comparable] map[T]struct{}

func FromSlice[T comparable](items []T) Set[T] {
	result := make(Set[T], len(items))
	for _, item := range items {
		result[item] = struct{}{}
	}
	return result
}

func (s Set[T]) Include(value T) bool {
	_, found := s[value]
	return found
}

func (s Set[T]) Insert(value T) {
	s[value] = struct{}{}
}

// Add inserts value and reports whether it was absent before.
func (s Set[T]) Add(value T) bool {
	if s.Include(value) {
		return false
	}
	s[value] = struct{}{}
	return true
}
