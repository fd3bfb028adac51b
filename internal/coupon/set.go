package coupon

// mapCodeSet implements MutableCodeSet using a map for O(1) lookups.
type mapCodeSet struct {
	codes map[string]struct{}
}

// NewMapCodeSet creates a new map-based code set.
func NewMapCodeSet(capacity int) MutableCodeSet {
	return &mapCodeSet{
		codes: make(map[string]struct{}, capacity),
	}
}

// Contains checks if a code exists in the set.
func (s *mapCodeSet) Contains(code string) bool {
	_, exists := s.codes[code]
	return exists
}

// Size returns the number of codes in the set.
func (s *mapCodeSet) Size() int {
	return len(s.codes)
}

// Add inserts code if absent. It returns false when the code was already present.
func (s *mapCodeSet) Add(code string) bool {
	if _, exists := s.codes[code]; exists {
		return false
	}
	s.codes[code] = struct{}{}
	return true
}

// Remove deletes code from the set.
func (s *mapCodeSet) Remove(code string) {
	delete(s.codes, code)
}
