package perceptron

import "slices"

// symbols interns class and feature names as dense IDs, assigned in the
// order names are first seen. IDs index the weight rows and columns.
type symbols struct {
	ids   map[string]int
	names []string
}

func newSymbols() *symbols {
	return &symbols{ids: make(map[string]int)}
}

// intern returns the ID of name, assigning the next free one if it is new.
func (s *symbols) intern(name string) int {
	if id, ok := s.ids[name]; ok {
		return id
	}
	id := len(s.names)
	s.ids[name] = id
	s.names = append(s.names, name)
	return id
}

func (s *symbols) lookup(name string) (int, bool) {
	id, ok := s.ids[name]
	return id, ok
}

func (s *symbols) name(id int) string {
	return s.names[id]
}

func (s *symbols) size() int {
	return len(s.names)
}

// list returns the names in ID order.
func (s *symbols) list() []string {
	return slices.Clone(s.names)
}
