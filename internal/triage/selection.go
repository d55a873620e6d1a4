package triage

// Selection is an insertion-ordered set of record ids. It is not safe for
// concurrent use; View guards one with a mutex.
type Selection struct {
	order []string
	set   map[string]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{set: make(map[string]struct{})}
}

// Len returns the number of selected ids.
func (s *Selection) Len() int {
	return len(s.order)
}

// Has reports whether id is selected.
func (s *Selection) Has(id string) bool {
	_, ok := s.set[id]
	return ok
}

// IDs returns a copy of the selected ids in selection order.
func (s *Selection) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Set selects or deselects id. Repeating the same call has no further effect.
func (s *Selection) Set(id string, checked bool) {
	if checked {
		s.add(id)
	} else {
		s.remove(id)
	}
}

// Toggle flips id and returns whether it is now selected.
func (s *Selection) Toggle(id string) bool {
	if s.Has(id) {
		s.remove(id)
		return false
	}
	s.add(id)
	return true
}

// SelectAll replaces the selection with exactly ids. Ids selected before and
// absent from ids are dropped; ids hidden by a later filter change are kept.
func (s *Selection) SelectAll(ids []string) {
	s.Clear()
	for _, id := range ids {
		s.add(id)
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.order = nil
	s.set = make(map[string]struct{})
}

// Consume returns the selected ids and clears the selection.
func (s *Selection) Consume() []string {
	ids := s.order
	if ids == nil {
		ids = []string{}
	}
	s.order = nil
	s.set = make(map[string]struct{})
	return ids
}

// AllSelected reports the header checkbox state for a view: true when the
// view is non-empty and the selection holds exactly as many ids as the view.
// Ids selected under an earlier filter still count.
func (s *Selection) AllSelected(viewIDs []string) bool {
	return len(viewIDs) > 0 && s.Len() == len(viewIDs)
}

func (s *Selection) add(id string) {
	if s.Has(id) {
		return
	}
	s.set[id] = struct{}{}
	s.order = append(s.order, id)
}

func (s *Selection) remove(id string) {
	if !s.Has(id) {
		return
	}
	delete(s.set, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
