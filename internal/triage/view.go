package triage

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrViewNotFound is returned for unknown or expired views.
var ErrViewNotFound = errors.New("triage view not found")

// BulkAction is an action applied to every selected record at once.
type BulkAction string

const (
	BulkResolve     BulkAction = "resolve"
	BulkInvestigate BulkAction = "investigate"
)

// ParseBulkAction validates a bulk action name.
func ParseBulkAction(s string) (BulkAction, error) {
	switch BulkAction(s) {
	case BulkResolve, BulkInvestigate:
		return BulkAction(s), nil
	default:
		return "", fmt.Errorf("action must be '%s' or '%s'", BulkResolve, BulkInvestigate)
	}
}

// View is one client's triage state over a list: the filter controls and the
// set of selected ids. Changing the filter never prunes the selection.
type View struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	expiresAt time.Time
	filter    Filter
	selection *Selection
}

func newView(ttl time.Duration) *View {
	now := time.Now()
	return &View{
		ID:        uuid.New().String(),
		CreatedAt: now,
		expiresAt: now.Add(ttl),
		filter:    NewFilter("", "", "", ""),
		selection: NewSelection(),
	}
}

// Filter returns the current filter.
func (v *View) Filter() Filter {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filter
}

// SetFilter replaces the filter. The selection is left as is.
func (v *View) SetFilter(f Filter) {
	v.mu.Lock()
	v.filter = f.Normalize()
	v.mu.Unlock()
}

// Selected returns the selected ids in selection order.
func (v *View) Selected() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selection.IDs()
}

// SelectAll selects exactly visibleIDs, or clears the selection when checked is false.
func (v *View) SelectAll(visibleIDs []string, checked bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if checked {
		v.selection.SelectAll(visibleIDs)
	} else {
		v.selection.Clear()
	}
}

// SetSelected selects or deselects one id.
func (v *View) SetSelected(id string, checked bool) {
	v.mu.Lock()
	v.selection.Set(id, checked)
	v.mu.Unlock()
}

// Toggle flips one id and returns whether it is now selected.
func (v *View) Toggle(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selection.Toggle(id)
}

// AllSelected reports the header checkbox state for the visible ids.
func (v *View) AllSelected(visibleIDs []string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selection.AllSelected(visibleIDs)
}

// Consume takes the selection for a bulk action and clears it.
func (v *View) Consume() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selection.Consume()
}

func (v *View) expired(now time.Time) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return now.After(v.expiresAt)
}

func (v *View) touch(ttl time.Duration) {
	v.mu.Lock()
	v.expiresAt = time.Now().Add(ttl)
	v.mu.Unlock()
}

// ViewStore keeps triage views in memory and expires idle ones.
type ViewStore struct {
	mu    sync.RWMutex
	views map[string]*View
	ttl   time.Duration
	done  chan struct{}
	once  sync.Once

	onCount func(n int)
}

// NewViewStore creates a store whose views expire after ttl of inactivity.
func NewViewStore(ttl time.Duration) *ViewStore {
	s := &ViewStore{
		views: make(map[string]*View),
		ttl:   ttl,
		done:  make(chan struct{}),
	}
	go s.cleanupLoop(5 * time.Minute)
	return s
}

// Create registers a new view with an empty selection and an all-pass filter.
func (s *ViewStore) Create() *View {
	v := newView(s.ttl)
	s.mu.Lock()
	s.views[v.ID] = v
	s.notifyLocked()
	s.mu.Unlock()
	return v
}

// Get returns a live view and extends its lifetime.
func (s *ViewStore) Get(id string) (*View, error) {
	s.mu.RLock()
	v, ok := s.views[id]
	s.mu.RUnlock()
	if !ok || v.expired(time.Now()) {
		return nil, ErrViewNotFound
	}
	v.touch(s.ttl)
	return v, nil
}

// Delete drops a view. Unknown ids are ignored.
func (s *ViewStore) Delete(id string) {
	s.mu.Lock()
	delete(s.views, id)
	s.notifyLocked()
	s.mu.Unlock()
}

// ObserveCount registers fn to receive the stored view count after every
// create, delete or expiry sweep. fn runs under the store lock.
func (s *ViewStore) ObserveCount(fn func(n int)) {
	s.mu.Lock()
	s.onCount = fn
	s.notifyLocked()
	s.mu.Unlock()
}

func (s *ViewStore) notifyLocked() {
	if s.onCount != nil {
		s.onCount(len(s.views))
	}
}

// Len returns the number of stored views, expired or not.
func (s *ViewStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.views)
}

// Close stops the cleanup goroutine.
func (s *ViewStore) Close() {
	s.once.Do(func() { close(s.done) })
}

func (s *ViewStore) cleanupLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.removeExpired(now)
		}
	}
}

func (s *ViewStore) removeExpired(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, v := range s.views {
		if v.expired(now) {
			delete(s.views, id)
		}
	}
	s.notifyLocked()
}
