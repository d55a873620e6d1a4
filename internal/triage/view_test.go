package triage

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewStore_CreateGetDelete(t *testing.T) {
	store := NewViewStore(time.Hour)
	defer store.Close()

	v := store.Create()
	require.NotEmpty(t, v.ID)
	assert.Equal(t, 1, store.Len())

	got, err := store.Get(v.ID)
	require.NoError(t, err)
	assert.Same(t, v, got)
	assert.True(t, got.Filter().IsZero())

	store.Delete(v.ID)
	_, err = store.Get(v.ID)
	assert.True(t, errors.Is(err, ErrViewNotFound))
}

func TestViewStore_Expiry(t *testing.T) {
	store := NewViewStore(10 * time.Millisecond)
	defer store.Close()

	v := store.Create()
	time.Sleep(30 * time.Millisecond)
	_, err := store.Get(v.ID)
	assert.ErrorIs(t, err, ErrViewNotFound)

	store.removeExpired(time.Now())
	assert.Equal(t, 0, store.Len())
}

func TestViewStore_ObserveCountTracksExpiry(t *testing.T) {
	store := NewViewStore(10 * time.Millisecond)
	defer store.Close()

	var counts []int
	store.ObserveCount(func(n int) { counts = append(counts, n) })

	a := store.Create()
	store.Create()
	store.Delete(a.ID)
	time.Sleep(30 * time.Millisecond)
	store.removeExpired(time.Now())

	assert.Equal(t, []int{0, 1, 2, 1, 0}, counts)
	assert.Equal(t, 0, store.Len())
}

func TestView_FilterChangeKeepsSelection(t *testing.T) {
	store := NewViewStore(time.Hour)
	defer store.Close()
	v := store.Create()

	alerts := gridAlerts()
	v.SetFilter(NewFilter("high", "", "", ""))
	visible := IDs(Apply(alerts, v.Filter()))
	v.SelectAll(visible, true)

	v.SetFilter(NewFilter("", "", "", ""))
	assert.Equal(t, visible, v.Selected())

	v.SelectAll(nil, false)
	assert.Empty(t, v.Selected())
}

func TestView_ConsumeClears(t *testing.T) {
	store := NewViewStore(time.Hour)
	defer store.Close()
	v := store.Create()

	v.SetSelected("1", true)
	assert.True(t, v.Toggle("2"))
	assert.Equal(t, []string{"1", "2"}, v.Consume())
	assert.Empty(t, v.Selected())
}

func TestView_ConcurrentToggles(t *testing.T) {
	store := NewViewStore(time.Hour)
	defer store.Close()
	v := store.Create()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v.Toggle("same")
		}()
	}
	wg.Wait()
	// An even number of toggles leaves the id unselected.
	assert.Empty(t, v.Selected())
}

func TestParseBulkAction(t *testing.T) {
	a, err := ParseBulkAction("resolve")
	require.NoError(t, err)
	assert.Equal(t, BulkResolve, a)

	_, err = ParseBulkAction("delete")
	assert.Error(t, err)
}
