package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/good-yellow-bee/smartdetect/internal/models"
)

func TestSelection_ToggleTwiceRestores(t *testing.T) {
	s := NewSelection()
	s.Set("a", true)
	s.Set("b", true)
	before := s.IDs()

	assert.True(t, s.Toggle("c"))
	assert.False(t, s.Toggle("c"))
	assert.Equal(t, before, s.IDs())

	assert.False(t, s.Toggle("a"))
	assert.True(t, s.Toggle("a"))
	assert.ElementsMatch(t, before, s.IDs())
}

func TestSelection_SetIsIdempotent(t *testing.T) {
	s := NewSelection()
	s.Set("a", true)
	s.Set("a", true)
	assert.Equal(t, 1, s.Len())
	s.Set("a", false)
	s.Set("a", false)
	assert.Equal(t, 0, s.Len())
}

func TestSelection_SelectAllKeepsHiddenIDsAfterWidening(t *testing.T) {
	alerts := gridAlerts()
	s := NewSelection()
	s.Set("stale", true)

	narrow := Apply(alerts, NewFilter("critical", "", "", ""))
	k := len(narrow)
	assert.Equal(t, 4, k)
	s.SelectAll(IDs(narrow))

	wide := Apply(alerts, NewFilter("", "", "", ""))
	assert.Greater(t, len(wide), k)

	// Widening the view does not change the selection.
	assert.Equal(t, k, s.Len())
	assert.Equal(t, IDs(narrow), s.IDs())
	assert.False(t, s.Has("stale"))
	assert.False(t, s.AllSelected(IDs(wide)))
	assert.True(t, s.AllSelected(IDs(narrow)))
}

func TestSelection_SelectAllThenNarrowKeepsHidden(t *testing.T) {
	alerts := gridAlerts()
	s := NewSelection()
	s.SelectAll(IDs(alerts))

	narrow := Apply(alerts, NewFilter("low", "new", "", ""))
	assert.Len(t, narrow, 1)
	assert.Equal(t, len(alerts), s.Len())
	assert.False(t, s.AllSelected(IDs(narrow)))
}

func TestSelection_AllSelectedComparesSizes(t *testing.T) {
	s := NewSelection()
	s.SelectAll([]string{"a", "b", "c"})

	assert.True(t, s.AllSelected([]string{"a", "b", "c"}))
	// Narrowed view: the hidden id keeps the selection larger than the view.
	assert.False(t, s.AllSelected([]string{"a", "b"}))

	s.Toggle("c")
	assert.True(t, s.AllSelected([]string{"a", "b"}))
}

func TestSelection_Consume(t *testing.T) {
	s := NewSelection()
	s.SelectAll([]string{"x", "y"})
	assert.Equal(t, []string{"x", "y"}, s.Consume())
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, []string{}, s.Consume())
}

func TestSelection_AllSelectedEmptyView(t *testing.T) {
	s := NewSelection()
	assert.False(t, s.AllSelected(nil))
}

func TestSummarize(t *testing.T) {
	sum := Summarize(gridAlerts())
	assert.Equal(t, 16, sum.Total)
	assert.Equal(t, 4, sum.New)
	assert.Equal(t, 4, sum.Investigating)
	assert.Equal(t, 4, sum.Resolved)
	assert.Equal(t, 4, sum.FalsePositive)
	assert.Equal(t, 4, sum.Critical)

	assert.Equal(t, Summary{}, Summarize([]*models.Alert{}))
}
