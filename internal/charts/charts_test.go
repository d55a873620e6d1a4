package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/good-yellow-bee/smartdetect/internal/fixtures"
)

func TestBuild(t *testing.T) {
	for _, k := range Kinds {
		t.Run(string(k), func(t *testing.T) {
			c, err := Build(k, 0)
			require.NoError(t, err)
			assert.Equal(t, k, c.Kind)
			assert.Equal(t, DefaultHeight, c.Height)
			assert.NotEmpty(t, c.Title)
			assert.NotNil(t, c.Data)
		})
	}

	c, err := Build(KindPie, 420)
	require.NoError(t, err)
	assert.Equal(t, 420, c.Height)
	assert.Equal(t, fixtures.ThreatDistribution(), c.Data)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("bar")
	require.NoError(t, err)
	assert.Equal(t, KindBar, k)

	_, err = ParseKind("scatter")
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = Build(Kind("radar"), 0)
	assert.ErrorIs(t, err, ErrUnknownKind)
}
