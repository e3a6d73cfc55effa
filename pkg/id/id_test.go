package id

import (
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsSortable(t *testing.T) {
	t.Parallel()

	ids := make([]string, 100)
	for i := range ids {
		ids[i] = New()
	}
	assert.True(t, sort.StringsAreSorted(ids))
	assert.Len(t, ids[0], 26)
}

func TestNewTrade(t *testing.T) {
	t.Parallel()

	a, b := NewTrade(), NewTrade()
	assert.True(t, strings.HasPrefix(a, TradePrefix))
	assert.NotEqual(t, a, b)
}

func TestTradeAtRoundTrip(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 5, 6, 14, 30, 15, 123e6, time.UTC)
	got, err := Time(TradeAt(at))
	require.NoError(t, err)
	assert.Equal(t, at, got)

	earlier := TradeAt(at.Add(-time.Hour))
	assert.Less(t, earlier, TradeAt(at))
}

func TestTimeRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := Time("TRD-1000")
	assert.Error(t, err)
}
