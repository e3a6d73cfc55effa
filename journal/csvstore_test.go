package journal

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVStorePersistsAcrossOpens(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "journal.csv")
	entry := time.Date(2024, 2, 12, 15, 0, 0, 0, time.UTC)

	s, issues, err := OpenCSVStore(path)
	require.NoError(t, err)
	assert.Empty(t, issues)

	require.NoError(t, s.RecordTrade(sampleTrade("T1", entry, "10")))
	require.NoError(t, s.RecordTrade(sampleTrade("T2", entry.Add(time.Hour), "-4")))
	require.NoError(t, s.RecordTrade(sampleTrade("T1", entry, "12")))

	all, err := s.ListTrades()
	require.NoError(t, err)
	assert.Equal(t, []string{"T1", "T2"}, ids(all))
	require.NoError(t, s.Close())

	s, _, err = OpenCSVStore(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.GetTrade("T1")
	require.NoError(t, err)
	assert.True(t, got.PnL.Equal(decimal.NewFromInt(12)))

	between, err := s.ListTradesEnteredBetween(entry.Add(time.Minute), entry.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []string{"T2"}, ids(between))
}

func TestCSVStoreDeleteRewritesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "journal.csv")
	entry := time.Date(2024, 2, 12, 15, 0, 0, 0, time.UTC)

	s, _, err := OpenCSVStore(path)
	require.NoError(t, err)
	require.NoError(t, s.RecordTrade(sampleTrade("T1", entry, "10")))
	require.NoError(t, s.RecordTrade(sampleTrade("T2", entry, "20")))

	require.NoError(t, s.DeleteTrade("T1"))
	assert.ErrorIs(t, s.DeleteTrade("T1"), ErrNotFound)

	// the store keeps appending after a rewrite
	require.NoError(t, s.RecordTrade(sampleTrade("T3", entry, "30")))
	require.NoError(t, s.Close())

	mem, issues, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Empty(t, issues)
	all, err := mem.ListTrades()
	require.NoError(t, err)
	assert.Equal(t, []string{"T2", "T3"}, ids(all))
}

func TestCSVStoreDeleteFailureKeepsState(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "journal.csv")
	entry := time.Date(2024, 2, 12, 15, 0, 0, 0, time.UTC)

	s, _, err := OpenCSVStore(path)
	require.NoError(t, err)
	require.NoError(t, s.RecordTrade(sampleTrade("T1", entry, "10")))
	require.NoError(t, s.RecordTrade(sampleTrade("T2", entry, "20")))

	s.rename = func(string, string) error { return errors.New("disk full") }
	err = s.DeleteTrade("T1")
	require.ErrorContains(t, err, "disk full")

	// still readable and writable after the failed rewrite
	_, err = s.GetTrade("T1")
	require.NoError(t, err)
	require.NoError(t, s.RecordTrade(sampleTrade("T3", entry, "30")))
	require.NoError(t, s.Close())

	mem, _, err := LoadCSV(path)
	require.NoError(t, err)
	all, err := mem.ListTrades()
	require.NoError(t, err)
	assert.Equal(t, []string{"T1", "T2", "T3"}, ids(all))

	leftovers, err := filepath.Glob(filepath.Join(dir, ".trades-*.csv"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}
