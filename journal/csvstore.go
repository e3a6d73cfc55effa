package journal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// CSVStore is a Store over a CSV file. Reads are served from memory;
// records are appended to the file and a delete rewrites it.
type CSVStore struct {
	mu     sync.Mutex
	path   string
	mem    *Memory
	out    *CSVJournal
	rename func(oldpath, newpath string) error
}

// OpenCSVStore loads path, creating it when missing. Coerced cells are
// returned as issues for the caller to report.
func OpenCSVStore(path string) (*CSVStore, []FieldIssue, error) {
	mem := NewMemory()
	var issues []FieldIssue

	if _, err := os.Stat(path); err == nil {
		if mem, issues, err = LoadCSV(path); err != nil {
			return nil, nil, err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, nil, err
	}

	out, err := NewCSV(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &CSVStore{path: path, mem: mem, out: out, rename: os.Rename}, issues, nil
}

func (s *CSVStore) RecordTrade(t Trade) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.out.RecordTrade(t); err != nil {
		return err
	}
	return s.mem.RecordTrade(t)
}

// DeleteTrade rewrites the file without the trade. On failure the file,
// the appender and the in-memory view are left as they were.
func (s *CSVStore) DeleteTrade(tradeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, err := s.mem.GetTrade(tradeID)
	if err != nil {
		return err
	}
	if err := s.mem.DeleteTrade(tradeID); err != nil {
		return err
	}
	if err := s.rewrite(); err != nil {
		_ = s.mem.RecordTrade(old)
		return fmt.Errorf("delete %s: %w", tradeID, err)
	}
	return nil
}

// rewrite writes the current trades to a temp file, opens the appender on
// it and renames it over the journal. The old appender is closed last.
func (s *CSVStore) rewrite() error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".trades-*.csv")
	if err != nil {
		return err
	}
	discard := func() { _ = os.Remove(tmp.Name()) }

	all, _ := s.mem.ListTrades()
	if err := WriteCSV(tmp, all); err != nil {
		_ = tmp.Close()
		discard()
		return err
	}
	if err := tmp.Close(); err != nil {
		discard()
		return err
	}

	out, err := NewCSV(tmp.Name())
	if err != nil {
		discard()
		return err
	}
	if err := s.rename(tmp.Name(), s.path); err != nil {
		_ = out.Close()
		discard()
		return err
	}

	prev := s.out
	s.out = out
	if err := prev.Close(); err != nil {
		return fmt.Errorf("close previous journal: %w", err)
	}
	return nil
}

func (s *CSVStore) GetTrade(tradeID string) (Trade, error) { return s.mem.GetTrade(tradeID) }

func (s *CSVStore) ListTrades() ([]Trade, error) { return s.mem.ListTrades() }

func (s *CSVStore) ListTradesEnteredBetween(start, end time.Time) ([]Trade, error) {
	return s.mem.ListTradesEnteredBetween(start, end)
}

func (s *CSVStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out.Close()
}
