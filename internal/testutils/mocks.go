package testutils

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shubham-shewale/gbce-market/pkg/arith"
	"github.com/shubham-shewale/gbce-market/pkg/models"
	"github.com/shubham-shewale/gbce-market/pkg/tradestore"
)

// MockClock is a manually driven clock.
type MockClock struct {
	CurrentTime time.Time
	Mu          sync.Mutex
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{CurrentTime: t}
}

func (m *MockClock) Now() time.Time {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	return m.CurrentTime
}

func (m *MockClock) Advance(d time.Duration) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	m.CurrentTime = m.CurrentTime.Add(d)
}

// Interval is one recorded TradesInInterval call.
type Interval struct {
	Symbol     string
	Start, End time.Time
}

// SpyStore wraps a real store and records the calls made against it.
type SpyStore struct {
	tradestore.Store

	Recorded  []models.Trade
	Intervals []Interval
	// RecordErr, when set, is returned instead of delegating RecordTrade.
	RecordErr error
	Mu        sync.Mutex
}

func NewSpyStore() *SpyStore {
	return &SpyStore{Store: tradestore.NewMemoryStore()}
}

func (s *SpyStore) RecordTrade(trade *models.Trade) error {
	s.Mu.Lock()
	if s.RecordErr != nil {
		err := s.RecordErr
		s.Mu.Unlock()
		return err
	}
	if trade != nil {
		s.Recorded = append(s.Recorded, *trade)
	}
	s.Mu.Unlock()
	return s.Store.RecordTrade(trade)
}

func (s *SpyStore) TradesInInterval(symbol string, start, end time.Time) []models.Trade {
	s.Mu.Lock()
	s.Intervals = append(s.Intervals, Interval{Symbol: symbol, Start: start, End: end})
	s.Mu.Unlock()
	return s.Store.TradesInInterval(symbol, start, end)
}

// Dec parses a decimal literal, panicking on malformed input.
func Dec(s string) decimal.Decimal {
	return arith.MustParse(s)
}

// NewTrade builds a BUY trade or fails the test.
func NewTrade(t testing.TB, symbol string, ts time.Time, qty int64, price string) *models.Trade {
	t.Helper()
	trade, err := models.NewTrade(symbol, ts, qty, models.Buy, Dec(price))
	if err != nil {
		t.Fatalf("NewTrade(%s) failed: %v", symbol, err)
	}
	return trade
}

// SampleStocks returns the five exchange stocks with unit par values, keyed by symbol.
func SampleStocks(t testing.TB) map[string]*models.Stock {
	t.Helper()

	must := func(s *models.Stock, err error) *models.Stock {
		if err != nil {
			t.Fatalf("building sample stock failed: %v", err)
		}
		return s
	}

	return map[string]*models.Stock{
		"TEA": must(models.NewCommonStock("TEA", Dec("0"), Dec("1"))),
		"POP": must(models.NewCommonStock("POP", Dec("0.08"), Dec("1"))),
		"ALE": must(models.NewCommonStock("ALE", Dec("0.23"), Dec("0.6"))),
		"GIN": must(models.NewPreferredStock("GIN", Dec("0.08"), Dec("1"), Dec("0.02"))),
		"JOE": must(models.NewCommonStock("JOE", Dec("0.13"), Dec("2.5"))),
	}
}
