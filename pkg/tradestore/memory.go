// Package tradestore keeps executed trades partitioned by symbol and ordered
// by timestamp.
package tradestore

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shubham-shewale/gbce-market/pkg/models"
)

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)

// MemoryStore holds one partition per symbol. The partition index and each
// partition have their own lock, so inserts into one symbol never block
// queries against another.
type MemoryStore struct {
	mu         sync.RWMutex
	partitions map[string]*partition
}

// partition is a slice of trades sorted by timestamp ascending. Trades with
// equal timestamps keep their insertion order.
type partition struct {
	mu     sync.RWMutex
	trades []models.Trade
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		partitions: make(map[string]*partition),
	}
}

// RecordTrade inserts the trade into its symbol's partition. A trade that is
// structurally equal to one already stored is ignored.
func (s *MemoryStore) RecordTrade(trade *models.Trade) error {
	if trade == nil {
		return fmt.Errorf("%w: trade is nil", models.ErrInvalidArgument)
	}
	if err := trade.Validate(); err != nil {
		return err
	}

	p, err := s.partitionFor(trade.Symbol)
	if err != nil {
		return err
	}

	p.insert(*trade)
	return nil
}

// TradesInInterval returns the trades for symbol whose timestamp t satisfies
// t == start || (t after start && t before end) || t == end.
// A start later than end therefore only matches trades sitting exactly on
// one of the two bounds. Unknown symbols yield an empty slice.
func (s *MemoryStore) TradesInInterval(symbol string, start, end time.Time) []models.Trade {
	s.mu.RLock()
	p, ok := s.partitions[symbol]
	s.mu.RUnlock()
	if !ok || p == nil {
		return []models.Trade{}
	}

	return p.between(start, end)
}

// Symbols lists every symbol that has at least one recorded trade, sorted.
func (s *MemoryStore) Symbols() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	symbols := make([]string, 0, len(s.partitions))
	for symbol := range s.partitions {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// Len reports how many trades are stored for symbol.
func (s *MemoryStore) Len(symbol string) int {
	s.mu.RLock()
	p, ok := s.partitions[symbol]
	s.mu.RUnlock()
	if !ok || p == nil {
		return 0
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.trades)
}

func (s *MemoryStore) partitionFor(symbol string) (*partition, error) {
	s.mu.RLock()
	p, ok := s.partitions[symbol]
	s.mu.RUnlock()
	if ok {
		if p == nil {
			return nil, fmt.Errorf("%w: partition for %s is indexed but missing", models.ErrIllegalState, symbol)
		}
		return p, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another writer may have created it between the two locks.
	if p, ok = s.partitions[symbol]; ok {
		if p == nil {
			return nil, fmt.Errorf("%w: partition for %s is indexed but missing", models.ErrIllegalState, symbol)
		}
		return p, nil
	}
	p = &partition{}
	s.partitions[symbol] = p
	return p, nil
}

func (p *partition) insert(trade models.Trade) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	idx := sort.Search(len(p.trades), func(i int) bool {
		return p.trades[i].Timestamp.After(trade.Timestamp)
	})

	for i := idx - 1; i >= 0 && p.trades[i].Timestamp.Equal(trade.Timestamp); i-- {
		if p.trades[i].Equal(trade) {
			return false
		}
	}

	p.trades = append(p.trades, models.Trade{})
	copy(p.trades[idx+1:], p.trades[idx:])
	p.trades[idx] = trade
	return true
}

func (p *partition) between(start, end time.Time) []models.Trade {
	lower, upper := start, end
	if upper.Before(lower) {
		lower, upper = upper, lower
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	first := sort.Search(len(p.trades), func(i int) bool {
		return !p.trades[i].Timestamp.Before(lower)
	})

	result := []models.Trade{}
	for _, trade := range p.trades[first:] {
		if trade.Timestamp.After(upper) {
			break
		}
		if inInterval(trade.Timestamp, start, end) {
			result = append(result, trade)
		}
	}
	return result
}

func inInterval(t, start, end time.Time) bool {
	return t.Equal(start) || (t.After(start) && t.Before(end)) || t.Equal(end)
}
