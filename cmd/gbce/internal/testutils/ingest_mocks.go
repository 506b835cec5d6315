package testutils

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/shubham-shewale/gbce-market/pkg/models"
)

type MockTradeSource struct {
	Trades []*models.Trade
	Index  int
	// Err, when set, is returned once the trades run out instead of io.EOF
	Err error
	Mu  sync.Mutex
}

func (m *MockTradeSource) ReadTrade(ctx context.Context) (*models.Trade, error) {
	m.Mu.Lock()
	defer m.Mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Index >= len(m.Trades) {
		if m.Err != nil {
			return nil, m.Err
		}
		return nil, io.EOF
	}

	trade := m.Trades[m.Index]
	m.Index++
	return trade, nil
}

// MockRecorder records trades per symbol in arrival order.
type MockRecorder struct {
	BySymbol map[string][]models.Trade
	Reject   map[string]bool
	Mu       sync.Mutex
}

func NewMockRecorder() *MockRecorder {
	return &MockRecorder{
		BySymbol: make(map[string][]models.Trade),
		Reject:   make(map[string]bool),
	}
}

func (m *MockRecorder) RecordTrade(trade *models.Trade) error {
	m.Mu.Lock()
	defer m.Mu.Unlock()

	if m.Reject[trade.Symbol] {
		return fmt.Errorf("%w: %s rejected", models.ErrInvalidArgument, trade.Symbol)
	}
	m.BySymbol[trade.Symbol] = append(m.BySymbol[trade.Symbol], *trade)
	return nil
}
