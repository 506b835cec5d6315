package listing

import (
	"fmt"
	"sort"
	"sync"

	"github.com/shubham-shewale/gbce-market/pkg/models"
)

// Listing is the registry of tradable stocks keyed by symbol.
type Listing interface {
	IsListed(symbol string) bool
	Get(symbol string) (*models.Stock, bool)
	List(stock *models.Stock) error
	AllStocks() []*models.Stock
}

// Ensure MemoryListing implements Listing
var _ Listing = (*MemoryListing)(nil)

type MemoryListing struct {
	mu     sync.RWMutex
	stocks map[string]*models.Stock
}

func NewMemoryListing() *MemoryListing {
	return &MemoryListing{
		stocks: make(map[string]*models.Stock),
	}
}

func (l *MemoryListing) IsListed(symbol string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.stocks[symbol]
	return ok
}

func (l *MemoryListing) Get(symbol string) (*models.Stock, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.stocks[symbol]
	return s, ok
}

// List adds the stock, replacing any stock already listed under its symbol.
func (l *MemoryListing) List(stock *models.Stock) error {
	if stock == nil {
		return fmt.Errorf("%w: stock is nil", models.ErrInvalidArgument)
	}

	l.mu.Lock()
	l.stocks[stock.Symbol()] = stock
	l.mu.Unlock()
	return nil
}

// AllStocks returns a snapshot of the listed stocks ordered by symbol.
func (l *MemoryListing) AllStocks() []*models.Stock {
	l.mu.RLock()
	stocks := make([]*models.Stock, 0, len(l.stocks))
	for _, s := range l.stocks {
		stocks = append(stocks, s)
	}
	l.mu.RUnlock()

	sort.Slice(stocks, func(i, j int) bool {
		return stocks[i].Symbol() < stocks[j].Symbol()
	})
	return stocks
}
