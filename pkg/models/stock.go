package models

import (
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// StockType distinguishes the two dividend regimes of a listed stock.
type StockType int

const (
	Common StockType = iota + 1
	Preferred
)

func (t StockType) String() string {
	switch t {
	case Common:
		return "COMMON"
	case Preferred:
		return "PREFERRED"
	default:
		return fmt.Sprintf("StockType(%d)", int(t))
	}
}

// ParseStockType accepts "common" or "preferred" in any case.
func ParseStockType(s string) (StockType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "COMMON":
		return Common, nil
	case "PREFERRED":
		return Preferred, nil
	}
	return 0, fmt.Errorf("%w: unknown stock type %q", ErrInvalidArgument, s)
}

// Stock is a listed security. The symbol and dividend terms are fixed at
// construction; only the cached price changes afterwards.
type Stock struct {
	symbol        string
	kind          StockType
	lastDividend  decimal.Decimal
	parValue      decimal.Decimal
	fixedDividend decimal.Decimal

	mu    sync.RWMutex
	price decimal.Decimal
}

// NewCommonStock creates a COMMON stock.
func NewCommonStock(symbol string, lastDividend, parValue decimal.Decimal) (*Stock, error) {
	if err := validateTerms(symbol, lastDividend, parValue, decimal.Zero); err != nil {
		return nil, err
	}
	return &Stock{
		symbol:       symbol,
		kind:         Common,
		lastDividend: lastDividend,
		parValue:     parValue,
	}, nil
}

// NewPreferredStock creates a PREFERRED stock. fixedDividend is a fraction of
// par value, so 2% is written 0.02.
func NewPreferredStock(symbol string, lastDividend, parValue, fixedDividend decimal.Decimal) (*Stock, error) {
	if err := validateTerms(symbol, lastDividend, parValue, fixedDividend); err != nil {
		return nil, err
	}
	return &Stock{
		symbol:        symbol,
		kind:          Preferred,
		lastDividend:  lastDividend,
		parValue:      parValue,
		fixedDividend: fixedDividend,
	}, nil
}

func validateTerms(symbol string, lastDividend, parValue, fixedDividend decimal.Decimal) error {
	if strings.TrimSpace(symbol) == "" {
		return fmt.Errorf("%w: stock symbol is empty", ErrInvalidArgument)
	}
	if lastDividend.IsNegative() || parValue.IsNegative() || fixedDividend.IsNegative() {
		return fmt.Errorf("%w: stock %s has negative dividend terms", ErrInvalidArgument, symbol)
	}
	return nil
}

func (s *Stock) Symbol() string                { return s.symbol }
func (s *Stock) Type() StockType               { return s.kind }
func (s *Stock) LastDividend() decimal.Decimal { return s.lastDividend }
func (s *Stock) ParValue() decimal.Decimal     { return s.parValue }

// FixedDividend reports the fixed dividend rate; ok is false for COMMON stocks.
func (s *Stock) FixedDividend() (decimal.Decimal, bool) {
	if s.kind != Preferred {
		return decimal.Zero, false
	}
	return s.fixedDividend, true
}

// Price returns the last cached price, zero until one is set.
func (s *Stock) Price() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.price
}

func (s *Stock) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return fmt.Errorf("%w: negative price %s for %s", ErrInvalidArgument, price, s.symbol)
	}
	s.mu.Lock()
	s.price = price
	s.mu.Unlock()
	return nil
}

func (s *Stock) String() string {
	return fmt.Sprintf("%s[%s]", s.symbol, s.kind)
}
