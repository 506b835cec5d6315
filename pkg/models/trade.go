package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Side int

const (
	Buy Side = iota + 1
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

func ParseSide(s string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY", "B":
		return Buy, nil
	case "SELL", "S":
		return Sell, nil
	}
	return 0, fmt.Errorf("%w: unknown trade side %q", ErrInvalidArgument, s)
}

// Trade is a single executed trade. Values are treated as immutable once recorded.
type Trade struct {
	Symbol    string          `json:"symbol"`
	Timestamp time.Time       `json:"timestamp"`
	Quantity  int64           `json:"quantity"`
	Side      Side            `json:"side"`
	Price     decimal.Decimal `json:"price"`
}

// NewTrade validates and builds a trade.
func NewTrade(symbol string, ts time.Time, quantity int64, side Side, price decimal.Decimal) (*Trade, error) {
	t := &Trade{
		Symbol:    symbol,
		Timestamp: ts,
		Quantity:  quantity,
		Side:      side,
		Price:     price,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks a trade built without NewTrade.
func (t Trade) Validate() error {
	if strings.TrimSpace(t.Symbol) == "" {
		return fmt.Errorf("%w: trade symbol is empty", ErrInvalidArgument)
	}
	if t.Quantity <= 0 {
		return fmt.Errorf("%w: trade quantity %d must be positive", ErrInvalidArgument, t.Quantity)
	}
	if t.Side != Buy && t.Side != Sell {
		return fmt.Errorf("%w: trade side %v", ErrInvalidArgument, t.Side)
	}
	if !t.Price.IsPositive() {
		return fmt.Errorf("%w: trade price %s must be positive", ErrInvalidArgument, t.Price)
	}
	return nil
}

// Equal reports structural equality. Prices compare numerically, so 10 and 10.00 match.
func (t Trade) Equal(other Trade) bool {
	return t.Symbol == other.Symbol &&
		t.Timestamp.Equal(other.Timestamp) &&
		t.Quantity == other.Quantity &&
		t.Side == other.Side &&
		t.Price.Equal(other.Price)
}

func (t Trade) String() string {
	return fmt.Sprintf("%s %s %d@%s %s", t.Symbol, t.Side, t.Quantity, t.Price, t.Timestamp.Format(time.RFC3339Nano))
}
