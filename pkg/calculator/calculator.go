// Package calculator holds the pure numeric transforms behind the market
// figures. Every intermediate result is rounded through arith.Decimal64.
package calculator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shubham-shewale/gbce-market/pkg/arith"
	"github.com/shubham-shewale/gbce-market/pkg/models"
)

// Service computes market figures from stocks, prices and trades.
type Service interface {
	VolumeWeightedPrice(trades []models.Trade) decimal.Decimal
	AllShareIndex(prices []decimal.Decimal) decimal.Decimal
	DividendYield(stock *models.Stock, price *decimal.Decimal) (decimal.Decimal, error)
	PERatio(stock *models.Stock, price *decimal.Decimal) (decimal.Decimal, error)
}

// Ensure Calculator implements Service
var _ Service = (*Calculator)(nil)

type Options struct {
	// LegacyIndexExponent computes the index exponent as the integer 1/n,
	// so any index over two or more prices is exactly 1.
	LegacyIndexExponent bool
}

type Calculator struct {
	ctx  arith.Context
	opts Options
}

func NewCalculator(opts Options) *Calculator {
	return &Calculator{
		ctx:  arith.Decimal64,
		opts: opts,
	}
}

// VolumeWeightedPrice returns sum(price*quantity) / sum(quantity), or zero
// for an empty trade set.
func (c *Calculator) VolumeWeightedPrice(trades []models.Trade) decimal.Decimal {
	if len(trades) == 0 {
		return decimal.Zero
	}

	turnover := decimal.Zero
	volume := decimal.Zero
	for _, trade := range trades {
		qty := decimal.NewFromInt(trade.Quantity)
		turnover = c.ctx.Add(turnover, c.ctx.Mul(trade.Price, qty))
		volume = c.ctx.Add(volume, qty)
	}

	vwsp, err := c.ctx.Quo(turnover, volume)
	if err != nil {
		// Unreachable for stored trades: Trade.Validate rejects non-positive
		// quantities, so volume is at least one.
		return decimal.Zero
	}
	return vwsp
}

// AllShareIndex returns the geometric mean of prices, or zero when there are none.
func (c *Calculator) AllShareIndex(prices []decimal.Decimal) decimal.Decimal {
	n := len(prices)
	if n == 0 {
		return decimal.Zero
	}

	product := decimal.NewFromInt(1)
	for _, p := range prices {
		product = c.ctx.Mul(product, p)
	}

	if c.opts.LegacyIndexExponent {
		if n == 1 {
			return product
		}
		return decimal.NewFromInt(1)
	}

	if product.IsZero() {
		return decimal.Zero
	}

	index, err := c.ctx.Root(product, n)
	if err != nil {
		// Unreachable from Market: prices are VWSPs of validated trades or
		// zero, and a zero product returned above.
		return decimal.Zero
	}
	return index
}

// DividendYield is lastDividend/price for COMMON stocks and
// fixedDividend*parValue/price for PREFERRED stocks.
func (c *Calculator) DividendYield(stock *models.Stock, price *decimal.Decimal) (decimal.Decimal, error) {
	if stock == nil {
		return decimal.Zero, fmt.Errorf("%w: stock is nil", models.ErrInvalidArgument)
	}
	if err := validatePrice(stock.Symbol(), price); err != nil {
		return decimal.Zero, err
	}

	dividend := stock.LastDividend()
	if fixed, ok := stock.FixedDividend(); ok {
		dividend = c.ctx.Mul(fixed, stock.ParValue())
	}

	yield, err := c.ctx.Quo(dividend, *price)
	if err != nil {
		return decimal.Zero, arithmeticError("dividend yield", stock.Symbol(), err)
	}
	return yield, nil
}

// PERatio is price/lastDividend. A zero dividend is an arithmetic error.
func (c *Calculator) PERatio(stock *models.Stock, price *decimal.Decimal) (decimal.Decimal, error) {
	if stock == nil {
		return decimal.Zero, fmt.Errorf("%w: stock is nil", models.ErrInvalidArgument)
	}
	if err := validatePrice(stock.Symbol(), price); err != nil {
		return decimal.Zero, err
	}

	ratio, err := c.ctx.Quo(*price, stock.LastDividend())
	if err != nil {
		return decimal.Zero, arithmeticError("p/e ratio", stock.Symbol(), err)
	}
	return ratio, nil
}

func validatePrice(symbol string, price *decimal.Decimal) error {
	if price == nil {
		return fmt.Errorf("%w: no price given for %s", models.ErrInvalidArgument, symbol)
	}
	if !price.IsPositive() {
		return fmt.Errorf("%w: price %s for %s must be positive", models.ErrInvalidArgument, price.String(), symbol)
	}
	return nil
}

func arithmeticError(figure, symbol string, err error) error {
	if errors.Is(err, arith.ErrDivisionByZero) {
		return fmt.Errorf("%w: %s for %s: %w", models.ErrArithmetic, figure, symbol, err)
	}
	return fmt.Errorf("%s for %s: %w", figure, symbol, err)
}
