// Package market is the entry point a host application uses: it checks
// symbols against the listing, routes trades to the store and asks the
// calculator for figures over the trailing window.
package market

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shubham-shewale/gbce-market/pkg/calculator"
	"github.com/shubham-shewale/gbce-market/pkg/listing"
	"github.com/shubham-shewale/gbce-market/pkg/models"
	"github.com/shubham-shewale/gbce-market/pkg/tradestore"
)

// DefaultWindow is the trailing period used for the volume weighted price.
const DefaultWindow = 15 * time.Minute

type Market struct {
	store   tradestore.Store
	calc    calculator.Service
	listing listing.Listing
	clock   Clock
	window  time.Duration
	logger  *zap.Logger
}

func NewMarket(store tradestore.Store, calc calculator.Service, l listing.Listing, clock Clock, window time.Duration, logger *zap.Logger) *Market {
	if window <= 0 {
		window = DefaultWindow
	}
	if clock == nil {
		clock = RealClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Market{
		store:   store,
		calc:    calc,
		listing: l,
		clock:   clock,
		window:  window,
		logger:  logger,
	}
}

func (m *Market) DividendYield(symbol string, price *decimal.Decimal) (decimal.Decimal, error) {
	stock, err := m.listed(symbol)
	if err != nil {
		return decimal.Zero, err
	}
	return m.calc.DividendYield(stock, price)
}

func (m *Market) PERatio(symbol string, price *decimal.Decimal) (decimal.Decimal, error) {
	stock, err := m.listed(symbol)
	if err != nil {
		return decimal.Zero, err
	}
	return m.calc.PERatio(stock, price)
}

// RecordTrade stores a trade for a listed stock.
func (m *Market) RecordTrade(trade *models.Trade) error {
	if trade == nil {
		return fmt.Errorf("%w: trade is nil", models.ErrInvalidArgument)
	}
	if err := trade.Validate(); err != nil {
		return err
	}
	if _, err := m.listed(trade.Symbol); err != nil {
		return err
	}

	if err := m.store.RecordTrade(trade); err != nil {
		return err
	}
	m.logger.Debug("Trade recorded",
		zap.String("symbol", trade.Symbol),
		zap.Stringer("side", trade.Side),
		zap.Int64("quantity", trade.Quantity),
		zap.Stringer("price", trade.Price),
	)
	return nil
}

// VolumeWeightedPrice covers the trades of the last window, both ends inclusive.
func (m *Market) VolumeWeightedPrice(symbol string) (decimal.Decimal, error) {
	if _, err := m.listed(symbol); err != nil {
		return decimal.Zero, err
	}
	return m.windowedPrice(symbol), nil
}

// AllShareIndex refreshes every listed stock's price with its current volume
// weighted price and returns the geometric mean of those prices.
func (m *Market) AllShareIndex() (decimal.Decimal, error) {
	stocks := m.listing.AllStocks()
	prices := make([]decimal.Decimal, 0, len(stocks))

	for _, stock := range stocks {
		price := m.windowedPrice(stock.Symbol())
		if err := stock.SetPrice(price); err != nil {
			return decimal.Zero, err
		}
		prices = append(prices, price)
	}

	index := m.calc.AllShareIndex(prices)
	m.logger.Debug("All share index computed", zap.Int("stocks", len(prices)), zap.Stringer("index", index))
	return index, nil
}

func (m *Market) windowedPrice(symbol string) decimal.Decimal {
	end := m.clock.Now()
	start := end.Add(-m.window)

	trades := m.store.TradesInInterval(symbol, start, end)
	vwsp := m.calc.VolumeWeightedPrice(trades)

	m.logger.Debug("Volume weighted price computed",
		zap.String("symbol", symbol),
		zap.Int("trades", len(trades)),
		zap.Time("from", start),
		zap.Time("to", end),
		zap.Stringer("vwsp", vwsp),
	)
	return vwsp
}

func (m *Market) listed(symbol string) (*models.Stock, error) {
	stock, ok := m.listing.Get(symbol)
	if !ok {
		return nil, fmt.Errorf("%w: stock %q is not listed", models.ErrInvalidArgument, symbol)
	}
	return stock, nil
}
