package tradestore

import (
	"time"

	"github.com/shubham-shewale/gbce-market/pkg/models"
)

// Store records trades and answers per-symbol interval queries.
type Store interface {
	RecordTrade(trade *models.Trade) error
	TradesInInterval(symbol string, start, end time.Time) []models.Trade
}
