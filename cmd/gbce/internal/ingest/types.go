package ingest

import (
	"context"

	"github.com/shubham-shewale/gbce-market/pkg/models"
)

// TradeSource abstracts the input stream. ReadTrade returns io.EOF once exhausted.
type TradeSource interface {
	ReadTrade(ctx context.Context) (*models.Trade, error)
}

// Recorder abstracts the market the trades are recorded into
type Recorder interface {
	RecordTrade(trade *models.Trade) error
}

// Stats summarises one ingest run.
type Stats struct {
	Recorded int64
	Rejected int64
	Skipped  int64
}
