package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/shubham-shewale/gbce-market/cmd/gbce/internal/ingest"
	"github.com/shubham-shewale/gbce-market/pkg/calculator"
	"github.com/shubham-shewale/gbce-market/pkg/config"
	"github.com/shubham-shewale/gbce-market/pkg/listing"
	"github.com/shubham-shewale/gbce-market/pkg/market"
	"github.com/shubham-shewale/gbce-market/pkg/tradestore"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	logger, err := config.NewLogger(cfg.Logger)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	stocks, err := listing.NewSeededListing(cfg.Listing.SeedFile)
	if err != nil {
		logger.Fatal("Failed to seed listing", zap.Error(err), zap.String("seed_file", cfg.Listing.SeedFile))
	}

	m := market.NewMarket(
		tradestore.NewMemoryStore(),
		calculator.NewCalculator(calculator.Options{LegacyIndexExponent: cfg.Market.LegacyIndexExponent}),
		stocks,
		market.RealClock{},
		cfg.Market.Window,
		logger,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.Ingest.TradesFile != "" {
		if err := ingestFile(ctx, logger, m, cfg.Ingest); err != nil {
			logger.Fatal("Ingest failed", zap.Error(err), zap.String("trades_file", cfg.Ingest.TradesFile))
		}
	}

	report(logger, m, stocks)
}

func ingestFile(ctx context.Context, logger *zap.Logger, m *market.Market, cfg config.IngestConfig) error {
	f, err := os.Open(cfg.TradesFile)
	if err != nil {
		return err
	}
	defer f.Close()

	source := ingest.NewCSVReader(f, logger)
	_, err = ingest.NewProcessor(logger, source, m, cfg.NumWorkers).Run(ctx)
	return err
}

// report logs every figure for every listed stock, priced at its current
// volume weighted price.
func report(logger *zap.Logger, m *market.Market, l listing.Listing) {
	for _, stock := range l.AllStocks() {
		symbol := stock.Symbol()
		fields := []zap.Field{zap.String("symbol", symbol), zap.Stringer("type", stock.Type())}

		vwsp, err := m.VolumeWeightedPrice(symbol)
		if err != nil {
			logger.Error("VWSP failed", zap.Error(err), zap.String("symbol", symbol))
			continue
		}
		fields = append(fields, zap.Stringer("vwsp", vwsp))

		if vwsp.IsPositive() {
			if yield, err := m.DividendYield(symbol, &vwsp); err == nil {
				fields = append(fields, zap.Stringer("dividend_yield", yield))
			} else {
				fields = append(fields, zap.NamedError("dividend_yield_error", err))
			}
			if pe, err := m.PERatio(symbol, &vwsp); err == nil {
				fields = append(fields, zap.Stringer("pe_ratio", pe))
			} else {
				fields = append(fields, zap.NamedError("pe_ratio_error", err))
			}
		}

		logger.Info("Stock figures", fields...)
	}

	index, err := m.AllShareIndex()
	if err != nil {
		logger.Error("All share index failed", zap.Error(err))
		return
	}
	logger.Info("GBCE All Share Index", zap.Stringer("index", index))
}
