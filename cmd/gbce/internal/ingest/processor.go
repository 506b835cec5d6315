package ingest

import (
	"context"
	"errors"
	"hash/fnv"
	"io"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/shubham-shewale/gbce-market/pkg/models"
)

type Processor struct {
	logger     *zap.Logger
	source     TradeSource
	recorder   Recorder
	numWorkers int

	recorded atomic.Int64
	rejected atomic.Int64
}

func NewProcessor(logger *zap.Logger, source TradeSource, recorder Recorder, numWorkers int) *Processor {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		logger:     logger,
		source:     source,
		recorder:   recorder,
		numWorkers: numWorkers,
	}
}

// Run drains the source into the recorder and returns once every worker has
// finished. Trades for one symbol always go to the same worker, so their
// relative order is kept.
func (p *Processor) Run(ctx context.Context) (Stats, error) {
	workerChans := make([]chan *models.Trade, p.numWorkers)
	var wg sync.WaitGroup

	for i := 0; i < p.numWorkers; i++ {
		workerChans[i] = make(chan *models.Trade, 100)
		wg.Add(1)
		go p.worker(i, workerChans[i], &wg)
	}

	p.logger.Info("Ingest started", zap.Int("workers", p.numWorkers))
	readErr := p.dispatch(ctx, workerChans)

	for _, ch := range workerChans {
		close(ch)
	}
	p.logger.Info("Waiting for workers to drain...")
	wg.Wait()

	stats := Stats{
		Recorded: p.recorded.Load(),
		Rejected: p.rejected.Load(),
	}
	if counter, ok := p.source.(interface{ Skipped() int64 }); ok {
		stats.Skipped = counter.Skipped()
	}
	p.logger.Info("Ingest finished",
		zap.Int64("recorded", stats.Recorded),
		zap.Int64("rejected", stats.Rejected),
		zap.Int64("skipped", stats.Skipped),
	)
	return stats, readErr
}

func (p *Processor) dispatch(ctx context.Context, workerChans []chan *models.Trade) error {
	for {
		trade, err := p.source.ReadTrade(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		workerID := getWorkerID(trade.Symbol, p.numWorkers)

		select {
		case workerChans[workerID] <- trade:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (p *Processor) worker(id int, trades <-chan *models.Trade, wg *sync.WaitGroup) {
	defer wg.Done()

	for trade := range trades {
		if err := p.recorder.RecordTrade(trade); err != nil {
			p.rejected.Add(1)
			p.logger.Warn("Trade rejected", zap.Error(err), zap.String("symbol", trade.Symbol), zap.Int("worker_id", id))
			continue
		}
		p.recorded.Add(1)
	}
}

func getWorkerID(symbol string, numWorkers int) int {
	h := fnv.New32a()
	h.Write([]byte(symbol))
	return int(h.Sum32() % uint32(numWorkers))
}
