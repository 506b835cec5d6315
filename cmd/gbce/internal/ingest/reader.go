package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/shubham-shewale/gbce-market/pkg/arith"
	"github.com/shubham-shewale/gbce-market/pkg/models"
)

const fieldCount = 5

// Ensure CSVReader implements TradeSource
var _ TradeSource = (*CSVReader)(nil)

// CSVReader streams trades from CSV rows of the form
// timestamp(RFC3339),symbol,side,quantity,price after a header line.
type CSVReader struct {
	r       *csv.Reader
	logger  *zap.Logger
	header  bool
	line    int
	skipped atomic.Int64
}

func NewCSVReader(r io.Reader, logger *zap.Logger) *CSVReader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CSVReader{r: cr, logger: logger}
}

// ReadTrade returns the next well-formed trade. Malformed rows are logged and skipped.
func (c *CSVReader) ReadTrade(ctx context.Context) (*models.Trade, error) {
	if !c.header {
		c.header = true
		c.line++
		if _, err := c.r.Read(); err != nil {
			return nil, err
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := c.r.Read()
		if err == io.EOF {
			return nil, io.EOF
		}
		c.line++
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				c.skip("Skipping bad CSV line", zap.Error(err))
				continue
			}
			return nil, err
		}

		trade, err := parseRecord(record)
		if err != nil {
			c.skip("Skipping malformed trade row", zap.Error(err))
			continue
		}
		return trade, nil
	}
}

// Skipped is the number of rows dropped so far.
func (c *CSVReader) Skipped() int64 {
	return c.skipped.Load()
}

func (c *CSVReader) skip(msg string, fields ...zap.Field) {
	c.skipped.Add(1)
	c.logger.Warn(msg, append(fields, zap.Int("line", c.line))...)
}

func parseRecord(record []string) (*models.Trade, error) {
	if len(record) < fieldCount {
		return nil, fmt.Errorf("expected %d fields, got %d", fieldCount, len(record))
	}

	ts, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(record[0]))
	if err != nil {
		return nil, fmt.Errorf("timestamp: %w", err)
	}
	side, err := models.ParseSide(record[2])
	if err != nil {
		return nil, err
	}
	qty, err := strconv.ParseInt(strings.TrimSpace(record[3]), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("quantity: %w", err)
	}
	price, err := arith.Parse(record[4])
	if err != nil {
		return nil, fmt.Errorf("price: %w", err)
	}

	return models.NewTrade(strings.TrimSpace(record[1]), ts, qty, side, price)
}
