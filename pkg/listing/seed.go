package listing

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"

	"github.com/shubham-shewale/gbce-market/pkg/models"
)

// SeedFile is the YAML layout of a stock seed document.
type SeedFile struct {
	Stocks []StockEntry `yaml:"stocks"`
}

type StockEntry struct {
	Symbol        string          `yaml:"symbol"`
	Type          string          `yaml:"type"`
	LastDividend  decimal.Decimal `yaml:"last_dividend"`
	FixedDividend decimal.Decimal `yaml:"fixed_dividend"`
	ParValue      decimal.Decimal `yaml:"par_value"`
}

// DefaultSeed is the GBCE sample table. Dividends and par values are in pennies.
const DefaultSeed = `
stocks:
  - {symbol: TEA, type: common,    last_dividend: 0,  par_value: 100}
  - {symbol: POP, type: common,    last_dividend: 8,  par_value: 100}
  - {symbol: ALE, type: common,    last_dividend: 23, par_value: 60}
  - {symbol: GIN, type: preferred, last_dividend: 8,  fixed_dividend: 0.02, par_value: 100}
  - {symbol: JOE, type: common,    last_dividend: 13, par_value: 250}
`

// LoadSeed decodes a YAML seed document into stocks.
func LoadSeed(r io.Reader) ([]*models.Stock, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}

	var file SeedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}

	stocks := make([]*models.Stock, 0, len(file.Stocks))
	for i, entry := range file.Stocks {
		stock, err := entry.toStock()
		if err != nil {
			return nil, fmt.Errorf("seed entry %d: %w", i, err)
		}
		stocks = append(stocks, stock)
	}
	return stocks, nil
}

// LoadSeedFile reads a seed document from disk.
func LoadSeedFile(path string) ([]*models.Stock, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return LoadSeed(f)
}

// Seed lists every stock, stopping at the first failure.
func Seed(l Listing, stocks []*models.Stock) error {
	for _, s := range stocks {
		if err := l.List(s); err != nil {
			return err
		}
	}
	return nil
}

// NewSeededListing builds a listing from the given seed document, or from
// DefaultSeed when path is empty.
func NewSeededListing(path string) (*MemoryListing, error) {
	var (
		stocks []*models.Stock
		err    error
	)
	if path == "" {
		stocks, err = LoadSeed(strings.NewReader(DefaultSeed))
	} else {
		stocks, err = LoadSeedFile(path)
	}
	if err != nil {
		return nil, err
	}

	l := NewMemoryListing()
	if err := Seed(l, stocks); err != nil {
		return nil, err
	}
	return l, nil
}

func (e StockEntry) toStock() (*models.Stock, error) {
	kind, err := models.ParseStockType(e.Type)
	if err != nil {
		return nil, err
	}
	if kind == models.Preferred {
		return models.NewPreferredStock(e.Symbol, e.LastDividend, e.ParValue, e.FixedDividend)
	}
	return models.NewCommonStock(e.Symbol, e.LastDividend, e.ParValue)
}
