package tests

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/shubham-shewale/gbce-market/cmd/gbce/internal/ingest"
	"github.com/shubham-shewale/gbce-market/internal/testutils"
	"github.com/shubham-shewale/gbce-market/pkg/calculator"
	"github.com/shubham-shewale/gbce-market/pkg/listing"
	"github.com/shubham-shewale/gbce-market/pkg/market"
	"github.com/shubham-shewale/gbce-market/pkg/tradestore"
)

func TestIngest_CSVIntoMarket(t *testing.T) {
	now := time.Date(2024, 3, 1, 16, 0, 0, 0, time.UTC)

	var b strings.Builder
	b.WriteString("timestamp,symbol,side,quantity,price\n")
	for i := 0; i < 40; i++ {
		symbol := []string{"TEA", "POP", "ALE", "GIN"}[i%4]
		ts := now.Add(-time.Duration(i) * 10 * time.Second).Format(time.RFC3339Nano)
		fmt.Fprintf(&b, "%s,%s,BUY,100,10\n", ts, symbol)
	}
	// Not listed, rejected by the market.
	fmt.Fprintf(&b, "%s,XYZ,SELL,5,1\n", now.Format(time.RFC3339Nano))
	// Malformed, skipped by the reader.
	b.WriteString("yesterday,JOE,BUY,1,1\n")

	l, err := listing.NewSeededListing("")
	if err != nil {
		t.Fatalf("NewSeededListing failed: %v", err)
	}
	store := tradestore.NewMemoryStore()
	m := market.NewMarket(store, calculator.NewCalculator(calculator.Options{}), l, testutils.NewMockClock(now), 0, zap.NewNop())

	source := ingest.NewCSVReader(strings.NewReader(b.String()), zap.NewNop())
	stats, err := ingest.NewProcessor(zap.NewNop(), source, m, 4).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if stats.Recorded != 40 || stats.Rejected != 1 || stats.Skipped != 1 {
		t.Errorf("Unexpected stats %+v", stats)
	}
	for _, symbol := range []string{"TEA", "POP", "ALE", "GIN"} {
		if n := store.Len(symbol); n != 10 {
			t.Errorf("%s: expected 10 trades, got %d", symbol, n)
		}
		vwsp, err := m.VolumeWeightedPrice(symbol)
		if err != nil {
			t.Fatalf("VolumeWeightedPrice failed: %v", err)
		}
		if !vwsp.Equal(testutils.Dec("10")) {
			t.Errorf("%s VWSP = %s, want 10", symbol, vwsp)
		}
	}

	// JOE has no trades, so the index collapses to 0.
	if index, _ := m.AllShareIndex(); !index.IsZero() {
		t.Errorf("Index = %s, want 0", index)
	}
}
