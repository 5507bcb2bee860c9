package wsfolio

import (
	"errors"
	"testing"
)

func testRowInput() RowInput {
	return RowInput{
		Position:        Position{SecurityID: "sec-x", Symbol: "X", Name: "X Corp", Quantity: 10, BookValue: 1000},
		Quote:           testQuotes["X"],
		EffectiveNLV:    8000,
		Target:          0.30,
		DailyBuy:        25,
		DailyDeposit:    100,
		TradingDaysLeft: 20,
	}
}

func TestNewRow(t *testing.T) {
	row, err := NewRow(testRowInput())
	if err != nil {
		t.Fatalf("NewRow() error = %v", err)
	}

	checkAlmost(t, "MarketValue", row.MarketValue, 1200)
	checkAlmost(t, "BookAverage", row.BookAverage, 100)
	checkAlmost(t, "Share", row.Share, 0.15)
	checkAlmost(t, "GainPct", row.GainPct, 0.20)
	checkAlmost(t, "TotalGain", row.TotalGain, 200)
	// Buying $250 at the ask: round(250/121)=2 shares for $242, moving the
	// average cost from 100 to 1242/12=103.5.
	checkAlmost(t, "DollarImpact", row.DollarImpact, 0.035)
	checkAlmost(t, "GuidanceDelta", row.GuidanceDelta, 1200)
	// 0.30 of the $100 daily deposit, plus 1200/20 to close the gap.
	checkAlmost(t, "GuidanceDailyBuy", row.GuidanceDailyBuy, 90)
	checkAlmost(t, "DailyBuyFix", row.DailyBuyFix, 65)
	if row.TradingDaysLeft != 20 {
		t.Errorf("TradingDaysLeft = %d, want 20", row.TradingDaysLeft)
	}
}

func TestNewRowIdempotent(t *testing.T) {
	in := testRowInput()
	a, err := NewRow(in)
	if err != nil {
		t.Fatalf("NewRow() error = %v", err)
	}
	b, err := NewRow(in)
	if err != nil {
		t.Fatalf("NewRow() error = %v", err)
	}
	if a != b {
		t.Errorf("NewRow() is not deterministic: %+v != %+v", a, b)
	}
}

func TestNewRowZeroQuantity(t *testing.T) {
	in := testRowInput()
	in.Position.Quantity = 0
	_, err := NewRow(in)
	if !errors.Is(err, ErrInvalidPosition) {
		t.Fatalf("NewRow() error = %v, want ErrInvalidPosition", err)
	}
}

func TestNewRowNoTradingDays(t *testing.T) {
	for _, days := range []int{0, -3} {
		in := testRowInput()
		in.TradingDaysLeft = days
		if _, err := NewRow(in); !errors.Is(err, ErrNoTradingDays) {
			t.Errorf("NewRow(days=%d) error = %v, want ErrNoTradingDays", days, err)
		}
	}
}

func TestNewRowSellGapNeverPacesSells(t *testing.T) {
	in := testRowInput()
	in.Target = 0 // overweight: the guidance delta is negative
	row, err := NewRow(in)
	if err != nil {
		t.Fatalf("NewRow() error = %v", err)
	}
	if row.GuidanceDelta >= 0 {
		t.Fatalf("GuidanceDelta = %v, want negative", row.GuidanceDelta)
	}
	// The daily pacing channel never recommends a net sell.
	checkAlmost(t, "GuidanceDailyBuy", row.GuidanceDailyBuy, 0)
}
