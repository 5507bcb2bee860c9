package wsfolio

import (
	"errors"
	"testing"
)

func testCombinedTables(t *testing.T) []*AccountTable {
	t.Helper()
	a, err := NewAccountTable(AccountInput{
		Summary: AccountSummary{ID: "tfsa", NetDeposits: 7000, NetLiquidationValue: 8000},
		Positions: []Position{
			{SecurityID: "sec-x", Symbol: "X", Name: "X Corp", Quantity: 10, BookValue: 1000},
			{SecurityID: "sec-y", Symbol: "Y", Name: "Y Fund", Quantity: 20, BookValue: 4000},
		},
		Quotes:          testQuotes,
		Policy:          testPolicy(t, ""),
		DailyDeposit:    100,
		TradingDaysLeft: 20,
	})
	if err != nil {
		t.Fatalf("NewAccountTable(tfsa) error = %v", err)
	}
	b, err := NewAccountTable(AccountInput{
		Summary: AccountSummary{ID: "rrsp", NetDeposits: 2000, NetLiquidationValue: 2000},
		Positions: []Position{
			{SecurityID: "sec-x", Symbol: "X", Name: "X Corp", Quantity: 5, BookValue: 600},
		},
		Quotes:          testQuotes,
		Policy:          testPolicy(t, ""),
		TradingDaysLeft: 20,
	})
	if err != nil {
		t.Fatalf("NewAccountTable(rrsp) error = %v", err)
	}
	return []*AccountTable{a, b}
}

func TestNewCombinedTable(t *testing.T) {
	c, err := NewCombinedTable(testCombinedTables(t))
	if err != nil {
		t.Fatalf("NewCombinedTable() error = %v", err)
	}

	if c.Summary.ID != "tfsa+rrsp" {
		t.Errorf("Summary.ID = %q, want %q", c.Summary.ID, "tfsa+rrsp")
	}
	checkAlmost(t, "NetLiquidationValue", c.Summary.NetLiquidationValue, 10000)
	checkAlmost(t, "EffectiveNetLiquidationValue", c.EffectiveNetLiquidationValue, 10000)
	checkAlmost(t, "TotalMarketValue", c.TotalMarketValue, 3800)
	checkAlmost(t, "Cash", c.Cash, 6200)
	checkAlmost(t, "TotalInvested", c.TotalInvested, 3800)

	if len(c.Order) != 2 || c.Order[0] != "X" || c.Order[1] != "Y" {
		t.Fatalf("Order = %v, want [X Y]", c.Order)
	}

	x := c.Rows["X"]
	checkAlmost(t, "X.Quantity", x.Quantity, 15)
	checkAlmost(t, "X.MarketValue", x.MarketValue, 1800)
	checkAlmost(t, "X.BookAverage", x.BookAverage, 1600.0/15)
	checkAlmost(t, "X.TotalGain", x.TotalGain, 200)
	checkAlmost(t, "X.GainPct", x.GainPct, 120/(1600.0/15)-1)
	checkAlmost(t, "X.Share", x.Share, 0.18)

	// Y is held only in the first account and carries over unchanged apart
	// from the recomputed share.
	y := c.Rows["Y"]
	checkAlmost(t, "Y.Quantity", y.Quantity, 20)
	checkAlmost(t, "Y.Share", y.Share, 0.20)
}

func TestNewCombinedTableBreakdown(t *testing.T) {
	c, err := NewCombinedTable(testCombinedTables(t))
	if err != nil {
		t.Fatalf("NewCombinedTable() error = %v", err)
	}
	if len(c.Accounts) != 2 {
		t.Fatalf("Accounts = %v, want 2 entries", c.Accounts)
	}
	checkAlmost(t, "tfsa share", c.Breakdown["tfsa"].Share, 0.8)
	checkAlmost(t, "rrsp share", c.Breakdown["rrsp"].Share, 0.2)
	checkAlmost(t, "tfsa NLV", c.Breakdown["tfsa"].NetLiquidationValue, 8000)

	var sum float64
	for _, s := range c.Breakdown {
		sum += s.Share
	}
	checkAlmost(t, "share sum", sum, 1)
}

func TestCombineRowsEmpty(t *testing.T) {
	_, err := combineRows(nil, 10000)
	if !errors.Is(err, ErrEmptyCombine) {
		t.Fatalf("combineRows(nil) error = %v, want ErrEmptyCombine", err)
	}
}
