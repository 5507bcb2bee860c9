package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/wsfolio"
	"github.com/etnz/wsfolio/wealthsimple"
)

func testTables(t *testing.T) (primary, mirror *wsfolio.AccountTable) {
	t.Helper()
	policy, err := wsfolio.NewPolicy(map[string]float64{"X": 0.30, "Y": 0.70}, "")
	if err != nil {
		t.Fatalf("NewPolicy() error = %v", err)
	}
	quotes := wsfolio.MarketData{
		"X": {Last: 120, Bid: 119, Ask: 121},
		"Y": {Last: 100, Bid: 99, Ask: 101},
	}
	primary, err = wsfolio.NewAccountTable(wsfolio.AccountInput{
		Summary: wsfolio.AccountSummary{ID: "tfsa", NetLiquidationValue: 8000},
		Positions: []wsfolio.Position{
			{SecurityID: "sec-x", Symbol: "X", Name: "X Corp", Quantity: 10, BookValue: 1000},
			{SecurityID: "sec-y", Symbol: "Y", Name: "Y Fund", Quantity: 20, BookValue: 4000},
		},
		Quotes:          quotes,
		Policy:          policy,
		DailyDeposit:    100,
		TradingDaysLeft: 20,
	})
	if err != nil {
		t.Fatalf("NewAccountTable(tfsa) error = %v", err)
	}
	mirror, err = wsfolio.NewAccountTable(wsfolio.AccountInput{
		Summary: wsfolio.AccountSummary{ID: "rrsp", NetLiquidationValue: 2000},
		Positions: []wsfolio.Position{
			{SecurityID: "sec-x", Symbol: "X", Name: "X Corp", Quantity: 5, BookValue: 600},
		},
		Quotes:          quotes,
		Policy:          policy,
		TradingDaysLeft: 20,
	})
	if err != nil {
		t.Fatalf("NewAccountTable(rrsp) error = %v", err)
	}
	return primary, mirror
}

func contains(t *testing.T, got string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("output does not contain %q:\n%s", want, got)
		}
	}
}

func TestAccountMarkdown(t *testing.T) {
	primary, _ := testTables(t)
	got := AccountMarkdown("TFSA", primary)

	contains(t, got,
		"# TFSA",
		"| X | X Corp | 10.0 | $100.00 | $120.00 |",
		"+20.00%",    // gain
		"$1,200.00",  // market value
		"+$1,200.00", // guidance fix toward the 30% target
		"| **Invested** |",
		"| **Balance** | $8,000.00 |",
	)
	// Y holds the bigger share and renders first.
	if strings.Index(got, "| Y |") > strings.Index(got, "| X |") {
		t.Errorf("rows are not sorted by descending share:\n%s", got)
	}
}

func TestCombinedMarkdown(t *testing.T) {
	primary, mirror := testTables(t)
	combined, err := wsfolio.NewCombinedTable([]*wsfolio.AccountTable{primary, mirror})
	if err != nil {
		t.Fatalf("NewCombinedTable() error = %v", err)
	}
	got := CombinedMarkdown("Combined", combined)

	contains(t, got,
		"# Combined",
		"| X | X Corp | 15.0 |",
		"| **tfsa** | $8,000.00 | 80.00% |",
		"| **rrsp** | $2,000.00 | 20.00% |",
		"| **Balance** | $10,000.00 |",
	)
}

func TestMirrorMarkdown(t *testing.T) {
	primary, mirror := testTables(t)
	got := MirrorMarkdown("RRSP mirror", wsfolio.NewMirrorTable(primary, mirror, nil))

	contains(t, got,
		"# RRSP mirror",
		"| Fix % | Fix Amount | Fix Quantity |",
		"-$300.00", // sell X down to the primary's share
		"-3",       // rounded fix quantity
		"+$500.00", // buy the missing Y
		"| **Lock-in** |",
	)
}

func TestTradesMarkdown(t *testing.T) {
	trades := []wsfolio.Trade{
		{Symbol: "Y", Name: "Y Fund", Quantity: 4.9505, LimitPrice: 101},
	}
	quotes := wsfolio.MarketData{"Y": {Last: 100, Bid: 99, Ask: 101}}

	got, err := TradesMarkdown("Trades", trades, quotes)
	if err != nil {
		t.Fatalf("TradesMarkdown() error = %v", err)
	}
	contains(t, got,
		"| Y | Y Fund | $99.00 | $101.00 | $101.00 | +4.95 | +$500.00 |",
	)

	if _, err := TradesMarkdown("Trades", trades, wsfolio.MarketData{}); err == nil {
		t.Fatal("TradesMarkdown() with missing quote should fail")
	}
}

func TestTradesMarkdownEmpty(t *testing.T) {
	got, err := TradesMarkdown("Trades", nil, nil)
	if err != nil {
		t.Fatalf("TradesMarkdown() error = %v", err)
	}
	contains(t, got, "Nothing to trade.")
}

func TestHistoryMarkdown(t *testing.T) {
	limit := wealthsimple.Money{}
	trades := []wealthsimple.TradeActivity{
		{Symbol: "X", SecurityName: "X Corp", OrderType: "sell_quantity",
			Quantity: 3, LimitPrice: &limit, Status: "filled", CreatedAt: "2025-08-29T14:30:00Z"},
	}
	got := HistoryMarkdown("Past trades", trades)
	contains(t, got, "| 2025-08-29T14:30:00Z | X | X Corp |", "-3.00", "filled")
}

func TestTaxMarkdown(t *testing.T) {
	tax := wsfolio.CalculateIncomeTax(100000, 10000, 0)
	federal, ontario := wsfolio.MarginalTaxRates(90000)
	got := TaxMarkdown(100000, 10000, 0, tax, federal, ontario)

	contains(t, got,
		"| Employment income | $100,000.00 |",
		"| RRSP deduction | -$10,000.00 |",
		"| **Total tax** |",
		"20.50% federal",
	)
}
