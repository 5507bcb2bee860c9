// Package renderer turns the allocation tables into markdown. It only
// reads: every table arrives fully computed and is rendered as-is, apart
// from the display sort by descending share of portfolio.
package renderer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/wsfolio"
	"github.com/etnz/wsfolio/wealthsimple"
)

// sortedByShare returns the symbols in descending share order. The input
// order breaks ties, keeping the output stable across runs.
func sortedByShare(order []string, share func(symbol string) float64) []string {
	sorted := slices.Clone(order)
	slices.SortStableFunc(sorted, func(a, b string) int {
		switch {
		case share(a) > share(b):
			return -1
		case share(a) < share(b):
			return 1
		}
		return 0
	})
	return sorted
}

// AccountMarkdown renders one account's full position table with its
// guidance and funding columns.
func AccountMarkdown(title string, t *wsfolio.AccountTable) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintln(&b, "| Symbol | Name | Quantity | Book Avg. | Last | Bid | Ask | Gain % | Total Gain | Market Value | Guidance % | Actual % | Guidance Fix | Guidance Daily Buy | Actual Daily Buy | Daily Buy Fix | Days |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|---:|---:|---:|---:|---:|---:|---:|---:|---:|---:|---:|")
	for _, symbol := range sortedByShare(t.Order, func(s string) float64 { return t.Rows[s].Share }) {
		r := t.Rows[symbol]
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s | %s | %s | %s | %s | %s | %s | %s | %s | %d |\n",
			r.Symbol, r.Name,
			quantity(r.Quantity), cad(r.BookAverage), cad(r.Last),
			cadChange(r.Bid-r.Last), cadChange(r.Ask-r.Last),
			percentChange(r.GainPct), cadChange(r.TotalGain), cad(r.MarketValue),
			percent(r.Target), percent(r.Share), cadChange(r.GuidanceDelta),
			cad(r.GuidanceDailyBuy), cad(r.DailyBuy), cadChange(r.DailyBuyFix),
			r.TradingDaysLeft)
	}
	b.WriteString("\n")
	totals := totalsOf(t)
	totals = append(totals, totalRow{"Balance", cad(t.Summary.NetLiquidationValue), ""})
	writeTotalTable(&b, totals)
	return b.String()
}

// CombinedMarkdown renders the consolidated view of all accounts, with the
// per-account breakdown under the totals.
func CombinedMarkdown(title string, c *wsfolio.CombinedTable) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	writeCombinedRows(&b, &c.AccountTable)
	b.WriteString("\n")
	totals := totalsOf(&c.AccountTable)
	for _, id := range c.Accounts {
		share := c.Breakdown[id]
		totals = append(totals, totalRow{id, cad(share.NetLiquidationValue), percent(share.Share)})
	}
	totals = append(totals, totalRow{"Balance", cad(c.Summary.NetLiquidationValue), ""})
	writeTotalTable(&b, totals)
	return b.String()
}

// MirrorMarkdown renders a mirror account's table with the fix columns
// against the primary account's allocation.
func MirrorMarkdown(title string, m *wsfolio.MirrorTable) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintln(&b, "| Symbol | Name | Quantity | Book Avg. | Last | Gain % | Total Gain | Market Value | Actual % | Target % | Fix % | Fix Amount | Fix Quantity |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|---:|---:|---:|---:|---:|---:|---:|")
	for _, symbol := range sortedByShare(m.Order, func(s string) float64 { return m.Rows[s].Share }) {
		r := m.Rows[symbol]
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			r.Symbol, r.Name,
			quantity(r.Quantity), cad(r.BookAverage), cad(r.Last),
			percentChange(r.GainPct), cadChange(r.TotalGain), cad(r.MarketValue),
			percent(r.Share), percent(r.TargetShare), percentChange(r.DeltaShare),
			cadChange(r.DeltaAmount), quantityChange(r.DeltaQuantity, true))
	}
	b.WriteString("\n")
	totals := []totalRow{
		{"Invested", cad(m.TotalInvested), ""},
		{"Cash", cad(m.Cash), ""},
		{"Cash equivalents", cad(m.TotalCashEquivalents), percent(m.TotalCashEquivalents / m.EffectiveNetLiquidationValue)},
		{"Lock-in", cad(m.LockInAmount), ""},
		{"Balance", cad(m.Summary.NetLiquidationValue), ""},
	}
	writeTotalTable(&b, totals)
	return b.String()
}

// TradesMarkdown renders the rebalancing trades about to be submitted.
// Every trade needs a quote for its bid and ask columns.
func TradesMarkdown(title string, trades []wsfolio.Trade, quotes wsfolio.MarketData) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	if len(trades) == 0 {
		b.WriteString("Nothing to trade.\n")
		return b.String(), nil
	}
	fmt.Fprintln(&b, "| Symbol | Name | Bid | Ask | Limit | Quantity | Amount |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|---:|")
	for _, trade := range trades {
		quote, ok := quotes[trade.Symbol]
		if !ok {
			return "", fmt.Errorf("%w: %s", wsfolio.ErrQuoteNotFound, trade.Symbol)
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			trade.Symbol, trade.Name,
			cad(quote.Bid), cad(quote.Ask), cad(trade.LimitPrice),
			quantityChange(trade.Quantity, false), cadChange(trade.Quantity*trade.LimitPrice))
	}
	return b.String(), nil
}

// HistoryMarkdown renders past order activities, newest first.
func HistoryMarkdown(title string, trades []wealthsimple.TradeActivity) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintln(&b, "| Date | Symbol | Name | Limit | Quantity | Amount | Status |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|:---|")
	for _, trade := range trades {
		var limit, amount string
		if trade.LimitPrice != nil {
			limit = cad(trade.LimitPrice.Float())
			amount = cadChange(signedQuantity(trade) * trade.LimitPrice.Float())
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			trade.CreatedAt, trade.Symbol, trade.SecurityName,
			limit, quantityChange(signedQuantity(trade), false), amount, trade.Status)
	}
	return b.String()
}

// signedQuantity signs an order's quantity by its direction.
func signedQuantity(trade wealthsimple.TradeActivity) float64 {
	if trade.OrderType == "sell_quantity" {
		return -trade.Quantity
	}
	return trade.Quantity
}

// TaxMarkdown renders the income-tax estimate.
func TaxMarkdown(employmentIncome, rrspDeduction, capitalGains float64, tax wsfolio.IncomeTax, marginalFederal, marginalOntario float64) string {
	var b strings.Builder
	b.WriteString("# Income tax estimate\n\n")
	fmt.Fprintln(&b, "| | Amount |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Employment income | %s |\n", cad(employmentIncome))
	fmt.Fprintf(&b, "| RRSP deduction | %s |\n", cadChange(-rrspDeduction))
	fmt.Fprintf(&b, "| Taxable capital gains | %s |\n", cad(capitalGains))
	fmt.Fprintf(&b, "| Federal tax | %s |\n", cad(tax.Federal))
	fmt.Fprintf(&b, "| Ontario tax | %s |\n", cad(tax.Ontario))
	fmt.Fprintf(&b, "| **Total tax** | %s |\n", cad(tax.Total()))
	fmt.Fprintf(&b, "| Marginal rate | %s federal, %s Ontario |\n",
		percent(marginalFederal), percent(marginalOntario))
	return b.String()
}

// totalRow is one line of the totals table under a position table.
type totalRow struct {
	label  string
	amount string
	share  string
}

func totalsOf(t *wsfolio.AccountTable) []totalRow {
	return []totalRow{
		{"Invested", cad(t.TotalInvested), ""},
		{"Cash", cad(t.Cash), ""},
		{"Cash equivalents", cad(t.TotalCashEquivalents), percent(t.CashEquivalentShare())},
	}
}

func writeTotalTable(b *strings.Builder, totals []totalRow) {
	fmt.Fprintln(b, "| | Amount | Share |")
	fmt.Fprintln(b, "|:---|---:|---:|")
	for _, row := range totals {
		fmt.Fprintf(b, "| **%s** | %s | %s |\n", row.label, row.amount, row.share)
	}
}

func writeCombinedRows(b *strings.Builder, t *wsfolio.AccountTable) {
	fmt.Fprintln(b, "| Symbol | Name | Quantity | Book Avg. | Last | Gain % | Total Gain | Market Value | % of Portfolio |")
	fmt.Fprintln(b, "|:---|:---|---:|---:|---:|---:|---:|---:|---:|")
	for _, symbol := range sortedByShare(t.Order, func(s string) float64 { return t.Rows[s].Share }) {
		r := t.Rows[symbol]
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			r.Symbol, r.Name,
			quantity(r.Quantity), cad(r.BookAverage), cad(r.Last),
			percentChange(r.GainPct), cadChange(r.TotalGain), cad(r.MarketValue),
			percent(r.Share))
	}
}
