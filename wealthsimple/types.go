package wealthsimple

import (
	"github.com/etnz/wsfolio"
	"github.com/shopspring/decimal"
)

// Money is a wire amount. The brokerage serializes amounts as strings;
// decimal keeps them exact until they enter the float computations.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// Float returns the amount as a float64 for the allocation tables.
func (m Money) Float() float64 { return m.Amount.InexactFloat64() }

// Stock identifies the listed instrument behind a security.
type Stock struct {
	Symbol          string `json:"symbol"`
	Name            string `json:"name"`
	PrimaryExchange string `json:"primary_exchange"`
}

// Position is one holding as the trade service reports it. ID is the
// security id, reused when placing orders against the position.
type Position struct {
	ID        string  `json:"id"`
	AccountID string  `json:"account_id"`
	Currency  string  `json:"currency"`
	Quantity  float64 `json:"quantity"`
	BookValue Money   `json:"book_value"`
	Stock     Stock   `json:"stock"`
}

// Core converts the wire position into the snapshot the tables consume.
func (p Position) Core() wsfolio.Position {
	return wsfolio.Position{
		SecurityID: p.ID,
		Symbol:     p.Stock.Symbol,
		Name:       p.Stock.Name,
		Quantity:   p.Quantity,
		BookValue:  p.BookValue.Float(),
	}
}

// Security is one security-search result.
type Security struct {
	ID    string `json:"id"`
	Stock Stock  `json:"stock"`
}

// AccountFinancials is the account-level totals from the GraphQL gateway.
type AccountFinancials struct {
	ID                  string
	Type                string
	NetDeposits         decimal.Decimal
	NetLiquidationValue decimal.Decimal
}

// Core converts the financials into the snapshot the tables consume.
func (a AccountFinancials) Core() wsfolio.AccountSummary {
	return wsfolio.AccountSummary{
		ID:                  a.ID,
		NetDeposits:         a.NetDeposits.InexactFloat64(),
		NetLiquidationValue: a.NetLiquidationValue.InexactFloat64(),
	}
}

// Activity is one item of the GraphQL activity feed, reduced to the fields
// the recurring-buy lookup needs.
type Activity struct {
	AccountID  string          `json:"accountId"`
	SecurityID string          `json:"securityId"`
	Type       string          `json:"type"`
	SubType    string          `json:"subType"`
	Status     string          `json:"status"`
	Amount     decimal.Decimal `json:"amount"`
	OccurredAt string          `json:"occurredAt"`
}

// Activity feed constants, as the gateway spells them.
const (
	activityTypeDIYBuy       = "DIY_BUY"
	activitySubTypeRecurring = "RECURRING_ORDER"
	activityStatusFilled     = "FILLED"
	activityFeedPageSize     = 50
)

// TradeActivity is one order record from the trade-service activity list,
// used for the order-history view.
type TradeActivity struct {
	Object       string  `json:"object"`
	ID           string  `json:"id"`
	AccountID    string  `json:"account_id"`
	Symbol       string  `json:"symbol"`
	SecurityName string  `json:"security_name"`
	OrderType    string  `json:"order_type"`
	OrderSubType string  `json:"order_sub_type"`
	Status       string  `json:"status"`
	Quantity     float64 `json:"quantity"`
	LimitPrice   *Money  `json:"limit_price"`
	FillQuantity float64 `json:"fill_quantity"`
	CreatedAt    string  `json:"created_at"`
}
