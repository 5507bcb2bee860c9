package wealthsimple

import (
	"context"
	"fmt"
	"math"
	"net/http"

	"github.com/google/uuid"
)

const (
	orderTypeBuyQuantity  = "buy_quantity"
	orderTypeBuyValue     = "buy_value"
	orderTypeSellQuantity = "sell_quantity"

	orderSubTypeLimit      = "limit"
	orderSubTypeFractional = "fractional"

	timeInForceDay = "day"
)

// PlaceLimitOrder submits a day limit order. Quantity is signed the way the
// rebalancer emits it: positive buys, negative sells; the absolute quantity
// is rounded to whole shares before submission.
func (c *Client) PlaceLimitOrder(ctx context.Context, accountID, securityID string, quantity, limitPrice float64) error {
	orderType := orderTypeBuyQuantity
	if quantity < 0 {
		orderType = orderTypeSellQuantity
	}
	shares := math.Round(math.Abs(quantity))
	if shares == 0 {
		return fmt.Errorf("placing order for %s: quantity %v rounds to zero shares", securityID, quantity)
	}
	return c.postOrder(ctx, map[string]any{
		"account_id":      accountID,
		"security_id":     securityID,
		"order_type":      orderType,
		"order_sub_type":  orderSubTypeLimit,
		"time_in_force":   timeInForceDay,
		"idempotency_key": uuid.NewString(),
		"quantity":        shares,
		"limit_price":     limitPrice,
		"market_value":    limitPrice,
	})
}

// PlaceFractionalBuy submits a fractional buy for a currency amount.
// expectedQuantity is the quantity the amount should purchase at the
// current price; the brokerage uses it as a sanity bound.
func (c *Client) PlaceFractionalBuy(ctx context.Context, accountID, securityID string, amount, expectedQuantity float64) error {
	return c.postOrder(ctx, map[string]any{
		"account_id":      accountID,
		"security_id":     securityID,
		"order_type":      orderTypeBuyValue,
		"order_sub_type":  orderSubTypeFractional,
		"time_in_force":   timeInForceDay,
		"idempotency_key": uuid.NewString(),
		"market_value":    amount,
		"quantity":        expectedQuantity,
	})
}

// postOrder submits an order body and demands the created status: anything
// else is a failed order, reported with the response body.
func (c *Client) postOrder(ctx context.Context, body map[string]any) error {
	resp, err := c.trade.R().SetContext(ctx).SetBody(body).Post("/orders")
	if err != nil {
		return fmt.Errorf("placing order: %w", err)
	}
	if resp.StatusCode() != http.StatusCreated {
		return fmt.Errorf("placing order: %s: %s", resp.Status(), resp.Body())
	}
	c.log.Info().
		Str("account", fmt.Sprint(body["account_id"])).
		Str("security", fmt.Sprint(body["security_id"])).
		Str("type", fmt.Sprint(body["order_type"])).
		Msg("order placed")
	return nil
}
