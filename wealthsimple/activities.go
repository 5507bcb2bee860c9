package wealthsimple

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/etnz/wsfolio/date"
)

const activityListQuery = `query FetchActivityList($first: Int!, $cursor: Cursor, $startDate: Datetime, $endDate: Datetime, $types: [ActivityFeedItemType!]) {
  activities(first: $first, after: $cursor, startDate: $startDate, endDate: $endDate, types: $types) {
    edges {
      node {
        accountId
        securityId
        type
        subType
        status
        amount
        occurredAt
      }
    }
    pageInfo {
      endCursor
      hasNextPage
    }
  }
}`

// RecurringBuyReference returns the day whose recurring buys are the
// freshest complete set at the given instant. Recurring orders settle
// during the session, so before the 16:00 close the previous trading day
// is the last one fully known; after the close today's buys are in.
func RecurringBuyReference(now time.Time) date.Date {
	today := date.FromTime(now)
	switch now.Weekday() {
	case time.Saturday, time.Sunday:
		return date.PreviousTradingDay(today)
	}
	if now.Hour() >= 16 {
		return today
	}
	return date.PreviousTradingDay(today)
}

// FetchActivities pages through the activity feed between the two dates,
// bounds included, keeping only the given feed item types.
func (c *Client) FetchActivities(ctx context.Context, from, to date.Date, types []string) ([]Activity, error) {
	var activities []Activity
	var cursor string
	for {
		variables := map[string]any{
			"first":     activityFeedPageSize,
			"startDate": from.String() + "T00:00:00.000Z",
			"endDate":   to.String() + "T23:59:59.999Z",
			"types":     types,
		}
		if cursor != "" {
			variables["cursor"] = cursor
		}
		data, err := c.query(ctx, "FetchActivityList", activityListQuery, variables)
		if err != nil {
			return nil, err
		}
		var payload struct {
			Activities struct {
				Edges []struct {
					Node Activity `json:"node"`
				} `json:"edges"`
				PageInfo struct {
					EndCursor   string `json:"endCursor"`
					HasNextPage bool   `json:"hasNextPage"`
				} `json:"pageInfo"`
			} `json:"activities"`
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, fmt.Errorf("decoding activities: %w", err)
		}
		for _, edge := range payload.Activities.Edges {
			activities = append(activities, edge.Node)
		}
		if !payload.Activities.PageInfo.HasNextPage {
			return activities, nil
		}
		cursor = payload.Activities.PageInfo.EndCursor
	}
}

// FetchLastTradingDayRecurringBuys returns the filled recurring buys of the
// reference day, summed per account and security id.
func (c *Client) FetchLastTradingDayRecurringBuys(ctx context.Context, now time.Time) (map[string]map[string]float64, error) {
	day := RecurringBuyReference(now)
	activities, err := c.FetchActivities(ctx, day, day, []string{activityTypeDIYBuy})
	if err != nil {
		return nil, err
	}

	buys := make(map[string]map[string]float64)
	for _, a := range activities {
		if a.Type != activityTypeDIYBuy || a.SubType != activitySubTypeRecurring || a.Status != activityStatusFilled {
			continue
		}
		if buys[a.AccountID] == nil {
			buys[a.AccountID] = make(map[string]float64)
		}
		buys[a.AccountID][a.SecurityID] += a.Amount.InexactFloat64()
	}
	c.log.Debug().Str("day", day.String()).Int("accounts", len(buys)).Msg("fetched recurring buys")
	return buys, nil
}

// ListTrades pages through the trade-service order activities, newest
// first, and returns up to limit records.
func (c *Client) ListTrades(ctx context.Context, limit int) ([]TradeActivity, error) {
	var trades []TradeActivity
	var bookmark string
	for len(trades) < limit {
		resp, err := c.trade.R().
			SetContext(ctx).
			SetQueryParamsFromValues(map[string][]string{
				"account_ids": {""},
				"limit":       {fmt.Sprint(activityFeedPageSize)},
				"bookmark":    {bookmark},
				"type":        {"buy", "sell"},
			}).
			Get("/account/activities")
		if err != nil {
			return nil, fmt.Errorf("listing trades: %w", err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("listing trades: %s", resp.Status())
		}
		var payload struct {
			Bookmark string          `json:"bookmark"`
			Results  []TradeActivity `json:"results"`
		}
		if err := json.Unmarshal(resp.Body(), &payload); err != nil {
			return nil, fmt.Errorf("decoding trades: %w", err)
		}
		if len(payload.Results) == 0 {
			break
		}
		trades = append(trades, payload.Results...)
		bookmark = payload.Bookmark
	}
	if len(trades) > limit {
		trades = trades[:limit]
	}
	return trades, nil
}
