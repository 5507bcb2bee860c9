package wealthsimple

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/etnz/wsfolio/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecurringBuyReference(t *testing.T) {
	at := func(day date.Date, hour int) time.Time {
		return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC)
	}
	tests := []struct {
		name string
		now  time.Time
		want date.Date
	}{
		{"monday morning", at(date.New(2025, time.September, 1), 10), date.New(2025, time.August, 29)},
		{"monday after close", at(date.New(2025, time.September, 1), 17), date.New(2025, time.September, 1)},
		{"wednesday morning", at(date.New(2025, time.September, 3), 9), date.New(2025, time.September, 2)},
		{"saturday", at(date.New(2025, time.September, 6), 12), date.New(2025, time.September, 5)},
		{"saturday evening", at(date.New(2025, time.September, 6), 20), date.New(2025, time.September, 5)},
		{"sunday", at(date.New(2025, time.September, 7), 12), date.New(2025, time.September, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RecurringBuyReference(tt.now); got != tt.want {
				t.Errorf("RecurringBuyReference(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestFetchLastTradingDayRecurringBuys(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"activities": {
			"edges": [
				{"node": {"accountId": "tfsa-1", "securityId": "sec-x", "type": "DIY_BUY",
				          "subType": "RECURRING_ORDER", "status": "FILLED", "amount": "25"}},
				{"node": {"accountId": "tfsa-1", "securityId": "sec-x", "type": "DIY_BUY",
				          "subType": "RECURRING_ORDER", "status": "FILLED", "amount": "10"}},
				{"node": {"accountId": "tfsa-1", "securityId": "sec-y", "type": "DIY_BUY",
				          "subType": "RECURRING_ORDER", "status": "CANCELLED", "amount": "50"}},
				{"node": {"accountId": "rrsp-1", "securityId": "sec-x", "type": "DIY_BUY",
				          "subType": "ONE_TIME_ORDER", "status": "FILLED", "amount": "75"}}
			],
			"pageInfo": {"endCursor": "", "hasNextPage": false}}}}`))
	}))

	buys, err := client.FetchLastTradingDayRecurringBuys(context.Background(), time.Now())
	require.NoError(t, err)

	// Two filled recurring buys for the same security sum up; the cancelled
	// and one-time orders are filtered out.
	require.Contains(t, buys, "tfsa-1")
	assert.InDelta(t, 35, buys["tfsa-1"]["sec-x"], 1e-9)
	assert.NotContains(t, buys["tfsa-1"], "sec-y")
	assert.NotContains(t, buys, "rrsp-1")
}

func TestFetchActivitiesPagination(t *testing.T) {
	var calls int
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Write([]byte(`{"data": {"activities": {
				"edges": [{"node": {"accountId": "tfsa-1", "securityId": "sec-x"}}],
				"pageInfo": {"endCursor": "c1", "hasNextPage": true}}}}`))
			return
		}
		w.Write([]byte(`{"data": {"activities": {
			"edges": [{"node": {"accountId": "tfsa-1", "securityId": "sec-y"}}],
			"pageInfo": {"endCursor": "", "hasNextPage": false}}}}`))
	}))

	day := date.New(2025, time.September, 1)
	activities, err := client.FetchActivities(context.Background(), day, day, []string{activityTypeDIYBuy})
	require.NoError(t, err)
	require.Len(t, activities, 2)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "sec-y", activities[1].SecurityID)
}
