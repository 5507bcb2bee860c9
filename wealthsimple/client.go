// Package wealthsimple is the brokerage API client: account financials and
// positions, security quotes, recurring-buy activities, and order
// submission. It is the only package that talks to the outside world; the
// allocation tables consume plain snapshots and never import it.
package wealthsimple

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

const (
	graphQLBaseURL = "https://my.wealthsimple.com"
	tradeBaseURL   = "https://trade-service.wealthsimple.com"
	oauthTokenURL  = "https://api.production.wealthsimple.com/v1/oauth/v2/token"
)

// Client calls the two brokerage surfaces: the GraphQL gateway (account
// financials, market data, activity feed) and the trade-service REST API
// (positions, security search, orders).
type Client struct {
	graphql *resty.Client
	trade   *resty.Client
	search  *resty.Client
	log     zerolog.Logger
}

// Option adjusts a Client at construction time.
type Option func(*Client)

// WithGraphQLBaseURL points the GraphQL client elsewhere, for tests.
func WithGraphQLBaseURL(url string) Option {
	return func(c *Client) { c.graphql.SetBaseURL(url) }
}

// WithTradeBaseURL points the trade-service clients elsewhere, for tests.
func WithTradeBaseURL(url string) Option {
	return func(c *Client) {
		c.trade.SetBaseURL(url)
		c.search.SetBaseURL(url)
	}
}

// New returns a client authenticated with the session's bearer token.
func New(session Session, log zerolog.Logger, opts ...Option) *Client {
	auth := "Bearer " + session.AccessToken
	c := &Client{log: log.With().Str("component", "wealthsimple").Logger()}
	c.graphql = resty.New().
		SetBaseURL(graphQLBaseURL).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", auth).
		SetHeader("x-platform-os", "web").
		SetHeader("x-ws-profile", "invest")
	c.trade = resty.New().
		SetBaseURL(tradeBaseURL).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", auth).
		SetHeader("x-platform-os", "web").
		SetHeader("x-ws-profile", "trade")
	// Security search results barely move within a day. The cached client
	// keeps repeated symbol lookups off the wire.
	c.search = resty.New().
		SetBaseURL(tradeBaseURL).
		SetTransport(newDailyCache()).
		SetHeader("Accept", "application/json").
		SetHeader("Authorization", auth).
		SetHeader("x-ws-profile", "trade")
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type graphQLRequest struct {
	OperationName string         `json:"operationName"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
}

// query posts one GraphQL operation and returns the raw data payload.
// Transport failures, non-2xx statuses and GraphQL-level errors all come
// back as errors: callers never see a partial payload.
func (c *Client) query(ctx context.Context, operation, query string, variables map[string]any) (json.RawMessage, error) {
	c.log.Debug().Str("operation", operation).Msg("graphql request")
	resp, err := c.graphql.R().
		SetContext(ctx).
		SetBody(graphQLRequest{OperationName: operation, Query: query, Variables: variables}).
		Post("/graphql")
	if err != nil {
		return nil, fmt.Errorf("graphql %s: %w", operation, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("graphql %s: %s", operation, resp.Status())
	}
	var payload struct {
		Data   json.RawMessage `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("graphql %s: decoding response: %w", operation, err)
	}
	if len(payload.Errors) > 0 {
		return nil, fmt.Errorf("graphql %s: %s", operation, payload.Errors[0].Message)
	}
	return payload.Data, nil
}
