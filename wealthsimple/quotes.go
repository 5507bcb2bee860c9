package wealthsimple

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/wsfolio"
)

// ErrSecurityNotFound means a security search matched nothing.
var ErrSecurityNotFound = errors.New("wealthsimple: security not found")

const securityMarketDataQuery = `query FetchSecurityMarketData($id: ID!) {
  security(id: $id) {
    id
    stock { symbol name }
    quoteV2 {
      ... on EquityQuote {
        last
        bid
        ask
      }
    }
  }
}`

// FetchSecurityMarketData fetches live quotes for the given security ids
// and returns them keyed by symbol. A security the gateway cannot resolve
// aborts the fetch: the allocation tables refuse partial quote sets anyway.
func (c *Client) FetchSecurityMarketData(ctx context.Context, securityIDs []string) (wsfolio.MarketData, error) {
	quotes := make(wsfolio.MarketData, len(securityIDs))
	for _, id := range securityIDs {
		data, err := c.query(ctx, "FetchSecurityMarketData", securityMarketDataQuery,
			map[string]any{"id": id})
		if err != nil {
			return nil, err
		}
		var jobj any
		if err := json.Unmarshal(data, &jobj); err != nil {
			return nil, fmt.Errorf("decoding market data for %s: %w", id, err)
		}

		symbol, err := jstring(jobj, "$.security.stock.symbol")
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", wsfolio.ErrQuoteNotFound, id, err)
		}
		var quote wsfolio.Quote
		for _, field := range []struct {
			path string
			dst  *float64
		}{
			{"$.security.quoteV2.last", &quote.Last},
			{"$.security.quoteV2.bid", &quote.Bid},
			{"$.security.quoteV2.ask", &quote.Ask},
		} {
			v, err := jfloat(jobj, field.path)
			if err != nil {
				return nil, fmt.Errorf("%w: %s (%s): %v", wsfolio.ErrQuoteNotFound, symbol, id, err)
			}
			*field.dst = v
		}
		quotes[symbol] = quote
	}
	c.log.Debug().Int("quotes", len(quotes)).Msg("fetched market data")
	return quotes, nil
}

// SearchSecurities queries the security search endpoint. Responses are
// served from the daily disk cache when available.
func (c *Client) SearchSecurities(ctx context.Context, query string) ([]Security, error) {
	resp, err := c.search.R().SetContext(ctx).SetQueryParam("query", query).Get("/securities")
	if err != nil {
		return nil, fmt.Errorf("searching securities %q: %w", query, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("searching securities %q: %s", query, resp.Status())
	}
	var payload struct {
		Results []Security `json:"results"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("decoding security search: %w", err)
	}
	return payload.Results, nil
}

// SecurityBySymbol resolves a ticker symbol to its security.
func (c *Client) SecurityBySymbol(ctx context.Context, symbol string) (Security, error) {
	results, err := c.SearchSecurities(ctx, symbol)
	if err != nil {
		return Security{}, err
	}
	for _, sec := range results {
		if sec.Stock.Symbol == symbol {
			return sec, nil
		}
	}
	return Security{}, fmt.Errorf("%w: %s", ErrSecurityNotFound, symbol)
}

// jstring evaluates a jsonpath expression expecting a string value.
func jstring(jobj any, path string) (string, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", fmt.Errorf("evaluating %q: %w", path, err)
	}
	s, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("evaluating %q: not a string: %v", path, jval)
	}
	return s, nil
}

// jfloat evaluates a jsonpath expression expecting a number, tolerating the
// gateway's habit of serializing prices as strings.
func jfloat(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("evaluating %q: %w", path, err)
	}
	switch v := jval.(type) {
	case float64:
		return v, nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("evaluating %q: invalid number %q: %w", path, v, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("evaluating %q: not a number: %v", path, jval)
	}
}
