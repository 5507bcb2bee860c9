package wealthsimple

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownAccount means a position references an account id absent from
// the fetched financials.
var ErrUnknownAccount = errors.New("wealthsimple: unknown account")

const accountFinancialsQuery = `query FetchAllAccountFinancials($identityId: ID!) {
  identity(id: $identityId) {
    accounts(first: 25) {
      edges {
        node {
          id
          type
          custodianAccounts {
            financials {
              current {
                netDeposits { amount currency }
                netLiquidationValue { amount currency }
              }
            }
          }
        }
      }
    }
  }
}`

// FetchAccountFinancials returns the financials of every funded account of
// the identity. Accounts with a zero balance are dropped.
func (c *Client) FetchAccountFinancials(ctx context.Context, identityID string) ([]AccountFinancials, error) {
	data, err := c.query(ctx, "FetchAllAccountFinancials", accountFinancialsQuery,
		map[string]any{"identityId": identityID})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Identity struct {
			Accounts struct {
				Edges []struct {
					Node struct {
						ID                string `json:"id"`
						Type              string `json:"type"`
						CustodianAccounts []struct {
							Financials struct {
								Current struct {
									NetDeposits         Money `json:"netDeposits"`
									NetLiquidationValue Money `json:"netLiquidationValue"`
								} `json:"current"`
							} `json:"financials"`
						} `json:"custodianAccounts"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"accounts"`
		} `json:"identity"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decoding account financials: %w", err)
	}

	var accounts []AccountFinancials
	for _, edge := range payload.Identity.Accounts.Edges {
		for _, custodian := range edge.Node.CustodianAccounts {
			current := custodian.Financials.Current
			if !current.NetLiquidationValue.Amount.IsPositive() {
				continue
			}
			accounts = append(accounts, AccountFinancials{
				ID:                  edge.Node.ID,
				Type:                edge.Node.Type,
				NetDeposits:         current.NetDeposits.Amount,
				NetLiquidationValue: current.NetLiquidationValue.Amount,
			})
		}
	}
	c.log.Debug().Int("accounts", len(accounts)).Msg("fetched account financials")
	return accounts, nil
}

// FetchPositions returns every position across all accounts.
func (c *Client) FetchPositions(ctx context.Context) ([]Position, error) {
	resp, err := c.trade.R().SetContext(ctx).Get("/account/positions")
	if err != nil {
		return nil, fmt.Errorf("fetching positions: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetching positions: %s", resp.Status())
	}
	var payload struct {
		Results []Position `json:"results"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("decoding positions: %w", err)
	}
	c.log.Debug().Int("positions", len(payload.Results)).Msg("fetched positions")
	return payload.Results, nil
}

// GroupPositionsByAccount buckets positions under their account. Every
// account gets a bucket, possibly empty; a position referencing an account
// absent from the financials is an error.
func GroupPositionsByAccount(positions []Position, accounts []AccountFinancials) (map[string][]Position, error) {
	grouped := make(map[string][]Position, len(accounts))
	for _, a := range accounts {
		grouped[a.ID] = nil
	}
	for _, p := range positions {
		if _, ok := grouped[p.AccountID]; !ok {
			return nil, fmt.Errorf("%w: %s (position %s)", ErrUnknownAccount, p.AccountID, p.Stock.Symbol)
		}
		grouped[p.AccountID] = append(grouped[p.AccountID], p)
	}
	return grouped, nil
}
