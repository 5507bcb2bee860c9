// Package wsfolio provides the allocation and rebalancing engine behind the
// `wsc` command-line tool for Wealthsimple brokerage accounts.
//
// The engine is a set of stateless builders that turn raw positions, account
// balances and market quotes into derived tables:
//   - Position Rows: per-security metrics (market value, share of portfolio,
//     gains, allocation gap, funding-plan pacing) relative to one account.
//   - Account Tables: the rows of one account plus its cash, cash-equivalent
//     and invested totals.
//   - Combined Tables: several accounts consolidated into one view with a
//     per-account breakdown.
//   - Mirror Tables: the per-symbol delta between a mirror account and the
//     actual allocation of a primary account it replicates.
//   - Rebalance Trades: the minimal marketable-limit trade list closing the
//     mirror delta.
//
// Every builder is a pure function of fully materialized inputs: fetching
// positions, balances and quotes belongs to the wealthsimple package, and
// formatting belongs to the renderer package. A computation either returns a
// complete table or an error; there are no partial results.
package wsfolio
