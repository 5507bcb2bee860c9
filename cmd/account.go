package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/wsfolio"
	"github.com/etnz/wsfolio/renderer"
	"github.com/etnz/wsfolio/wealthsimple"
	"github.com/google/subcommands"
)

// accountCmd holds the flags for the 'account' subcommand.
type accountCmd struct {
	rebalance bool
	yes       bool
}

func (*accountCmd) Name() string { return "account" }
func (*accountCmd) Synopsis() string {
	return "display the combined, per-account and mirror allocation tables"
}
func (*accountCmd) Usage() string {
	return `wsc account [-rebalance] [-y]

  Fetches accounts, positions and quotes, then displays the combined
  portfolio, each account's positions with their guidance columns, and the
  mirror deltas of the registered accounts against the TFSA.

  With -rebalance, also computes the limit orders that would close each
  mirror's deltas. With -y, submits them.
`
}

func (c *accountCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.rebalance, "rebalance", false, "compute the trades closing the mirror deltas")
	f.BoolVar(&c.yes, "y", false, "submit the rebalancing trades without asking")
}

func (c *accountCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	log := NewLogger(cfg)
	client, err := newClient(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	s, err := buildSnapshot(ctx, cfg, client)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building portfolio snapshot: %v\n", err)
		return subcommands.ExitFailure
	}

	combined, err := s.combined()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error combining accounts: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.CombinedMarkdown("Combined portfolio", combined))
	for role, table := range s.tables {
		printMarkdown(renderer.AccountMarkdown(string(role), table))
	}
	for _, role := range mirroredRoles {
		printMarkdown(renderer.MirrorMarkdown(string(role)+" mirror", s.mirror(role)))
	}

	if !c.rebalance {
		return subcommands.ExitSuccess
	}
	for _, role := range mirroredRoles {
		if status := c.rebalanceRole(ctx, s, role); status != subcommands.ExitSuccess {
			return status
		}
	}
	return subcommands.ExitSuccess
}

// rebalanceRole prints and optionally submits the trades closing one
// mirror's deltas.
func (c *accountCmd) rebalanceRole(ctx context.Context, s *snapshot, role wealthsimple.Role) subcommands.ExitStatus {
	trades := wsfolio.RebalanceTrades(s.mirror(role))
	md, err := renderer.TradesMarkdown(string(role)+" rebalancing trades", trades, s.quotes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering trades: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(md)

	if len(trades) == 0 {
		return subcommands.ExitSuccess
	}
	if !c.yes && !confirm(fmt.Sprintf("Submit %d %s trades?", len(trades), role)) {
		return subcommands.ExitSuccess
	}

	accountID := s.roles[role]
	for _, trade := range trades {
		securityID, ok := s.securityIDs[trade.Symbol]
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: no security id for %s\n", trade.Symbol)
			return subcommands.ExitFailure
		}
		if err := s.client.PlaceLimitOrder(ctx, accountID, securityID, trade.Quantity, trade.LimitPrice); err != nil {
			fmt.Fprintf(os.Stderr, "Error placing order for %s: %v\n", trade.Symbol, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Submitted %s order for %s\n", role, trade.Symbol)
	}
	return subcommands.ExitSuccess
}
