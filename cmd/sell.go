package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/wsfolio/wealthsimple"
	"github.com/google/subcommands"
)

// sellCmd holds the flags for the 'sell' subcommand.
type sellCmd struct {
	account string
	cad     float64
	yes     bool
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell a security for a CAD amount" }
func (*sellCmd) Usage() string {
	return `wsc sell [-account <role>] [-y] -cad <amount> <symbol>

  Looks up the security, quotes its bid, and places a day limit order
  selling the whole number of shares the amount covers at the bid.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", string(wealthsimple.RoleTFSA), "account role to sell from (tfsa, rrsp, nonreg)")
	f.Float64Var(&c.cad, "cad", 0, "amount to sell, in CAD")
	f.BoolVar(&c.yes, "y", false, "submit the order without asking")
}

func (c *sellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one symbol\n")
		return subcommands.ExitUsageError
	}
	if c.cad <= 0 {
		fmt.Fprintf(os.Stderr, "Error: -cad must be positive\n")
		return subcommands.ExitUsageError
	}
	return placeOrder(ctx, order{
		role:   wealthsimple.Role(c.account),
		symbol: f.Arg(0),
		cad:    c.cad,
		yes:    c.yes,
		side:   sideSell,
	})
}
