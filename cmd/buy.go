package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/wsfolio/wealthsimple"
	"github.com/google/subcommands"
)

// buyCmd holds the flags for the 'buy' subcommand.
type buyCmd struct {
	account    string
	cad        float64
	fractional bool
	yes        bool
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy a security for a CAD amount" }
func (*buyCmd) Usage() string {
	return `wsc buy [-account <role>] [-fractional] [-y] -cad <amount> <symbol>

  Looks up the security, quotes its ask, and places a day limit order for
  the whole number of shares the amount covers at the ask. With -fractional,
  places a fractional buy for the exact amount instead.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", string(wealthsimple.RoleTFSA), "account role to buy in (tfsa, rrsp, nonreg)")
	f.Float64Var(&c.cad, "cad", 0, "amount to spend, in CAD")
	f.BoolVar(&c.fractional, "fractional", false, "place a fractional order for the exact amount")
	f.BoolVar(&c.yes, "y", false, "submit the order without asking")
}

func (c *buyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one symbol\n")
		return subcommands.ExitUsageError
	}
	if c.cad <= 0 {
		fmt.Fprintf(os.Stderr, "Error: -cad must be positive\n")
		return subcommands.ExitUsageError
	}
	return placeOrder(ctx, order{
		role:       wealthsimple.Role(c.account),
		symbol:     f.Arg(0),
		cad:        c.cad,
		fractional: c.fractional,
		yes:        c.yes,
		side:       sideBuy,
	})
}

type orderSide int

const (
	sideBuy orderSide = iota
	sideSell
)

// order carries everything the buy and sell commands share.
type order struct {
	role       wealthsimple.Role
	symbol     string
	cad        float64
	fractional bool
	yes        bool
	side       orderSide
}

// placeOrder resolves the security and the account, quotes it, previews
// the order, and submits it on confirmation.
func placeOrder(ctx context.Context, o order) subcommands.ExitStatus {
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
	roles, err := wealthsimple.NewRoles(cfg.TFSAAccountID, cfg.RRSPAccountID, cfg.NonRegAccountID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	accountID, ok := roles[o.role]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown account role %q\n", o.role)
		return subcommands.ExitUsageError
	}

	security, err := client.SecurityBySymbol(ctx, o.symbol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving %s: %v\n", o.symbol, err)
		return subcommands.ExitFailure
	}
	quotes, err := client.FetchSecurityMarketData(ctx, []string{security.ID})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error quoting %s: %v\n", o.symbol, err)
		return subcommands.ExitFailure
	}
	quote, ok := quotes[security.Stock.Symbol]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: no quote for %s\n", o.symbol)
		return subcommands.ExitFailure
	}

	limit, priceName, verb := quote.Ask, "ask", "Buy"
	if o.side == sideSell {
		limit, priceName, verb = quote.Bid, "bid", "Sell"
	}
	if limit <= 0 {
		fmt.Fprintf(os.Stderr, "Error: no usable %s price for %s\n", priceName, o.symbol)
		return subcommands.ExitFailure
	}
	quantity := o.cad / limit

	if o.fractional {
		fmt.Printf("%s %s (%s) for $%.2f (~%.4f shares at $%.2f), fractional, in %s\n",
			verb, security.Stock.Symbol, security.Stock.Name, o.cad, quantity, limit, o.role)
	} else {
		fmt.Printf("%s %s (%s): %.0f shares at $%.2f limit (~$%.2f) in %s\n",
			verb, security.Stock.Symbol, security.Stock.Name, quantity, limit, quantity*limit, o.role)
	}
	if !o.yes && !confirm("Submit order?") {
		return subcommands.ExitSuccess
	}

	if o.side == sideSell {
		quantity = -quantity
	}
	if o.fractional {
		err = client.PlaceFractionalBuy(ctx, accountID, security.ID, o.cad, quantity)
	} else {
		err = client.PlaceLimitOrder(ctx, accountID, security.ID, quantity, limit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error placing order: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Order submitted for %s\n", security.Stock.Symbol)
	return subcommands.ExitSuccess
}
