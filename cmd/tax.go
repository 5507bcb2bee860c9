package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/wsfolio"
	"github.com/etnz/wsfolio/renderer"
	"github.com/google/subcommands"
)

// taxCmd holds the flags for the 'tax' subcommand.
type taxCmd struct {
	income float64
	rrsp   float64
	gains  float64
}

func (*taxCmd) Name() string     { return "tax" }
func (*taxCmd) Synopsis() string { return "estimate income tax for an Ontario resident" }
func (*taxCmd) Usage() string {
	return `wsc tax -income <cad> [-rrsp <cad>] [-gains <cad>]

  Estimates federal and Ontario income tax on employment income plus
  taxable capital gains, after an RRSP deduction, and shows the marginal
  rates on the next dollar.
`
}

func (c *taxCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.income, "income", 0, "employment income, in CAD")
	f.Float64Var(&c.rrsp, "rrsp", 0, "RRSP deduction, in CAD")
	f.Float64Var(&c.gains, "gains", 0, "taxable capital gains, in CAD")
}

func (c *taxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.income <= 0 {
		fmt.Fprintf(os.Stderr, "Error: -income must be positive\n")
		return subcommands.ExitUsageError
	}
	tax := wsfolio.CalculateIncomeTax(c.income, c.rrsp, c.gains)
	taxable := c.income + c.gains - c.rrsp
	federal, ontario := wsfolio.MarginalTaxRates(taxable)
	printMarkdown(renderer.TaxMarkdown(c.income, c.rrsp, c.gains, tax, federal, ontario))
	return subcommands.ExitSuccess
}
