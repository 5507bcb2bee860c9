package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/wsfolio/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
)

// completion describes the CLI for shell completion. Complete() returns
// immediately unless invoked by the shell's completion hook.
var completion = &complete.Command{
	Sub: map[string]*complete.Command{
		"account": {Flags: map[string]complete.Predictor{"rebalance": nil, "y": nil}},
		"buy":     {Flags: map[string]complete.Predictor{"account": nil, "cad": nil, "fractional": nil, "y": nil}},
		"sell":    {Flags: map[string]complete.Predictor{"account": nil, "cad": nil, "y": nil}},
		"trades":  {Flags: map[string]complete.Predictor{"n": nil}},
		"tax":     {Flags: map[string]complete.Predictor{"income": nil, "rrsp": nil, "gains": nil}},
		"login":   {Flags: map[string]complete.Predictor{"username": nil, "otp": nil}},
		"assist":  {},
		"topic":   {},
	},
}

func main() {
	completion.Complete("wsc")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
