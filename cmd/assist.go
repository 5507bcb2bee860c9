package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/wsfolio/agent"
	"github.com/etnz/wsfolio/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd starts an interactive session with the AI assistant.
type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }
func (*assistCmd) Usage() string {
	return `wsc assist [initial prompt]

  Starts an interactive session with the AI assistant. The assistant is
  seeded with the current portfolio tables and can answer questions about
  allocation, funding and taxes.
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	log := NewLogger(cfg)
	wsClient, err := newClient(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	s, err := buildSnapshot(ctx, cfg, wsClient)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building portfolio snapshot: %v\n", err)
		return subcommands.ExitFailure
	}
	portfolio, err := portfolioDigest(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	trader := agent.NewTrader()
	advisor := agent.NewAdvisor(portfolio)
	a := agent.New(os.Stdout, os.Stdin, trader, advisor)

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}

// portfolioDigest renders all tables of the snapshot as one markdown
// document for the assistant's context.
func portfolioDigest(s *snapshot) (string, error) {
	var b strings.Builder
	combined, err := s.combined()
	if err != nil {
		return "", err
	}
	b.WriteString(renderer.CombinedMarkdown("Combined portfolio", combined))
	for role, table := range s.tables {
		b.WriteString(renderer.AccountMarkdown(string(role), table))
	}
	for _, role := range mirroredRoles {
		b.WriteString(renderer.MirrorMarkdown(string(role)+" mirror", s.mirror(role)))
	}
	return b.String(), nil
}
