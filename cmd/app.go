// Package cmd implements the CLI application to manage a Wealthsimple
// portfolio against a target allocation.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/glamour"
	"github.com/etnz/wsfolio"
	"github.com/etnz/wsfolio/date"
	"github.com/etnz/wsfolio/wealthsimple"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on
// the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&accountCmd{}, "portfolio")
	c.Register(&buyCmd{}, "trading")
	c.Register(&sellCmd{}, "trading")
	c.Register(&tradesCmd{}, "trading")
	c.Register(&taxCmd{}, "planning")
	c.Register(&loginCmd{}, "session")
	c.Register(&assistCmd{}, "assistant")
	c.Register(&topicCmd{}, "documentation")
}

// Config is the application configuration, loaded from the environment and
// an optional .env file.
type Config struct {
	LogLevel   string `env:"WSC_LOG_LEVEL" envDefault:"warn"`
	IdentityID string `env:"WSC_IDENTITY_ID"`
	Username   string `env:"WSC_USERNAME"`

	// Account roles are mapped explicitly. The account ids come from the
	// brokerage; nothing is inferred from account names.
	TFSAAccountID   string `env:"WSC_TFSA_ACCOUNT_ID"`
	RRSPAccountID   string `env:"WSC_RRSP_ACCOUNT_ID"`
	NonRegAccountID string `env:"WSC_NONREG_ACCOUNT_ID"`

	TFSADailyDeposit   float64 `env:"WSC_TFSA_DAILY_DEPOSIT" envDefault:"0"`
	RRSPDailyDeposit   float64 `env:"WSC_RRSP_DAILY_DEPOSIT" envDefault:"0"`
	NonRegDailyDeposit float64 `env:"WSC_NONREG_DAILY_DEPOSIT" envDefault:"0"`

	// TargetDate is the day the funding plan should complete; guidance
	// daily buys are paced over the trading days until then.
	TargetDate string `env:"WSC_TARGET_DATE"`

	PolicyFile  string `env:"WSC_POLICY_FILE" envDefault:"policy.json"`
	SessionFile string `env:"WSC_SESSION_FILE"`

	// MirrorIgnored lists symbols whose mirror delta is forced to zero,
	// e.g. legacy holdings that should neither be bought nor sold.
	MirrorIgnored []string `env:"WSC_MIRROR_IGNORED" envSeparator:","`
}

// LoadConfig reads the configuration from .env and the environment.
func LoadConfig() (Config, error) {
	_ = godotenv.Load(".env")
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing configuration: %w", err)
	}
	return cfg, nil
}

// NewLogger builds the application logger. An unknown level falls back to
// warn rather than failing the command.
func NewLogger(cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// sessionPath resolves the session file, defaulting to the standard
// location under the home directory.
func sessionPath(cfg Config) (string, error) {
	if cfg.SessionFile != "" {
		return cfg.SessionFile, nil
	}
	return wealthsimple.SessionPath()
}

// newClient loads the saved session and returns an authenticated client.
func newClient(cfg Config, log zerolog.Logger) (*wealthsimple.Client, error) {
	path, err := sessionPath(cfg)
	if err != nil {
		return nil, err
	}
	session, err := wealthsimple.LoadSession(path)
	if err != nil {
		return nil, err
	}
	return wealthsimple.New(session, log), nil
}

// policyFile is the on-disk shape of the target allocation.
type policyFile struct {
	Targets        map[string]float64 `json:"targets"`
	CashEquivalent string             `json:"cashEquivalent"`
}

// loadPolicy reads and validates the target allocation file.
func loadPolicy(path string) (wsfolio.Policy, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return wsfolio.Policy{}, fmt.Errorf("reading policy file %q: %w", path, err)
	}
	var pf policyFile
	if err := json.Unmarshal(content, &pf); err != nil {
		return wsfolio.Policy{}, fmt.Errorf("parsing policy file %q: %w", path, err)
	}
	policy, err := wsfolio.NewPolicy(pf.Targets, pf.CashEquivalent)
	if err != nil {
		return wsfolio.Policy{}, fmt.Errorf("policy file %q: %w", path, err)
	}
	return policy, nil
}

// tradingDaysLeft computes the trading days from today to the configured
// target date.
func tradingDaysLeft(cfg Config) (int, error) {
	if cfg.TargetDate == "" {
		return 0, fmt.Errorf("WSC_TARGET_DATE is not set")
	}
	target, err := date.Parse(cfg.TargetDate)
	if err != nil {
		return 0, fmt.Errorf("parsing WSC_TARGET_DATE: %w", err)
	}
	days := date.TradingDays(date.Today(), target)
	if days <= 0 {
		return 0, fmt.Errorf("%w: target date %s is not in the future", wsfolio.ErrNoTradingDays, target)
	}
	return days, nil
}

// printMarkdown renders markdown for the terminal, falling back to the
// raw text when the renderer fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// confirm asks the user for a y/N confirmation on stdin.
func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	var answer string
	fmt.Scanln(&answer)
	return answer == "y" || answer == "Y"
}
