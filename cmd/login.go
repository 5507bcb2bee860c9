package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/wsfolio/wealthsimple"
	"github.com/google/subcommands"
	"golang.org/x/term"
)

// loginCmd holds the flags for the 'login' subcommand.
type loginCmd struct {
	username string
	otp      string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "authenticate and store the session token" }
func (*loginCmd) Usage() string {
	return `wsc login [-username <email>] [-otp <code>]

  Exchanges the credentials for an access token and stores it in the
  session file. The password is read from WSC_PASSWORD or prompted on
  the terminal. Accounts with two-factor authentication need -otp.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "username", "", "account email (defaults to WSC_USERNAME)")
	f.StringVar(&c.otp, "otp", "", "one-time password for two-factor authentication")
}

func (c *loginCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	username := c.username
	if username == "" {
		username = cfg.Username
	}
	if username == "" {
		fmt.Fprintf(os.Stderr, "Error: no username; pass -username or set WSC_USERNAME\n")
		return subcommands.ExitUsageError
	}
	password, err := readPassword(username)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading password: %v\n", err)
		return subcommands.ExitFailure
	}

	session, err := wealthsimple.Login(ctx, wealthsimple.Credentials{
		Username:        username,
		Password:        password,
		OneTimePassword: c.otp,
	}, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: login failed: %v\n", err)
		return subcommands.ExitFailure
	}

	path, err := sessionPath(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := session.Save(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving session: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Logged in as %s, session stored in %s\n", username, path)
	return subcommands.ExitSuccess
}

// readPassword takes the password from WSC_PASSWORD when set, otherwise
// prompts on the terminal without echo.
func readPassword(username string) (string, error) {
	if password := os.Getenv("WSC_PASSWORD"); password != "" {
		return password, nil
	}
	fmt.Printf("Password for %s: ", username)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		defer fmt.Println()
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
