package wealthsimple

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-resty/resty/v2"
)

// ErrNoSession means no usable session file exists.
var ErrNoSession = errors.New("wealthsimple: no session")

// oauthClientID is the public client id the brokerage web app presents on
// the password grant.
const oauthClientID = "4da53ac2b03225bed1550eba8e4611e086c7b905a3855e6ed12ea08c246758fa"

const oauthScope = "invest.read invest.write trade.read trade.write tax.read tax.write"

// Session is the persisted login state.
type Session struct {
	Username    string `json:"username"`
	AccessToken string `json:"accessToken"`
}

// SessionPath returns the session file location, ~/.wealthsimple/auth.json.
func SessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".wealthsimple", "auth.json"), nil
}

// LoadSession reads a previously saved session.
func LoadSession(path string) (Session, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %s (run 'wsc login' first)", ErrNoSession, path)
	}
	var s Session
	if err := json.Unmarshal(content, &s); err != nil {
		return Session{}, fmt.Errorf("%w: %s is unreadable: %v", ErrNoSession, path, err)
	}
	if s.AccessToken == "" {
		return Session{}, fmt.Errorf("%w: %s has no access token", ErrNoSession, path)
	}
	return s, nil
}

// Save writes the session file, creating its directory when needed.
func (s Session) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	content, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, content, 0o600)
}

// Credentials is a username, password and current one-time password.
type Credentials struct {
	Username        string
	Password        string
	OneTimePassword string
}

// Login performs the OAuth password grant and returns a session carrying
// the access token. tokenURL overrides the production endpoint in tests;
// pass "" for the default.
func Login(ctx context.Context, creds Credentials, tokenURL string) (Session, error) {
	if tokenURL == "" {
		tokenURL = oauthTokenURL
	}
	req := resty.New().R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetHeader("x-wealthsimple-client", "@wealthsimple/wealthsimple").
		SetBody(map[string]any{
			"grant_type":     "password",
			"skip_provision": true,
			"scope":          oauthScope,
			"client_id":      oauthClientID,
			"username":       creds.Username,
			"password":       creds.Password,
		})
	if creds.OneTimePassword != "" {
		req.SetHeader("x-wealthsimple-otp", creds.OneTimePassword)
	}
	resp, err := req.Post(tokenURL)
	if err != nil {
		return Session{}, fmt.Errorf("authenticating %s: %w", creds.Username, err)
	}
	if resp.IsError() {
		return Session{}, fmt.Errorf("authenticating %s: %s", creds.Username, resp.Status())
	}
	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(resp.Body(), &token); err != nil {
		return Session{}, fmt.Errorf("authenticating %s: decoding token: %w", creds.Username, err)
	}
	if token.AccessToken == "" {
		return Session{}, fmt.Errorf("authenticating %s: response carries no access token", creds.Username)
	}
	return Session{Username: creds.Username, AccessToken: token.AccessToken}, nil
}
