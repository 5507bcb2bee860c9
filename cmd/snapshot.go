package cmd

import (
	"context"
	"time"

	"github.com/etnz/wsfolio"
	"github.com/etnz/wsfolio/wealthsimple"
)

// snapshot is everything one run needs: the account tables of every role,
// the quote set they were computed from, and the symbol to security-id
// mapping for placing orders.
type snapshot struct {
	cfg    Config
	client *wealthsimple.Client
	roles  wealthsimple.Roles
	policy wsfolio.Policy

	tables      map[wealthsimple.Role]*wsfolio.AccountTable
	quotes      wsfolio.MarketData
	securityIDs map[string]string
	daysLeft    int
}

// mirroredRoles are compared against the TFSA's actual allocation.
var mirroredRoles = []wealthsimple.Role{wealthsimple.RoleRRSP, wealthsimple.RoleNonRegistered}

// buildSnapshot fetches accounts, positions, quotes and recurring buys,
// then derives the account tables. Everything is fetched once; the tables
// all observe the same quote set.
func buildSnapshot(ctx context.Context, cfg Config, client *wealthsimple.Client) (*snapshot, error) {
	policy, err := loadPolicy(cfg.PolicyFile)
	if err != nil {
		return nil, err
	}
	roles, err := wealthsimple.NewRoles(cfg.TFSAAccountID, cfg.RRSPAccountID, cfg.NonRegAccountID)
	if err != nil {
		return nil, err
	}
	daysLeft, err := tradingDaysLeft(cfg)
	if err != nil {
		return nil, err
	}

	accounts, err := client.FetchAccountFinancials(ctx, cfg.IdentityID)
	if err != nil {
		return nil, err
	}
	positions, err := client.FetchPositions(ctx)
	if err != nil {
		return nil, err
	}
	grouped, err := wealthsimple.GroupPositionsByAccount(positions, accounts)
	if err != nil {
		return nil, err
	}

	securityIDs := make(map[string]string)
	var quoteIDs []string
	for _, p := range positions {
		if p.Stock.Symbol == wsfolio.LockInSymbol {
			continue
		}
		if _, seen := securityIDs[p.Stock.Symbol]; !seen {
			securityIDs[p.Stock.Symbol] = p.ID
			quoteIDs = append(quoteIDs, p.ID)
		}
	}
	quotes, err := client.FetchSecurityMarketData(ctx, quoteIDs)
	if err != nil {
		return nil, err
	}
	buys, err := client.FetchLastTradingDayRecurringBuys(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	deposits := map[wealthsimple.Role]float64{
		wealthsimple.RoleTFSA:          cfg.TFSADailyDeposit,
		wealthsimple.RoleRRSP:          cfg.RRSPDailyDeposit,
		wealthsimple.RoleNonRegistered: cfg.NonRegDailyDeposit,
	}

	s := &snapshot{
		cfg:         cfg,
		client:      client,
		roles:       roles,
		policy:      policy,
		tables:      make(map[wealthsimple.Role]*wsfolio.AccountTable, len(roles)),
		quotes:      quotes,
		securityIDs: securityIDs,
		daysLeft:    daysLeft,
	}
	for role := range roles {
		account, err := roles.Account(role, accounts)
		if err != nil {
			return nil, err
		}
		corePositions := make([]wsfolio.Position, 0, len(grouped[account.ID]))
		for _, p := range grouped[account.ID] {
			corePositions = append(corePositions, p.Core())
		}
		table, err := wsfolio.NewAccountTable(wsfolio.AccountInput{
			Summary:         account.Core(),
			Positions:       corePositions,
			Quotes:          quotes,
			Policy:          policy,
			DailyBuys:       buys[account.ID],
			DailyDeposit:    deposits[role],
			TradingDaysLeft: daysLeft,
		})
		if err != nil {
			return nil, err
		}
		s.tables[role] = table
	}
	return s, nil
}

// combined merges all account tables into the consolidated view.
func (s *snapshot) combined() (*wsfolio.CombinedTable, error) {
	tables := []*wsfolio.AccountTable{s.tables[wealthsimple.RoleTFSA]}
	for _, role := range mirroredRoles {
		tables = append(tables, s.tables[role])
	}
	return wsfolio.NewCombinedTable(tables)
}

// mirror compares a role's account against the TFSA's actual allocation.
func (s *snapshot) mirror(role wealthsimple.Role) *wsfolio.MirrorTable {
	ignored := make(map[string]bool, len(s.cfg.MirrorIgnored))
	for _, symbol := range s.cfg.MirrorIgnored {
		ignored[symbol] = true
	}
	return wsfolio.NewMirrorTable(s.tables[wealthsimple.RoleTFSA], s.tables[role], ignored)
}
