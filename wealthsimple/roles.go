package wealthsimple

import (
	"errors"
	"fmt"
)

// Role names the function an account plays in the allocation plan. Roles
// are mapped to account ids explicitly in configuration; nothing is ever
// inferred from account names or types.
type Role string

const (
	RoleTFSA          Role = "tfsa"
	RoleRRSP          Role = "rrsp"
	RoleNonRegistered Role = "nonreg"
)

// ErrBadRoles means the role configuration is unusable.
var ErrBadRoles = errors.New("wealthsimple: bad account roles")

// Roles maps each role to its account id.
type Roles map[Role]string

// NewRoles validates a role mapping: every role must name a distinct,
// non-empty account id.
func NewRoles(tfsa, rrsp, nonRegistered string) (Roles, error) {
	r := Roles{RoleTFSA: tfsa, RoleRRSP: rrsp, RoleNonRegistered: nonRegistered}
	seen := make(map[string]Role, len(r))
	for role, id := range r {
		if id == "" {
			return nil, fmt.Errorf("%w: %s has no account id", ErrBadRoles, role)
		}
		if other, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: %s and %s both map to %s", ErrBadRoles, other, role, id)
		}
		seen[id] = role
	}
	return r, nil
}

// Account returns the account with the given role, erroring when the
// mapped id is not among the fetched accounts.
func (r Roles) Account(role Role, accounts []AccountFinancials) (AccountFinancials, error) {
	id, ok := r[role]
	if !ok {
		return AccountFinancials{}, fmt.Errorf("%w: no mapping for %s", ErrBadRoles, role)
	}
	for _, a := range accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return AccountFinancials{}, fmt.Errorf("%w: account %s (%s) not among fetched accounts", ErrUnknownAccount, id, role)
}
