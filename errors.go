package wsfolio

import "errors"

// The engine never retries and never degrades: every failure wraps one of
// these sentinels with the symbol, account or invariant that failed, and the
// affected computation is aborted as a whole.
var (
	// ErrBadPolicy reports a policy table whose target fractions do not sum
	// to 1. This is a configuration error, fatal at load time.
	ErrBadPolicy = errors.New("policy fractions do not sum to 1")

	// ErrQuoteNotFound reports a held symbol with no matching quote in the
	// market data snapshot.
	ErrQuoteNotFound = errors.New("quote not found")

	// ErrInvalidPosition reports a held position whose data makes derived
	// metrics undefined (e.g. zero quantity).
	ErrInvalidPosition = errors.New("invalid position")

	// ErrNoTradingDays reports a funding plan whose target completion date
	// leaves no trading days, making daily pacing undefined.
	ErrNoTradingDays = errors.New("no trading days remaining before target date")

	// ErrEmptyCombine reports an attempt to combine zero position rows,
	// which is a caller bug.
	ErrEmptyCombine = errors.New("cannot combine zero rows")
)
