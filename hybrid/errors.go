package hybrid

import "errors"

var (
	// ErrZeroUnit indicates a ledger configured with zero sub-units per unit.
	ErrZeroUnit = errors.New("hybrid: zero unit size")

	// ErrZeroSink indicates a ledger configured without a burn sink.
	ErrZeroSink = errors.New("hybrid: zero sink address")

	// ErrInvalidAmountOfTokens indicates a burn list that is too short
	// or contains duplicates.
	ErrInvalidAmountOfTokens = errors.New("hybrid: invalid amount of tokens")
)
