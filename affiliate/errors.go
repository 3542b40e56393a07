package affiliate

import "errors"

var (
	// ErrInvalidSignature indicates the referral signature was not
	// produced by the trusted signer.
	ErrInvalidSignature = errors.New("affiliate: invalid signature")

	// ErrBalanceEmpty indicates a withdrawal against a zero balance.
	ErrBalanceEmpty = errors.New("affiliate: balance empty")
)
