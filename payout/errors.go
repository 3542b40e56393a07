package payout

import "errors"

var (
	// ErrBalanceEmpty indicates a withdrawal against a zero balance.
	ErrBalanceEmpty = errors.New("payout: balance empty")

	// ErrNotApprovedToWithdraw indicates the puller is neither the owner
	// nor an approved delegate.
	ErrNotApprovedToWithdraw = errors.New("payout: not approved to withdraw")

	// ErrZeroBeneficiary indicates a credit to the zero address.
	ErrZeroBeneficiary = errors.New("payout: zero beneficiary address")
)
