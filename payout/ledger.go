// Package payout implements the shared pull-payment ledger. Revenue
// splitters from any number of collections credit balances per
// beneficiary; beneficiaries (or their explicitly approved delegates)
// pull them later. The ledger is independent of any single collection.
package payout

import "github.com/dropforge/libdrop-go/token"

// Ledger is the pull-payment surface. Implementations must apply each
// call atomically: a failed withdrawal leaves every balance unchanged.
type Ledger interface {
	// Credit accrues native currency to the beneficiary.
	Credit(beneficiary token.Address, amount uint64) error

	// CreditToken accrues an ERC20 amount to the beneficiary.
	CreditToken(beneficiary, tok token.Address, amount uint64) error

	// Balance returns the beneficiary's unwithdrawn native balance.
	Balance(beneficiary token.Address) (uint64, error)

	// TokenBalance returns the beneficiary's unwithdrawn balance in tok.
	TokenBalance(beneficiary, tok token.Address) (uint64, error)

	// ApproveWithdrawal grants or revokes delegate's right to pull the
	// owner's balances on the owner's behalf.
	ApproveWithdrawal(owner, delegate token.Address, approved bool) error

	// IsApproved reports whether delegate may pull for owner.
	IsApproved(owner, delegate token.Address) (bool, error)

	// Withdraw zeroes and returns the owner's native balance.
	Withdraw(owner token.Address) (uint64, error)

	// WithdrawFrom zeroes the owner's native balance on behalf of to,
	// which must be the owner or an approved delegate.
	WithdrawFrom(owner, to token.Address) (uint64, error)

	// WithdrawTokens zeroes and returns the owner's balance in each tok.
	WithdrawTokens(owner token.Address, toks []token.Address) ([]uint64, error)

	// WithdrawTokensFrom is WithdrawTokens on behalf of to.
	WithdrawTokensFrom(owner, to token.Address, toks []token.Address) ([]uint64, error)
}
