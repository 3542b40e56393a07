package payout

import (
	"fmt"

	"github.com/dropforge/libdrop-go/token"
)

// MemLedger is an in-memory Ledger for tests and embedded use. Same
// semantics as BoltLedger, no persistence. Not synchronized.
type MemLedger struct {
	balances      map[token.Address]uint64
	tokenBalances map[token.Address]map[token.Address]uint64
	approvals     map[token.Address]map[token.Address]bool
}

// Compile-time interface check.
var _ Ledger = (*MemLedger)(nil)

// NewMemLedger returns an empty in-memory ledger.
func NewMemLedger() *MemLedger {
	return &MemLedger{
		balances:      make(map[token.Address]uint64),
		tokenBalances: make(map[token.Address]map[token.Address]uint64),
		approvals:     make(map[token.Address]map[token.Address]bool),
	}
}

// Credit accrues native currency to the beneficiary.
func (l *MemLedger) Credit(beneficiary token.Address, amount uint64) error {
	if beneficiary.IsZero() {
		return ErrZeroBeneficiary
	}
	l.balances[beneficiary] += amount
	return nil
}

// CreditToken accrues an ERC20 amount to the beneficiary.
func (l *MemLedger) CreditToken(beneficiary, tok token.Address, amount uint64) error {
	if beneficiary.IsZero() {
		return ErrZeroBeneficiary
	}
	m := l.tokenBalances[beneficiary]
	if m == nil {
		m = make(map[token.Address]uint64)
		l.tokenBalances[beneficiary] = m
	}
	m[tok] += amount
	return nil
}

// Balance returns the beneficiary's unwithdrawn native balance.
func (l *MemLedger) Balance(beneficiary token.Address) (uint64, error) {
	return l.balances[beneficiary], nil
}

// TokenBalance returns the beneficiary's unwithdrawn balance in tok.
func (l *MemLedger) TokenBalance(beneficiary, tok token.Address) (uint64, error) {
	return l.tokenBalances[beneficiary][tok], nil
}

// ApproveWithdrawal grants or revokes delegated withdrawal.
func (l *MemLedger) ApproveWithdrawal(owner, delegate token.Address, approved bool) error {
	m := l.approvals[owner]
	if m == nil {
		m = make(map[token.Address]bool)
		l.approvals[owner] = m
	}
	m[delegate] = approved
	return nil
}

// IsApproved reports whether delegate may pull for owner.
func (l *MemLedger) IsApproved(owner, delegate token.Address) (bool, error) {
	return l.approvals[owner][delegate], nil
}

// Withdraw zeroes and returns the owner's native balance.
func (l *MemLedger) Withdraw(owner token.Address) (uint64, error) {
	return l.WithdrawFrom(owner, owner)
}

// WithdrawFrom zeroes the owner's native balance on behalf of to.
func (l *MemLedger) WithdrawFrom(owner, to token.Address) (uint64, error) {
	if to != owner && !l.approvals[owner][to] {
		return 0, fmt.Errorf("%w: %s for %s", ErrNotApprovedToWithdraw, to, owner)
	}
	amount := l.balances[owner]
	if amount == 0 {
		return 0, ErrBalanceEmpty
	}
	l.balances[owner] = 0
	return amount, nil
}

// WithdrawTokens zeroes and returns the owner's balance in each tok.
func (l *MemLedger) WithdrawTokens(owner token.Address, toks []token.Address) ([]uint64, error) {
	return l.WithdrawTokensFrom(owner, owner, toks)
}

// WithdrawTokensFrom is WithdrawTokens on behalf of to.
func (l *MemLedger) WithdrawTokensFrom(owner, to token.Address, toks []token.Address) ([]uint64, error) {
	if to != owner && !l.approvals[owner][to] {
		return nil, fmt.Errorf("%w: %s for %s", ErrNotApprovedToWithdraw, to, owner)
	}
	amounts := make([]uint64, len(toks))
	for i, tok := range toks {
		amounts[i] = l.tokenBalances[owner][tok]
		if amounts[i] == 0 {
			return nil, fmt.Errorf("%w: token %s", ErrBalanceEmpty, tok)
		}
	}
	for _, tok := range toks {
		l.tokenBalances[owner][tok] = 0
	}
	return amounts, nil
}
