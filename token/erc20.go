package token

import "fmt"

// ERC20 is the fungible-ledger surface the mint orchestrator uses for
// token-denominated payment and withdrawal. Transfer bookkeeping is
// assumed correct; the engine only consumes it.
type ERC20 interface {
	// BalanceOf returns the holder's balance.
	BalanceOf(holder Address) uint64

	// Allowance returns how much spender may pull from owner.
	Allowance(owner, spender Address) uint64

	// TransferFrom moves amount from one account to another on behalf of
	// spender, consuming allowance when spender != from.
	TransferFrom(spender, from, to Address, amount uint64) error
}

// FungibleLedger is an in-memory ERC20 implementation backing tests and
// single-process deployments.
type FungibleLedger struct {
	balances   map[Address]uint64
	allowances map[Address]map[Address]uint64
}

// NewFungibleLedger returns an empty fungible ledger.
func NewFungibleLedger() *FungibleLedger {
	return &FungibleLedger{
		balances:   make(map[Address]uint64),
		allowances: make(map[Address]map[Address]uint64),
	}
}

// Compile-time interface check.
var _ ERC20 = (*FungibleLedger)(nil)

// Mint credits newly created tokens to the holder.
func (l *FungibleLedger) Mint(to Address, amount uint64) error {
	if to.IsZero() {
		return ErrMintToZeroAddress
	}
	l.balances[to] += amount
	return nil
}

// BalanceOf returns the holder's balance.
func (l *FungibleLedger) BalanceOf(holder Address) uint64 {
	return l.balances[holder]
}

// Approve sets spender's allowance over owner's balance.
func (l *FungibleLedger) Approve(owner, spender Address, amount uint64) {
	m := l.allowances[owner]
	if m == nil {
		m = make(map[Address]uint64)
		l.allowances[owner] = m
	}
	m[spender] = amount
}

// Allowance returns how much spender may pull from owner.
func (l *FungibleLedger) Allowance(owner, spender Address) uint64 {
	return l.allowances[owner][spender]
}

// TransferFrom moves amount from one account to another. When spender
// differs from the source account the spender's allowance is checked
// and consumed.
func (l *FungibleLedger) TransferFrom(spender, from, to Address, amount uint64) error {
	if to.IsZero() {
		return ErrTransferToZeroAddress
	}
	if l.balances[from] < amount {
		return fmt.Errorf("%w: have %d, need %d", ErrErc20BalanceTooLow, l.balances[from], amount)
	}
	if spender != from {
		allowed := l.allowances[from][spender]
		if allowed < amount {
			return fmt.Errorf("%w: allowance %d, need %d", ErrNotApprovedToTransfer, allowed, amount)
		}
		l.allowances[from][spender] = allowed - amount
	}
	l.balances[from] -= amount
	l.balances[to] += amount
	return nil
}
