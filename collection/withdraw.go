package collection

import (
	"go.uber.org/zap"

	"github.com/dropforge/libdrop-go/token"
)

// Withdraw zeroes and returns the owner's accrued native revenue. The
// balance is cleared before the caller's environment performs the
// transfer. Parties other than the owner accrue in the shared payout
// ledger and withdraw there.
func (c *Collection) Withdraw(caller token.Address) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if caller != c.owner {
		return 0, ErrNotShareholder
	}
	amount := c.ownerBalance
	if amount == 0 {
		return 0, ErrBalanceEmpty
	}
	c.ownerBalance = 0
	c.log.Info("owner withdrawal", zap.Uint64("amount", amount))
	return amount, nil
}

// WithdrawTokens zeroes and returns the owner's accrued balance in each
// of the given payment tokens. Any empty balance fails the whole call
// with nothing cleared.
func (c *Collection) WithdrawTokens(caller token.Address, toks []token.Address) ([]uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if caller != c.owner {
		return nil, ErrNotShareholder
	}
	amounts := make([]uint64, len(toks))
	for i, tok := range toks {
		amounts[i] = c.ownerTokenBalance[tok]
		if amounts[i] == 0 {
			return nil, ErrBalanceEmpty
		}
	}
	for _, tok := range toks {
		c.ownerTokenBalance[tok] = 0
	}
	return amounts, nil
}

// WithdrawAffiliate zeroes and returns the caller's accrued native
// commissions.
func (c *Collection) WithdrawAffiliate(caller token.Address) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.affiliates.Withdraw(caller)
}

// WithdrawAffiliateTokens zeroes and returns the caller's accrued
// commission in tok.
func (c *Collection) WithdrawAffiliateTokens(caller, tok token.Address) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.affiliates.WithdrawToken(caller, tok)
}
