package collection

import (
	"github.com/dropforge/libdrop-go/invite"
	"github.com/dropforge/libdrop-go/token"
)

// Platform returns the current platform address.
func (c *Collection) Platform() token.Address {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.platform
}

// MaxSupply returns the global supply cap; 0 means unbounded.
func (c *Collection) MaxSupply() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.maxSupply
}

// TotalSupply returns the units currently minted.
func (c *Collection) TotalSupply() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.minter.TotalSupply()
}

// Invites returns a copy of every configured invite, keyed by list key.
func (c *Collection) Invites() map[invite.Key]invite.Invite {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.invites.All()
}

// InviteOf returns the invite stored under key, if any.
func (c *Collection) InviteOf(key invite.Key) (invite.Invite, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.invites.Get(key)
}

// BurnInviteOf returns the burn invite stored under key, if any.
func (c *Collection) BurnInviteOf(key invite.Key) (invite.BurnInvite, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	bi, ok := c.burnInvites[key]
	return bi, ok
}

// Minted returns the cumulative purchased units sold through key.
func (c *Collection) Minted(key invite.Key) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.invites.Minted(key)
}

// OwnerBalance returns the owner's unwithdrawn native revenue.
func (c *Collection) OwnerBalance() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ownerBalance
}

// OwnerTokenBalance returns the owner's unwithdrawn revenue in tok.
func (c *Collection) OwnerTokenBalance(tok token.Address) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ownerTokenBalance[tok]
}

// AffiliateBalance returns an affiliate's unwithdrawn native commission.
func (c *Collection) AffiliateBalance(affiliate token.Address) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.affiliates.Balance(affiliate)
}

// AffiliateTokenBalance returns an affiliate's unwithdrawn commission
// in tok.
func (c *Collection) AffiliateTokenBalance(affiliate, tok token.Address) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.affiliates.TokenBalance(affiliate, tok)
}

// RoyaltyInfo returns the royalty receiver and amount owed on a
// secondary sale of tokenID at salePrice. The royalty is uniform across
// the collection; tokenID is accepted for interface parity.
func (c *Collection) RoyaltyInfo(tokenID, salePrice uint64) (token.Address, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.RoyaltyReceiver, salePrice * c.cfg.RoyaltyBps / 10_000
}

// NumErc20Minted returns the cumulative fungible subunits ever minted
// on a hybrid collection, 0 otherwise.
func (c *Collection) NumErc20Minted() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hybrid == nil {
		return 0
	}
	return c.hybrid.NumErc20Minted()
}
