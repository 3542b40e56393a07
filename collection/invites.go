package collection

import (
	"encoding/hex"

	"go.uber.org/zap"

	"github.com/dropforge/libdrop-go/invite"
	"github.com/dropforge/libdrop-go/pricing"
	"github.com/dropforge/libdrop-go/token"
)

func keyString(key invite.Key) string {
	return hex.EncodeToString(key[:])
}

// SetInvite stores or overwrites the sale configuration under key.
// Owner-only. Structural bounds aside, no validation is performed: an
// invite whose limit exceeds its supply ceiling is merely unreachable.
func (c *Collection) SetInvite(caller token.Address, key invite.Key, hint string, inv invite.Invite) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.requireOwner(caller); err != nil {
		return err
	}
	if c.inviteStore != nil {
		if err := c.inviteStore.Put(key, &inv); err != nil {
			return err
		}
	}
	c.invites.Set(key, hint, inv)
	c.log.Info("invite set",
		zap.String("key", keyString(key)),
		zap.Uint64("price", inv.Price),
		zap.Uint64("limit", inv.Limit))
	return nil
}

// SetAdvancedInvite is SetInvite for curve-priced sales; the invite
// record carries the curve fields directly.
func (c *Collection) SetAdvancedInvite(caller token.Address, key invite.Key, hint string, inv invite.Invite) error {
	return c.SetInvite(caller, key, hint, inv)
}

// SetBonusInvite stores an invite with bonus tiers attached.
func (c *Collection) SetBonusInvite(caller token.Address, key invite.Key, hint string, inv invite.Invite, tiers []pricing.BonusTier) error {
	inv.BonusTiers = tiers
	return c.SetInvite(caller, key, hint, inv)
}

// SetBurnInvite stores or overwrites the burn-to-mint configuration
// under key. Owner-only.
func (c *Collection) SetBurnInvite(caller token.Address, key invite.Key, bi invite.BurnInvite) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.requireOwner(caller); err != nil {
		return err
	}
	c.burnInvites[key] = bi
	c.log.Info("burn invite set",
		zap.String("key", keyString(key)),
		zap.Uint64("ratio", bi.Ratio),
		zap.Bool("reversed", bi.Reversed))
	return nil
}
