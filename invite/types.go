// Package invite owns the named sale configurations of a collection.
// An invite is keyed by a 32-byte list key: a Merkle root gating who may
// buy, or the zero key for a public sale. The registry enforces time
// windows, per-list limits, supply ceilings, and blacklist inversion.
package invite

import (
	"github.com/dropforge/libdrop-go/merkle"
	"github.com/dropforge/libdrop-go/pricing"
	"github.com/dropforge/libdrop-go/token"
)

// Invite is one sale configuration. The zero value is a disabled sale
// (Limit 0), which is how absent list keys behave.
type Invite struct {
	Price     uint64 // base unit price in the smallest currency unit
	Start     int64  // sale opens, UNIX seconds (inclusive)
	End       int64  // sale closes, UNIX seconds (exclusive); 0 = open-ended
	Limit     uint64 // max units sellable through this invite, all buyers
	MaxSupply uint64 // per-invite ceiling on total collection supply
	UnitSize  uint64 // tokens credited per mint unit; 0/1 = no multiplier

	// TokenAddress selects the payment currency: zero for native, else
	// an ERC20 ledger registered with the collection.
	TokenAddress token.Address

	// IsBlacklist inverts proof semantics: a valid membership proof
	// means the claimant is excluded.
	IsBlacklist bool

	// Advanced pricing. Delta 0 means flat at Price.
	ReservePrice uint64
	Interval     uint64
	Delta        uint64

	// BonusTiers, ordered by descending threshold.
	BonusTiers []pricing.BonusTier
}

// EffectiveUnitSize returns the unit multiplier, treating 0 as 1.
func (i *Invite) EffectiveUnitSize() uint64 {
	if i.UnitSize == 0 {
		return 1
	}
	return i.UnitSize
}

// Curve returns the invite's price curve.
func (i *Invite) Curve() pricing.Curve {
	return pricing.Curve{
		Price:    i.Price,
		Reserve:  i.ReservePrice,
		Start:    i.Start,
		Interval: i.Interval,
		Delta:    i.Delta,
	}
}

// BurnInvite is a sale configuration consumed by burn-to-mint: units of
// a source collection are burned (sent to BurnAddress) to mint units
// here, at Ratio source units per minted unit, or Ratio minted units
// per source unit when Reversed.
type BurnInvite struct {
	Invite

	Ratio    uint64
	Reversed bool

	// BurnErc721 identifies the source collection whose units are burned.
	BurnErc721 token.Address

	// BurnAddress receives the burned source tokens; a literal sink so
	// the source collection's supply accounting stays intact.
	BurnAddress token.Address
}

// Key is an invite list key: a Merkle root, or zero for public.
type Key = merkle.Root
