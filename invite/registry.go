package invite

import (
	"fmt"

	"github.com/dropforge/libdrop-go/merkle"
)

// Registry holds a collection's invites keyed by list key, together
// with the cumulative units sold through each key. It is not
// synchronized; the owning collection serializes access.
type Registry struct {
	invites map[Key]Invite
	hints   map[Key]string
	minted  map[Key]uint64 // purchased units per list, cumulative
}

// NewRegistry returns an empty invite registry.
func NewRegistry() *Registry {
	return &Registry{
		invites: make(map[Key]Invite),
		hints:   make(map[Key]string),
		minted:  make(map[Key]uint64),
	}
}

// Set stores or overwrites the invite under key. The hint is an opaque
// content pointer for off-process tooling (e.g. where the full list
// lives); it is not interpreted. Sold counters survive overwrites so an
// updated invite cannot reset its own limit accounting.
func (r *Registry) Set(key Key, hint string, inv Invite) {
	r.invites[key] = inv
	r.hints[key] = hint
}

// Get returns the invite stored under key. Absent keys return the zero
// invite, which behaves as a paused sale.
func (r *Registry) Get(key Key) (Invite, bool) {
	inv, ok := r.invites[key]
	return inv, ok
}

// Hint returns the content hint stored with the invite.
func (r *Registry) Hint(key Key) string { return r.hints[key] }

// All returns a copy of every stored invite, keyed by list key.
func (r *Registry) All() map[Key]Invite {
	out := make(map[Key]Invite, len(r.invites))
	for k, inv := range r.invites {
		out[k] = inv
	}
	return out
}

// Minted returns the cumulative purchased units sold through key.
func (r *Registry) Minted(key Key) uint64 { return r.minted[key] }

// Verify gates a claimant through the key's Merkle set. Public keys
// admit everyone. Blacklist-mode invites invert the result: a valid
// membership proof rejects the claimant, a failed one admits them.
func (r *Registry) Verify(key Key, inv *Invite, proof *merkle.Proof, claimant []byte) error {
	member := merkle.VerifyProof(key, claimant, proof)
	if inv.IsBlacklist && !key.IsPublic() {
		if member {
			return fmt.Errorf("%w: %x", ErrBlacklisted, claimant)
		}
		return nil
	}
	if !member {
		return fmt.Errorf("%w: %x", ErrWalletUnauthorized, claimant)
	}
	return nil
}

// CheckWindow validates the invite is live at now: configured with a
// nonzero limit, past its start, and before its end.
func (r *Registry) CheckWindow(inv *Invite, now int64) error {
	if inv.Limit == 0 {
		return ErrMintingPaused
	}
	if now < inv.Start {
		return fmt.Errorf("%w: starts at %d, now %d", ErrMintNotStarted, inv.Start, now)
	}
	if inv.End != 0 && now >= inv.End {
		return fmt.Errorf("%w: ended at %d, now %d", ErrMintEnded, inv.End, now)
	}
	return nil
}

// CheckAndReserve atomically checks every capacity bound and, only if
// all pass, commits the purchased units to the per-list counter.
//
// purchased counts the units bought through the list (quantity times
// unit size) and is what the invite's Limit bounds. credited counts
// everything the buyer will receive, bonus units included, and is what
// the supply ceilings bound. supply and globalMax describe the
// collection at the time of the call.
//
// The comparisons are phrased as subtractions against the remaining
// headroom so an adversarial purchased/credited near the uint64 ceiling
// cannot wrap the sum past a bound.
func (r *Registry) CheckAndReserve(key Key, inv *Invite, purchased, credited, supply, globalMax uint64) error {
	if r.minted[key] > inv.Limit || purchased > inv.Limit-r.minted[key] {
		return fmt.Errorf("%w: sold %d of %d, requested %d",
			ErrNumberOfMintsExceeded, r.minted[key], inv.Limit, purchased)
	}
	if inv.MaxSupply != 0 && (supply > inv.MaxSupply || credited > inv.MaxSupply-supply) {
		return fmt.Errorf("%w: supply %d + %d > %d",
			ErrListMaxSupplyExceeded, supply, credited, inv.MaxSupply)
	}
	if globalMax != 0 && (supply > globalMax || credited > globalMax-supply) {
		return fmt.Errorf("%w: supply %d + %d > %d",
			ErrMaxSupplyExceeded, supply, credited, globalMax)
	}
	r.minted[key] += purchased
	return nil
}
