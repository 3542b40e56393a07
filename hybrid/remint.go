package hybrid

import (
	"fmt"

	"github.com/dropforge/libdrop-go/token"
)

// RemintResult reports what a burn-to-remint did.
type RemintResult struct {
	BurnedIDs []uint64
	MintedIDs []uint64
	Fee       uint64 // sub-units moved to the sink
	Change    uint64 // fractional sub-units carried back to the caller
}

// BurnToRemint consumes the caller's listed whole-unit identifiers,
// deducts a premium, and mints replacement identifiers from the
// remaining value. The fractional remainder stays on the caller's
// balance as ordinary fungible change; nothing is lost. The premium is
// rounded up, toward the sink.
//
// Burned identifiers are reassigned to the sink, so reusing one fails
// ownership verification on the next call.
func (a *Accounting) BurnToRemint(caller token.Address, ids []uint64, premiumBps uint64) (*RemintResult, error) {
	if len(ids) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 identifiers, got %d", ErrInvalidAmountOfTokens, len(ids))
	}

	seen := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate identifier %d", ErrInvalidAmountOfTokens, id)
		}
		seen[id] = true
		owner, err := a.OwnerOf(id)
		if err != nil {
			return nil, err
		}
		if owner != caller {
			return nil, fmt.Errorf("%w: identifier %d", token.ErrNotTokenOwner, id)
		}
	}

	value := uint64(len(ids)) * a.unit
	fee := ceilBps(value, premiumBps)
	net := value - fee

	// All checks passed; commit. Retire the listed identifiers first,
	// then rebook the net value and let settle mint the replacements.
	kept := a.owned[caller][:0]
	for _, id := range a.owned[caller] {
		if seen[id] {
			a.owners[id-1] = a.sink
			continue
		}
		kept = append(kept, id)
	}
	a.owned[caller] = kept

	a.balances[caller] -= fee
	a.balances[a.sink] += fee
	a.circulating -= fee

	before := uint64(len(a.owners))
	a.settle(caller)

	result := &RemintResult{
		BurnedIDs: append([]uint64(nil), ids...),
		Fee:       fee,
		Change:    net % a.unit,
	}
	for id := before + 1; id <= uint64(len(a.owners)); id++ {
		result.MintedIDs = append(result.MintedIDs, id)
	}
	return result, nil
}

// ceilBps computes value*bps/10000 rounded up.
func ceilBps(value, bps uint64) uint64 {
	if bps == 0 {
		return 0
	}
	return (value*bps + bpsDenominator - 1) / bpsDenominator
}
