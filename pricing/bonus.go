package pricing

// BonusTier grants free bonus mints when a purchase reaches a quantity
// threshold.
type BonusTier struct {
	NumMints      uint64 // quantity threshold
	NumBonusMints uint64 // free mints granted per threshold multiple
}

// ResolveBonus returns the bonus mints granted for purchasing quantity
// units against tiers ordered by descending threshold. The first tier
// whose threshold the quantity meets wins outright; the bonus applies
// once per whole multiple of the threshold and the remainder does not
// cascade into smaller tiers.
func ResolveBonus(tiers []BonusTier, quantity uint64) uint64 {
	for _, tier := range tiers {
		if tier.NumMints == 0 {
			continue
		}
		if quantity >= tier.NumMints {
			return (quantity / tier.NumMints) * tier.NumBonusMints
		}
	}
	return 0
}
