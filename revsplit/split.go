// Package revsplit divides net sale proceeds among the collection's
// parties by fixed basis-point configuration. The owner always receives
// the integer remainder, so the shares of any payment sum to the
// payment exactly.
package revsplit

import (
	"fmt"

	"github.com/dropforge/libdrop-go/token"
)

const bpsDenominator = 10_000

// Config fixes the split for one collection. OwnerBps is implicit: the
// owner receives whatever the configured parties do not.
type Config struct {
	PlatformBps       uint64
	PartnerBps        uint64
	SuperAffiliateBps uint64

	Platform       token.Address
	Partner        token.Address
	SuperAffiliate token.Address

	// OwnerAltPayout, when set, redirects the owner's share to a direct
	// transfer instead of accrual in the collection's owner balance.
	OwnerAltPayout token.Address
}

// Validate checks the configuration at set time. Basis points must
// leave the owner a non-negative share, and any party with a nonzero
// share needs a destination address.
func (c *Config) Validate() error {
	total := c.PlatformBps + c.PartnerBps + c.SuperAffiliateBps
	if total > bpsDenominator {
		return fmt.Errorf("%w: %d bps configured", ErrBpsExceedTotal, total)
	}
	if c.PlatformBps > 0 && c.Platform.IsZero() {
		return fmt.Errorf("%w: platform", ErrMissingBeneficiary)
	}
	if c.PartnerBps > 0 && c.Partner.IsZero() {
		return fmt.Errorf("%w: partner", ErrMissingBeneficiary)
	}
	if c.SuperAffiliateBps > 0 && c.SuperAffiliate.IsZero() {
		return fmt.Errorf("%w: super affiliate", ErrMissingBeneficiary)
	}
	return nil
}

// Share is one party's cut of a payment. Direct shares are paid out
// immediately by the settlement phase; the rest are queued in the
// payout ledger.
type Share struct {
	Beneficiary token.Address
	Amount      uint64
	Direct      bool
}

// Split divides net proceeds among the configured parties. Fixed-bps
// shares are floored; the owner's share is the remainder, so the
// returned amounts always sum to net. Zero-amount shares are omitted.
func Split(cfg Config, net uint64, owner token.Address) []Share {
	var shares []Share
	var allotted uint64

	for _, p := range []struct {
		bps  uint64
		addr token.Address
	}{
		{cfg.PlatformBps, cfg.Platform},
		{cfg.PartnerBps, cfg.Partner},
		{cfg.SuperAffiliateBps, cfg.SuperAffiliate},
	} {
		amount := net * p.bps / bpsDenominator
		if amount == 0 {
			continue
		}
		shares = append(shares, Share{Beneficiary: p.addr, Amount: amount})
		allotted += amount
	}

	ownerShare := net - allotted
	if ownerShare > 0 {
		s := Share{Beneficiary: owner, Amount: ownerShare}
		if !cfg.OwnerAltPayout.IsZero() {
			s.Beneficiary = cfg.OwnerAltPayout
			s.Direct = true
		}
		shares = append(shares, s)
	}
	return shares
}
