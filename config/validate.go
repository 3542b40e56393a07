package config

import "fmt"

// ValidateConfig checks that all configuration values are within
// acceptable ranges and returns the first error encountered, or nil if
// valid.
func ValidateConfig(cfg Config) error {
	if cfg.Owner.IsZero() {
		return ErrZeroOwner
	}

	if cfg.RoyaltyBps > maxBps {
		return fmt.Errorf("%w: %d bps", ErrInvalidRoyaltyBps, cfg.RoyaltyBps)
	}
	if cfg.RoyaltyBps > 0 && cfg.RoyaltyReceiver.IsZero() {
		return ErrMissingRoyaltyReceiver
	}

	if cfg.RemintPremiumBps > maxBps {
		return fmt.Errorf("%w: %d bps", ErrInvalidPremiumBps, cfg.RemintPremiumBps)
	}

	if cfg.Affiliate.FeeBps > maxBps || cfg.Affiliate.DiscountBps > maxBps {
		return fmt.Errorf("%w: fee %d, discount %d bps",
			ErrInvalidAffiliateBps, cfg.Affiliate.FeeBps, cfg.Affiliate.DiscountBps)
	}
	if cfg.Affiliate.FeeBps > 0 && cfg.Affiliate.Signer == nil {
		return ErrMissingAffiliateSigner
	}

	if err := cfg.Split.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSplit, err)
	}

	return nil
}
