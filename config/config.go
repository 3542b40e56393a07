// Package config defines and validates collection configuration. All
// configuration arrives as structured records; there is no file, env,
// or CLI surface.
package config

import (
	"github.com/dropforge/libdrop-go/affiliate"
	"github.com/dropforge/libdrop-go/revsplit"
	"github.com/dropforge/libdrop-go/token"
)

// Config fixes a collection's parties and economics at construction.
// Invites are configured separately, per list key, after construction.
type Config struct {
	// Owner controls invites and receives the residual revenue share.
	Owner token.Address

	// Platform may rotate its own address and shares revenue per Split.
	Platform token.Address

	// MaxSupply is the global collection cap in whole units; 0 means
	// uncapped until locked.
	MaxSupply uint64

	// RoyaltyBps and RoyaltyReceiver answer EIP-2981 royalty queries.
	RoyaltyBps      uint64
	RoyaltyReceiver token.Address

	// RemintPremiumBps is deducted from every burn-to-remint, rounded
	// toward the sink.
	RemintPremiumBps uint64

	Split     revsplit.Config
	Affiliate affiliate.Params
}

const maxBps = 10_000
