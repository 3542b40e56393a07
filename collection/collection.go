// Package collection is the public entry point of the issuance engine.
// A Collection composes the invite registry, price curves, affiliate
// ledger, revenue splitter, payout ledger, and a token ledger into the
// mint, burn, and withdrawal operations. Every entry point runs under
// one mutex: checks are evaluated against state as of the start of the
// call and committed atomically, and external value transfers are
// surfaced as receipt payments only after all ledger state is final.
package collection

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/dropforge/libdrop-go/affiliate"
	"github.com/dropforge/libdrop-go/config"
	"github.com/dropforge/libdrop-go/hybrid"
	"github.com/dropforge/libdrop-go/invite"
	"github.com/dropforge/libdrop-go/payout"
	"github.com/dropforge/libdrop-go/token"
)

// Deps are the collaborators a Collection composes. Minter and Payout
// default to in-memory implementations when unset; Log defaults to a
// nop logger.
type Deps struct {
	// Minter is the token ledger units are credited to: a
	// *hybrid.Accounting for hybrid collections or a
	// *token.UnitRegistry for plain ones.
	Minter token.Minter

	// Payout is the shared pull-payment ledger revenue shares accrue in.
	Payout payout.Ledger

	// Invites is an optional persistent invite store. Persisted invites
	// are reloaded at construction and every update writes through.
	Invites *invite.BoltStore

	// Tokens maps payment-token addresses to their ERC20 ledgers.
	Tokens map[token.Address]token.ERC20

	// Collections maps source-collection addresses for burn-to-mint.
	Collections map[token.Address]token.NFT

	Log *zap.Logger

	// Metrics receives the collection's counters; nil leaves them
	// unregistered.
	Metrics prometheus.Registerer

	// Clock returns the current UNIX time; defaults to time.Now.
	Clock func() int64
}

// Collection holds all mutable state of one token collection.
type Collection struct {
	mu sync.Mutex

	// addr is the collection's own account, used as escrow for ERC20
	// payments.
	addr token.Address

	cfg      config.Config
	owner    token.Address
	platform token.Address

	maxSupply    uint64
	supplyLocked bool

	invites     *invite.Registry
	inviteStore *invite.BoltStore
	burnInvites map[invite.Key]invite.BurnInvite

	affiliates *affiliate.Ledger
	payout     payout.Ledger
	minter     token.Minter
	hybrid     *hybrid.Accounting // non-nil when minter is hybrid
	erc20      map[token.Address]token.ERC20
	sources    map[token.Address]token.NFT

	ownerBalance      uint64
	ownerTokenBalance map[token.Address]uint64

	log     *zap.Logger
	metrics *metrics
	now     func() int64
}

// New builds a Collection at addr from a validated configuration.
func New(addr token.Address, cfg config.Config, deps Deps) (*Collection, error) {
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	c := &Collection{
		addr:              addr,
		cfg:               cfg,
		owner:             cfg.Owner,
		platform:          cfg.Platform,
		maxSupply:         cfg.MaxSupply,
		invites:           invite.NewRegistry(),
		inviteStore:       deps.Invites,
		burnInvites:       make(map[invite.Key]invite.BurnInvite),
		affiliates:        affiliate.NewLedger(cfg.Affiliate),
		payout:            deps.Payout,
		minter:            deps.Minter,
		erc20:             deps.Tokens,
		sources:           deps.Collections,
		ownerTokenBalance: make(map[token.Address]uint64),
		log:               deps.Log,
		metrics:           newMetrics(deps.Metrics),
		now:               deps.Clock,
	}

	if c.minter == nil {
		c.minter = token.NewUnitRegistry()
	}
	if h, ok := c.minter.(*hybrid.Accounting); ok {
		c.hybrid = h
	}
	if c.payout == nil {
		c.payout = payout.NewMemLedger()
	}
	if c.erc20 == nil {
		c.erc20 = make(map[token.Address]token.ERC20)
	}
	if c.sources == nil {
		c.sources = make(map[token.Address]token.NFT)
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if c.now == nil {
		c.now = func() int64 { return time.Now().Unix() }
	}

	if c.inviteStore != nil {
		stored, err := c.inviteStore.Load()
		if err != nil {
			return nil, err
		}
		for key, inv := range stored {
			c.invites.Set(key, "", inv)
		}
	}

	return c, nil
}

// Address returns the collection's own account address.
func (c *Collection) Address() token.Address { return c.addr }

// Owner returns the current owner address.
func (c *Collection) Owner() token.Address {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.owner
}

// requireOwner gates owner-only operations.
func (c *Collection) requireOwner(caller token.Address) error {
	if caller != c.owner {
		return ErrNotOwner
	}
	return nil
}

// TransferOwnership rotates the owner address. Owner-only.
func (c *Collection) TransferOwnership(caller, newOwner token.Address) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.requireOwner(caller); err != nil {
		return err
	}
	if newOwner.IsZero() {
		return token.ErrTransferToZeroAddress
	}
	c.owner = newOwner
	c.log.Info("ownership transferred", zap.String("to", newOwner.String()))
	return nil
}

// TransferPlatform rotates the platform address. Platform-only.
func (c *Collection) TransferPlatform(caller, newPlatform token.Address) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if caller != c.platform {
		return ErrNotPlatform
	}
	if newPlatform.IsZero() {
		return token.ErrTransferToZeroAddress
	}
	c.platform = newPlatform
	return nil
}

// SetMaxSupply adjusts the global cap. Owner-only; fails once locked
// and never goes below what is already minted.
func (c *Collection) SetMaxSupply(caller token.Address, maxSupply uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.requireOwner(caller); err != nil {
		return err
	}
	if c.supplyLocked {
		return ErrMaxSupplyLocked
	}
	if maxSupply != 0 && maxSupply < c.minter.TotalSupply() {
		return ErrInvalidMaxSupply
	}
	c.maxSupply = maxSupply
	return nil
}

// LockMaxSupply makes the current cap permanent. Owner-only, terminal.
func (c *Collection) LockMaxSupply(caller token.Address) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.requireOwner(caller); err != nil {
		return err
	}
	c.supplyLocked = true
	c.log.Info("max supply locked", zap.Uint64("max_supply", c.maxSupply))
	return nil
}
