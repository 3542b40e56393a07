package collection

import (
	"go.uber.org/zap"

	"github.com/dropforge/libdrop-go/hybrid"
	"github.com/dropforge/libdrop-go/invite"
	"github.com/dropforge/libdrop-go/merkle"
	"github.com/dropforge/libdrop-go/token"
)

// BurnRequest carries one burn-to-mint call's inputs.
type BurnRequest struct {
	Key      invite.Key
	Proof    *merkle.Proof
	TokenIDs []uint64 // source-collection tokens to burn
}

// BurnToMint consumes tokens of the burn invite's source collection and
// mints units here at the configured ratio. The burned tokens are
// transferred to the invite's burn address, so the source collection's
// own accounting never observes a destruction.
func (c *Collection) BurnToMint(caller token.Address, value uint64, req BurnRequest) (*Receipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	bi, ok := c.burnInvites[req.Key]
	if !ok {
		return nil, invite.ErrMintingPaused
	}
	now := c.now()
	if err := c.invites.CheckWindow(&bi.Invite, now); err != nil {
		return nil, err
	}
	if err := c.invites.Verify(req.Key, &bi.Invite, req.Proof, caller[:]); err != nil {
		return nil, err
	}

	if len(req.TokenIDs) == 0 {
		return nil, ErrZeroQuantity
	}
	seen := make(map[uint64]struct{}, len(req.TokenIDs))
	for _, id := range req.TokenIDs {
		if _, dup := seen[id]; dup {
			return nil, token.ErrInvalidTokenId
		}
		seen[id] = struct{}{}
	}

	source, ok := c.sources[bi.BurnErc721]
	if !ok {
		return nil, ErrUnknownBurnCollection
	}
	for _, id := range req.TokenIDs {
		owner, err := source.OwnerOf(id)
		if err != nil {
			return nil, err
		}
		if owner != caller {
			return nil, token.ErrNotTokenOwner
		}
	}

	ratio := bi.Ratio
	if ratio == 0 {
		ratio = 1
	}
	burned := uint64(len(req.TokenIDs))
	var quantity uint64
	if bi.Reversed {
		var mulOK bool
		if quantity, mulOK = mulChecked(burned, ratio); !mulOK {
			return nil, ErrQuantityOverflow
		}
	} else {
		if burned%ratio != 0 {
			return nil, ErrInvalidBurnArity
		}
		quantity = burned / ratio
	}

	unitSize := bi.EffectiveUnitSize()
	purchased, mulOK := mulChecked(quantity, unitSize)
	if !mulOK {
		return nil, ErrQuantityOverflow
	}
	charged := bi.Curve().BatchPrice(now, quantity)

	var refund uint64
	var erc20 token.ERC20
	if bi.TokenAddress.IsZero() {
		if value < charged {
			return nil, ErrInsufficientValue
		}
		refund = value - charged
	} else {
		erc20, ok = c.erc20[bi.TokenAddress]
		if !ok {
			return nil, ErrUnknownPaymentToken
		}
		if erc20.BalanceOf(caller) < charged {
			return nil, token.ErrErc20BalanceTooLow
		}
		if erc20.Allowance(caller, c.addr) < charged {
			return nil, token.ErrNotApprovedToTransfer
		}
	}

	if err := c.invites.CheckAndReserve(req.Key, &bi.Invite, purchased, purchased, c.minter.TotalSupply(), c.maxSupply); err != nil {
		return nil, err
	}

	// Committed. Retire the sources, take payment, credit units.
	for _, id := range req.TokenIDs {
		if err := source.TransferFrom(caller, caller, bi.BurnAddress, id); err != nil {
			return nil, err
		}
	}
	if erc20 != nil {
		if err := erc20.TransferFrom(c.addr, caller, c.addr, charged); err != nil {
			return nil, err
		}
	}
	if err := c.minter.MintUnits(caller, purchased); err != nil {
		return nil, err
	}

	rcpt := &Receipt{
		UnitsMinted: purchased,
		Price:       charged,
		Refund:      refund,
		Currency:    bi.TokenAddress,
	}
	c.settleRevenue(rcpt, bi.TokenAddress, charged, 0, token.ZeroAddress)

	c.metrics.burns.Inc()
	c.metrics.unitsBurned.Add(float64(burned))
	c.metrics.mints.Inc()
	c.metrics.unitsMinted.Add(float64(purchased))
	c.log.Info("burned to mint",
		zap.String("caller", caller.String()),
		zap.String("key", keyString(req.Key)),
		zap.Uint64("burned", burned),
		zap.Uint64("units", purchased),
		zap.Uint64("charged", charged))
	return rcpt, nil
}

// BurnToRemint retires spent unit identifiers owned by the caller and
// reissues their combined value as fresh identifiers, less the
// configured premium. Hybrid collections only.
func (c *Collection) BurnToRemint(caller token.Address, ids []uint64) (*hybrid.RemintResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.hybrid == nil {
		return nil, ErrNotHybrid
	}
	res, err := c.hybrid.BurnToRemint(caller, ids, c.cfg.RemintPremiumBps)
	if err != nil {
		return nil, err
	}

	c.metrics.burns.Inc()
	c.metrics.unitsBurned.Add(float64(len(res.BurnedIDs)))
	c.log.Info("reminted",
		zap.String("caller", caller.String()),
		zap.Int("burned", len(res.BurnedIDs)),
		zap.Int("minted", len(res.MintedIDs)),
		zap.Uint64("fee", res.Fee))
	return res, nil
}
