package collection

import (
	"go.uber.org/zap"

	"github.com/dropforge/libdrop-go/invite"
	"github.com/dropforge/libdrop-go/merkle"
	"github.com/dropforge/libdrop-go/pricing"
	"github.com/dropforge/libdrop-go/revsplit"
	"github.com/dropforge/libdrop-go/token"
)

// Payment is an outbound transfer owed by the caller's environment after
// a successful operation. A zero Token means native currency.
type Payment struct {
	To     token.Address
	Token  token.Address
	Amount uint64
}

// Receipt summarizes a completed mint or burn: what was credited, what
// was charged, and which direct payments remain to be executed. All
// ledger state is final before a Receipt is returned.
type Receipt struct {
	UnitsMinted uint64
	Price       uint64 // amount actually charged, after any discount
	Refund      uint64 // native overpayment owed back to the caller
	Currency    token.Address
	Commission  uint64
	Payments    []Payment
}

// MintRequest carries one mint call's inputs.
type MintRequest struct {
	Key       invite.Key
	Proof     *merkle.Proof
	Quantity  uint64
	Affiliate token.Address
	Signature []byte // trusted signer's authorization of Affiliate
}

// Mint purchases units for the caller through the invite under
// req.Key. value is the native currency sent with the call; it must
// cover the batch price and any excess is returned in the receipt.
func (c *Collection) Mint(caller token.Address, value uint64, req MintRequest) (*Receipt, error) {
	return c.MintTo(caller, caller, value, req)
}

// MintTo is Mint crediting the units to a different recipient. The
// caller pays, proves list membership, and is bound by the invite's
// limit; the recipient only receives.
func (c *Collection) MintTo(caller, recipient token.Address, value uint64, req MintRequest) (*Receipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mintBatch(caller, value, req, []token.Address{recipient}, []uint64{req.Quantity})
}

// BatchMintTo purchases for several recipients in one call, priced and
// reserved as a single batch. quantities[i] units go to recipients[i];
// bonus tiers resolve per recipient.
func (c *Collection) BatchMintTo(caller token.Address, value uint64, req MintRequest, recipients []token.Address, quantities []uint64) (*Receipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(recipients) != len(quantities) || len(recipients) == 0 {
		return nil, ErrBatchShape
	}
	return c.mintBatch(caller, value, req, recipients, quantities)
}

// mintBatch is the one mint pipeline: gate, price, validate payment,
// reserve capacity, then commit. Nothing mutates before the reserve
// succeeds. Callers hold the mutex.
func (c *Collection) mintBatch(caller token.Address, value uint64, req MintRequest, recipients []token.Address, quantities []uint64) (*Receipt, error) {
	var totalQty uint64
	var ok bool
	for _, q := range quantities {
		if totalQty, ok = addChecked(totalQty, q); !ok {
			return nil, ErrQuantityOverflow
		}
	}
	if totalQty == 0 {
		return nil, ErrZeroQuantity
	}
	for _, r := range recipients {
		if r.IsZero() {
			return nil, token.ErrMintToZeroAddress
		}
	}

	inv, _ := c.invites.Get(req.Key)
	now := c.now()
	if err := c.invites.CheckWindow(&inv, now); err != nil {
		return nil, err
	}
	if err := c.invites.Verify(req.Key, &inv, req.Proof, caller[:]); err != nil {
		return nil, err
	}

	// Unit accounting is checked multiplication throughout: a quantity
	// crafted to wrap these products would otherwise slip a tiny
	// purchased count past the capacity reserve.
	unitSize := inv.EffectiveUnitSize()
	purchased, ok := mulChecked(totalQty, unitSize)
	if !ok {
		return nil, ErrQuantityOverflow
	}
	var bonus uint64
	for _, q := range quantities {
		b, ok := mulChecked(pricing.ResolveBonus(inv.BonusTiers, q), unitSize)
		if !ok {
			return nil, ErrQuantityOverflow
		}
		if bonus, ok = addChecked(bonus, b); !ok {
			return nil, ErrQuantityOverflow
		}
	}
	credited, ok := addChecked(purchased, bonus)
	if !ok {
		return nil, ErrQuantityOverflow
	}

	gross := inv.Curve().BatchPrice(now, totalQty)
	charged := gross
	var commission uint64
	if !req.Affiliate.IsZero() {
		if err := c.affiliates.ValidateReferral(req.Affiliate, req.Signature); err != nil {
			return nil, err
		}
		charged = c.affiliates.DiscountedPrice(gross)
		commission = c.affiliates.Commission(charged)
	}

	var refund uint64
	var erc20 token.ERC20
	if inv.TokenAddress.IsZero() {
		if value < charged {
			return nil, ErrInsufficientValue
		}
		refund = value - charged
	} else {
		var ok bool
		erc20, ok = c.erc20[inv.TokenAddress]
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

	if err := c.invites.CheckAndReserve(req.Key, &inv, purchased, credited, c.minter.TotalSupply(), c.maxSupply); err != nil {
		return nil, err
	}

	// Committed. Move the payment into escrow, credit units, settle.
	if erc20 != nil {
		if err := erc20.TransferFrom(c.addr, caller, c.addr, charged); err != nil {
			return nil, err
		}
	}
	for i, r := range recipients {
		units := quantities[i]*unitSize + pricing.ResolveBonus(inv.BonusTiers, quantities[i])*unitSize
		if units == 0 {
			continue
		}
		if err := c.minter.MintUnits(r, units); err != nil {
			return nil, err
		}
	}

	rcpt := &Receipt{
		UnitsMinted: credited,
		Price:       charged,
		Refund:      refund,
		Currency:    inv.TokenAddress,
		Commission:  commission,
	}
	c.settleRevenue(rcpt, inv.TokenAddress, charged, commission, req.Affiliate)

	c.metrics.mints.Inc()
	c.metrics.unitsMinted.Add(float64(credited))
	c.metrics.revenue.WithLabelValues(currencyLabel(inv.TokenAddress)).Add(float64(charged))
	c.metrics.refunds.Add(float64(refund))
	c.log.Info("minted",
		zap.String("caller", caller.String()),
		zap.String("key", keyString(req.Key)),
		zap.Uint64("quantity", totalQty),
		zap.Uint64("units", credited),
		zap.Uint64("charged", charged),
		zap.Uint64("commission", commission))
	return rcpt, nil
}

// settleRevenue distributes a charged payment: the affiliate commission
// first, then the configured split over the remainder. Direct shares
// leave immediately (native ones as receipt payments, escrowed ERC20 by
// transfer); the owner's share accrues on the collection and everyone
// else's in the payout ledger.
func (c *Collection) settleRevenue(rcpt *Receipt, currency token.Address, charged, commission uint64, affiliateAddr token.Address) {
	native := currency.IsZero()
	if commission > 0 {
		if native {
			c.affiliates.Credit(affiliateAddr, commission)
		} else {
			c.affiliates.CreditToken(affiliateAddr, currency, commission)
		}
	}

	net := charged - commission
	for _, share := range revsplit.Split(c.cfg.Split, net, c.owner) {
		switch {
		case share.Direct:
			if native {
				rcpt.Payments = append(rcpt.Payments, Payment{To: share.Beneficiary, Amount: share.Amount})
			} else if err := c.erc20[currency].TransferFrom(c.addr, c.addr, share.Beneficiary, share.Amount); err != nil {
				// Escrow always holds the charged amount at this point;
				// fall back to accrual rather than losing the share.
				c.creditPayout(share.Beneficiary, currency, share.Amount)
			}
		case share.Beneficiary == c.owner:
			if native {
				c.ownerBalance += share.Amount
			} else {
				c.ownerTokenBalance[currency] += share.Amount
			}
		default:
			c.creditPayout(share.Beneficiary, currency, share.Amount)
		}
	}
}

func (c *Collection) creditPayout(beneficiary, currency token.Address, amount uint64) {
	var err error
	if currency.IsZero() {
		err = c.payout.Credit(beneficiary, amount)
	} else {
		err = c.payout.CreditToken(beneficiary, currency, amount)
	}
	if err != nil {
		c.log.Error("payout credit failed",
			zap.String("beneficiary", beneficiary.String()),
			zap.Uint64("amount", amount),
			zap.Error(err))
	}
}

func mulChecked(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	p := a * b
	return p, p/a == b
}

func addChecked(a, b uint64) (uint64, bool) {
	s := a + b
	return s, s >= a
}

func currencyLabel(tok token.Address) string {
	if tok.IsZero() {
		return "native"
	}
	return tok.String()
}
