package collection

import (
	"path/filepath"
	"testing"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropforge/libdrop-go/affiliate"
	"github.com/dropforge/libdrop-go/config"
	"github.com/dropforge/libdrop-go/hybrid"
	"github.com/dropforge/libdrop-go/invite"
	"github.com/dropforge/libdrop-go/merkle"
	"github.com/dropforge/libdrop-go/payout"
	"github.com/dropforge/libdrop-go/pricing"
	"github.com/dropforge/libdrop-go/revsplit"
	"github.com/dropforge/libdrop-go/token"
)

const (
	startTime = int64(1_000_000)
	ethPrice  = uint64(80_000_000) // 0.08 in 1e9 subunits
)

var (
	collAddr  = makeAddr(0xC0)
	owner     = makeAddr(0x01)
	platform  = makeAddr(0x02)
	buyer     = makeAddr(0x10)
	publicKey = invite.Key{}
)

func makeAddr(seed byte) token.Address {
	var a token.Address
	for i := range a {
		a[i] = seed
	}
	return a
}

func signReferral(t *testing.T, priv *ec.PrivateKey, affiliateAddr token.Address) []byte {
	t.Helper()
	sig, err := priv.Sign(affiliate.ReferralMessage(affiliateAddr))
	require.NoError(t, err)
	return sig.Serialize()
}

type fixture struct {
	c      *Collection
	signer *ec.PrivateKey
	clock  int64
	units  *token.UnitRegistry
	payout payout.Ledger
}

func newFixture(t *testing.T, mutate func(*config.Config, *Deps)) *fixture {
	t.Helper()
	signer, err := ec.NewPrivateKey()
	require.NoError(t, err)

	cfg := config.Config{
		Owner:            owner,
		Platform:         platform,
		RoyaltyBps:       500,
		RoyaltyReceiver:  owner,
		RemintPremiumBps: 1000,
		Affiliate:        affiliate.Params{Signer: signer.PubKey(), FeeBps: 1500},
	}
	f := &fixture{signer: signer, clock: startTime, units: token.NewUnitRegistry(), payout: payout.NewMemLedger()}
	deps := Deps{
		Minter: f.units,
		Payout: f.payout,
		Clock:  func() int64 { return f.clock },
	}
	if mutate != nil {
		mutate(&cfg, &deps)
	}

	f.c, err = New(collAddr, cfg, deps)
	require.NoError(t, err)
	return f
}

// setPublicInvite installs an open flat-priced sale that started in the
// past.
func (f *fixture) setPublicInvite(t *testing.T, inv invite.Invite) {
	t.Helper()
	if inv.Start == 0 {
		inv.Start = startTime - 100
	}
	if inv.Limit == 0 {
		inv.Limit = 1_000
	}
	require.NoError(t, f.c.SetInvite(owner, publicKey, "", inv))
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(collAddr, config.Config{}, Deps{})
	assert.ErrorIs(t, err, config.ErrZeroOwner)
}

func TestMint_PublicFlatPrice(t *testing.T) {
	f := newFixture(t, nil)
	f.setPublicInvite(t, invite.Invite{Price: ethPrice})

	rcpt, err := f.c.Mint(buyer, 100_000_000, MintRequest{Key: publicKey, Quantity: 1})
	require.NoError(t, err)

	assert.Equal(t, uint64(1), rcpt.UnitsMinted)
	assert.Equal(t, ethPrice, rcpt.Price)
	assert.Equal(t, uint64(20_000_000), rcpt.Refund)
	assert.Zero(t, rcpt.Commission)
	assert.Equal(t, ethPrice, f.c.OwnerBalance())
	assert.Equal(t, uint64(1), f.c.TotalSupply())
	assert.Equal(t, uint64(1), f.units.BalanceOf(buyer))
}

func TestMint_ZeroQuantity(t *testing.T) {
	f := newFixture(t, nil)
	f.setPublicInvite(t, invite.Invite{Price: ethPrice})

	_, err := f.c.Mint(buyer, ethPrice, MintRequest{Key: publicKey})
	assert.ErrorIs(t, err, ErrZeroQuantity)
}

func TestMint_InsufficientValue(t *testing.T) {
	f := newFixture(t, nil)
	f.setPublicInvite(t, invite.Invite{Price: ethPrice})

	_, err := f.c.Mint(buyer, ethPrice-1, MintRequest{Key: publicKey, Quantity: 1})
	assert.ErrorIs(t, err, ErrInsufficientValue)
	assert.Zero(t, f.c.TotalSupply())
	assert.Zero(t, f.c.Minted(publicKey))
}

func TestMint_AffiliateCommission(t *testing.T) {
	f := newFixture(t, nil)
	f.setPublicInvite(t, invite.Invite{Price: ethPrice})

	affiliateAddr := makeAddr(0xAA)
	rcpt, err := f.c.Mint(buyer, ethPrice, MintRequest{
		Key:       publicKey,
		Quantity:  1,
		Affiliate: affiliateAddr,
		Signature: signReferral(t, f.signer, affiliateAddr),
	})
	require.NoError(t, err)

	// 15% of 80M to the affiliate, the rest to the owner.
	assert.Equal(t, uint64(12_000_000), rcpt.Commission)
	assert.Equal(t, uint64(12_000_000), f.c.AffiliateBalance(affiliateAddr))
	assert.Equal(t, uint64(68_000_000), f.c.OwnerBalance())

	got, err := f.c.WithdrawAffiliate(affiliateAddr)
	require.NoError(t, err)
	assert.Equal(t, uint64(12_000_000), got)
	_, err = f.c.WithdrawAffiliate(affiliateAddr)
	assert.ErrorIs(t, err, affiliate.ErrBalanceEmpty)
}

func TestMint_AffiliateDiscount(t *testing.T) {
	f := newFixture(t, func(cfg *config.Config, _ *Deps) {
		cfg.Affiliate.DiscountBps = 1000
	})
	f.setPublicInvite(t, invite.Invite{Price: ethPrice})

	affiliateAddr := makeAddr(0xAA)
	rcpt, err := f.c.Mint(buyer, ethPrice, MintRequest{
		Key:       publicKey,
		Quantity:  1,
		Affiliate: affiliateAddr,
		Signature: signReferral(t, f.signer, affiliateAddr),
	})
	require.NoError(t, err)

	// 10% discount, then 15% commission of the discounted payment.
	assert.Equal(t, uint64(72_000_000), rcpt.Price)
	assert.Equal(t, uint64(8_000_000), rcpt.Refund)
	assert.Equal(t, uint64(10_800_000), rcpt.Commission)
	assert.Equal(t, uint64(61_200_000), f.c.OwnerBalance())
}

func TestMint_AffiliateSelfSignedRejected(t *testing.T) {
	f := newFixture(t, nil)
	f.setPublicInvite(t, invite.Invite{Price: ethPrice})

	rogue, err := ec.NewPrivateKey()
	require.NoError(t, err)
	affiliateAddr := makeAddr(0xAA)
	_, err = f.c.Mint(buyer, ethPrice, MintRequest{
		Key:       publicKey,
		Quantity:  1,
		Affiliate: affiliateAddr,
		Signature: signReferral(t, rogue, affiliateAddr),
	})
	assert.ErrorIs(t, err, affiliate.ErrInvalidSignature)
	assert.Zero(t, f.c.TotalSupply())
}

func TestMint_Allowlist(t *testing.T) {
	member := makeAddr(0x20)
	other := makeAddr(0x21)
	third, fourth := makeAddr(0x22), makeAddr(0x23)
	tree, err := merkle.BuildTree([][]byte{member[:], third[:], fourth[:]})
	require.NoError(t, err)
	key := tree.Root()

	f := newFixture(t, nil)
	require.NoError(t, f.c.SetInvite(owner, key, "ipfs://list", invite.Invite{
		Price: ethPrice,
		Start: startTime - 100,
		Limit: 10,
	}))

	proof, err := tree.ProofFor(member[:])
	require.NoError(t, err)

	t.Run("member admitted", func(t *testing.T) {
		_, err := f.c.Mint(member, ethPrice, MintRequest{Key: key, Proof: proof, Quantity: 1})
		assert.NoError(t, err)
	})

	t.Run("non-member rejected with member's proof", func(t *testing.T) {
		_, err := f.c.Mint(other, ethPrice, MintRequest{Key: key, Proof: proof, Quantity: 1})
		assert.ErrorIs(t, err, invite.ErrWalletUnauthorized)
	})

	t.Run("member rejected without proof", func(t *testing.T) {
		_, err := f.c.Mint(member, ethPrice, MintRequest{Key: key, Quantity: 1})
		assert.ErrorIs(t, err, invite.ErrWalletUnauthorized)
	})
}

func TestMint_BlacklistInversion(t *testing.T) {
	banned := makeAddr(0x30)
	second := makeAddr(0x31)
	tree, err := merkle.BuildTree([][]byte{banned[:], second[:]})
	require.NoError(t, err)
	key := tree.Root()

	f := newFixture(t, nil)
	require.NoError(t, f.c.SetInvite(owner, key, "", invite.Invite{
		Price:       ethPrice,
		Start:       startTime - 100,
		Limit:       10,
		IsBlacklist: true,
	}))

	proof, err := tree.ProofFor(banned[:])
	require.NoError(t, err)

	_, err = f.c.Mint(banned, ethPrice, MintRequest{Key: key, Proof: proof, Quantity: 1})
	assert.ErrorIs(t, err, invite.ErrBlacklisted)

	_, err = f.c.Mint(buyer, ethPrice, MintRequest{Key: key, Quantity: 1})
	assert.NoError(t, err)
}

func TestMint_WindowStates(t *testing.T) {
	f := newFixture(t, nil)

	t.Run("absent invite is paused", func(t *testing.T) {
		_, err := f.c.Mint(buyer, ethPrice, MintRequest{Key: publicKey, Quantity: 1})
		assert.ErrorIs(t, err, invite.ErrMintingPaused)
	})

	require.NoError(t, f.c.SetInvite(owner, publicKey, "", invite.Invite{
		Price: ethPrice,
		Start: startTime + 100,
		End:   startTime + 200,
		Limit: 10,
	}))

	t.Run("before start", func(t *testing.T) {
		_, err := f.c.Mint(buyer, ethPrice, MintRequest{Key: publicKey, Quantity: 1})
		assert.ErrorIs(t, err, invite.ErrMintNotStarted)
	})

	t.Run("after end", func(t *testing.T) {
		f.clock = startTime + 200
		defer func() { f.clock = startTime }()
		_, err := f.c.Mint(buyer, ethPrice, MintRequest{Key: publicKey, Quantity: 1})
		assert.ErrorIs(t, err, invite.ErrMintEnded)
	})

	t.Run("zero limit is paused", func(t *testing.T) {
		require.NoError(t, f.c.SetInvite(owner, publicKey, "", invite.Invite{Price: ethPrice, Start: startTime - 100}))
		_, err := f.c.Mint(buyer, ethPrice, MintRequest{Key: publicKey, Quantity: 1})
		assert.ErrorIs(t, err, invite.ErrMintingPaused)
	})
}

func TestMint_ListLimitCountsPurchasedUnits(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.c.SetInvite(owner, publicKey, "", invite.Invite{
		Start:    startTime - 100,
		Limit:    24,
		UnitSize: 12,
	}))

	rcpt, err := f.c.Mint(buyer, 0, MintRequest{Key: publicKey, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, uint64(12), rcpt.UnitsMinted)
	assert.Equal(t, uint64(12), f.c.Minted(publicKey))

	// 2 more mint units would put 36 purchased units against a limit of 24.
	_, err = f.c.Mint(buyer, 0, MintRequest{Key: publicKey, Quantity: 2})
	assert.ErrorIs(t, err, invite.ErrNumberOfMintsExceeded)

	_, err = f.c.Mint(buyer, 0, MintRequest{Key: publicKey, Quantity: 1})
	assert.NoError(t, err)
	assert.Equal(t, uint64(24), f.c.Minted(publicKey))
}

func TestMint_UnitSizeOverflowRejected(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.c.SetInvite(owner, publicKey, "", invite.Invite{
		Start:    startTime - 100,
		Limit:    5,
		UnitSize: 1 << 32,
	}))

	_, err := f.c.Mint(buyer, 0, MintRequest{Key: publicKey, Quantity: 2})
	assert.ErrorIs(t, err, invite.ErrNumberOfMintsExceeded)

	// A quantity that wraps quantity*unitSize to a small value must not
	// slip past the limit.
	_, err = f.c.Mint(buyer, 0, MintRequest{Key: publicKey, Quantity: 1 << 32})
	assert.ErrorIs(t, err, ErrQuantityOverflow)
	assert.Zero(t, f.c.TotalSupply())
	assert.Zero(t, f.c.Minted(publicKey))
}

func TestMint_BonusUnitsExcludedFromLimit(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.c.SetBonusInvite(owner, publicKey, "", invite.Invite{
		Start: startTime - 100,
		Limit: 10,
	}, []pricing.BonusTier{{NumMints: 5, NumBonusMints: 1}}))

	rcpt, err := f.c.Mint(buyer, 0, MintRequest{Key: publicKey, Quantity: 10})
	require.NoError(t, err)

	// 10 purchased + 2 bonus credited; the limit counts only the 10.
	assert.Equal(t, uint64(12), rcpt.UnitsMinted)
	assert.Equal(t, uint64(10), f.c.Minted(publicKey))
	assert.Equal(t, uint64(12), f.units.BalanceOf(buyer))
}

func TestMint_BonusUnitsCountAgainstSupplyCaps(t *testing.T) {
	t.Run("list ceiling", func(t *testing.T) {
		f := newFixture(t, nil)
		require.NoError(t, f.c.SetBonusInvite(owner, publicKey, "", invite.Invite{
			Start:     startTime - 100,
			Limit:     100,
			MaxSupply: 11,
		}, []pricing.BonusTier{{NumMints: 5, NumBonusMints: 1}}))

		_, err := f.c.Mint(buyer, 0, MintRequest{Key: publicKey, Quantity: 10})
		assert.ErrorIs(t, err, invite.ErrListMaxSupplyExceeded)
	})

	t.Run("global ceiling", func(t *testing.T) {
		f := newFixture(t, func(cfg *config.Config, _ *Deps) { cfg.MaxSupply = 11 })
		require.NoError(t, f.c.SetBonusInvite(owner, publicKey, "", invite.Invite{
			Start: startTime - 100,
			Limit: 100,
		}, []pricing.BonusTier{{NumMints: 5, NumBonusMints: 1}}))

		_, err := f.c.Mint(buyer, 0, MintRequest{Key: publicKey, Quantity: 10})
		assert.ErrorIs(t, err, invite.ErrMaxSupplyExceeded)
	})
}

func TestMint_Erc20Payment(t *testing.T) {
	tok := makeAddr(0xEE)
	ledger := token.NewFungibleLedger()
	require.NoError(t, ledger.Mint(buyer, 100))
	ledger.Approve(buyer, collAddr, 80)

	f := newFixture(t, func(_ *config.Config, deps *Deps) {
		deps.Tokens = map[token.Address]token.ERC20{tok: ledger}
	})
	f.setPublicInvite(t, invite.Invite{Price: 80, TokenAddress: tok})

	rcpt, err := f.c.Mint(buyer, 0, MintRequest{Key: publicKey, Quantity: 1})
	require.NoError(t, err)

	assert.Equal(t, tok, rcpt.Currency)
	assert.Zero(t, rcpt.Refund)
	assert.Equal(t, uint64(20), ledger.BalanceOf(buyer))
	assert.Equal(t, uint64(80), ledger.BalanceOf(collAddr))
	assert.Equal(t, uint64(80), f.c.OwnerTokenBalance(tok))

	amounts, err := f.c.WithdrawTokens(owner, []token.Address{tok})
	require.NoError(t, err)
	assert.Equal(t, []uint64{80}, amounts)
	assert.Zero(t, f.c.OwnerTokenBalance(tok))
}

func TestMint_Erc20PaymentFailures(t *testing.T) {
	tok := makeAddr(0xEE)
	ledger := token.NewFungibleLedger()
	require.NoError(t, ledger.Mint(buyer, 50))

	f := newFixture(t, func(_ *config.Config, deps *Deps) {
		deps.Tokens = map[token.Address]token.ERC20{tok: ledger}
	})
	f.setPublicInvite(t, invite.Invite{Price: 80, TokenAddress: tok})

	t.Run("unknown token", func(t *testing.T) {
		f2 := newFixture(t, nil)
		f2.setPublicInvite(t, invite.Invite{Price: 80, TokenAddress: tok})
		_, err := f2.c.Mint(buyer, 0, MintRequest{Key: publicKey, Quantity: 1})
		assert.ErrorIs(t, err, ErrUnknownPaymentToken)
	})

	t.Run("balance too low", func(t *testing.T) {
		_, err := f.c.Mint(buyer, 0, MintRequest{Key: publicKey, Quantity: 1})
		assert.ErrorIs(t, err, token.ErrErc20BalanceTooLow)
	})

	t.Run("not approved", func(t *testing.T) {
		require.NoError(t, ledger.Mint(buyer, 50))
		_, err := f.c.Mint(buyer, 0, MintRequest{Key: publicKey, Quantity: 1})
		assert.ErrorIs(t, err, token.ErrNotApprovedToTransfer)
	})
}

func TestMint_DutchAuctionBatchPricing(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.c.SetAdvancedInvite(owner, publicKey, "", invite.Invite{
		Price:        1_000,
		ReservePrice: 500,
		Delta:        100,
		Interval:     60,
		Start:        startTime,
		Limit:        100,
	}))

	// Step 0: units price at 1000, 900, 800.
	rcpt, err := f.c.Mint(buyer, 10_000, MintRequest{Key: publicKey, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, uint64(2_700), rcpt.Price)

	// Two intervals later the whole batch starts 200 lower.
	f.clock = startTime + 120
	rcpt, err = f.c.Mint(buyer, 10_000, MintRequest{Key: publicKey, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, uint64(2_100), rcpt.Price)

	// Deep past the reserve every unit clamps.
	f.clock = startTime + 1_000_000
	rcpt, err = f.c.Mint(buyer, 10_000, MintRequest{Key: publicKey, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, uint64(1_500), rcpt.Price)
}

func TestMint_RevenueSplit(t *testing.T) {
	partner := makeAddr(0x03)
	f := newFixture(t, func(cfg *config.Config, _ *Deps) {
		cfg.Split = revsplit.Config{
			PlatformBps: 1_000,
			PartnerBps:  500,
			Platform:    platform,
			Partner:     partner,
		}
	})
	f.setPublicInvite(t, invite.Invite{Price: 10_000})

	_, err := f.c.Mint(buyer, 10_000, MintRequest{Key: publicKey, Quantity: 1})
	require.NoError(t, err)

	platformBal, err := f.payout.Balance(platform)
	require.NoError(t, err)
	partnerBal, err := f.payout.Balance(partner)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000), platformBal)
	assert.Equal(t, uint64(500), partnerBal)
	assert.Equal(t, uint64(8_500), f.c.OwnerBalance())
}

func TestMint_OwnerAltPayoutIsDirect(t *testing.T) {
	alt := makeAddr(0x04)
	f := newFixture(t, func(cfg *config.Config, _ *Deps) {
		cfg.Split.OwnerAltPayout = alt
	})
	f.setPublicInvite(t, invite.Invite{Price: 10_000})

	rcpt, err := f.c.Mint(buyer, 10_000, MintRequest{Key: publicKey, Quantity: 1})
	require.NoError(t, err)

	require.Len(t, rcpt.Payments, 1)
	assert.Equal(t, Payment{To: alt, Amount: 10_000}, rcpt.Payments[0])
	assert.Zero(t, f.c.OwnerBalance())
}

func TestBatchMintTo(t *testing.T) {
	f := newFixture(t, nil)
	f.setPublicInvite(t, invite.Invite{Price: 100})

	r1, r2 := makeAddr(0x41), makeAddr(0x42)
	rcpt, err := f.c.BatchMintTo(buyer, 300, MintRequest{Key: publicKey},
		[]token.Address{r1, r2}, []uint64{1, 2})
	require.NoError(t, err)

	assert.Equal(t, uint64(3), rcpt.UnitsMinted)
	assert.Equal(t, uint64(300), rcpt.Price)
	assert.Equal(t, uint64(1), f.units.BalanceOf(r1))
	assert.Equal(t, uint64(2), f.units.BalanceOf(r2))

	_, err = f.c.BatchMintTo(buyer, 300, MintRequest{Key: publicKey},
		[]token.Address{r1}, []uint64{1, 2})
	assert.ErrorIs(t, err, ErrBatchShape)
}

func TestMintTo_RecipientReceivesCallerPays(t *testing.T) {
	f := newFixture(t, nil)
	f.setPublicInvite(t, invite.Invite{Price: ethPrice})

	recipient := makeAddr(0x50)
	_, err := f.c.MintTo(buyer, recipient, ethPrice, MintRequest{Key: publicKey, Quantity: 1})
	require.NoError(t, err)

	assert.Equal(t, uint64(1), f.units.BalanceOf(recipient))
	assert.Zero(t, f.units.BalanceOf(buyer))
}

func TestSetInvite_OwnerOnly(t *testing.T) {
	f := newFixture(t, nil)
	err := f.c.SetInvite(buyer, publicKey, "", invite.Invite{Price: 1, Limit: 1})
	assert.ErrorIs(t, err, ErrNotOwner)

	err = f.c.SetBurnInvite(buyer, publicKey, invite.BurnInvite{})
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestSetInvite_PreservesSoldCounter(t *testing.T) {
	f := newFixture(t, nil)
	f.setPublicInvite(t, invite.Invite{Price: 0, Limit: 5})

	_, err := f.c.Mint(buyer, 0, MintRequest{Key: publicKey, Quantity: 3})
	require.NoError(t, err)

	// Rewriting the invite must not reset its limit accounting.
	f.setPublicInvite(t, invite.Invite{Price: 0, Limit: 5})
	_, err = f.c.Mint(buyer, 0, MintRequest{Key: publicKey, Quantity: 3})
	assert.ErrorIs(t, err, invite.ErrNumberOfMintsExceeded)
}

func TestSetInvite_PersistsAcrossRebuild(t *testing.T) {
	store, err := invite.OpenBoltStore(filepath.Join(t.TempDir(), "invites.db"))
	require.NoError(t, err)
	defer store.Close()

	f := newFixture(t, func(_ *config.Config, deps *Deps) { deps.Invites = store })
	f.setPublicInvite(t, invite.Invite{Price: ethPrice})

	// A fresh collection on the same store sees the invite and sells
	// through it.
	rebuilt := newFixture(t, func(_ *config.Config, deps *Deps) { deps.Invites = store })
	inv, ok := rebuilt.c.InviteOf(publicKey)
	require.True(t, ok)
	assert.Equal(t, ethPrice, inv.Price)

	_, err = rebuilt.c.Mint(buyer, ethPrice, MintRequest{Key: publicKey, Quantity: 1})
	assert.NoError(t, err)
}

func newBurnSource(t *testing.T, holder token.Address, count uint64) *token.UnitRegistry {
	t.Helper()
	src := token.NewUnitRegistry()
	require.NoError(t, src.MintUnits(holder, count))
	return src
}

func TestBurnToMint(t *testing.T) {
	srcAddr := makeAddr(0xE1)
	burnAddr := makeAddr(0xDD)
	bi := invite.BurnInvite{
		Invite:      invite.Invite{Start: startTime - 100, Limit: 100},
		Ratio:       2,
		BurnErc721:  srcAddr,
		BurnAddress: burnAddr,
	}

	t.Run("two for one", func(t *testing.T) {
		src := newBurnSource(t, buyer, 4)
		f := newFixture(t, func(_ *config.Config, deps *Deps) {
			deps.Collections = map[token.Address]token.NFT{srcAddr: src}
		})
		require.NoError(t, f.c.SetBurnInvite(owner, publicKey, bi))

		rcpt, err := f.c.BurnToMint(buyer, 0, BurnRequest{Key: publicKey, TokenIDs: []uint64{1, 2, 3, 4}})
		require.NoError(t, err)
		assert.Equal(t, uint64(2), rcpt.UnitsMinted)
		assert.Equal(t, uint64(2), f.c.TotalSupply())

		for _, id := range []uint64{1, 2, 3, 4} {
			got, err := src.OwnerOf(id)
			require.NoError(t, err)
			assert.Equal(t, burnAddr, got)
		}
	})

	t.Run("count must match ratio", func(t *testing.T) {
		src := newBurnSource(t, buyer, 3)
		f := newFixture(t, func(_ *config.Config, deps *Deps) {
			deps.Collections = map[token.Address]token.NFT{srcAddr: src}
		})
		require.NoError(t, f.c.SetBurnInvite(owner, publicKey, bi))

		_, err := f.c.BurnToMint(buyer, 0, BurnRequest{Key: publicKey, TokenIDs: []uint64{1, 2, 3}})
		assert.ErrorIs(t, err, ErrInvalidBurnArity)
	})

	t.Run("reversed ratio multiplies", func(t *testing.T) {
		src := newBurnSource(t, buyer, 1)
		f := newFixture(t, func(_ *config.Config, deps *Deps) {
			deps.Collections = map[token.Address]token.NFT{srcAddr: src}
		})
		rev := bi
		rev.Reversed = true
		require.NoError(t, f.c.SetBurnInvite(owner, publicKey, rev))

		rcpt, err := f.c.BurnToMint(buyer, 0, BurnRequest{Key: publicKey, TokenIDs: []uint64{1}})
		require.NoError(t, err)
		assert.Equal(t, uint64(2), rcpt.UnitsMinted)
	})

	t.Run("duplicate ids rejected", func(t *testing.T) {
		src := newBurnSource(t, buyer, 2)
		f := newFixture(t, func(_ *config.Config, deps *Deps) {
			deps.Collections = map[token.Address]token.NFT{srcAddr: src}
		})
		require.NoError(t, f.c.SetBurnInvite(owner, publicKey, bi))

		_, err := f.c.BurnToMint(buyer, 0, BurnRequest{Key: publicKey, TokenIDs: []uint64{1, 1}})
		assert.ErrorIs(t, err, token.ErrInvalidTokenId)
	})

	t.Run("foreign tokens rejected", func(t *testing.T) {
		src := newBurnSource(t, makeAddr(0x99), 2)
		f := newFixture(t, func(_ *config.Config, deps *Deps) {
			deps.Collections = map[token.Address]token.NFT{srcAddr: src}
		})
		require.NoError(t, f.c.SetBurnInvite(owner, publicKey, bi))

		_, err := f.c.BurnToMint(buyer, 0, BurnRequest{Key: publicKey, TokenIDs: []uint64{1, 2}})
		assert.ErrorIs(t, err, token.ErrNotTokenOwner)
	})

	t.Run("unregistered source", func(t *testing.T) {
		f := newFixture(t, nil)
		require.NoError(t, f.c.SetBurnInvite(owner, publicKey, bi))

		_, err := f.c.BurnToMint(buyer, 0, BurnRequest{Key: publicKey, TokenIDs: []uint64{1, 2}})
		assert.ErrorIs(t, err, ErrUnknownBurnCollection)
	})

	t.Run("absent burn invite is paused", func(t *testing.T) {
		f := newFixture(t, nil)
		_, err := f.c.BurnToMint(buyer, 0, BurnRequest{Key: publicKey, TokenIDs: []uint64{1, 2}})
		assert.ErrorIs(t, err, invite.ErrMintingPaused)
	})
}

func TestBurnToRemint(t *testing.T) {
	const unit = uint64(1_000_000)
	sink := makeAddr(0xFF)

	t.Run("premium deducted", func(t *testing.T) {
		acct, err := hybrid.New(unit, sink)
		require.NoError(t, err)
		f := newFixture(t, func(_ *config.Config, deps *Deps) { deps.Minter = acct })
		f.setPublicInvite(t, invite.Invite{})

		_, err = f.c.Mint(buyer, 0, MintRequest{Key: publicKey, Quantity: 2})
		require.NoError(t, err)
		require.Equal(t, []uint64{1, 2}, acct.OwnedUnits(buyer))

		// 10% premium on two burned units leaves 1.8 units: one fresh
		// identifier plus fractional change.
		res, err := f.c.BurnToRemint(buyer, []uint64{1, 2})
		require.NoError(t, err)
		assert.Equal(t, []uint64{1, 2}, res.BurnedIDs)
		assert.Equal(t, []uint64{3}, res.MintedIDs)
		assert.Equal(t, unit/5, res.Fee)
		assert.Equal(t, uint64(800_000), res.Change)
	})

	t.Run("non-hybrid collection", func(t *testing.T) {
		f := newFixture(t, nil)
		_, err := f.c.BurnToRemint(buyer, []uint64{1, 2})
		assert.ErrorIs(t, err, ErrNotHybrid)
	})
}

func TestSupplyControls(t *testing.T) {
	f := newFixture(t, nil)
	f.setPublicInvite(t, invite.Invite{})

	_, err := f.c.Mint(buyer, 0, MintRequest{Key: publicKey, Quantity: 5})
	require.NoError(t, err)

	assert.ErrorIs(t, f.c.SetMaxSupply(buyer, 10), ErrNotOwner)
	assert.ErrorIs(t, f.c.SetMaxSupply(owner, 4), ErrInvalidMaxSupply)
	require.NoError(t, f.c.SetMaxSupply(owner, 6))

	_, err = f.c.Mint(buyer, 0, MintRequest{Key: publicKey, Quantity: 2})
	assert.ErrorIs(t, err, invite.ErrMaxSupplyExceeded)

	assert.ErrorIs(t, f.c.LockMaxSupply(buyer), ErrNotOwner)
	require.NoError(t, f.c.LockMaxSupply(owner))
	assert.ErrorIs(t, f.c.SetMaxSupply(owner, 100), ErrMaxSupplyLocked)
	assert.Equal(t, uint64(6), f.c.MaxSupply())
}

func TestOwnershipRotation(t *testing.T) {
	f := newFixture(t, nil)
	next := makeAddr(0x60)

	assert.ErrorIs(t, f.c.TransferOwnership(buyer, next), ErrNotOwner)
	assert.ErrorIs(t, f.c.TransferOwnership(owner, token.ZeroAddress), token.ErrTransferToZeroAddress)

	require.NoError(t, f.c.TransferOwnership(owner, next))
	assert.Equal(t, next, f.c.Owner())
	assert.ErrorIs(t, f.c.SetInvite(owner, publicKey, "", invite.Invite{}), ErrNotOwner)
	assert.NoError(t, f.c.SetInvite(next, publicKey, "", invite.Invite{}))
}

func TestPlatformRotation(t *testing.T) {
	f := newFixture(t, nil)
	next := makeAddr(0x61)

	assert.ErrorIs(t, f.c.TransferPlatform(owner, next), ErrNotPlatform)
	require.NoError(t, f.c.TransferPlatform(platform, next))
	assert.Equal(t, next, f.c.Platform())
}

func TestWithdraw(t *testing.T) {
	f := newFixture(t, nil)
	f.setPublicInvite(t, invite.Invite{Price: ethPrice})

	_, err := f.c.Withdraw(buyer)
	assert.ErrorIs(t, err, ErrNotShareholder)
	_, err = f.c.Withdraw(owner)
	assert.ErrorIs(t, err, ErrBalanceEmpty)

	_, err = f.c.Mint(buyer, ethPrice, MintRequest{Key: publicKey, Quantity: 1})
	require.NoError(t, err)

	got, err := f.c.Withdraw(owner)
	require.NoError(t, err)
	assert.Equal(t, ethPrice, got)

	_, err = f.c.Withdraw(owner)
	assert.ErrorIs(t, err, ErrBalanceEmpty)
}

func TestRoyaltyInfo(t *testing.T) {
	f := newFixture(t, nil)
	receiver, amount := f.c.RoyaltyInfo(1, 10_000)
	assert.Equal(t, owner, receiver)
	assert.Equal(t, uint64(500), amount)
}
