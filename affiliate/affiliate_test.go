package affiliate

import (
	"testing"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropforge/libdrop-go/token"
)

func makeAddr(seed byte) token.Address {
	var a token.Address
	for i := range a {
		a[i] = seed
	}
	return a
}

func signReferral(t *testing.T, priv *ec.PrivateKey, affiliate token.Address) []byte {
	t.Helper()
	sig, err := priv.Sign(ReferralMessage(affiliate))
	require.NoError(t, err)
	return sig.Serialize()
}

func TestValidateReferral(t *testing.T) {
	signer, err := ec.NewPrivateKey()
	require.NoError(t, err)
	ledger := NewLedger(Params{Signer: signer.PubKey(), FeeBps: 1500})

	affiliateAddr := makeAddr(0xAA)

	t.Run("trusted signer accepted", func(t *testing.T) {
		sig := signReferral(t, signer, affiliateAddr)
		assert.NoError(t, ledger.ValidateReferral(affiliateAddr, sig))
	})

	t.Run("self-signed rejected", func(t *testing.T) {
		buyer, err := ec.NewPrivateKey()
		require.NoError(t, err)
		sig := signReferral(t, buyer, affiliateAddr)
		assert.ErrorIs(t, ledger.ValidateReferral(affiliateAddr, sig), ErrInvalidSignature)
	})

	t.Run("signature over wrong affiliate rejected", func(t *testing.T) {
		sig := signReferral(t, signer, makeAddr(0xBB))
		assert.ErrorIs(t, ledger.ValidateReferral(affiliateAddr, sig), ErrInvalidSignature)
	})

	t.Run("garbage signature rejected", func(t *testing.T) {
		assert.ErrorIs(t, ledger.ValidateReferral(affiliateAddr, []byte{0x30, 0x01}), ErrInvalidSignature)
	})

	t.Run("zero affiliate rejected", func(t *testing.T) {
		sig := signReferral(t, signer, token.ZeroAddress)
		assert.ErrorIs(t, ledger.ValidateReferral(token.ZeroAddress, sig), ErrInvalidSignature)
	})
}

func TestValidateReferral_NoSigner(t *testing.T) {
	ledger := NewLedger(Params{})
	assert.ErrorIs(t, ledger.ValidateReferral(makeAddr(1), []byte{0x30}), ErrInvalidSignature)
}

func TestDiscountAndCommission(t *testing.T) {
	ledger := NewLedger(Params{FeeBps: 1500, DiscountBps: 1000})

	// 10% discount, then 15% of the discounted payment.
	assert.Equal(t, uint64(900), ledger.DiscountedPrice(1000))
	assert.Equal(t, uint64(135), ledger.Commission(900))

	// Zero-config ledger passes amounts through untouched.
	free := NewLedger(Params{})
	assert.Equal(t, uint64(1000), free.DiscountedPrice(1000))
	assert.Zero(t, free.Commission(1000))
}

func TestWithdraw(t *testing.T) {
	ledger := NewLedger(Params{})
	aff := makeAddr(0x01)

	_, err := ledger.Withdraw(aff)
	assert.ErrorIs(t, err, ErrBalanceEmpty)

	ledger.Credit(aff, 500)
	ledger.Credit(aff, 250)
	assert.Equal(t, uint64(750), ledger.Balance(aff))

	got, err := ledger.Withdraw(aff)
	require.NoError(t, err)
	assert.Equal(t, uint64(750), got)
	assert.Zero(t, ledger.Balance(aff))

	_, err = ledger.Withdraw(aff)
	assert.ErrorIs(t, err, ErrBalanceEmpty)
}

func TestWithdrawToken(t *testing.T) {
	ledger := NewLedger(Params{})
	aff, tok := makeAddr(0x01), makeAddr(0xF0)

	_, err := ledger.WithdrawToken(aff, tok)
	assert.ErrorIs(t, err, ErrBalanceEmpty)

	ledger.CreditToken(aff, tok, 42)
	assert.Equal(t, uint64(42), ledger.TokenBalance(aff, tok))

	got, err := ledger.WithdrawToken(aff, tok)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), got)
	assert.Zero(t, ledger.TokenBalance(aff, tok))
}
