// Package affiliate verifies referral authorizations and accrues
// affiliate commissions. A referral is authorized by a trusted signer's
// ECDSA signature over the Keccak-256 hash of the affiliate's address;
// a signature from anyone else, the buyer included, is rejected.
package affiliate

import (
	"fmt"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"golang.org/x/crypto/sha3"

	"github.com/dropforge/libdrop-go/token"
)

const bpsDenominator = 10_000

// Params configures referral economics for one collection.
type Params struct {
	// Signer is the trusted public key whose signatures authorize
	// affiliates. Nil disables referrals entirely.
	Signer *ec.PublicKey

	// FeeBps of the discounted payment is credited to the affiliate.
	FeeBps uint64

	// DiscountBps reduces the buyer's unit price on a valid referral.
	DiscountBps uint64
}

// Ledger accrues per-affiliate balances, native and per payment token.
// Not synchronized; the owning collection serializes access.
type Ledger struct {
	params        Params
	balances      map[token.Address]uint64
	tokenBalances map[token.Address]map[token.Address]uint64
}

// NewLedger returns an empty affiliate ledger.
func NewLedger(params Params) *Ledger {
	return &Ledger{
		params:        params,
		balances:      make(map[token.Address]uint64),
		tokenBalances: make(map[token.Address]map[token.Address]uint64),
	}
}

// ReferralMessage returns the hash the trusted signer signs to
// authorize an affiliate: Keccak-256 of the affiliate's address bytes.
func ReferralMessage(affiliate token.Address) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(affiliate[:])
	return h.Sum(nil)
}

// ValidateReferral checks that signature is the trusted signer's
// DER-encoded ECDSA signature over ReferralMessage(affiliate).
func (l *Ledger) ValidateReferral(affiliate token.Address, signature []byte) error {
	if l.params.Signer == nil {
		return fmt.Errorf("%w: no trusted signer configured", ErrInvalidSignature)
	}
	if affiliate.IsZero() {
		return fmt.Errorf("%w: zero affiliate address", ErrInvalidSignature)
	}
	sig, err := ec.ParseDERSignature(signature)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}
	if !sig.Verify(ReferralMessage(affiliate), l.params.Signer) {
		return fmt.Errorf("%w: signer mismatch for affiliate %s", ErrInvalidSignature, affiliate)
	}
	return nil
}

// DiscountedPrice applies the referral discount to a unit price.
func (l *Ledger) DiscountedPrice(price uint64) uint64 {
	return price - price*l.params.DiscountBps/bpsDenominator
}

// Commission returns the affiliate's cut of a discounted payment.
func (l *Ledger) Commission(payment uint64) uint64 {
	return payment * l.params.FeeBps / bpsDenominator
}

// Credit accrues a native-currency commission to the affiliate.
func (l *Ledger) Credit(affiliate token.Address, amount uint64) {
	l.balances[affiliate] += amount
}

// CreditToken accrues a token-denominated commission to the affiliate.
func (l *Ledger) CreditToken(affiliate, tok token.Address, amount uint64) {
	m := l.tokenBalances[affiliate]
	if m == nil {
		m = make(map[token.Address]uint64)
		l.tokenBalances[affiliate] = m
	}
	m[tok] += amount
}

// Balance returns the affiliate's unwithdrawn native balance.
func (l *Ledger) Balance(affiliate token.Address) uint64 {
	return l.balances[affiliate]
}

// TokenBalance returns the affiliate's unwithdrawn balance in tok.
func (l *Ledger) TokenBalance(affiliate, tok token.Address) uint64 {
	return l.tokenBalances[affiliate][tok]
}

// Withdraw zeroes and returns the affiliate's native balance. The
// balance is cleared before the caller performs the transfer.
func (l *Ledger) Withdraw(affiliate token.Address) (uint64, error) {
	amount := l.balances[affiliate]
	if amount == 0 {
		return 0, ErrBalanceEmpty
	}
	l.balances[affiliate] = 0
	return amount, nil
}

// WithdrawToken zeroes and returns the affiliate's balance in tok.
func (l *Ledger) WithdrawToken(affiliate, tok token.Address) (uint64, error) {
	amount := l.tokenBalances[affiliate][tok]
	if amount == 0 {
		return 0, ErrBalanceEmpty
	}
	l.tokenBalances[affiliate][tok] = 0
	return amount, nil
}
