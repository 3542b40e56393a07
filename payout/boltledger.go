package payout

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/dropforge/libdrop-go/token"
)

var (
	bucketBalances      = []byte("balances")
	bucketTokenBalances = []byte("token_balances")
	bucketApprovals     = []byte("approvals")
)

// BoltLedger persists payout balances in bbolt. Every method runs in a
// single bolt transaction, which gives the check-and-zero discipline
// the withdrawal paths need.
type BoltLedger struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ Ledger = (*BoltLedger)(nil)

// OpenBoltLedger opens or creates the bbolt database at dbPath. The
// parent directory is created if it does not exist.
func OpenBoltLedger(dbPath string) (*BoltLedger, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("payout: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("payout: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketBalances, bucketTokenBalances, bucketApprovals} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("boltledger: create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("payout: create buckets: %w", err)
	}

	return &BoltLedger{db: db}, nil
}

// Close closes the underlying database.
func (l *BoltLedger) Close() error { return l.db.Close() }

// tokenKey builds the composite owner||token key for token balances.
func tokenKey(owner, tok token.Address) []byte {
	k := make([]byte, 2*token.AddressLen)
	copy(k, owner[:])
	copy(k[token.AddressLen:], tok[:])
	return k
}

// pairKey builds the composite owner||delegate key for approvals.
func pairKey(owner, delegate token.Address) []byte {
	return tokenKey(owner, delegate)
}

func getAmount(b *bbolt.Bucket, key []byte) uint64 {
	v := b.Get(key)
	if len(v) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(v)
}

func putAmount(b *bbolt.Bucket, key []byte, amount uint64) error {
	v := make([]byte, 8)
	binary.BigEndian.PutUint64(v, amount)
	return b.Put(key, v)
}

// Credit accrues native currency to the beneficiary.
func (l *BoltLedger) Credit(beneficiary token.Address, amount uint64) error {
	if beneficiary.IsZero() {
		return ErrZeroBeneficiary
	}
	if amount == 0 {
		return nil
	}
	return l.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketBalances)
		return putAmount(b, beneficiary[:], getAmount(b, beneficiary[:])+amount)
	})
}

// CreditToken accrues an ERC20 amount to the beneficiary.
func (l *BoltLedger) CreditToken(beneficiary, tok token.Address, amount uint64) error {
	if beneficiary.IsZero() {
		return ErrZeroBeneficiary
	}
	if amount == 0 {
		return nil
	}
	return l.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketTokenBalances)
		k := tokenKey(beneficiary, tok)
		return putAmount(b, k, getAmount(b, k)+amount)
	})
}

// Balance returns the beneficiary's unwithdrawn native balance.
func (l *BoltLedger) Balance(beneficiary token.Address) (uint64, error) {
	var amount uint64
	err := l.db.View(func(tx *bbolt.Tx) error {
		amount = getAmount(tx.Bucket(bucketBalances), beneficiary[:])
		return nil
	})
	return amount, err
}

// TokenBalance returns the beneficiary's unwithdrawn balance in tok.
func (l *BoltLedger) TokenBalance(beneficiary, tok token.Address) (uint64, error) {
	var amount uint64
	err := l.db.View(func(tx *bbolt.Tx) error {
		amount = getAmount(tx.Bucket(bucketTokenBalances), tokenKey(beneficiary, tok))
		return nil
	})
	return amount, err
}

// ApproveWithdrawal grants or revokes delegated withdrawal.
func (l *BoltLedger) ApproveWithdrawal(owner, delegate token.Address, approved bool) error {
	return l.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketApprovals)
		k := pairKey(owner, delegate)
		if !approved {
			return b.Delete(k)
		}
		return b.Put(k, []byte{1})
	})
}

// IsApproved reports whether delegate may pull for owner.
func (l *BoltLedger) IsApproved(owner, delegate token.Address) (bool, error) {
	var approved bool
	err := l.db.View(func(tx *bbolt.Tx) error {
		approved = tx.Bucket(bucketApprovals).Get(pairKey(owner, delegate)) != nil
		return nil
	})
	return approved, err
}

// Withdraw zeroes and returns the owner's native balance.
func (l *BoltLedger) Withdraw(owner token.Address) (uint64, error) {
	return l.WithdrawFrom(owner, owner)
}

// WithdrawFrom zeroes the owner's native balance on behalf of to.
func (l *BoltLedger) WithdrawFrom(owner, to token.Address) (uint64, error) {
	var amount uint64
	err := l.db.Update(func(tx *bbolt.Tx) error {
		if to != owner && tx.Bucket(bucketApprovals).Get(pairKey(owner, to)) == nil {
			return fmt.Errorf("%w: %s for %s", ErrNotApprovedToWithdraw, to, owner)
		}
		b := tx.Bucket(bucketBalances)
		amount = getAmount(b, owner[:])
		if amount == 0 {
			return ErrBalanceEmpty
		}
		return b.Delete(owner[:])
	})
	if err != nil {
		return 0, err
	}
	return amount, nil
}

// WithdrawTokens zeroes and returns the owner's balance in each tok.
func (l *BoltLedger) WithdrawTokens(owner token.Address, toks []token.Address) ([]uint64, error) {
	return l.WithdrawTokensFrom(owner, owner, toks)
}

// WithdrawTokensFrom is WithdrawTokens on behalf of to. All listed
// balances must be nonzero; a single empty one fails the whole call.
func (l *BoltLedger) WithdrawTokensFrom(owner, to token.Address, toks []token.Address) ([]uint64, error) {
	amounts := make([]uint64, len(toks))
	err := l.db.Update(func(tx *bbolt.Tx) error {
		if to != owner && tx.Bucket(bucketApprovals).Get(pairKey(owner, to)) == nil {
			return fmt.Errorf("%w: %s for %s", ErrNotApprovedToWithdraw, to, owner)
		}
		b := tx.Bucket(bucketTokenBalances)
		for i, tok := range toks {
			k := tokenKey(owner, tok)
			amounts[i] = getAmount(b, k)
			if amounts[i] == 0 {
				return fmt.Errorf("%w: token %s", ErrBalanceEmpty, tok)
			}
			if err := b.Delete(k); err != nil {
				return fmt.Errorf("boltledger: delete token balance: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return amounts, nil
}
