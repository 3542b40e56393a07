// Package token holds the shared address type and the reference token
// ledgers the issuance engine settles against: an ERC20-style fungible
// ledger used for payment, and a plain sequential unit registry for
// non-hybrid collections.
package token

import "encoding/hex"

// AddressLen is the byte length of an account address.
const AddressLen = 20

// Address identifies an account (buyer, beneficiary, payment token).
type Address [AddressLen]byte

// ZeroAddress is the all-zero address. As a payment token it means the
// native currency; as a beneficiary it is never a valid destination.
var ZeroAddress Address

// IsZero reports whether the address is the zero address.
func (a Address) IsZero() bool { return a == ZeroAddress }

// String returns the hex encoding of the address.
func (a Address) String() string { return hex.EncodeToString(a[:]) }

// AddressFromBytes copies b into an Address. Returns the zero address
// if b is not exactly AddressLen bytes.
func AddressFromBytes(b []byte) Address {
	var a Address
	if len(b) != AddressLen {
		return ZeroAddress
	}
	copy(a[:], b)
	return a
}

// Minter is the capability the mint orchestrator needs from a token
// ledger: credit whole units to a recipient and report supply.
type Minter interface {
	// MintUnits credits count whole units to the recipient.
	MintUnits(to Address, count uint64) error

	// TotalSupply returns the number of whole units in circulation.
	TotalSupply() uint64
}
