package token

import "fmt"

// NFT is the non-fungible surface burn-to-mint consumes from a source
// collection: ownership lookup and transfer of whole units into a sink.
type NFT interface {
	OwnerOf(id uint64) (Address, error)
	TransferFrom(spender, from, to Address, id uint64) error
}

// UnitRegistry is an in-memory sequential-identifier collection used as
// the token ledger of plain (non-hybrid) collections and as the source
// collection in burn-to-mint tests. Identifiers start at 1 and are
// assigned in mint order; they are reassigned, never destroyed.
type UnitRegistry struct {
	owners  []Address // owners[i] owns identifier i+1
	balance map[Address]uint64
}

// NewUnitRegistry returns an empty unit registry.
func NewUnitRegistry() *UnitRegistry {
	return &UnitRegistry{balance: make(map[Address]uint64)}
}

// Compile-time interface checks.
var (
	_ Minter = (*UnitRegistry)(nil)
	_ NFT    = (*UnitRegistry)(nil)
)

// MintUnits assigns the next count sequential identifiers to the recipient.
func (r *UnitRegistry) MintUnits(to Address, count uint64) error {
	if to.IsZero() {
		return ErrMintToZeroAddress
	}
	for i := uint64(0); i < count; i++ {
		r.owners = append(r.owners, to)
	}
	r.balance[to] += count
	return nil
}

// TotalSupply returns the number of identifiers ever minted.
func (r *UnitRegistry) TotalSupply() uint64 { return uint64(len(r.owners)) }

// BalanceOf returns how many identifiers the holder owns.
func (r *UnitRegistry) BalanceOf(holder Address) uint64 { return r.balance[holder] }

// OwnerOf returns the owner of an identifier.
func (r *UnitRegistry) OwnerOf(id uint64) (Address, error) {
	if id == 0 || id > uint64(len(r.owners)) {
		return ZeroAddress, fmt.Errorf("%w: %d", ErrInvalidTokenId, id)
	}
	return r.owners[id-1], nil
}

// TransferFrom reassigns an identifier from one holder to another. Only
// the current owner may act as spender; there is no per-id approval in
// the reference registry.
func (r *UnitRegistry) TransferFrom(spender, from, to Address, id uint64) error {
	owner, err := r.OwnerOf(id)
	if err != nil {
		return err
	}
	if owner != from || spender != from {
		return fmt.Errorf("%w: id %d", ErrNotTokenOwner, id)
	}
	if to.IsZero() {
		return ErrTransferToZeroAddress
	}
	r.owners[id-1] = to
	r.balance[from]--
	r.balance[to]++
	return nil
}
