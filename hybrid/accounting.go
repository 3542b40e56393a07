// Package hybrid keeps a divisible balance and discrete whole-unit
// identifiers in lockstep. Balances are held in sub-units; every time a
// balance crosses a whole-unit boundary the accounting mints the next
// sequential identifiers to the holder, or retires the holder's highest
// identifiers to the burn sink. After every mutation, each holder owns
// exactly floor(balance/unit) identifiers. The sink is exempt: retired
// identifiers accumulate there without backing balance.
package hybrid

import (
	"fmt"

	"github.com/dropforge/libdrop-go/token"
)

const bpsDenominator = 10_000

// Accounting is the hybrid ledger for one collection. Not
// synchronized; the owning collection serializes access.
type Accounting struct {
	unit uint64        // sub-units per whole unit
	sink token.Address // void address for retired identifiers and premiums

	balances map[token.Address]uint64
	owners   []token.Address            // owners[i] owns identifier i+1; append-only
	owned    map[token.Address][]uint64 // ascending identifier lists, sink excluded

	minted      uint64 // sub-units ever minted (monotonic)
	circulating uint64 // sub-units in circulation, sink excluded
}

// New returns an empty hybrid ledger. unit is the number of sub-units
// backing one whole identifier; sink receives retired identifiers and
// remint premiums.
func New(unit uint64, sink token.Address) (*Accounting, error) {
	if unit == 0 {
		return nil, ErrZeroUnit
	}
	if sink.IsZero() {
		return nil, ErrZeroSink
	}
	return &Accounting{
		unit:     unit,
		sink:     sink,
		balances: make(map[token.Address]uint64),
		owned:    make(map[token.Address][]uint64),
	}, nil
}

// Compile-time interface check.
var _ token.Minter = (*Accounting)(nil)

// Unit returns the sub-units backing one whole identifier.
func (a *Accounting) Unit() uint64 { return a.unit }

// Sink returns the burn sink address.
func (a *Accounting) Sink() token.Address { return a.sink }

// BalanceOf returns the holder's sub-unit balance.
func (a *Accounting) BalanceOf(holder token.Address) uint64 { return a.balances[holder] }

// OwnedUnits returns a copy of the holder's identifier list, ascending.
func (a *Accounting) OwnedUnits(holder token.Address) []uint64 {
	return append([]uint64(nil), a.owned[holder]...)
}

// OwnerOf returns the owner of an identifier.
func (a *Accounting) OwnerOf(id uint64) (token.Address, error) {
	if id == 0 || id > uint64(len(a.owners)) {
		return token.ZeroAddress, fmt.Errorf("%w: %d", token.ErrInvalidTokenId, id)
	}
	return a.owners[id-1], nil
}

// NumNftsMinted returns how many identifiers have ever been assigned.
func (a *Accounting) NumNftsMinted() uint64 { return uint64(len(a.owners)) }

// NumErc20Minted returns the sub-units ever minted.
func (a *Accounting) NumErc20Minted() uint64 { return a.minted }

// TotalSupply returns the circulating whole units, sink excluded.
func (a *Accounting) TotalSupply() uint64 { return a.circulating / a.unit }

// MintUnits credits count whole units to the recipient.
func (a *Accounting) MintUnits(to token.Address, count uint64) error {
	return a.Mint(to, count*a.unit)
}

// Mint credits subunits to the recipient and settles identifiers.
func (a *Accounting) Mint(to token.Address, subunits uint64) error {
	if to.IsZero() {
		return token.ErrMintToZeroAddress
	}
	a.balances[to] += subunits
	a.minted += subunits
	a.circulating += subunits
	a.settle(to)
	return nil
}

// Transfer moves subunits between holders and settles both sides: the
// sender's highest identifiers retire to the sink, the recipient is
// credited fresh sequential ones.
func (a *Accounting) Transfer(from, to token.Address, subunits uint64) error {
	if to.IsZero() {
		return token.ErrTransferToZeroAddress
	}
	if a.balances[from] < subunits {
		return fmt.Errorf("%w: have %d, need %d", token.ErrErc20BalanceTooLow, a.balances[from], subunits)
	}
	a.balances[from] -= subunits
	a.balances[to] += subunits
	a.settle(from)
	a.settle(to)
	return nil
}

// settle reconciles the holder's identifier count with its balance.
// Shortfalls mint the next sequential identifiers; excess retires the
// highest-numbered ones to the sink. The sink itself never settles.
func (a *Accounting) settle(holder token.Address) {
	if holder == a.sink {
		return
	}
	target := a.balances[holder] / a.unit
	ids := a.owned[holder]

	for uint64(len(ids)) < target {
		id := uint64(len(a.owners)) + 1
		a.owners = append(a.owners, holder)
		ids = append(ids, id)
	}
	for uint64(len(ids)) > target {
		top := ids[len(ids)-1]
		ids = ids[:len(ids)-1]
		a.owners[top-1] = a.sink
	}
	a.owned[holder] = ids
}
