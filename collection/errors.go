package collection

import "errors"

var (
	// ErrNotOwner indicates an owner-only operation by another caller.
	ErrNotOwner = errors.New("collection: not owner")

	// ErrNotPlatform indicates a platform-only operation by another caller.
	ErrNotPlatform = errors.New("collection: not platform")

	// ErrNotShareholder indicates a withdrawal by a party with no share.
	ErrNotShareholder = errors.New("collection: not shareholder")

	// ErrBalanceEmpty indicates a withdrawal against a zero balance.
	ErrBalanceEmpty = errors.New("collection: balance empty")

	// ErrInsufficientValue indicates the native payment does not cover the price.
	ErrInsufficientValue = errors.New("collection: insufficient value sent")

	// ErrUnknownPaymentToken indicates the invite's payment token has no
	// registered ledger.
	ErrUnknownPaymentToken = errors.New("collection: unknown payment token")

	// ErrUnknownBurnCollection indicates the burn invite's source
	// collection is not registered.
	ErrUnknownBurnCollection = errors.New("collection: unknown burn collection")

	// ErrZeroQuantity indicates a mint of zero units.
	ErrZeroQuantity = errors.New("collection: zero quantity")

	// ErrQuantityOverflow indicates a quantity whose unit accounting
	// overflows 64 bits.
	ErrQuantityOverflow = errors.New("collection: quantity overflow")

	// ErrMaxSupplyLocked indicates the cap was permanently locked.
	ErrMaxSupplyLocked = errors.New("collection: max supply locked")

	// ErrInvalidMaxSupply indicates a cap below the minted supply.
	ErrInvalidMaxSupply = errors.New("collection: max supply below minted supply")

	// ErrNotHybrid indicates a remint on a collection without hybrid
	// unit accounting.
	ErrNotHybrid = errors.New("collection: not a hybrid collection")

	// ErrInvalidBurnArity indicates a burn whose token count is not a
	// whole multiple of the invite's ratio.
	ErrInvalidBurnArity = errors.New("collection: token count not a multiple of burn ratio")

	// ErrBatchShape indicates recipients and quantities of unequal length.
	ErrBatchShape = errors.New("collection: recipients and quantities mismatch")
)
