package token

import "errors"

var (
	// ErrErc20BalanceTooLow indicates the payer's token balance cannot cover the amount.
	ErrErc20BalanceTooLow = errors.New("token: erc20 balance too low")

	// ErrNotApprovedToTransfer indicates the spender lacks sufficient allowance.
	ErrNotApprovedToTransfer = errors.New("token: not approved to transfer")

	// ErrTransferToZeroAddress indicates a transfer targeting the zero address.
	ErrTransferToZeroAddress = errors.New("token: transfer to zero address")

	// ErrMintToZeroAddress indicates a mint targeting the zero address.
	ErrMintToZeroAddress = errors.New("token: mint to zero address")

	// ErrInvalidTokenId indicates the unit identifier does not exist.
	ErrInvalidTokenId = errors.New("token: invalid token id")

	// ErrNotTokenOwner indicates the caller does not own the unit identifier.
	ErrNotTokenOwner = errors.New("token: not token owner")
)
