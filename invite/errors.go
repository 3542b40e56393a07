package invite

import "errors"

var (
	// ErrWalletUnauthorized indicates the claimant is not in the invite's allowlist.
	ErrWalletUnauthorized = errors.New("invite: wallet unauthorized to mint")

	// ErrBlacklisted indicates the claimant is in a blacklist-mode invite's set.
	ErrBlacklisted = errors.New("invite: wallet blacklisted")

	// ErrMintNotStarted indicates the sale window has not opened.
	ErrMintNotStarted = errors.New("invite: mint not yet started")

	// ErrMintEnded indicates the sale window has closed.
	ErrMintEnded = errors.New("invite: mint ended")

	// ErrMintingPaused indicates a zero-limit (or absent) invite.
	ErrMintingPaused = errors.New("invite: minting paused")

	// ErrNumberOfMintsExceeded indicates the per-invite sale limit would be exceeded.
	ErrNumberOfMintsExceeded = errors.New("invite: number of mints exceeded")

	// ErrListMaxSupplyExceeded indicates the invite's own supply ceiling would be exceeded.
	ErrListMaxSupplyExceeded = errors.New("invite: list max supply exceeded")

	// ErrMaxSupplyExceeded indicates the global collection cap would be exceeded.
	ErrMaxSupplyExceeded = errors.New("invite: max supply exceeded")

	// ErrInvalidInviteData indicates a malformed serialized invite record.
	ErrInvalidInviteData = errors.New("invite: invalid invite data")

	// ErrInviteNotFound indicates no persisted invite under the key.
	ErrInviteNotFound = errors.New("invite: invite not found")
)
