package config

import "errors"

var (
	// ErrZeroOwner indicates a collection configured without an owner.
	ErrZeroOwner = errors.New("config: zero owner address")

	// ErrInvalidRoyaltyBps indicates royalty basis points above 10000.
	ErrInvalidRoyaltyBps = errors.New("config: invalid royalty basis points")

	// ErrMissingRoyaltyReceiver indicates a royalty share with no receiver.
	ErrMissingRoyaltyReceiver = errors.New("config: missing royalty receiver")

	// ErrInvalidPremiumBps indicates a remint premium above 10000.
	ErrInvalidPremiumBps = errors.New("config: invalid remint premium basis points")

	// ErrInvalidAffiliateBps indicates affiliate fee or discount above 10000.
	ErrInvalidAffiliateBps = errors.New("config: invalid affiliate basis points")

	// ErrMissingAffiliateSigner indicates an affiliate fee with no trusted signer.
	ErrMissingAffiliateSigner = errors.New("config: missing affiliate signer")

	// ErrInvalidSplit wraps revenue split configuration errors.
	ErrInvalidSplit = errors.New("config: invalid revenue split")
)
