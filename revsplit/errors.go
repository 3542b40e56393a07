package revsplit

import "errors"

var (
	// ErrBpsExceedTotal indicates configured basis points sum past 10000.
	ErrBpsExceedTotal = errors.New("revsplit: basis points exceed 10000")

	// ErrMissingBeneficiary indicates a nonzero share with no destination.
	ErrMissingBeneficiary = errors.New("revsplit: missing beneficiary address")
)
