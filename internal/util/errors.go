// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input provided")
	ErrForbidden          = errors.New("action not allowed for this user")
	ErrInvalidState       = errors.New("transition not legal from current status")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrSameWalletTransfer = errors.New("cannot transfer to the same wallet")
	ErrAlreadyListed      = errors.New("debt already has an active listing")
	ErrNotAvailable       = errors.New("receivable is not for sale")
	ErrSelfPurchase       = errors.New("cannot purchase own receivable")
	ErrDuplicateEntry     = errors.New("duplicate entry")
)

// IsError reports whether err matches target in its chain.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
