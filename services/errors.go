package services

import "errors"

// Error taxonomy surfaced by the cart and checkout services. Controllers
// translate these to HTTP statuses; none of them is fatal to the process.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidState       = errors.New("invalid state")
	ErrVerificationFailed = errors.New("payment verification failed")
)
