package domain

import "errors"

// Errors returned by the ledger and portfolio use cases.
// All of them are recoverable and meant to be surfaced to the end user.
var (
	ErrInvalidAmount      = errors.New("invalid amount: must be a positive number")
	ErrInvalidShareCount  = errors.New("invalid share count: must be a positive number")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInsufficientShares = errors.New("insufficient shares")
	ErrNoAccount          = errors.New("account not found: deposit funds first")
	ErrNoHolding          = errors.New("holding not found")
)

// Errors returned by repositories and the market catalogue.
var (
	ErrNotFound           = errors.New("not found")
	ErrInstrumentNotFound = errors.New("instrument not found")
	ErrDuplicateSymbol    = errors.New("instrument symbol already exists")
	ErrInvalidInstrument  = errors.New("invalid instrument")
	ErrInvalidMarketHours = errors.New("invalid market hours")
)
