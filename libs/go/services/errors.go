package services

import "errors"

var (
	// ErrNoWallet is returned when an operation needs a connected account
	ErrNoWallet = errors.New("please connect wallet first")
	// ErrRouteNotFound is returned when a route id has no stored record
	ErrRouteNotFound = errors.New("route not found")
	// ErrInvalidTransition is returned when strict mode rejects a status change
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrLedgerUnavailable is returned when the ledger cannot be reached
	ErrLedgerUnavailable = errors.New("ledger unavailable")
	// ErrValidation is returned when create input is rejected
	ErrValidation = errors.New("validation failed")
)
