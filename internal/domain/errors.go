// Package domain provides definitions of all ledger entities.
package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput indicates missing or malformed request fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidAmount indicates a non-integer or non-positive amount.
	ErrInvalidAmount = fmt.Errorf("%w: amount must be a positive integer", ErrInvalidInput)
	// ErrSameAccount indicates a transfer from an account to itself.
	ErrSameAccount = fmt.Errorf("%w: cannot transfer to the same account", ErrInvalidInput)
	// ErrInvalidCredential indicates an unknown card or a card owned by another account.
	ErrInvalidCredential = errors.New("invalid card")
	// ErrInvalidOrExpiredCode indicates a missing, wrong or expired security code.
	ErrInvalidOrExpiredCode = errors.New("invalid or expired security code")
	// ErrInsufficientFunds indicates that the account balance is lower than the amount.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrUnlinkedNotificationTarget indicates that the account has no delivery address.
	ErrUnlinkedNotificationTarget = errors.New("no notification address linked to this account")
	// ErrDuplicateCredential indicates that the card is already registered.
	ErrDuplicateCredential = errors.New("card already exists")
	// ErrCardNotFound indicates that the card is not registered.
	ErrCardNotFound = errors.New("card not found")
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
)
