package domain

import "errors"

var (
	// Query builder preconditions
	ErrEmptySelection = errors.New("channel selection is empty")
	ErrUnknownChannel = errors.New("unknown currency channel")
	ErrNoAccounts     = errors.New("no account identifiers given")
	ErrEmptyAccountID = errors.New("empty account identifier")

	// Detail cache
	ErrDetailNotCached = errors.New("detail not cached for account")
)
