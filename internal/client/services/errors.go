package services

import "errors"

var (
	ErrNotLoggedIn       = errors.New("not logged in")
	ErrPasswordTooShort  = errors.New("password must be at least 4 characters")
	ErrPasswordsMismatch = errors.New("new passwords do not match")
	ErrEmptyField        = errors.New("required field is empty")
	ErrEmptyOrder        = errors.New("order has no items")
	ErrOrderNotEditable  = errors.New("only pending orders can be changed")
)

// MinPasswordLength is the shortest password accepted on registration and
// password change.
const MinPasswordLength = 4
