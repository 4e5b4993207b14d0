package services

import "errors"

// Sentinel errors surfaced by the use-case layer. Handlers map these onto
// HTTP status codes with errors.Is; repositories.ErrNotFound passes through
// untouched.
var (
	ErrOutOfStock         = errors.New("product is out of stock")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
)
