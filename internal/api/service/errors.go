package service

import (
	"fmt"

	"stock-portfolio-service/internal/api/apperror"
)

// Domain errors returned by the services. Compare with errors.Is.
var (
	ErrUserNotFound        = apperror.New(apperror.ErrNotFound, "User not found")
	ErrDuplicateUsername   = apperror.New(apperror.ErrConflict, "Username already exists")
	ErrCreateUser          = apperror.New(apperror.ErrValidation, "Error creating user")
	ErrInvalidCredentials  = apperror.New(apperror.ErrUnauthorized, "Invalid username or password")
	ErrPasswordTooLong     = apperror.New(apperror.ErrValidation, fmt.Sprintf("Password too long. Maximum length is %d characters.", MaxPasswordBytes))
	ErrNoPosition          = apperror.New(apperror.ErrConflict, "You don't own this stock.")
	ErrInsufficientShares  = apperror.New(apperror.ErrConflict, "Not enough shares to sell.")
	ErrInvalidTrade        = apperror.New(apperror.ErrValidation, "Shares and price must be positive.")
	ErrShareCountTooLarge  = apperror.New(apperror.ErrValidation, "Resulting share count is too large.")
	ErrSymbolRequired      = apperror.New(apperror.ErrValidation, "Symbol is required.")
	ErrNoSymbolsProvided   = apperror.New(apperror.ErrValidation, "No symbols provided.")
	ErrSearchQueryRequired = apperror.New(apperror.ErrValidation, "Query parameter 'q' is required.")
)
