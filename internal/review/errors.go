package review

import "errors"

// Sentinel errors for the review package.
// Use errors.Is to check: errors.Is(err, review.ErrNotFound)
var (
	ErrNotFound             = errors.New("review: item not found")
	ErrInvalidUnderstanding = errors.New("review: understanding must be between 1 and 5")
)
