package timelock

import "errors"

// ErrInsufficientShares is returned when fewer than threshold shares are
// supplied to a reconstruction. The caller can recover by gathering more
// shares.
var ErrInsufficientShares = errors.New("insufficient shares for reconstruction")

// ErrInvalidThreshold is returned when the threshold is outside [2, n].
var ErrInvalidThreshold = errors.New("threshold must be between 2 and the number of holders")

// ErrInvariant wraps failures that indicate a bug in the caller's bookkeeping
// (duplicate holder indices, alpha list length mismatch, non-invertible
// Lagrange denominator). These are not recoverable by retrying.
var ErrInvariant = errors.New("internal invariant violation")
