// Package provider defines the error taxonomy shared by blockchain-data
// provider implementations and their consumers.
package provider

import "errors"

// ErrUnavailable indicates the provider could not be reached or returned a
// transport-level failure.
var ErrUnavailable = errors.New("provider: unavailable")

// ErrNotFound indicates the requested transaction or address is unknown to
// the provider.
var ErrNotFound = errors.New("provider: not found")

// ErrOutOfRange indicates a requested output index exceeds the transaction's
// known outputs.
var ErrOutOfRange = errors.New("provider: output index out of range")
