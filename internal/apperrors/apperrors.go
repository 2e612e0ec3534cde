// Package apperrors defines the typed failures surfaced by the SDK. Every
// component returns one of these kinds to its immediate caller; nothing in
// the SDK retries or recovers locally.
package apperrors

import (
	"fmt"
)

// ArgumentError reports a caller-supplied value the SDK cannot work with,
// e.g. a fee string that is not an integer.
type ArgumentError struct {
	Arg string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("argument not valid: %s", e.Arg)
}

// NewArgument creates an ArgumentError for the given argument description.
func NewArgument(arg string) *ArgumentError {
	return &ArgumentError{Arg: arg}
}

// UnknownTokenError reports a currency symbol with no registered token tag.
type UnknownTokenError struct {
	Symbol string
}

func (e *UnknownTokenError) Error() string {
	return fmt.Sprintf("unknown token symbol: %s", e.Symbol)
}

// SigningError reports a failed local cryptographic operation.
type SigningError struct {
	Err error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("signing: %v", e.Err)
}

func (e *SigningError) Unwrap() error {
	return e.Err
}

// AddressError reports a wallet address that could not be derived.
type AddressError struct {
	Err error
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("address: %v", e.Err)
}

func (e *AddressError) Unwrap() error {
	return e.Err
}

// NetworkError reports a transport-level failure before any HTTP status was
// received.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DecodeError reports a response body that did not match the expected schema.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// APIError carries the literal message from the service's standard error
// envelope ({"error": "..."}) on any non-success HTTP status.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s", e.Message)
}

// NewAPI creates an APIError with the server's message.
func NewAPI(message string) *APIError {
	return &APIError{Message: message}
}
