package errors

import (
	"errors"
	"fmt"
)

// ValidationError marks requests rejected locally before any network call.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ConfigError marks missing store or credential configuration.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return e.Reason
}

var (
	ErrOrderNotFound = errors.New("order not found")

	ErrInvalidTransition = &ValidationError{Reason: "invalid status transition"}
	ErrMissingSelection  = &ValidationError{Reason: "menu item must be selected"}
	ErrInvalidStatus     = &ValidationError{Reason: "invalid order status"}
	ErrNoBulkAction      = &ValidationError{Reason: "no bulk action for status"}
	ErrFlowNotReady      = &ValidationError{Reason: "order flow is not at the menu step"}
	ErrBlankStoreID      = &ValidationError{Reason: "store id must not be blank"}
	ErrInvalidStoreID    = &ValidationError{Reason: "store id must be a single path segment without spaces or wildcards"}
	ErrInvalidOrderID    = &ValidationError{Reason: "order id must be a single path segment"}

	ErrMissingStoreID     = &ConfigError{Reason: "store id is not configured"}
	ErrMissingCredentials = &ConfigError{Reason: "store credentials are not configured"}
)

// NetworkError reports a non-success response from the order service.
type NetworkError struct {
	Status  int
	Message string
}

func (e *NetworkError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("order service responded with status %d", e.Status)
}

// IsValidation reports whether err was produced by local validation.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsConfig reports whether err signals missing configuration.
func IsConfig(err error) bool {
	var c *ConfigError
	return errors.As(err, &c)
}

// AsNetwork extracts a NetworkError from the chain.
func AsNetwork(err error) (*NetworkError, bool) {
	var n *NetworkError
	if errors.As(err, &n) {
		return n, true
	}
	return nil, false
}
