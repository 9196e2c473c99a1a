package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"order not found", ErrOrderNotFound},
		{"invalid transition", ErrInvalidTransition},
		{"missing selection", ErrMissingSelection},
		{"invalid status", ErrInvalidStatus},
		{"no bulk action", ErrNoBulkAction},
		{"invalid store id", ErrInvalidStoreID},
		{"invalid order id", ErrInvalidOrderID},
		{"missing store", ErrMissingStoreID},
		{"missing credentials", ErrMissingCredentials},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("wrapped: %w", tc.err)
			if !stdErrors.Is(wrapped, tc.err) {
				t.Fatalf("expected wrapped error to match: %v", tc.err)
			}
		})
	}
}

func TestClassification(t *testing.T) {
	if !IsValidation(fmt.Errorf("x: %w", ErrInvalidTransition)) {
		t.Fatal("expected validation error")
	}
	if IsValidation(ErrMissingStoreID) {
		t.Fatal("config error must not classify as validation")
	}
	if !IsConfig(fmt.Errorf("x: %w", ErrMissingCredentials)) {
		t.Fatal("expected config error")
	}
	if IsConfig(ErrOrderNotFound) {
		t.Fatal("not found must not classify as config")
	}
}

func TestNetworkErrorMessage(t *testing.T) {
	withMessage := &NetworkError{Status: 500, Message: "store closed"}
	if withMessage.Error() != "store closed" {
		t.Fatalf("unexpected message %q", withMessage.Error())
	}
	bare := &NetworkError{Status: 502}
	if bare.Error() != "order service responded with status 502" {
		t.Fatalf("unexpected message %q", bare.Error())
	}

	got, ok := AsNetwork(fmt.Errorf("call: %w", withMessage))
	if !ok || got.Status != 500 {
		t.Fatalf("expected network error to be extracted, got %v %v", got, ok)
	}
	if _, ok := AsNetwork(ErrOrderNotFound); ok {
		t.Fatal("did not expect network error")
	}
}
