package usecase

import (
	"strings"

	domainErrors "github.com/kakigori/storefront/internal/domain/errors"
	"github.com/kakigori/storefront/internal/domain/model"
)

// NormalizeStoreID trims a store id entered by an operator or taken from a
// customer URL. Blank ids and ids that are not a single plain path segment
// are rejected.
func NormalizeStoreID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", domainErrors.ErrBlankStoreID
	}
	if !model.IsStoreID(id) {
		return "", domainErrors.ErrInvalidStoreID
	}
	return id, nil
}

// ValidateOrderID rejects order ids that would not address a single order.
func ValidateOrderID(id string) error {
	if !model.IsPathSegment(id) {
		return domainErrors.ErrInvalidOrderID
	}
	return nil
}
