package shop

import "errors"

// Error taxonomy for the storefront. Validation errors are recovered in
// place by re-prompting; the rest surface as a generic failure message.
var (
	// ErrCatalogUnavailable means the SMM panel could not be reached or
	// returned something that is not its JSON catalog.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrPlacementRejected means the panel answered but issued no order id.
	ErrPlacementRejected = errors.New("order placement rejected")

	// ErrPricingNotConfigured means no admin has set the unit value yet.
	// All purchases and top-ups are blocked until it is set.
	ErrPricingNotConfigured = errors.New("unit value is not configured")

	// ErrQuantityOutOfRange means the requested quantity is outside the
	// [min,max] the panel reports for the service.
	ErrQuantityOutOfRange = errors.New("quantity out of range")

	// ErrInsufficientCredit means the wallet balance does not cover the
	// computed credit cost.
	ErrInsufficientCredit = errors.New("insufficient credit")

	// ErrInvalidInput means free-text input failed to parse where a number
	// was expected.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound covers unknown order ids, tickets, discount codes and
	// agency requests.
	ErrNotFound = errors.New("not found")
)
