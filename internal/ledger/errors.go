package ledger

import "errors"

// ErrorKind names a class of rejected ledger command.
type ErrorKind string

const (
	KindInvalidEmail    ErrorKind = "invalid_email"
	KindInvalidName     ErrorKind = "invalid_name"
	KindDuplicateEmail  ErrorKind = "duplicate_email"
	KindMissingSKU      ErrorKind = "missing_sku"
	KindMissingName     ErrorKind = "missing_name"
	KindInvalidPrice    ErrorKind = "invalid_price"
	KindInvalidQuantity ErrorKind = "invalid_quantity"
	KindDuplicateSKU    ErrorKind = "duplicate_sku"
	KindProductNotFound ErrorKind = "product_not_found"
	KindNegativeStock   ErrorKind = "negative_stock"
	KindNoChanges       ErrorKind = "no_changes"
)

// Error is a business-rule failure returned by a ledger command.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrInvalidEmail    = &Error{Kind: KindInvalidEmail, Message: "Please enter a valid email address"}
	ErrInvalidName     = &Error{Kind: KindInvalidName, Message: "Please enter a valid full name"}
	ErrDuplicateEmail  = &Error{Kind: KindDuplicateEmail, Message: "Email already registered"}
	ErrMissingSKU      = &Error{Kind: KindMissingSKU, Message: "SKU is required"}
	ErrMissingName     = &Error{Kind: KindMissingName, Message: "Product name is required"}
	ErrInvalidPrice    = &Error{Kind: KindInvalidPrice, Message: "Price must be greater than 0"}
	ErrInvalidQuantity = &Error{Kind: KindInvalidQuantity, Message: "Quantity cannot be negative"}
	ErrDuplicateSKU    = &Error{Kind: KindDuplicateSKU, Message: "Product with this SKU already exists"}
	ErrProductNotFound = &Error{Kind: KindProductNotFound, Message: "Product not found"}
	ErrNegativeStock   = &Error{Kind: KindNegativeStock, Message: "Stock cannot go negative"}
	ErrNoChanges       = &Error{Kind: KindNoChanges, Message: "Nothing to update"}
)

// KindOf extracts the ErrorKind from err, or "" if err is not a ledger error.
func KindOf(err error) ErrorKind {
	var lerr *Error
	if errors.As(err, &lerr) {
		return lerr.Kind
	}
	return ""
}
