package shared

// DomainError carries a stable machine-readable code next to the
// human-readable message. The HTTP layer maps codes onto status codes,
// so services return these instead of raw errors wherever the failure
// is part of the domain contract.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Sentinel errors shared across domains. Compare with errors.Is, or
// match on Code after errors.As for wrapped values.
var (
	ErrNotFound           = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists      = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput       = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnauthorized       = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden          = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState       = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInvalidCredentials = NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	ErrAccountLocked      = NewDomainError("ACCOUNT_LOCKED", "Account is temporarily locked")
	ErrAccountDisabled    = NewDomainError("ACCOUNT_DISABLED", "Account has been disabled")
	ErrEmptyCart          = NewDomainError("EMPTY_CART", "Cart has no items")
)
