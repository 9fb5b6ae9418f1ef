package dto

// Error codes returned in APIError.Code
const (
	ErrCodeNotFound      = "not_found"
	ErrCodeBadRequest    = "bad_request"
	ErrCodeInternalError = "internal_error"
	ErrCodeValidation    = "validation_error"
)

// APIError is the body of every non-2xx response. Field names the offending
// request field for validation errors.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// NotFoundError reports a missing ledger resource such as "account".
func NotFoundError(resource string) APIError {
	return APIError{Code: ErrCodeNotFound, Message: resource + " not found"}
}

// BadRequestError reports a body that could not be decoded.
func BadRequestError(message string) APIError {
	return APIError{Code: ErrCodeBadRequest, Message: message}
}

// InternalError hides storage details from clients; the cause is logged.
func InternalError() APIError {
	return APIError{Code: ErrCodeInternalError, Message: "ledger storage unavailable, try again"}
}

// ValidationError reports a well-formed request with an unacceptable field.
func ValidationError(field, message string) APIError {
	return APIError{Code: ErrCodeValidation, Message: message, Field: field}
}
