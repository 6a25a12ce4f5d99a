package validation

import "errors"

// Error is the rejection raised for bad or missing input. It never escalates:
// the operation is refused and no state is touched.
type Error struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}

func Errorf(field, message string) *Error {
	return &Error{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a validation rejection.
func IsValidation(err error) bool {
	var ve *Error
	return errors.As(err, &ve)
}
