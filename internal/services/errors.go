package services

// ValidationError covers malformed or incomplete input. Maps to 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UnauthorizedError means no usable API key is available for the selected
// provider. Maps to 401 and carries the validator's guidance message.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string {
	return e.Message
}
