package fleet

import "errors"

var (
	ErrRouteNotFound   = errors.New("could not find a route or any stops matching the route number")
	ErrVehicleNotFound = errors.New("could not find the referenced bus")
	ErrStopNotFound    = errors.New("could not find the referenced stop")

	ErrActiveServiceExists = errors.New("driver already has an active bus service")
	ErrDriverExists        = errors.New("driver already registered")

	ErrInvalidCredentials = errors.New("invalid email/license or password")

	ErrDiscoveryTimeout     = errors.New("stop discovery timed out on every mirror")
	ErrDiscoveryUnavailable = errors.New("stop discovery failed on every mirror")
)

// ValidationError marks a client-fixable bad request. The message is safe to
// return verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}
