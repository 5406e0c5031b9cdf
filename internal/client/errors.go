package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aanand-mishra/student-manager/internal/types"
)

// TransportError means no usable response was obtained: the service could not
// be reached, the connection dropped, or a success body could not be read.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServiceError is a non-2xx response from the service.
type ServiceError struct {
	Status  int
	Message string
	// Reason is the "error" field of the body, usually the status text.
	Reason string
}

// Error renders message[status][error].
func (e *ServiceError) Error() string {
	return e.Body().String()
}

// Body returns the error in its wire shape.
func (e *ServiceError) Body() types.ErrorBody {
	return types.ErrorBody{Status: e.Status, Message: e.Message, Error: e.Reason}
}

// IsNotFound reports whether err is a 404 from the service, which is what a
// second delete of the same id returns.
func IsNotFound(err error) bool {
	var svcErr *ServiceError
	return errors.As(err, &svcErr) && svcErr.Status == http.StatusNotFound
}

// IsTransport reports whether err is a *TransportError.
func IsTransport(err error) bool {
	var trErr *TransportError
	return errors.As(err, &trErr)
}
