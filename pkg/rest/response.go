package rest

import (
	"fmt"
	"net/http"
)

// Response is the normalized result of a completed request.
type Response struct {
	Data   []byte
	Status int
	Header http.Header
}

// Error is returned when the remote endpoint answered with a fault.
// Failures without a response (DNS, connection reset) are passed through
// as-is and never wrapped in this type.
type Error struct {
	Message string
	Status  int
	Data    []byte
	Header  http.Header
}

func (e *Error) Error() string {
	if len(e.Data) == 0 {
		return fmt.Sprintf("%d %s", e.Status, e.Message)
	}

	return fmt.Sprintf("%d %s: %s", e.Status, e.Message, e.Data)
}

func copyHeader(src http.Header) http.Header {
	dst := http.Header{}

	for name, values := range src {
		for _, value := range values {
			if value == "" {
				continue
			}

			dst.Add(name, value)
		}
	}

	return dst
}
