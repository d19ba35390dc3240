// Where: internal/infra/hubapi/errors.go
// What: Shared error definitions and transport error translation.
// Why: Map every network-level failure onto the TransportError kind in one place.
package hubapi

import (
	"context"
	"errors"
	"net"

	"github.com/sciurus/dockhub/internal/domain/registry"
	"github.com/sciurus/dockhub/internal/meta"
)

const (
	contentType = "application/json"
	charset     = "utf-8"
)

var (
	errBaseURLRequired  = errors.New("base url is required")
	errOrgRequired      = errors.New("org is required")
	errTooManyRedirects = errors.New("stopped after 10 redirects")
)

// translateTransportError classifies a failure from http.Client.Do or
// from reading the body. The returned error always has KindTransport.
func translateTransportError(op string, err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, errTooManyRedirects):
		return registry.NewError(registry.KindTransport, op, "Too many redirects encountered", err)
	case errors.Is(err, context.Canceled):
		return registry.NewError(registry.KindTransport, op, "Request cancelled", err)
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return registry.NewError(registry.KindTransport, op, "Timeout", err)
	default:
		return registry.NewError(registry.KindTransport, op, "Unable to connect to "+meta.ServiceName, err)
	}
}
