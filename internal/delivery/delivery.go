// Package delivery defines the inbound transport boundary of the service.
package delivery

import "context"

// Delivery is a transport that serves the application until the context is
// canceled or the process shuts down.
type Delivery interface {
	Serve(ctx context.Context) error
}
