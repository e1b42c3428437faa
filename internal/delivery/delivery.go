// Package delivery defines the transport-agnostic contract every server
// implementation (HTTP today) satisfies.
package delivery

import "context"

// Delivery is a server that can be started by the composition root.
type Delivery interface {
	Serve(ctx context.Context) error
}
