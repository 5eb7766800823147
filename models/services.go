// boatd/models/services.go
package models

import "context"

// Notifier is a best-effort outbound notification channel. Callers dispatch
// it in the background and only log failures; a send error must never reach
// the person who filed the request.
type Notifier interface {
	RepairRequestReceived(ctx context.Context, req RepairRequest) error
}
