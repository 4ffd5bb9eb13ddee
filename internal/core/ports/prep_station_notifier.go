package ports

import (
	"context"

	"notapos/internal/core/domain/model/orderitem"
)

// PrepStationNotifier announces dispatched items to the preparation stations
// (kitchen and bar displays). Notification is best-effort and happens after
// the dispatch transition has been committed; a failed notification never
// rolls back a dispatch.
type PrepStationNotifier interface {
	NotifyDispatched(ctx context.Context, item *orderitem.OrderItem) error
}

// NopPrepStationNotifier is used when no message broker is configured.
type NopPrepStationNotifier struct{}

// NotifyDispatched discards the notification.
func (NopPrepStationNotifier) NotifyDispatched(_ context.Context, _ *orderitem.OrderItem) error {
	return nil
}
