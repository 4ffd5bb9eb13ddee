package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"notapos/internal/core/domain/model/orderitem"

	amqp "github.com/rabbitmq/amqp091-go"
)

const dispatchExchange = "prep_stations_topic"

// DispatchedMessage is the wire format of a dispatch announcement. Consumers
// are the kitchen and bar display services.
type DispatchedMessage struct {
	OrderItemID  string    `json:"orderItemId"`
	OrderID      string    `json:"orderId"`
	MenuItemID   string    `json:"menuItemId"`
	Quantity     int       `json:"quantity"`
	Instructions string    `json:"instructions,omitempty"`
	DispatchedAt time.Time `json:"dispatchedAt"`
}

// PrepStationNotifier publishes dispatch announcements to a topic exchange.
// Implements ports.PrepStationNotifier.
type PrepStationNotifier struct {
	conn Connection
}

// NewPrepStationNotifier creates a notifier over an open broker connection.
func NewPrepStationNotifier(conn Connection) *PrepStationNotifier {
	return &PrepStationNotifier{conn: conn}
}

// NotifyDispatched publishes the item to the preparation stations. Messages
// are persistent so a display service restart does not drop queued items.
func (n *PrepStationNotifier) NotifyDispatched(ctx context.Context, item *orderitem.OrderItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	ch, err := n.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err = ch.ExchangeDeclare(dispatchExchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	msg := DispatchedMessage{
		OrderItemID:  item.ID().String(),
		OrderID:      item.OrderID().String(),
		MenuItemID:   item.MenuItemID().String(),
		Quantity:     item.Quantity(),
		Instructions: item.Instructions(),
	}
	if at := item.DispatchedAt(); at != nil {
		msg.DispatchedAt = *at
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	routingKey := fmt.Sprintf("prep.dispatched.%s", msg.OrderID)

	err = ch.PublishWithContext(ctx, dispatchExchange, routingKey, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}
