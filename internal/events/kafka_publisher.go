package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/sevasanjeevani/store/internal/domain"
	"github.com/sevasanjeevani/store/internal/inventory"
)

const Topic = "order-activity"

type orderEvent struct {
	Type       string             `json:"type"`
	OrderID    string             `json:"order_id"`
	UserID     string             `json:"user_id"`
	Status     string             `json:"status"`
	FromStatus string             `json:"from_status,omitempty"`
	Total      string             `json:"total,omitempty"`
	Items      []domain.OrderItem `json:"items,omitempty"`
	OccurredAt time.Time          `json:"occurred_at"`
}

type overcommitEvent struct {
	Type        string                 `json:"type"`
	OrderID     string                 `json:"order_id"`
	Overcommits []inventory.Overcommit `json:"overcommits"`
	OccurredAt  time.Time              `json:"occurred_at"`
}

// KafkaPublisher writes activity events to the order-activity topic.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers ...string) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        Topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
	}
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) Close() {
	if err := p.writer.Close(); err != nil {
		log.Printf("error closing kafka writer: %v", err)
	}
}

func (p *KafkaPublisher) OrderCreated(ctx context.Context, order *domain.Order) {
	p.publish(ctx, order.ID.String(), orderEvent{
		Type:       "order.created",
		OrderID:    order.ID.String(),
		UserID:     order.UserID,
		Status:     order.Status.String(),
		Total:      order.TotalAmount.String(),
		Items:      order.Items,
		OccurredAt: time.Now(),
	})
}

func (p *KafkaPublisher) OrderStatusChanged(ctx context.Context, order *domain.Order, from domain.OrderStatus) {
	p.publish(ctx, order.ID.String(), orderEvent{
		Type:       "order.status_changed",
		OrderID:    order.ID.String(),
		UserID:     order.UserID,
		Status:     order.Status.String(),
		FromStatus: from.String(),
		OccurredAt: time.Now(),
	})
}

func (p *KafkaPublisher) InventoryOvercommit(ctx context.Context, orderID string, overcommits []inventory.Overcommit) {
	p.publish(ctx, orderID, overcommitEvent{
		Type:        "inventory.overcommit",
		OrderID:     orderID,
		Overcommits: overcommits,
		OccurredAt:  time.Now(),
	})
}

func (p *KafkaPublisher) publish(ctx context.Context, key string, event any) {
	value, err := json.Marshal(event)
	if err != nil {
		log.Printf("error marshaling activity event: %v", err)
		return
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
	if err != nil {
		log.Printf("error publishing activity event: %v", err)
	}
}
