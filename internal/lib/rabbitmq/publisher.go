package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/glam-app/internal/models"
)

// PublishMessage публикует message как JSON.
func PublishMessage(ch *amqp.Channel, exchange string, routingKey string, message any) error {
	const op = "rabbitmq.PublishMessage"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// StockAlertPublisher отправляет models.StockAlert в NotificationsExchange.
// amqp.Channel не потокобезопасен, публикации сериализуются мьютексом.
type StockAlertPublisher struct {
	mu sync.Mutex
	ch *amqp.Channel
}

// NewStockAlertPublisher создаёт издателя поверх настроенного канала.
func NewStockAlertPublisher(ch *amqp.Channel) *StockAlertPublisher {
	return &StockAlertPublisher{ch: ch}
}

// PublishStockAlert публикует alert с ключом StockLowRoutingKey.
func (p *StockAlertPublisher) PublishStockAlert(ctx context.Context, alert models.StockAlert) error {
	const op = "rabbitmq.PublishStockAlert"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := PublishMessage(p.ch, NotificationsExchange, StockLowRoutingKey, alert); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
