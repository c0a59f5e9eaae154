package event

import (
	"context"

	"snippetapi/internal/domain/model"
	"snippetapi/internal/logger"
)

// LogPublisher only logs order events. Used when no broker is configured.
type LogPublisher struct {
	log logger.Logger
}

func NewLogPublisher(log logger.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) PublishOrderCreated(_ context.Context, ev model.OrderCreatedEvent) error {
	p.log.Info(model.EventOrderCreated,
		"order_id", ev.OrderID,
		"customer_id", ev.CustomerID,
		"user_id", ev.UserID,
		"items", len(ev.Items),
		"total_price", ev.TotalPrice,
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }
