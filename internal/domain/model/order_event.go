package model

import "time"

const EventOrderCreated = "order_created"

type OrderCreatedItem struct {
	SnippetID int64 `json:"snippet_id"`
	Quantity  int64 `json:"quantity"`
	UnitPrice int64 `json:"unit_price"`
}

// OrderCreatedEvent is published once the order transaction has committed.
type OrderCreatedEvent struct {
	OrderID    int64              `json:"order_id"`
	CustomerID int64              `json:"customer_id"`
	UserID     int64              `json:"user_id"`
	PlacedAt   time.Time          `json:"placed_at"`
	Items      []OrderCreatedItem `json:"items"`
	TotalPrice int64              `json:"total_price"`
}

func NewOrderCreatedEvent(o Order, userID int64) OrderCreatedEvent {
	items := make([]OrderCreatedItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderCreatedItem{SnippetID: it.SnippetID, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}
	return OrderCreatedEvent{
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		UserID:     userID,
		PlacedAt:   o.PlacedAt,
		Items:      items,
		TotalPrice: o.TotalPrice(),
	}
}
