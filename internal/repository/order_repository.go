package repository

import (
	"context"

	"snippetapi/internal/domain/model"
)

type OrderListFilter struct {
	// nilなら全件（管理者）
	CustomerID *int64
	Page       Page
}

type OrderRepository interface {
	// 明細をpreloadして返す
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	List(ctx context.Context, f OrderListFilter) ([]model.Order, int64, error)
	Create(ctx context.Context, order *model.Order) error
	UpdatePaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus) error
	Delete(ctx context.Context, orderID int64) error
}
