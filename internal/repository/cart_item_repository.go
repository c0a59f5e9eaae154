package repository

import (
	"context"

	"snippetapi/internal/domain/model"
)

type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID string) ([]model.CartItem, error)
	FindByID(ctx context.Context, cartID string, itemID int64) (model.CartItem, error)

	// 同一snippetは数量を加算。作成または更新後の行を返す。
	UpsertByCartAndSnippet(ctx context.Context, cartID string, snippetID int64, addQty int64) (model.CartItem, error)

	UpdateQuantity(ctx context.Context, cartID string, itemID int64, qty int64) error
	Delete(ctx context.Context, cartID string, itemID int64) error
}
