package repository

import (
	"context"

	"snippetapi/internal/domain/model"
)

type CartRepository interface {
	Create(ctx context.Context) (model.Cart, error)
	// 明細とsnippetをpreloadして返す
	FindByID(ctx context.Context, cartID string) (model.Cart, error)
	Exists(ctx context.Context, cartID string) (bool, error)
	// 明細ごと削除
	Delete(ctx context.Context, cartID string) error
}
