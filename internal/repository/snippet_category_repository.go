package repository

import (
	"context"

	"snippetapi/internal/domain/model"
)

type SnippetCategoryRepository interface {
	List(ctx context.Context, page Page) ([]model.SnippetCategory, int64, error)
	FindByID(ctx context.Context, id int64) (model.SnippetCategory, error)
	Create(ctx context.Context, c *model.SnippetCategory) error
	Update(ctx context.Context, c *model.SnippetCategory) error
	// カテゴリに属するsnippetも削除する
	Delete(ctx context.Context, id int64) error
}
