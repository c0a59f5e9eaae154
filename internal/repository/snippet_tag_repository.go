package repository

import (
	"context"

	"snippetapi/internal/domain/model"
)

// タグは常に親snippetの範囲で扱う。
type SnippetTagRepository interface {
	ListBySnippetID(ctx context.Context, snippetID int64, page Page) ([]model.SnippetTag, int64, error)
	FindByID(ctx context.Context, snippetID, tagID int64) (model.SnippetTag, error)
	Create(ctx context.Context, tag *model.SnippetTag) error
	Update(ctx context.Context, tag *model.SnippetTag) error
	Delete(ctx context.Context, snippetID, tagID int64) error
}
