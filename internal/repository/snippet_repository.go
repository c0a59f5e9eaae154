package repository

import (
	"context"

	"snippetapi/internal/domain/model"
)

// 一覧検索の条件
type SnippetListQuery struct {
	CategoryID *int64
	PriceLT    *int64
	PriceGT    *int64

	// 空白・カンマ区切り済みの検索語。全語がいずれかの列に一致すること。
	SearchTerms []string

	// "unit_price", "-created" など。検証済みの値だけを渡す。
	Ordering []string

	Page Page
}

type SnippetRepository interface {
	List(ctx context.Context, q SnippetListQuery) ([]model.Snippet, int64, error)
	FindByID(ctx context.Context, id int64) (model.Snippet, error)
	Create(ctx context.Context, s *model.Snippet) error
	Update(ctx context.Context, s *model.Snippet) error
	// 注文明細から参照されている場合は ErrProtected
	Delete(ctx context.Context, id int64) error

	// 指定ユーザーごとのsnippet IDを返す
	IDsByOwners(ctx context.Context, ownerIDs []int64) (map[int64][]int64, error)
}
