package repository

import (
	"context"
	"strings"

	"snippetapi/internal/domain/model"
	"snippetapi/internal/infra/db"
	repo "snippetapi/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const snippetSelect = "snippets.*, " +
	"(SELECT COUNT(*) FROM snippet_tags WHERE snippet_tags.snippet_id = snippets.id) AS tag_count"

// ordering名 -> 列
var snippetOrderColumns = map[string]string{
	"unit_price": "snippets.unit_price",
	"created":    "snippets.created",
}

type SnippetGormRepository struct {
	db *gorm.DB
}

func NewSnippetGormRepository(db *gorm.DB) *SnippetGormRepository {
	return &SnippetGormRepository{db: db}
}

// 絞り込み/検索/並び替え/ページング付きで返す。tag_count・category・ownerも埋める。
func (r *SnippetGormRepository) List(ctx context.Context, q repo.SnippetListQuery) ([]model.Snippet, int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.Snippet{})

	if q.CategoryID != nil {
		tx = tx.Where("snippets.category_id = ?", *q.CategoryID)
	}
	if q.PriceLT != nil {
		tx = tx.Where("snippets.unit_price < ?", *q.PriceLT)
	}
	if q.PriceGT != nil {
		tx = tx.Where("snippets.unit_price > ?", *q.PriceGT)
	}

	if len(q.SearchTerms) > 0 {
		tx = tx.Joins("LEFT JOIN snippet_categories ON snippet_categories.id = snippets.category_id")
		for _, term := range q.SearchTerms {
			like := "%" + escapeLike(strings.ToLower(term)) + "%"
			tx = tx.Where(
				`(LOWER(snippets.title) LIKE ? ESCAPE '\' OR LOWER(snippets.code) LIKE ? ESCAPE '\' OR LOWER(snippet_categories.title) LIKE ? ESCAPE '\')`,
				like, like, like,
			)
		}
	}

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return []model.Snippet{}, 0, err
	}

	ordered := false
	for _, o := range q.Ordering {
		desc := strings.HasPrefix(o, "-")
		col, ok := snippetOrderColumns[strings.TrimPrefix(o, "-")]
		if !ok {
			continue
		}
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: col, Raw: true}, Desc: desc})
		ordered = true
	}
	if !ordered {
		tx = tx.Order("snippets.created asc")
	}
	tx = tx.Order("snippets.id asc")

	var items []model.Snippet
	err := tx.Select(snippetSelect).
		Preload("Category").
		Preload("Owner").
		Limit(q.Page.Limit).
		Offset(q.Page.Offset).
		Find(&items).Error
	if err != nil {
		return []model.Snippet{}, 0, err
	}
	return items, total, nil
}

func (r *SnippetGormRepository) FindByID(ctx context.Context, id int64) (model.Snippet, error) {
	var s model.Snippet
	err := r.db.WithContext(ctx).
		Model(&model.Snippet{}).
		Select(snippetSelect).
		Preload("Category").
		Preload("Owner").
		Where("snippets.id = ?", id).
		First(&s).Error
	if err != nil {
		return model.Snippet{}, db.Classify(err)
	}
	return s, nil
}

func (r *SnippetGormRepository) Create(ctx context.Context, s *model.Snippet) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(s).Error; err != nil {
		return db.Classify(err)
	}
	return nil
}

// PUT/PATCHどちらも、usecase側でマージ済みの値を全列書き込む。
func (r *SnippetGormRepository) Update(ctx context.Context, s *model.Snippet) error {
	res := r.db.WithContext(ctx).
		Model(&model.Snippet{ID: s.ID}).
		Select("title", "code", "unit_price", "linenos", "language", "style", "category_id", "owner_id").
		Omit(clause.Associations).
		Updates(s)
	if res.Error != nil {
		return db.Classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *SnippetGormRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := deleteSnippets(tx, []int64{id})
		if err != nil {
			return err
		}
		if n == 0 {
			return repo.ErrNotFound
		}
		return nil
	})
}

func (r *SnippetGormRepository) IDsByOwners(ctx context.Context, ownerIDs []int64) (map[int64][]int64, error) {
	out := make(map[int64][]int64, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return out, nil
	}

	var rows []struct {
		ID      int64
		OwnerID int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Snippet{}).
		Select("id", "owner_id").
		Where("owner_id IN ?", ownerIDs).
		Order("id asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.OwnerID] = append(out[row.OwnerID], row.ID)
	}
	return out, nil
}

// 子行（タグ・カート明細）ごとsnippetを消す。注文明細から参照されていれば ErrProtected。
// txはトランザクション内であること。
func deleteSnippets(tx *gorm.DB, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var ordered int64
	if err := tx.Model(&model.OrderItem{}).Where("snippet_id IN ?", ids).Count(&ordered).Error; err != nil {
		return 0, err
	}
	if ordered > 0 {
		return 0, repo.ErrProtected
	}

	if err := tx.Where("snippet_id IN ?", ids).Delete(&model.SnippetTag{}).Error; err != nil {
		return 0, err
	}
	if err := tx.Where("snippet_id IN ?", ids).Delete(&model.CartItem{}).Error; err != nil {
		return 0, err
	}

	res := tx.Where("id IN ?", ids).Delete(&model.Snippet{})
	if res.Error != nil {
		return 0, db.Classify(res.Error)
	}
	return res.RowsAffected, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
