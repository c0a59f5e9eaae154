package repository

import (
	"context"

	"snippetapi/internal/domain/model"
	"snippetapi/internal/infra/db"
	repo "snippetapi/internal/repository"

	"gorm.io/gorm"
)

type SnippetCategoryGormRepository struct {
	db *gorm.DB
}

func NewSnippetCategoryGormRepository(db *gorm.DB) *SnippetCategoryGormRepository {
	return &SnippetCategoryGormRepository{db: db}
}

func (r *SnippetCategoryGormRepository) List(ctx context.Context, page repo.Page) ([]model.SnippetCategory, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.SnippetCategory{}).Count(&total).Error; err != nil {
		return []model.SnippetCategory{}, 0, err
	}

	var items []model.SnippetCategory
	err := r.db.WithContext(ctx).
		Order("id asc").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&items).Error
	if err != nil {
		return []model.SnippetCategory{}, 0, err
	}
	return items, total, nil
}

func (r *SnippetCategoryGormRepository) FindByID(ctx context.Context, id int64) (model.SnippetCategory, error) {
	var c model.SnippetCategory
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return model.SnippetCategory{}, db.Classify(err)
	}
	return c, nil
}

func (r *SnippetCategoryGormRepository) Create(ctx context.Context, c *model.SnippetCategory) error {
	return db.Classify(r.db.WithContext(ctx).Create(c).Error)
}

func (r *SnippetCategoryGormRepository) Update(ctx context.Context, c *model.SnippetCategory) error {
	res := r.db.WithContext(ctx).
		Model(&model.SnippetCategory{}).
		Where("id = ?", c.ID).
		Update("title", c.Title)
	if res.Error != nil {
		return db.Classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// カテゴリに属するsnippetを先に消してからカテゴリを消す。
func (r *SnippetCategoryGormRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var snippetIDs []int64
		if err := tx.Model(&model.Snippet{}).Where("category_id = ?", id).Pluck("id", &snippetIDs).Error; err != nil {
			return err
		}
		if _, err := deleteSnippets(tx, snippetIDs); err != nil {
			return err
		}

		res := tx.Delete(&model.SnippetCategory{}, id)
		if res.Error != nil {
			return db.Classify(res.Error)
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}
		return nil
	})
}
