package repository

import (
	"context"

	"snippetapi/internal/domain/model"
	"snippetapi/internal/infra/db"
	repo "snippetapi/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SnippetTagGormRepository struct {
	db *gorm.DB
}

func NewSnippetTagGormRepository(db *gorm.DB) *SnippetTagGormRepository {
	return &SnippetTagGormRepository{db: db}
}

func (r *SnippetTagGormRepository) ListBySnippetID(ctx context.Context, snippetID int64, page repo.Page) ([]model.SnippetTag, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&model.SnippetTag{}).
		Where("snippet_id = ?", snippetID).
		Count(&total).Error; err != nil {
		return []model.SnippetTag{}, 0, err
	}

	var items []model.SnippetTag
	err := r.db.WithContext(ctx).
		Where("snippet_id = ?", snippetID).
		Order("id asc").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&items).Error
	if err != nil {
		return []model.SnippetTag{}, 0, err
	}
	return items, total, nil
}

// 別のsnippetのタグIDを指定されたら見つからない扱い
func (r *SnippetTagGormRepository) FindByID(ctx context.Context, snippetID, tagID int64) (model.SnippetTag, error) {
	var t model.SnippetTag
	err := r.db.WithContext(ctx).
		Where("id = ? AND snippet_id = ?", tagID, snippetID).
		First(&t).Error
	if err != nil {
		return model.SnippetTag{}, db.Classify(err)
	}
	return t, nil
}

func (r *SnippetTagGormRepository) Create(ctx context.Context, tag *model.SnippetTag) error {
	return db.Classify(r.db.WithContext(ctx).Omit(clause.Associations).Create(tag).Error)
}

func (r *SnippetTagGormRepository) Update(ctx context.Context, tag *model.SnippetTag) error {
	res := r.db.WithContext(ctx).
		Model(&model.SnippetTag{}).
		Where("id = ? AND snippet_id = ?", tag.ID, tag.SnippetID).
		Update("title", tag.Title)
	if res.Error != nil {
		return db.Classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *SnippetTagGormRepository) Delete(ctx context.Context, snippetID, tagID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND snippet_id = ?", tagID, snippetID).
		Delete(&model.SnippetTag{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
