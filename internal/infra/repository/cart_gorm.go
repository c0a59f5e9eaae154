package repository

import (
	"context"

	"snippetapi/internal/domain/model"
	"snippetapi/internal/infra/db"
	repo "snippetapi/internal/repository"

	"gorm.io/gorm"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// 空のカートを作る。IDはBeforeCreateでUUIDが入る。
func (r *CartGormRepository) Create(ctx context.Context) (model.Cart, error) {
	cart := model.Cart{}
	if err := r.db.WithContext(ctx).Create(&cart).Error; err != nil {
		return model.Cart{}, db.Classify(err)
	}
	cart.Items = []model.CartItem{}
	return cart, nil
}

func (r *CartGormRepository) FindByID(ctx context.Context, cartID string) (model.Cart, error) {
	var cart model.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("cart_items.id asc") }).
		Preload("Items.Snippet").
		Where("id = ?", cartID).
		First(&cart).Error
	if err != nil {
		return model.Cart{}, db.Classify(err)
	}
	return cart, nil
}

func (r *CartGormRepository) Exists(ctx context.Context, cartID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Cart{}).Where("id = ?", cartID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// 明細を全削除してからカートを消す
func (r *CartGormRepository) Delete(ctx context.Context, cartID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", cartID).Delete(&model.Cart{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}
		return nil
	})
}
