package repository

import (
	"context"
	"errors"

	"snippetapi/internal/domain/model"
	"snippetapi/internal/infra/db"
	repo "snippetapi/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartItemGormRepository struct {
	db *gorm.DB
}

func NewCartItemGormRepository(db *gorm.DB) *CartItemGormRepository {
	return &CartItemGormRepository{db: db}
}

// カート明細を一覧取得
func (r *CartItemGormRepository) ListByCartID(ctx context.Context, cartID string) ([]model.CartItem, error) {
	var items []model.CartItem
	if err := r.db.WithContext(ctx).
		Preload("Snippet").
		Where("cart_id = ?", cartID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return []model.CartItem{}, err
	}
	return items, nil
}

// 明細を取得。別カートの明細は見つからない扱い。
func (r *CartItemGormRepository) FindByID(ctx context.Context, cartID string, itemID int64) (model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).
		Preload("Snippet").
		Where("id = ? AND cart_id = ?", itemID, cartID).
		First(&item).Error
	if err != nil {
		return model.CartItem{}, db.Classify(err)
	}
	return item, nil
}

// 同一snippetは数量加算
func (r *CartItemGormRepository) UpsertByCartAndSnippet(ctx context.Context, cartID string, snippetID int64, addQty int64) (model.CartItem, error) {
	if addQty <= 0 {
		return model.CartItem{}, errors.New("invalid quantity")
	}

	var itemID int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := incrementCartItem(tx, cartID, snippetID, addQty)
		if err == nil {
			itemID = id
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// 無い場合は新規作成
		newItem := model.CartItem{
			CartID:    cartID,
			SnippetID: snippetID,
			Quantity:  addQty,
		}
		// postgresでtx全体がabortしないようsavepointで囲む
		createErr := tx.Transaction(func(sp *gorm.DB) error {
			return sp.Omit(clause.Associations).Create(&newItem).Error
		})
		if createErr == nil {
			itemID = newItem.ID
			return nil
		}
		if !errors.Is(createErr, gorm.ErrDuplicatedKey) {
			return db.Classify(createErr)
		}

		// 同時に作成された場合は加算に切り替える
		id, err = incrementCartItem(tx, cartID, snippetID, addQty)
		if err != nil {
			return db.Classify(err)
		}
		itemID = id
		return nil
	})
	if err != nil {
		return model.CartItem{}, err
	}

	return r.FindByID(ctx, cartID, itemID)
}

func incrementCartItem(tx *gorm.DB, cartID string, snippetID int64, addQty int64) (int64, error) {
	var item model.CartItem
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("cart_id = ? AND snippet_id = ?", cartID, snippetID).
		First(&item).Error
	if err != nil {
		return 0, err
	}

	res := tx.Model(&model.CartItem{}).
		Where("id = ?", item.ID).
		Update("quantity", item.Quantity+addQty)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return item.ID, nil
}

// 明細の数量を更新
func (r *CartItemGormRepository) UpdateQuantity(ctx context.Context, cartID string, itemID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Update("quantity", qty)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 明細を削除
func (r *CartItemGormRepository) Delete(ctx context.Context, cartID string, itemID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Delete(&model.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
