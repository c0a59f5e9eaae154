package repository

import (
	"context"
	"errors"
	"time"

	"snippetapi/internal/domain/model"
	"snippetapi/internal/infra/db"
	repo "snippetapi/internal/repository"

	"gorm.io/gorm"
)

type refreshTokenGormRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewRefreshTokenRepository(gdb *gorm.DB) repo.RefreshTokenRepository {
	return &refreshTokenGormRepository{db: gdb, now: time.Now}
}

func (r *refreshTokenGormRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	return db.Classify(r.db.WithContext(ctx).Create(token).Error)
}

// 平文は保存しないのでhashで引く
func (r *refreshTokenGormRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	var token model.RefreshToken
	err := r.db.WithContext(ctx).Where("token_hash = ?", tokenHash).Take(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrRefreshTokenNotFound
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// MarkUsed succeeds once per token; a used or revoked token reports not found.
func (r *refreshTokenGormRepository) MarkUsed(ctx context.Context, tokenID string) error {
	return r.stamp(ctx, tokenID, "used_at", "used_at IS NULL AND revoked_at IS NULL")
}

func (r *refreshTokenGormRepository) Revoke(ctx context.Context, tokenID string) error {
	return r.stamp(ctx, tokenID, "revoked_at", "revoked_at IS NULL")
}

// column に現在時刻を入れる。条件に合う行がなければ ErrRefreshTokenNotFound。
func (r *refreshTokenGormRepository) stamp(ctx context.Context, tokenID, column, cond string) error {
	res := r.db.WithContext(ctx).
		Model(&model.RefreshToken{}).
		Where("id = ?", tokenID).
		Where(cond).
		Update(column, r.now())
	return affectedOne(res)
}

func (r *refreshTokenGormRepository) DeleteAllByUserID(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.RefreshToken{}).Error
}

func (r *refreshTokenGormRepository) DeleteByID(ctx context.Context, tokenID string) error {
	return affectedOne(r.db.WithContext(ctx).Where("id = ?", tokenID).Delete(&model.RefreshToken{}))
}

func affectedOne(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrRefreshTokenNotFound
	}
	return nil
}
