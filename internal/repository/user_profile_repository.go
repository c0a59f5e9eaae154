package repository

import (
	"context"

	"snippetapi/internal/domain/model"
)

type UserProfileRepository interface {
	Create(ctx context.Context, p *model.UserProfile) error
	FindByID(ctx context.Context, id int64) (model.UserProfile, error)
	FindByUserID(ctx context.Context, userID int64) (model.UserProfile, error)
	// 無ければ既定値で作成する
	GetOrCreateByUserID(ctx context.Context, userID int64) (model.UserProfile, error)
	Update(ctx context.Context, p *model.UserProfile) error
}
