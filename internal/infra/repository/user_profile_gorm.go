package repository

import (
	"context"
	"errors"

	"snippetapi/internal/domain/model"
	"snippetapi/internal/infra/db"
	repo "snippetapi/internal/repository"

	"gorm.io/gorm"
)

type UserProfileGormRepository struct {
	db *gorm.DB
}

func NewUserProfileGormRepository(db *gorm.DB) *UserProfileGormRepository {
	return &UserProfileGormRepository{db: db}
}

// user_idが既に使われていれば ErrConflict
func (r *UserProfileGormRepository) Create(ctx context.Context, p *model.UserProfile) error {
	if p.Membership == "" {
		p.Membership = model.MembershipBronze
	}
	return db.Classify(r.db.WithContext(ctx).Create(p).Error)
}

func (r *UserProfileGormRepository) FindByID(ctx context.Context, id int64) (model.UserProfile, error) {
	var p model.UserProfile
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return model.UserProfile{}, db.Classify(err)
	}
	return p, nil
}

func (r *UserProfileGormRepository) FindByUserID(ctx context.Context, userID int64) (model.UserProfile, error) {
	var p model.UserProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return model.UserProfile{}, db.Classify(err)
	}
	return p, nil
}

func (r *UserProfileGormRepository) GetOrCreateByUserID(ctx context.Context, userID int64) (model.UserProfile, error) {
	p, err := r.FindByUserID(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return model.UserProfile{}, err
	}

	created := model.UserProfile{UserID: userID, Membership: model.MembershipBronze}
	createErr := r.db.WithContext(ctx).Transaction(func(sp *gorm.DB) error {
		return sp.Create(&created).Error
	})
	if createErr == nil {
		return created, nil
	}
	// 同時作成に負けた
	if errors.Is(db.Classify(createErr), repo.ErrConflict) {
		return r.FindByUserID(ctx, userID)
	}
	return model.UserProfile{}, db.Classify(createErr)
}

func (r *UserProfileGormRepository) Update(ctx context.Context, p *model.UserProfile) error {
	res := r.db.WithContext(ctx).
		Model(&model.UserProfile{ID: p.ID}).
		Select("phone", "birth_date", "membership").
		Updates(p)
	if res.Error != nil {
		return db.Classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
