package usecase

import (
	"context"
	"errors"

	"snippetapi/internal/domain/model"
	repo "snippetapi/internal/repository"
)

type ProfileDTO struct {
	ID         int64            `json:"id"`
	UserID     int64            `json:"user_id"`
	Phone      *int32           `json:"phone"`
	BirthDate  *Date            `json:"birth_date"`
	Membership model.Membership `json:"membership"`
}

// キーが無いフィールドは既存値を維持する
type ProfileInput struct {
	Phone      Nullable[int32]   `json:"phone"`
	BirthDate  Nullable[Date]    `json:"birth_date"`
	Membership *model.Membership `json:"membership" validate:"omitempty,membership"`
}

type AdminProfileInput struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
	ProfileInput
}

type ProfileUsecase struct {
	profiles repo.UserProfileRepository
	users    repo.UserRepository
	tx       repo.TransactionManager
}

func NewProfileUsecase(profiles repo.UserProfileRepository, users repo.UserRepository, tx repo.TransactionManager) *ProfileUsecase {
	return &ProfileUsecase{profiles: profiles, users: users, tx: tx}
}

// Me は呼び出し元のプロフィールを返す。無ければ作る。
func (u *ProfileUsecase) Me(ctx context.Context, actor *Actor) (ProfileDTO, error) {
	if !actor.IsAuthenticated() {
		return ProfileDTO{}, errUnauthenticated()
	}
	p, err := u.profiles.GetOrCreateByUserID(ctx, actor.UserID)
	if err != nil {
		return ProfileDTO{}, fromRepo(err)
	}
	return toProfileDTO(&p), nil
}

func (u *ProfileUsecase) UpdateMe(ctx context.Context, actor *Actor, in ProfileInput) (ProfileDTO, error) {
	if !actor.IsAuthenticated() {
		return ProfileDTO{}, errUnauthenticated()
	}
	p, err := u.profiles.GetOrCreateByUserID(ctx, actor.UserID)
	if err != nil {
		return ProfileDTO{}, fromRepo(err)
	}
	applyProfile(&p, in)
	if err := u.profiles.Update(ctx, &p); err != nil {
		return ProfileDTO{}, fromRepo(err)
	}
	return toProfileDTO(&p), nil
}

func (u *ProfileUsecase) Get(ctx context.Context, actor *Actor, id int64) (ProfileDTO, error) {
	if err := requireAdmin(actor); err != nil {
		return ProfileDTO{}, err
	}
	p, err := u.profiles.FindByID(ctx, id)
	if err != nil {
		return ProfileDTO{}, fromRepo(err)
	}
	return toProfileDTO(&p), nil
}

func (u *ProfileUsecase) Create(ctx context.Context, actor *Actor, in AdminProfileInput) (ProfileDTO, error) {
	if err := requireAdmin(actor); err != nil {
		return ProfileDTO{}, err
	}
	if _, err := u.users.FindByID(ctx, in.UserID); err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return ProfileDTO{}, fieldError("user_id", "Invalid pk - object does not exist.")
		}
		return ProfileDTO{}, fromRepo(err)
	}

	p := model.UserProfile{UserID: in.UserID, Membership: model.MembershipBronze}
	applyProfile(&p, in.ProfileInput)
	if err := u.profiles.Create(ctx, &p); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return ProfileDTO{}, fieldError("user_id", "This user already has a profile.")
		}
		return ProfileDTO{}, fromRepo(err)
	}
	return toProfileDTO(&p), nil
}

// 管理者による更新は監査ログに残す
func (u *ProfileUsecase) Update(ctx context.Context, actor *Actor, id int64, in ProfileInput) (ProfileDTO, error) {
	if err := requireAdmin(actor); err != nil {
		return ProfileDTO{}, err
	}

	var out model.UserProfile
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Profiles().FindByID(ctx, id)
		if err != nil {
			return err
		}
		before := toProfileDTO(&p)

		applyProfile(&p, in)
		if err := r.Profiles().Update(ctx, &p); err != nil {
			return err
		}
		out = p
		return r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actor.UserID,
			Action:       model.AuditActionUpdateProfile,
			ResourceType: model.AuditResourceProfile,
			ResourceID:   p.ID,
			BeforeJSON:   mustJSON(before),
			AfterJSON:    mustJSON(toProfileDTO(&p)),
		})
	})
	if err != nil {
		return ProfileDTO{}, fromRepo(err)
	}
	return toProfileDTO(&out), nil
}

func applyProfile(p *model.UserProfile, in ProfileInput) {
	if in.Phone.Set {
		p.Phone = in.Phone.Value
	}
	if in.BirthDate.Set {
		if in.BirthDate.Value == nil {
			p.BirthDate = nil
		} else {
			t := in.BirthDate.Value.Time
			p.BirthDate = &t
		}
	}
	if in.Membership != nil {
		p.Membership = *in.Membership
	}
}

func toProfileDTO(p *model.UserProfile) ProfileDTO {
	dto := ProfileDTO{
		ID:         p.ID,
		UserID:     p.UserID,
		Phone:      p.Phone,
		Membership: p.Membership,
	}
	if p.BirthDate != nil {
		dto.BirthDate = &Date{Time: *p.BirthDate}
	}
	return dto
}
