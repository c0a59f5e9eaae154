package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"snippetapi/internal/config"
	"snippetapi/internal/domain/model"
	"snippetapi/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	//401 認証失敗
	ErrUnauthorized = errors.New("unauthorized")
	//401 使用済みrefreshの再利用
	ErrSecurityIncident = errors.New("security incident")
)

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateRegister(ctx context.Context, in RegisterInput) error
}

type UserDTO struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type RegisterInput struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Username  string `json:"username" validate:"required,max=150,username"`
	Password  string `json:"password" validate:"required,min=8,max=128"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshInput struct {
	Refresh string `json:"refresh" validate:"required"`
}

type VerifyInput struct {
	Token string `json:"token" validate:"required"`
}

type TokenPairDTO struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type ForceLogoutResponse struct {
	UserID          int64 `json:"user_id"`
	NewTokenVersion int   `json:"new_token_version"`
}

type AuthUsecase struct {
	cfg       config.Config
	users     repository.UserRepository
	rtRepo    repository.RefreshTokenRepository
	tx        repository.TransactionManager
	validator AuthValidator
}

func NewAuthUsecase(
	cfg config.Config,
	users repository.UserRepository,
	rtRepo repository.RefreshTokenRepository,
	tx repository.TransactionManager,
	validator AuthValidator,
) *AuthUsecase {
	return &AuthUsecase{
		cfg:       cfg,
		users:     users,
		rtRepo:    rtRepo,
		tx:        tx,
		validator: validator,
	}
}

// Register はユーザーとプロフィールを同じトランザクションで作る。
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (UserDTO, error) {
	return u.createUser(ctx, in, model.RoleUser)
}

// CreateSuperuser is Register with the ADMIN role.
func (u *AuthUsecase) CreateSuperuser(ctx context.Context, in RegisterInput) (UserDTO, error) {
	return u.createUser(ctx, in, model.RoleAdmin)
}

func (u *AuthUsecase) createUser(ctx context.Context, in RegisterInput, role model.Role) (UserDTO, error) {
	if err := u.validator.ValidateRegister(ctx, in); err != nil {
		return UserDTO{}, err
	}

	//パスワードは必ずハッシュ化して保存
	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserDTO{}, internalError(err)
	}

	user := &model.User{
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: string(pwHash),
		Role:         role,
		IsActive:     true,
	}

	err = u.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		if err := r.Users().Create(ctx, user); err != nil {
			return err
		}
		return r.Profiles().Create(ctx, &model.UserProfile{UserID: user.ID, Membership: model.MembershipBronze})
	})
	if err != nil {
		// validator通過後の同時登録
		if errors.Is(err, repository.ErrConflict) {
			return UserDTO{}, fieldError("username", "A user with that username or email already exists.")
		}
		return UserDTO{}, fromRepo(err)
	}
	return toUserDTO(user), nil
}

func (u *AuthUsecase) Me(ctx context.Context, actor *Actor) (UserDTO, error) {
	if !actor.IsAuthenticated() {
		return UserDTO{}, errUnauthenticated()
	}
	user, err := u.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return UserDTO{}, errUnauthenticated()
	}
	return toUserDTO(user), nil
}

// Login はusername/passwordを照合してaccess/refreshを発行する。
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput, userAgent string) (TokenPairDTO, error) {
	user, err := u.users.FindByUsername(ctx, in.Username)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return TokenPairDTO{}, internalError(err)
	}
	if user == nil || !user.IsActive {
		return TokenPairDTO{}, errNoActiveAccount()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return TokenPairDTO{}, errNoActiveAccount()
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := u.users.Update(ctx, user); err != nil {
		return TokenPairDTO{}, internalError(err)
	}

	return u.issuePair(ctx, user, userAgent, now)
}

// Refresh はrefreshをローテーションする。使用済みが来たら全tokenを消す。
func (u *AuthUsecase) Refresh(ctx context.Context, in RefreshInput, userAgent string) (TokenPairDTO, error) {
	rt, err := u.rtRepo.FindByTokenHash(ctx, hashToken(in.Refresh))
	if err != nil || rt == nil {
		return TokenPairDTO{}, errInvalidToken()
	}

	now := time.Now()
	if rt.ExpiresAt.Before(now) {
		_ = u.rtRepo.DeleteByID(ctx, rt.ID)
		return TokenPairDTO{}, errInvalidToken()
	}
	if rt.RevokedAt != nil {
		return TokenPairDTO{}, errInvalidToken()
	}

	//used済みが来たら replay → 全削除
	if rt.UsedAt != nil {
		_ = u.rtRepo.DeleteAllByUserID(ctx, rt.UserID)
		return TokenPairDTO{}, &HTTPError{Status: http.StatusUnauthorized, Message: "Token is invalid or expired", cause: ErrSecurityIncident}
	}

	user, err := u.users.FindByID(ctx, rt.UserID)
	if err != nil || user == nil || !user.IsActive {
		return TokenPairDTO{}, errInvalidToken()
	}

	//旧tokenをusedにする。同時に使われたら負けた側は再利用扱い
	if err := u.rtRepo.MarkUsed(ctx, rt.ID); err != nil {
		_ = u.rtRepo.DeleteAllByUserID(ctx, rt.UserID)
		return TokenPairDTO{}, &HTTPError{Status: http.StatusUnauthorized, Message: "Token is invalid or expired", cause: ErrSecurityIncident}
	}

	return u.issuePair(ctx, user, userAgent, now)
}

// Verify は署名と有効期限を確認する。
func (u *AuthUsecase) Verify(_ context.Context, in VerifyInput) error {
	if _, err := ParseAccessToken(u.cfg.JWTSecret, in.Token); err != nil {
		return errInvalidToken()
	}
	return nil
}

// Logout はrefreshを失効させる。失効済みは401。
func (u *AuthUsecase) Logout(ctx context.Context, in RefreshInput) error {
	rt, err := u.rtRepo.FindByTokenHash(ctx, hashToken(in.Refresh))
	if err != nil || rt == nil {
		return errInvalidToken()
	}
	if err := u.rtRepo.Revoke(ctx, rt.ID); err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return errInvalidToken()
		}
		return internalError(err)
	}
	return nil
}

// ForceLogout はtoken_versionを上げて発行済みのaccessを無効にし、refreshを全削除する。
func (u *AuthUsecase) ForceLogout(ctx context.Context, actor *Actor, targetUserID int64) (ForceLogoutResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return ForceLogoutResponse{}, err
	}
	if targetUserID <= 0 {
		return ForceLogoutResponse{}, errNotFound()
	}

	var user *model.User
	err := u.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		if err := r.Users().IncrementTokenVersion(ctx, targetUserID); err != nil {
			return err
		}
		var err error
		user, err = r.Users().FindByID(ctx, targetUserID)
		if err != nil {
			return err
		}
		return r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actor.UserID,
			Action:       model.AuditActionForceLogout,
			ResourceType: model.AuditResourceUser,
			ResourceID:   targetUserID,
			AfterJSON:    mustJSON(map[string]int{"token_version": user.TokenVersion}),
		})
	})
	if err != nil {
		return ForceLogoutResponse{}, fromRepo(err)
	}

	if err := u.rtRepo.DeleteAllByUserID(ctx, targetUserID); err != nil {
		return ForceLogoutResponse{}, internalError(err)
	}

	return ForceLogoutResponse{UserID: user.ID, NewTokenVersion: user.TokenVersion}, nil
}

func (u *AuthUsecase) issuePair(ctx context.Context, user *model.User, userAgent string, now time.Time) (TokenPairDTO, error) {
	access, err := IssueAccessToken(u.cfg.JWTSecret, u.cfg.AccessTokenTTL, user, now)
	if err != nil {
		return TokenPairDTO{}, internalError(err)
	}

	refreshPlain, refreshHash, err := newRandomTokenAndHash()
	if err != nil {
		return TokenPairDTO{}, internalError(err)
	}
	rt := &model.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		TokenHash: refreshHash,
		UserAgent: userAgent,
		ExpiresAt: now.Add(u.cfg.RefreshTokenTTL),
	}
	if err := u.rtRepo.Create(ctx, rt); err != nil {
		return TokenPairDTO{}, internalError(err)
	}

	return TokenPairDTO{Access: access, Refresh: refreshPlain}, nil
}

func errNoActiveAccount() error {
	return NewHTTPError(http.StatusUnauthorized, "No active account found with the given credentials")
}

func errInvalidToken() error {
	return NewHTTPError(http.StatusUnauthorized, "Token is invalid or expired")
}

// model.UserをAPI返却用DTOに変換。
func toUserDTO(u *model.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
