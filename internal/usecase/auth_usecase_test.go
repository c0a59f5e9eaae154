package usecase

import (
	"context"
	"net/http"
	"testing"
	"time"

	"snippetapi/internal/config"
	"snippetapi/internal/domain/model"
	repo "snippetapi/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-0123456789"

type authFixture struct {
	uc        *AuthUsecase
	users     *userRepoMock
	rt        *refreshTokenRepoMock
	tx        *txManagerMock
	validator *authValidatorMock
}

func newAuthUC() authFixture {
	tx, _ := newTxMock()
	f := authFixture{
		users:     &userRepoMock{},
		rt:        &refreshTokenRepoMock{},
		tx:        tx,
		validator: &authValidatorMock{},
	}
	cfg := config.Config{JWTSecret: testSecret, AccessTokenTTL: 15 * time.Minute, RefreshTokenTTL: 24 * time.Hour}
	f.uc = NewAuthUsecase(cfg, f.users, f.rt, tx, f.validator)
	return f
}

func hashed(t *testing.T, pw string) string {
	t.Helper()
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(b)
}

func TestRegister_CreatesUserAndProfileInOneTx(t *testing.T) {
	ctx := context.Background()
	f := newAuthUC()
	in := RegisterInput{Email: "a@example.com", Username: "alice", Password: "password123"}

	f.validator.On("ValidateRegister", ctx, in).Return(nil)
	f.tx.repos.users.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
		return u.Username == "alice" && u.Role == model.RoleUser &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")) == nil
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.User).ID = 8
	}).Return(nil)
	f.tx.repos.profiles.On("Create", ctx, mock.MatchedBy(func(p *model.UserProfile) bool {
		return p.UserID == 8 && p.Membership == model.MembershipBronze
	})).Return(nil)

	out, err := f.uc.Register(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, int64(8), out.ID)
	assert.Equal(t, "alice", out.Username)
	assert.Equal(t, 1, f.tx.calls)
	f.tx.repos.profiles.AssertExpectations(t)
}

func TestRegister_ConflictIsFieldError(t *testing.T) {
	ctx := context.Background()
	f := newAuthUC()
	in := RegisterInput{Email: "a@example.com", Username: "alice", Password: "password123"}
	f.validator.On("ValidateRegister", ctx, in).Return(nil)
	f.tx.repos.users.On("Create", ctx, mock.Anything).Return(repo.ErrConflict)

	_, err := f.uc.Register(ctx, in)
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Contains(t, he.Fields, "username")
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("成功するとaccessとrefreshを返す", func(t *testing.T) {
		f := newAuthUC()
		u := &model.User{ID: 3, Username: "bob", PasswordHash: hashed(t, "password123"), Role: model.RoleUser, IsActive: true, TokenVersion: 2}
		f.users.On("FindByUsername", ctx, "bob").Return(u, nil)
		f.users.On("Update", ctx, u).Return(nil)
		f.rt.On("Create", ctx, mock.MatchedBy(func(rt *model.RefreshToken) bool {
			return rt.UserID == 3 && rt.TokenHash != "" && rt.UserAgent == "ua"
		})).Return(nil)

		out, err := f.uc.Login(ctx, LoginInput{Username: "bob", Password: "password123"}, "ua")
		require.NoError(t, err)
		assert.NotEmpty(t, out.Refresh)

		claims, err := ParseAccessToken(testSecret, out.Access)
		require.NoError(t, err)
		assert.Equal(t, int64(3), claims.UserID)
		assert.Equal(t, model.RoleUser, claims.Role)
		assert.Equal(t, 2, claims.TokenVersion)
		assert.NotNil(t, u.LastLoginAt)
	})

	t.Run("パスワード違いは401", func(t *testing.T) {
		f := newAuthUC()
		u := &model.User{ID: 3, Username: "bob", PasswordHash: hashed(t, "password123"), IsActive: true}
		f.users.On("FindByUsername", ctx, "bob").Return(u, nil)

		_, err := f.uc.Login(ctx, LoginInput{Username: "bob", Password: "nope"}, "")
		assert.Equal(t, http.StatusUnauthorized, statusOf(err))
	})

	t.Run("存在しないユーザーも401", func(t *testing.T) {
		f := newAuthUC()
		f.users.On("FindByUsername", ctx, "ghost").Return(nil, repo.ErrUserNotFound)

		_, err := f.uc.Login(ctx, LoginInput{Username: "ghost", Password: "x"}, "")
		assert.Equal(t, http.StatusUnauthorized, statusOf(err))
	})
}

func TestRefresh_RotatesToken(t *testing.T) {
	ctx := context.Background()
	f := newAuthUC()
	old := &model.RefreshToken{ID: "rt-1", UserID: 3, TokenHash: hashToken("plain"), ExpiresAt: time.Now().Add(time.Hour)}
	f.rt.On("FindByTokenHash", ctx, hashToken("plain")).Return(old, nil)
	f.users.On("FindByID", ctx, int64(3)).Return(&model.User{ID: 3, Role: model.RoleUser, IsActive: true}, nil)
	f.rt.On("MarkUsed", ctx, "rt-1").Return(nil)
	f.rt.On("Create", ctx, mock.Anything).Return(nil)

	out, err := f.uc.Refresh(ctx, RefreshInput{Refresh: "plain"}, "ua")
	require.NoError(t, err)
	assert.NotEqual(t, "plain", out.Refresh)
	f.rt.AssertExpectations(t)
}

func TestRefresh_ReplayRevokesEverything(t *testing.T) {
	ctx := context.Background()
	f := newAuthUC()
	used := time.Now().Add(-time.Minute)
	old := &model.RefreshToken{ID: "rt-1", UserID: 3, ExpiresAt: time.Now().Add(time.Hour), UsedAt: &used}
	f.rt.On("FindByTokenHash", ctx, hashToken("plain")).Return(old, nil)
	f.rt.On("DeleteAllByUserID", ctx, int64(3)).Return(nil)

	_, err := f.uc.Refresh(ctx, RefreshInput{Refresh: "plain"}, "ua")
	assert.Equal(t, http.StatusUnauthorized, statusOf(err))
	assert.ErrorIs(t, err, ErrSecurityIncident)
	f.rt.AssertExpectations(t)
}

func TestRefresh_UnknownOrExpired(t *testing.T) {
	ctx := context.Background()
	f := newAuthUC()
	f.rt.On("FindByTokenHash", ctx, hashToken("nope")).Return(nil, repo.ErrRefreshTokenNotFound)
	_, err := f.uc.Refresh(ctx, RefreshInput{Refresh: "nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, statusOf(err))

	expired := &model.RefreshToken{ID: "rt-2", UserID: 3, ExpiresAt: time.Now().Add(-time.Hour)}
	f.rt.On("FindByTokenHash", ctx, hashToken("old")).Return(expired, nil)
	f.rt.On("DeleteByID", ctx, "rt-2").Return(nil)
	_, err = f.uc.Refresh(ctx, RefreshInput{Refresh: "old"}, "")
	assert.Equal(t, http.StatusUnauthorized, statusOf(err))
}

func TestVerify(t *testing.T) {
	f := newAuthUC()
	tok, err := IssueAccessToken(testSecret, time.Minute, &model.User{ID: 1, Role: model.RoleUser}, time.Now())
	require.NoError(t, err)

	assert.NoError(t, f.uc.Verify(context.Background(), VerifyInput{Token: tok}))

	expired, err := IssueAccessToken(testSecret, time.Minute, &model.User{ID: 1, Role: model.RoleUser}, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, statusOf(f.uc.Verify(context.Background(), VerifyInput{Token: expired})))

	other, err := IssueAccessToken("another-secret-xyz", time.Minute, &model.User{ID: 1, Role: model.RoleUser}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, statusOf(f.uc.Verify(context.Background(), VerifyInput{Token: other})))
}

func TestLogout_RevokedTokenIs401(t *testing.T) {
	ctx := context.Background()
	f := newAuthUC()
	f.rt.On("FindByTokenHash", ctx, hashToken("plain")).Return(&model.RefreshToken{ID: "rt-1"}, nil)
	f.rt.On("Revoke", ctx, "rt-1").Return(nil).Once()
	f.rt.On("Revoke", ctx, "rt-1").Return(repo.ErrRefreshTokenNotFound)

	require.NoError(t, f.uc.Logout(ctx, RefreshInput{Refresh: "plain"}))
	assert.Equal(t, http.StatusUnauthorized, statusOf(f.uc.Logout(ctx, RefreshInput{Refresh: "plain"})))
}

func TestForceLogout(t *testing.T) {
	ctx := context.Background()
	f := newAuthUC()

	_, err := f.uc.ForceLogout(ctx, member(2), 3)
	assert.Equal(t, http.StatusForbidden, statusOf(err))

	r := f.tx.repos
	r.users.On("IncrementTokenVersion", ctx, int64(3)).Return(nil)
	r.users.On("FindByID", ctx, int64(3)).Return(&model.User{ID: 3, TokenVersion: 4}, nil)
	r.auditLogs.On("Create", ctx, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionForceLogout && l.ResourceID == 3 && l.ActorUserID == 1
	})).Return(nil)
	f.rt.On("DeleteAllByUserID", ctx, int64(3)).Return(nil)

	out, err := f.uc.ForceLogout(ctx, admin(), 3)
	require.NoError(t, err)
	assert.Equal(t, 4, out.NewTokenVersion)
	f.rt.AssertExpectations(t)
}

func TestParseAccessToken_RejectsGarbage(t *testing.T) {
	_, err := ParseAccessToken(testSecret, "not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
