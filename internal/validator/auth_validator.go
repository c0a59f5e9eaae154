package validator

import (
	"context"
	"errors"
	"strings"

	"snippetapi/internal/repository"
	"snippetapi/internal/usecase"
)

type authValidator struct {
	users repository.UserRepository
}

// Usecaseは interface を依存注入
func NewAuthValidator(users repository.UserRepository) usecase.AuthValidator {
	return &authValidator{users: users}
}

// サインアップの入力を検証。形式はタグで見ているので、ここではDBが要る重複チェックと
// パスワードの簡単な強度チェックだけ行う。
func (v *authValidator) ValidateRegister(ctx context.Context, in usecase.RegisterInput) error {
	fields := map[string]string{}

	// username重複チェック
	u, err := v.users.FindByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return err
	}
	if u != nil {
		fields["username"] = "A user with that username already exists."
	}

	// email重複チェック
	u, err = v.users.FindByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return err
	}
	if u != nil {
		fields["email"] = "user with this email already exists."
	}

	switch {
	case isNumeric(in.Password):
		fields["password"] = "This password is entirely numeric."
	case strings.EqualFold(in.Password, in.Username):
		fields["password"] = "The password is too similar to the username."
	}

	if len(fields) > 0 {
		return usecase.NewValidationError(fields)
	}
	return nil
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
