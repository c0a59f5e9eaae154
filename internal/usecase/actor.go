package usecase

import "snippetapi/internal/domain/model"

// Actor is the authenticated caller. A nil *Actor is an anonymous request.
type Actor struct {
	UserID int64
	Role   model.Role
}

func (a *Actor) IsAuthenticated() bool {
	return a != nil && a.UserID > 0
}

func (a *Actor) IsAdmin() bool {
	return a.IsAuthenticated() && a.Role == model.RoleAdmin
}

// 未ログインは401、一般ユーザーは403
func requireAdmin(a *Actor) error {
	if !a.IsAuthenticated() {
		return errUnauthenticated()
	}
	if !a.IsAdmin() {
		return errForbidden()
	}
	return nil
}
