package usecase

import (
	"context"

	repo "snippetapi/internal/repository"
)

type PublicUserDTO struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Snippets []int64 `json:"snippets"`
}

// 読み取り専用
type UserUsecase struct {
	users    repo.UserRepository
	snippets repo.SnippetRepository
	pager    Paginator
}

func NewUserUsecase(users repo.UserRepository, snippets repo.SnippetRepository, pager Paginator) *UserUsecase {
	return &UserUsecase{users: users, snippets: snippets, pager: pager}
}

func (u *UserUsecase) List(ctx context.Context, page int) (Page[PublicUserDTO], error) {
	window, err := u.pager.Window(page)
	if err != nil {
		return Page[PublicUserDTO]{}, err
	}
	users, total, err := u.users.List(ctx, window)
	if err != nil {
		return Page[PublicUserDTO]{}, fromRepo(err)
	}

	ids := make([]int64, 0, len(users))
	for _, usr := range users {
		ids = append(ids, usr.ID)
	}
	owned, err := u.snippets.IDsByOwners(ctx, ids)
	if err != nil {
		return Page[PublicUserDTO]{}, fromRepo(err)
	}

	out := make([]PublicUserDTO, 0, len(users))
	for _, usr := range users {
		out = append(out, PublicUserDTO{ID: usr.ID, Username: usr.Username, Snippets: nonNil(owned[usr.ID])})
	}
	return newPage(u.pager, page, total, out)
}

func (u *UserUsecase) Get(ctx context.Context, id int64) (PublicUserDTO, error) {
	usr, err := u.users.FindByID(ctx, id)
	if err != nil {
		return PublicUserDTO{}, fromRepo(err)
	}
	owned, err := u.snippets.IDsByOwners(ctx, []int64{id})
	if err != nil {
		return PublicUserDTO{}, fromRepo(err)
	}
	return PublicUserDTO{ID: usr.ID, Username: usr.Username, Snippets: nonNil(owned[id])}, nil
}

func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
