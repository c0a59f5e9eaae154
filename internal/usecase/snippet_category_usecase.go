package usecase

import (
	"context"

	"snippetapi/internal/domain/model"
	repo "snippetapi/internal/repository"
)

type CategoryInput struct {
	Title string `json:"title" validate:"required,max=255"`
}

// 書き込みの権限はルーティング側(AdminOrReadOnly)で判定済み。
type SnippetCategoryUsecase struct {
	categories repo.SnippetCategoryRepository
	pager      Paginator
}

func NewSnippetCategoryUsecase(categories repo.SnippetCategoryRepository, pager Paginator) *SnippetCategoryUsecase {
	return &SnippetCategoryUsecase{categories: categories, pager: pager}
}

func (u *SnippetCategoryUsecase) List(ctx context.Context, page int) (Page[CategoryDTO], error) {
	window, err := u.pager.Window(page)
	if err != nil {
		return Page[CategoryDTO]{}, err
	}
	items, total, err := u.categories.List(ctx, window)
	if err != nil {
		return Page[CategoryDTO]{}, fromRepo(err)
	}

	out := make([]CategoryDTO, 0, len(items))
	for _, c := range items {
		out = append(out, CategoryDTO{ID: c.ID, Title: c.Title})
	}
	return newPage(u.pager, page, total, out)
}

func (u *SnippetCategoryUsecase) Get(ctx context.Context, id int64) (CategoryDTO, error) {
	c, err := u.categories.FindByID(ctx, id)
	if err != nil {
		return CategoryDTO{}, fromRepo(err)
	}
	return CategoryDTO{ID: c.ID, Title: c.Title}, nil
}

func (u *SnippetCategoryUsecase) Create(ctx context.Context, in CategoryInput) (CategoryDTO, error) {
	c := model.SnippetCategory{Title: in.Title}
	if err := u.categories.Create(ctx, &c); err != nil {
		return CategoryDTO{}, fromRepo(err)
	}
	return CategoryDTO{ID: c.ID, Title: c.Title}, nil
}

func (u *SnippetCategoryUsecase) Update(ctx context.Context, id int64, in CategoryInput) (CategoryDTO, error) {
	c := model.SnippetCategory{ID: id, Title: in.Title}
	if err := u.categories.Update(ctx, &c); err != nil {
		return CategoryDTO{}, fromRepo(err)
	}
	return CategoryDTO{ID: c.ID, Title: c.Title}, nil
}

// 属するsnippetも消える
func (u *SnippetCategoryUsecase) Delete(ctx context.Context, id int64) error {
	return fromRepo(u.categories.Delete(ctx, id))
}
