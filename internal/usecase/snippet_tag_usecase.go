package usecase

import (
	"context"

	"snippetapi/internal/domain/model"
	repo "snippetapi/internal/repository"
)

type TagDTO struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	SnippetID int64  `json:"snippet_id"`
}

// snippet_idはURLから取る
type TagInput struct {
	Title string `json:"title" validate:"required,max=255"`
}

type SnippetTagUsecase struct {
	snippets repo.SnippetRepository
	tags     repo.SnippetTagRepository
	pager    Paginator
}

func NewSnippetTagUsecase(snippets repo.SnippetRepository, tags repo.SnippetTagRepository, pager Paginator) *SnippetTagUsecase {
	return &SnippetTagUsecase{snippets: snippets, tags: tags, pager: pager}
}

func (u *SnippetTagUsecase) List(ctx context.Context, snippetID int64, page int) (Page[TagDTO], error) {
	if _, err := u.snippets.FindByID(ctx, snippetID); err != nil {
		return Page[TagDTO]{}, fromRepo(err)
	}
	window, err := u.pager.Window(page)
	if err != nil {
		return Page[TagDTO]{}, err
	}

	items, total, err := u.tags.ListBySnippetID(ctx, snippetID, window)
	if err != nil {
		return Page[TagDTO]{}, fromRepo(err)
	}
	out := make([]TagDTO, 0, len(items))
	for _, t := range items {
		out = append(out, toTagDTO(t))
	}
	return newPage(u.pager, page, total, out)
}

func (u *SnippetTagUsecase) Get(ctx context.Context, snippetID, tagID int64) (TagDTO, error) {
	t, err := u.tags.FindByID(ctx, snippetID, tagID)
	if err != nil {
		return TagDTO{}, fromRepo(err)
	}
	return toTagDTO(t), nil
}

func (u *SnippetTagUsecase) Create(ctx context.Context, actor *Actor, snippetID int64, in TagInput) (TagDTO, error) {
	if err := u.checkOwner(ctx, actor, snippetID); err != nil {
		return TagDTO{}, err
	}
	t := model.SnippetTag{Title: in.Title, SnippetID: snippetID}
	if err := u.tags.Create(ctx, &t); err != nil {
		return TagDTO{}, fromRepo(err)
	}
	return toTagDTO(t), nil
}

func (u *SnippetTagUsecase) Update(ctx context.Context, actor *Actor, snippetID, tagID int64, in TagInput) (TagDTO, error) {
	if err := u.checkOwner(ctx, actor, snippetID); err != nil {
		return TagDTO{}, err
	}
	t := model.SnippetTag{ID: tagID, SnippetID: snippetID, Title: in.Title}
	if err := u.tags.Update(ctx, &t); err != nil {
		return TagDTO{}, fromRepo(err)
	}
	return toTagDTO(t), nil
}

func (u *SnippetTagUsecase) Delete(ctx context.Context, actor *Actor, snippetID, tagID int64) error {
	if err := u.checkOwner(ctx, actor, snippetID); err != nil {
		return err
	}
	return fromRepo(u.tags.Delete(ctx, snippetID, tagID))
}

// 親snippetの所有者だけがタグを書き換えられる
func (u *SnippetTagUsecase) checkOwner(ctx context.Context, actor *Actor, snippetID int64) error {
	s, err := u.snippets.FindByID(ctx, snippetID)
	if err != nil {
		return fromRepo(err)
	}
	if !actor.IsAuthenticated() {
		return errUnauthenticated()
	}
	if !s.IsOwnedBy(actor.UserID) {
		return errForbidden()
	}
	return nil
}

func toTagDTO(t model.SnippetTag) TagDTO {
	return TagDTO{ID: t.ID, Title: t.Title, SnippetID: t.SnippetID}
}
