package usecase

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"snippetapi/internal/domain/model"
	repo "snippetapi/internal/repository"
)

type CategoryDTO struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type SnippetDTO struct {
	ID        int64        `json:"id"`
	Title     string       `json:"title"`
	Code      string       `json:"code"`
	UnitPrice model.Money  `json:"unit_price"`
	Linenos   bool         `json:"linenos"`
	Language  string       `json:"language"`
	Style     string       `json:"style"`
	Owner     string       `json:"owner"`
	Category  *CategoryDTO `json:"category"`
	TagCount  int64        `json:"tag_count"`
	Created   time.Time    `json:"created"`
}

// 書き込み入力。キーが無いフィールドはnil（既存値を維持）。
type SnippetInput struct {
	Title      *string         `json:"title" validate:"omitempty,max=100"`
	Code       *string         `json:"code" validate:"omitempty,min=1"`
	UnitPrice  *model.Money    `json:"unit_price" validate:"omitempty,unit_price"`
	Linenos    *bool           `json:"linenos"`
	Language   *string         `json:"language" validate:"omitempty,snippet_language"`
	Style      *string         `json:"style" validate:"omitempty,snippet_style"`
	CategoryID Nullable[int64] `json:"category_id"`
}

// クエリ文字列そのまま。パースはusecaseで行う。
type SnippetListInput struct {
	Page        int
	CategoryID  string
	UnitPriceLT string
	UnitPriceGT string
	Search      string
	Ordering    string
}

type SnippetUsecase struct {
	snippets   repo.SnippetRepository
	categories repo.SnippetCategoryRepository
	pager      Paginator
}

func NewSnippetUsecase(snippets repo.SnippetRepository, categories repo.SnippetCategoryRepository, pager Paginator) *SnippetUsecase {
	return &SnippetUsecase{snippets: snippets, categories: categories, pager: pager}
}

func (u *SnippetUsecase) List(ctx context.Context, in SnippetListInput) (Page[SnippetDTO], error) {
	q, err := parseSnippetQuery(in)
	if err != nil {
		return Page[SnippetDTO]{}, err
	}
	q.Page, err = u.pager.Window(in.Page)
	if err != nil {
		return Page[SnippetDTO]{}, err
	}

	items, total, err := u.snippets.List(ctx, q)
	if err != nil {
		return Page[SnippetDTO]{}, fromRepo(err)
	}

	out := make([]SnippetDTO, 0, len(items))
	for i := range items {
		out = append(out, toSnippetDTO(&items[i]))
	}
	return newPage(u.pager, in.Page, total, out)
}

func (u *SnippetUsecase) Get(ctx context.Context, id int64) (SnippetDTO, error) {
	s, err := u.snippets.FindByID(ctx, id)
	if err != nil {
		return SnippetDTO{}, fromRepo(err)
	}
	return toSnippetDTO(&s), nil
}

func (u *SnippetUsecase) Create(ctx context.Context, actor *Actor, in SnippetInput) (SnippetDTO, error) {
	if !actor.IsAuthenticated() {
		return SnippetDTO{}, errUnauthenticated()
	}
	if in.Code == nil {
		return SnippetDTO{}, fieldError("code", "This field is required.")
	}

	s := model.Snippet{
		UnitPrice: model.DefaultSnippetUnitPrice,
		Language:  model.DefaultSnippetLanguage,
		Style:     model.DefaultSnippetStyle,
		OwnerID:   &actor.UserID,
	}
	if err := u.apply(ctx, &s, in); err != nil {
		return SnippetDTO{}, err
	}

	if err := u.snippets.Create(ctx, &s); err != nil {
		return SnippetDTO{}, fromRepo(err)
	}
	return u.Get(ctx, s.ID)
}

// partial=falseはPUT。codeが必須になる以外はPATCHと同じ。
func (u *SnippetUsecase) Update(ctx context.Context, actor *Actor, id int64, in SnippetInput, partial bool) (SnippetDTO, error) {
	s, err := u.ownedSnippet(ctx, actor, id)
	if err != nil {
		return SnippetDTO{}, err
	}
	if !partial && in.Code == nil {
		return SnippetDTO{}, fieldError("code", "This field is required.")
	}

	if err := u.apply(ctx, &s, in); err != nil {
		return SnippetDTO{}, err
	}
	// ownerは常に呼び出し元
	s.OwnerID = &actor.UserID

	if err := u.snippets.Update(ctx, &s); err != nil {
		return SnippetDTO{}, fromRepo(err)
	}
	return u.Get(ctx, s.ID)
}

func (u *SnippetUsecase) Delete(ctx context.Context, actor *Actor, id int64) error {
	if _, err := u.ownedSnippet(ctx, actor, id); err != nil {
		return err
	}
	if err := u.snippets.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrProtected) {
			return NewHTTPError(http.StatusConflict, "snippet is referenced by order items")
		}
		return fromRepo(err)
	}
	return nil
}

// 存在確認(404)→認証(401)→所有者(403)の順に判定
func (u *SnippetUsecase) ownedSnippet(ctx context.Context, actor *Actor, id int64) (model.Snippet, error) {
	s, err := u.snippets.FindByID(ctx, id)
	if err != nil {
		return model.Snippet{}, fromRepo(err)
	}
	if !actor.IsAuthenticated() {
		return model.Snippet{}, errUnauthenticated()
	}
	if !s.IsOwnedBy(actor.UserID) {
		return model.Snippet{}, errForbidden()
	}
	return s, nil
}

func (u *SnippetUsecase) apply(ctx context.Context, s *model.Snippet, in SnippetInput) error {
	if in.Title != nil {
		s.Title = *in.Title
	}
	if in.Code != nil {
		s.Code = *in.Code
	}
	if in.UnitPrice != nil {
		s.UnitPrice = int64(*in.UnitPrice)
	}
	if in.Linenos != nil {
		s.Linenos = *in.Linenos
	}
	if in.Language != nil {
		s.Language = *in.Language
	}
	if in.Style != nil {
		s.Style = *in.Style
	}

	if in.CategoryID.Set {
		s.CategoryID = in.CategoryID.Value
		s.Category = nil
		if in.CategoryID.Value != nil {
			if _, err := u.categories.FindByID(ctx, *in.CategoryID.Value); err != nil {
				if errors.Is(err, repo.ErrNotFound) {
					return fieldError("category_id", "Invalid pk - object does not exist.")
				}
				return fromRepo(err)
			}
		}
	}
	return nil
}

var searchSplit = regexp.MustCompile(`[\s,]+`)

var snippetOrderingFields = map[string]bool{"unit_price": true, "created": true}

func parseSnippetQuery(in SnippetListInput) (repo.SnippetListQuery, error) {
	var q repo.SnippetListQuery
	fields := map[string]string{}

	if v := strings.TrimSpace(in.CategoryID); v != "" {
		id, err := parseID(v)
		if err != nil {
			fields["category_id"] = "Enter a number."
		} else {
			q.CategoryID = &id
		}
	}
	if v := strings.TrimSpace(in.UnitPriceLT); v != "" {
		m, err := model.ParseMoney(v)
		if err != nil {
			fields["unit_price__lt"] = "Enter a number."
		} else {
			p := int64(m)
			q.PriceLT = &p
		}
	}
	if v := strings.TrimSpace(in.UnitPriceGT); v != "" {
		m, err := model.ParseMoney(v)
		if err != nil {
			fields["unit_price__gt"] = "Enter a number."
		} else {
			p := int64(m)
			q.PriceGT = &p
		}
	}
	if len(fields) > 0 {
		return repo.SnippetListQuery{}, NewValidationError(fields)
	}

	q.SearchTerms = splitTerms(in.Search)

	for _, o := range strings.Split(in.Ordering, ",") {
		o = strings.TrimSpace(o)
		if snippetOrderingFields[strings.TrimPrefix(o, "-")] {
			q.Ordering = append(q.Ordering, o)
		}
	}
	return q, nil
}

func splitTerms(s string) []string {
	s = strings.ReplaceAll(s, "\x00", "")
	var terms []string
	for _, t := range searchSplit.Split(strings.TrimSpace(s), -1) {
		if t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

func toSnippetDTO(s *model.Snippet) SnippetDTO {
	dto := SnippetDTO{
		ID:        s.ID,
		Title:     s.Title,
		Code:      s.Code,
		UnitPrice: model.Money(s.UnitPrice),
		Linenos:   s.Linenos,
		Language:  s.Language,
		Style:     s.Style,
		TagCount:  s.TagCount,
		Created:   s.CreatedAt,
	}
	if s.Owner != nil {
		dto.Owner = s.Owner.Username
	}
	if s.Category != nil {
		dto.Category = &CategoryDTO{ID: s.Category.ID, Title: s.Category.Title}
	}
	return dto
}
