package usecase

import (
	"context"
	"net/http"
	"testing"

	"snippetapi/internal/domain/model"
	repo "snippetapi/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSnippetTag_ListNeedsSnippet(t *testing.T) {
	ctx := context.Background()
	snippets, tags := &snippetRepoMock{}, &tagRepoMock{}
	uc := NewSnippetTagUsecase(snippets, tags, NewPaginator(10))

	snippets.On("FindByID", ctx, int64(404)).Return(model.Snippet{}, repo.ErrNotFound)
	_, err := uc.List(ctx, 404, 1)
	assert.Equal(t, http.StatusNotFound, statusOf(err))

	snippets.On("FindByID", ctx, int64(1)).Return(model.Snippet{ID: 1}, nil)
	tags.On("ListBySnippetID", ctx, int64(1), repo.Page{Limit: 10}).Return([]model.SnippetTag{{ID: 2, Title: "go", SnippetID: 1}}, int64(1), nil)
	out, err := uc.List(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []TagDTO{{ID: 2, Title: "go", SnippetID: 1}}, out.Results)
}

func TestSnippetTag_WritesNeedParentOwner(t *testing.T) {
	ctx := context.Background()
	snippets, tags := &snippetRepoMock{}, &tagRepoMock{}
	uc := NewSnippetTagUsecase(snippets, tags, NewPaginator(10))
	owner := int64(5)
	snippets.On("FindByID", ctx, int64(1)).Return(model.Snippet{ID: 1, OwnerID: &owner}, nil)

	_, err := uc.Create(ctx, nil, 1, TagInput{Title: "go"})
	assert.Equal(t, http.StatusUnauthorized, statusOf(err))

	_, err = uc.Create(ctx, member(6), 1, TagInput{Title: "go"})
	assert.Equal(t, http.StatusForbidden, statusOf(err))

	tags.On("Create", ctx, mock.MatchedBy(func(tg *model.SnippetTag) bool {
		return tg.SnippetID == 1 && tg.Title == "go"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.SnippetTag).ID = 3
	}).Return(nil)
	out, err := uc.Create(ctx, member(5), 1, TagInput{Title: "go"})
	require.NoError(t, err)
	assert.Equal(t, TagDTO{ID: 3, Title: "go", SnippetID: 1}, out)
}
