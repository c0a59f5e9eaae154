package handler

import (
	"net/http"

	"snippetapi/internal/middleware"
	"snippetapi/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /snippets/:snippet_id/snippet_tags
type SnippetTagHandler struct {
	uc *usecase.SnippetTagUsecase
}

func NewSnippetTagHandler(uc *usecase.SnippetTagUsecase) *SnippetTagHandler {
	return &SnippetTagHandler{uc: uc}
}

func (h *SnippetTagHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/snippets/:snippet_id/snippet_tags", middleware.AuthenticatedOrReadOnly())

	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.detail)
	g.PUT("/:id", h.update)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *SnippetTagHandler) list(c echo.Context) error {
	snippetID, err := pathID(c, "snippet_id")
	if err != nil {
		return writeError(c, err)
	}
	page, err := pageParam(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.Request().Context(), snippetID, page)
	if err != nil {
		return writeError(c, err)
	}
	return writePage(c, out)
}

func (h *SnippetTagHandler) detail(c echo.Context) error {
	snippetID, tagID, err := tagPath(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Get(c.Request().Context(), snippetID, tagID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// snippet_idはbodyではなくpathから取る
func (h *SnippetTagHandler) create(c echo.Context) error {
	snippetID, err := pathID(c, "snippet_id")
	if err != nil {
		return writeError(c, err)
	}
	var req usecase.TagInput
	if err := bindJSON(c, &req); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.Request().Context(), middleware.ActorFrom(c), snippetID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *SnippetTagHandler) update(c echo.Context) error {
	snippetID, tagID, err := tagPath(c)
	if err != nil {
		return writeError(c, err)
	}
	var req usecase.TagInput
	if err := bindJSON(c, &req); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.Request().Context(), middleware.ActorFrom(c), snippetID, tagID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SnippetTagHandler) delete(c echo.Context) error {
	snippetID, tagID, err := tagPath(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.Request().Context(), middleware.ActorFrom(c), snippetID, tagID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func tagPath(c echo.Context) (int64, int64, error) {
	snippetID, err := pathID(c, "snippet_id")
	if err != nil {
		return 0, 0, err
	}
	tagID, err := pathID(c, "id")
	if err != nil {
		return 0, 0, err
	}
	return snippetID, tagID, nil
}
