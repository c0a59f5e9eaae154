package handler

import (
	"net/http"

	"snippetapi/internal/middleware"
	"snippetapi/internal/usecase"

	"github.com/labstack/echo/v4"
)

type SnippetCategoryHandler struct {
	uc *usecase.SnippetCategoryUsecase
}

func NewSnippetCategoryHandler(uc *usecase.SnippetCategoryUsecase) *SnippetCategoryHandler {
	return &SnippetCategoryHandler{uc: uc}
}

// 書き込みはADMINだけ
func (h *SnippetCategoryHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/snippet_categories", middleware.AdminOrReadOnly())

	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.detail)
	g.PUT("/:id", h.update)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *SnippetCategoryHandler) list(c echo.Context) error {
	page, err := pageParam(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.Request().Context(), page)
	if err != nil {
		return writeError(c, err)
	}
	return writePage(c, out)
}

func (h *SnippetCategoryHandler) detail(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SnippetCategoryHandler) create(c echo.Context) error {
	var req usecase.CategoryInput
	if err := bindJSON(c, &req); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// titleしか無いのでPUTとPATCHは同じ
func (h *SnippetCategoryHandler) update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req usecase.CategoryInput
	if err := bindJSON(c, &req); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.Request().Context(), id, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SnippetCategoryHandler) delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
