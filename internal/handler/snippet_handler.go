package handler

import (
	"net/http"

	"snippetapi/internal/middleware"
	"snippetapi/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /snippetsのHTTP
type SnippetHandler struct {
	uc *usecase.SnippetUsecase
}

// DI
func NewSnippetHandler(uc *usecase.SnippetUsecase) *SnippetHandler {
	return &SnippetHandler{uc: uc}
}

// 読み取りは公開、書き込みはログイン必須（所有者チェックはusecase）
func (h *SnippetHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/snippets", middleware.AuthenticatedOrReadOnly())

	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.detail)
	g.PUT("/:id", h.update)
	g.PATCH("/:id", h.partialUpdate)
	g.DELETE("/:id", h.delete)
}

func (h *SnippetHandler) list(c echo.Context) error {
	page, err := pageParam(c)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.List(c.Request().Context(), usecase.SnippetListInput{
		Page:        page,
		CategoryID:  c.QueryParam("category_id"),
		UnitPriceLT: c.QueryParam("unit_price__lt"),
		UnitPriceGT: c.QueryParam("unit_price__gt"),
		Search:      c.QueryParam("search"),
		Ordering:    c.QueryParam("ordering"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return writePage(c, out)
}

func (h *SnippetHandler) detail(c echo.Context) error {
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

func (h *SnippetHandler) create(c echo.Context) error {
	var req usecase.SnippetInput
	if err := bindJSON(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.Create(c.Request().Context(), middleware.ActorFrom(c), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *SnippetHandler) update(c echo.Context) error {
	return h.save(c, false)
}

func (h *SnippetHandler) partialUpdate(c echo.Context) error {
	return h.save(c, true)
}

func (h *SnippetHandler) save(c echo.Context, partial bool) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var req usecase.SnippetInput
	if err := bindJSON(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.Update(c.Request().Context(), middleware.ActorFrom(c), id, req, partial)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SnippetHandler) delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	if err := h.uc.Delete(c.Request().Context(), middleware.ActorFrom(c), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
