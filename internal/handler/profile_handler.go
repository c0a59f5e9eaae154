package handler

import (
	"net/http"

	"snippetapi/internal/middleware"
	"snippetapi/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /profiles のHTTP。meは本人、それ以外はADMIN
type ProfileHandler struct {
	uc *usecase.ProfileUsecase
}

func NewProfileHandler(uc *usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/profiles", middleware.RequireAuth())

	g.GET("/me", h.me)
	g.PUT("/me", h.updateMe)

	adminOnly := middleware.AdminRoleGuard()
	g.POST("", h.create, adminOnly)
	g.GET("/:id", h.detail, adminOnly)
	g.PUT("/:id", h.update, adminOnly)
}

func (h *ProfileHandler) me(c echo.Context) error {
	out, err := h.uc.Me(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProfileHandler) updateMe(c echo.Context) error {
	var req usecase.ProfileInput
	if err := bindJSON(c, &req); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateMe(c.Request().Context(), middleware.ActorFrom(c), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProfileHandler) create(c echo.Context) error {
	var req usecase.AdminProfileInput
	if err := bindJSON(c, &req); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.Request().Context(), middleware.ActorFrom(c), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *ProfileHandler) detail(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Get(c.Request().Context(), middleware.ActorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProfileHandler) update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req usecase.ProfileInput
	if err := bindJSON(c, &req); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.Request().Context(), middleware.ActorFrom(c), id, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
