package handler

import (
	"net/http"

	"snippetapi/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /users 読み取り専用
type UserHandler struct {
	uc *usecase.UserUsecase
}

func NewUserHandler(uc *usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/users", h.list)
	e.GET("/users/:id", h.detail)
}

func (h *UserHandler) list(c echo.Context) error {
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

func (h *UserHandler) detail(c echo.Context) error {
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
