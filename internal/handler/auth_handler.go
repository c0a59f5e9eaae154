package handler

import (
	"net/http"

	"snippetapi/internal/middleware"
	"snippetapi/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /auth 配下（登録・JWT発行・更新・検証・ログアウト）
type AuthHandler struct {
	uc *usecase.AuthUsecase
}

// DIコンストラクタ
func NewAuthHandler(uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/auth")

	g.POST("/users", h.register)
	g.GET("/users/me", h.me, middleware.RequireAuth())
	g.POST("/jwt/create", h.login)
	g.POST("/jwt/refresh", h.refresh)
	g.POST("/jwt/verify", h.verify)
	g.POST("/logout", h.logout)
}

// POST /auth/users
func (h *AuthHandler) register(c echo.Context) error {
	var req usecase.RegisterInput
	if err := bindJSON(c, &req); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Register(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AuthHandler) me(c echo.Context) error {
	out, err := h.uc.Me(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// POST /auth/jwt/create
func (h *AuthHandler) login(c echo.Context) error {
	var req usecase.LoginInput
	if err := bindJSON(c, &req); err != nil {
		return writeError(c, err)
	}

	// User-Agentを取得（refreshtokenに紐付ける）
	out, err := h.uc.Login(c.Request().Context(), req, c.Request().UserAgent())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) refresh(c echo.Context) error {
	var req usecase.RefreshInput
	if err := bindJSON(c, &req); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Refresh(c.Request().Context(), req, c.Request().UserAgent())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) verify(c echo.Context) error {
	var req usecase.VerifyInput
	if err := bindJSON(c, &req); err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Verify(c.Request().Context(), req); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, struct{}{})
}

func (h *AuthHandler) logout(c echo.Context) error {
	var req usecase.RefreshInput
	if err := bindJSON(c, &req); err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Logout(c.Request().Context(), req); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
