package handler

import (
	"net/http"

	"snippetapi/internal/middleware"
	"snippetapi/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminUserHandler struct {
	uc     *usecase.AuthUsecase
	audits *usecase.AuditLogUsecase
}

func NewAdminUserHandler(uc *usecase.AuthUsecase, audits *usecase.AuditLogUsecase) *AdminUserHandler {
	return &AdminUserHandler{uc: uc, audits: audits}
}

func (h *AdminUserHandler) RegisterRoutes(e *echo.Echo) {
	// /admin 配下は全部ADMIN限定
	admin := e.Group("/admin", middleware.AdminRoleGuard())

	admin.POST("/users/:id/force-logout", h.ForceLogout)
	admin.GET("/audit-logs", h.ListAuditLogs)
}

func (h *AdminUserHandler) ForceLogout(c echo.Context) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	res, err := h.uc.ForceLogout(c.Request().Context(), middleware.ActorFrom(c), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// GET /admin/audit-logs?actor_user_id=&action=&resource_type=&resource_id=&created_from=&created_to=&limit=&offset=
func (h *AdminUserHandler) ListAuditLogs(c echo.Context) error {
	out, err := h.audits.List(c.Request().Context(), middleware.ActorFrom(c), usecase.AuditLogQuery{
		ActorUserID:  c.QueryParam("actor_user_id"),
		Action:       c.QueryParam("action"),
		ResourceType: c.QueryParam("resource_type"),
		ResourceID:   c.QueryParam("resource_id"),
		CreatedFrom:  c.QueryParam("created_from"),
		CreatedTo:    c.QueryParam("created_to"),
		Limit:        c.QueryParam("limit"),
		Offset:       c.QueryParam("offset"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
