package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

//contextに入っているroleがADMINかどうかを確認します。

func AdminRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor := ActorFrom(c)
			if !actor.IsAuthenticated() {
				return c.JSON(http.StatusUnauthorized, errorJSON(msgNotAuthenticated))
			}

			//USERは拒否、ADMINだけ許可
			if !actor.IsAdmin() {
				return c.JSON(http.StatusForbidden, errorJSON(msgPermissionDenied))
			}

			return next(c)
		}
	}
}

// AdminOrReadOnly lets anyone read and only admins write.
func AdminOrReadOnly() echo.MiddlewareFunc {
	guard := AdminRoleGuard()
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		guarded := guard(next)
		return func(c echo.Context) error {
			if isSafeMethod(c.Request().Method) {
				return next(c)
			}
			return guarded(c)
		}
	}
}
