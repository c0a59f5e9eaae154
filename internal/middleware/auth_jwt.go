package middleware

import (
	"net/http"
	"strings"

	"snippetapi/internal/config"
	"snippetapi/internal/domain/model"
	"snippetapi/internal/usecase"

	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey       = "user_id"       // int64
	CtxUserRoleKey     = "user_role"     // string
	CtxTokenVersionKey = "token_version" // int
	// 500の原因。RequestLoggerが出力する
	CtxErrorKey = "handler_error" // error
)

const (
	msgNotAuthenticated = "Authentication credentials were not provided."
	msgTokenInvalid     = "Given token not valid for any token type"
	msgPermissionDenied = "You do not have permission to perform this action."
)

// AuthJWT reads an optional "Authorization: Bearer <jwt>" header. Without the
// header the request continues anonymously; a malformed or expired token is a 401.
func AuthJWT(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//Authorizationヘッダを取得
			authz := c.Request().Header.Get(echo.HeaderAuthorization)
			if authz == "" {
				return next(c)
			}

			//Bearer形式か確認してtokenを抜く
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, errorJSON(msgTokenInvalid))
			}
			rawToken := strings.TrimSpace(parts[1])
			if rawToken == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON(msgTokenInvalid))
			}

			claims, err := usecase.ParseAccessToken(cfg.JWTSecret, rawToken)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorJSON(msgTokenInvalid))
			}

			//contextへ保存
			c.Set(CtxUserIDKey, claims.UserID)
			c.Set(CtxUserRoleKey, string(claims.Role))
			c.Set(CtxTokenVersionKey, claims.TokenVersion)

			return next(c)
		}
	}
}

// RequireAuth rejects anonymous requests.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !ActorFrom(c).IsAuthenticated() {
				return c.JSON(http.StatusUnauthorized, errorJSON(msgNotAuthenticated))
			}
			return next(c)
		}
	}
}

// AuthenticatedOrReadOnly lets anyone read and requires a login to write.
func AuthenticatedOrReadOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if isSafeMethod(c.Request().Method) || ActorFrom(c).IsAuthenticated() {
				return next(c)
			}
			return c.JSON(http.StatusUnauthorized, errorJSON(msgNotAuthenticated))
		}
	}
}

// ActorFrom builds the caller from what AuthJWT stored. nil means anonymous.
func ActorFrom(c echo.Context) *usecase.Actor {
	userID, ok := c.Get(CtxUserIDKey).(int64)
	if !ok || userID <= 0 {
		return nil
	}
	role, _ := c.Get(CtxUserRoleKey).(string)
	return &usecase.Actor{UserID: userID, Role: model.Role(role)}
}

func isSafeMethod(m string) bool {
	switch m {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}
