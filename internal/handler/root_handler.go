package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

var rootResources = []string{"snippets", "snippet_categories", "carts", "orders", "profiles", "users"}

// GET / はリソース一覧を絶対URLで返す
func RegisterRoot(e *echo.Echo) {
	e.GET("/", func(c echo.Context) error {
		out := make(map[string]string, len(rootResources))
		for _, name := range rootResources {
			out[name] = absoluteURL(c, "/"+name)
		}
		return c.JSON(http.StatusOK, out)
	})
}
