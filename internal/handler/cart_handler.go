package handler

import (
	"net/http"

	"snippetapi/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /carts と /carts/:cart_id/items のHTTP。カートは匿名で使える
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/carts")

	g.POST("", h.createCart)
	g.GET("/:id", h.getCart)
	g.DELETE("/:id", h.deleteCart)

	items := g.Group("/:cart_id/items")
	items.GET("", h.listItems)
	items.POST("", h.addItem)
	items.GET("/:id", h.getItem)
	items.PUT("/:id", h.patchItem)
	items.PATCH("/:id", h.patchItem)
	items.DELETE("/:id", h.deleteItem)
}

func (h *CartHandler) createCart(c echo.Context) error {
	out, err := h.uc.Create(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *CartHandler) getCart(c echo.Context) error {
	out, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) deleteCart(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) listItems(c echo.Context) error {
	out, err := h.uc.ListItems(c.Request().Context(), c.Param("cart_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) getItem(c echo.Context) error {
	itemID, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetItem(c.Request().Context(), c.Param("cart_id"), itemID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// 同じsnippetが既にあれば数量を加算する
func (h *CartHandler) addItem(c echo.Context) error {
	var req usecase.AddCartItemInput
	if err := bindJSON(c, &req); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.AddItem(c.Request().Context(), c.Param("cart_id"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *CartHandler) patchItem(c echo.Context) error {
	itemID, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req usecase.UpdateCartItemInput
	if err := bindJSON(c, &req); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateItem(c.Request().Context(), c.Param("cart_id"), itemID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) deleteItem(c echo.Context) error {
	itemID, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.DeleteItem(c.Request().Context(), c.Param("cart_id"), itemID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
