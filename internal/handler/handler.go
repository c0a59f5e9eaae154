package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"reflect"
	"strconv"

	"snippetapi/internal/domain/model"
	"snippetapi/internal/middleware"
	"snippetapi/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		if he.Status >= http.StatusInternalServerError {
			c.Set(middleware.CtxErrorKey, err)
		}
		return c.JSON(he.Status, ErrorResponse{Error: he.Message, Fields: he.Fields})
	}

	//500
	c.Set(middleware.CtxErrorKey, err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// bindJSON decodes the body and runs the struct validator.
func bindJSON(c echo.Context, dst interface{}) error {
	if err := c.Bind(dst); err != nil {
		return bindError(err)
	}
	return c.Validate(dst)
}

func bindError(err error) error {
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" {
		return usecase.NewValidationError(map[string]string{ute.Field: typeMessage(ute.Type.Kind())})
	}
	if errors.Is(err, model.ErrInvalidMoney) {
		return usecase.NewValidationError(map[string]string{"unit_price": "A valid number is required."})
	}
	if errors.Is(err, usecase.ErrInvalidDate) {
		return usecase.NewValidationError(map[string]string{"birth_date": "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."})
	}
	return usecase.NewHTTPError(http.StatusBadRequest, "JSON parse error")
}

func typeMessage(k reflect.Kind) string {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "A valid integer is required."
	case reflect.Bool:
		return "Must be a valid boolean."
	case reflect.String:
		return "Not a valid string."
	default:
		return "Invalid value."
	}
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, usecase.NewHTTPError(http.StatusNotFound, "not found")
	}
	return id, nil
}

// ページ番号が数値でなければ 404
func pageParam(c echo.Context) (int, error) {
	v := c.QueryParam("page")
	if v == "" {
		return 1, nil
	}
	p, err := strconv.Atoi(v)
	if err != nil || p < 1 {
		return 0, usecase.NewHTTPError(http.StatusNotFound, "Invalid page.")
	}
	return p, nil
}

type pageResponse[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

func writePage[T any](c echo.Context, p usecase.Page[T]) error {
	out := pageResponse[T]{Count: p.Count, Results: p.Results}
	if p.HasNext() {
		next := pageURL(c, p.Number+1)
		out.Next = &next
	}
	if p.HasPrevious() {
		prev := pageURL(c, p.Number-1)
		out.Previous = &prev
	}
	return c.JSON(http.StatusOK, out)
}

// 前ページが1ならpageパラメータ自体を外す
func pageURL(c echo.Context, page int) string {
	q := c.Request().URL.Query()
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u := url.URL{
		Scheme:   c.Scheme(),
		Host:     c.Request().Host,
		Path:     c.Request().URL.Path,
		RawQuery: q.Encode(),
	}
	return u.String()
}

func absoluteURL(c echo.Context, path string) string {
	u := url.URL{Scheme: c.Scheme(), Host: c.Request().Host, Path: path}
	return u.String()
}
