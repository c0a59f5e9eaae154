package usecase

import (
	"math"
	"net/http"

	repo "snippetapi/internal/repository"
)

const DefaultPageSize = 10

// Paginator turns 1-based page numbers into limit/offset windows.
type Paginator struct {
	Size int
}

func NewPaginator(size int) Paginator {
	if size <= 0 {
		size = DefaultPageSize
	}
	return Paginator{Size: size}
}

func (p Paginator) Window(page int) (repo.Page, error) {
	// offset が int を超えるページは存在しない
	if page < 1 || page-1 > math.MaxInt/p.Size {
		return repo.Page{}, errInvalidPage()
	}
	return repo.Page{Limit: p.Size, Offset: (page - 1) * p.Size}, nil
}

// Page is one page of results plus what the handler needs to build links.
type Page[T any] struct {
	Count   int64
	Results []T
	Number  int
	Size    int
}

func (p Page[T]) HasNext() bool     { return int64(p.Number) < pageCount(p.Count, p.Size) }
func (p Page[T]) HasPrevious() bool { return p.Number > 1 }

func pageCount(total int64, size int) int64 {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + int64(size) - 1) / int64(size)
}

// newPage rejects pages past the end, except page 1 of an empty list.
func newPage[T any](p Paginator, number int, total int64, results []T) (Page[T], error) {
	if number < 1 || (number > 1 && int64(number) > pageCount(total, p.Size)) {
		return Page[T]{}, errInvalidPage()
	}
	if results == nil {
		results = []T{}
	}
	return Page[T]{Count: total, Results: results, Number: number, Size: p.Size}, nil
}

func errInvalidPage() error {
	return NewHTTPError(http.StatusNotFound, "Invalid page.")
}
