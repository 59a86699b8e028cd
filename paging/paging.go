// Paging over lists that are already in memory, such as the table
// list of a schema.

package paging

import (
	"www.velocidex.com/golang/sqlpager/constants"
)

type PagingQuery struct {
	// 1 based
	Page     int64  `json:"page"`
	PageSize int64  `json:"page_size"`
	Keyword  string `json:"keyword,omitempty"`
}

func NewPagingQuery(page, page_size int64, keyword string) PagingQuery {
	return PagingQuery{Page: page, PageSize: page_size, Keyword: keyword}
}

// One page of a list. Page is clamped to the pages that exist so
// StartIndex and EndIndex can always be used to slice the list.
type PagingData[T any] struct {
	Page       int64 `json:"page"`
	PageSize   int64 `json:"page_size"`
	Pages      int64 `json:"pages"`
	Total      int64 `json:"total"`
	StartIndex int64 `json:"start_index"`
	EndIndex   int64 `json:"end_index"`
	Items      []T   `json:"items"`
}

func NewPagingData[T any](page, total, page_size int64) *PagingData[T] {
	if page_size <= 0 {
		page_size = constants.DEFAULT_PAGE_SIZE
	}

	if total < 0 {
		total = 0
	}

	pages := (total + page_size - 1) / page_size
	if pages < 1 {
		pages = 1
	}

	if page < 1 {
		page = 1
	}

	if page > pages {
		page = pages
	}

	start := (page - 1) * page_size
	end := start + page_size
	if end > total {
		end = total
	}

	return &PagingData[T]{
		Page:       page,
		PageSize:   page_size,
		Pages:      pages,
		Total:      total,
		StartIndex: start,
		EndIndex:   end,
		Items:      []T{},
	}
}

// Build the page of items selected by the query. filter may be nil.
func Paginate[T any](items []T, query PagingQuery,
	filter func(items []T, keyword string) []T) *PagingData[T] {
	if filter != nil {
		items = filter(items, query.Keyword)
	}

	result := NewPagingData[T](query.Page, int64(len(items)), query.PageSize)
	result.Items = append(result.Items, items[result.StartIndex:result.EndIndex]...)
	return result
}
