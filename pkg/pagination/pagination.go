// Package pagination carries page requests and page results between HTTP
// handlers and the stores that serve them.
package pagination

import (
	"encoding/json"
	"math"
	"net/url"
	"strconv"

	"github.com/JaimeStill/reviewguard/pkg/query"
)

// SortFields decodes from either "Field,-Other" or an array of SortField objects.
type SortFields []query.SortField

func (s *SortFields) UnmarshalJSON(data []byte) error {
	var expr string
	if err := json.Unmarshal(data, &expr); err == nil {
		*s = query.ParseSortFields(expr)
		return nil
	}

	var fields []query.SortField
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*s = fields
	return nil
}

// PageRequest asks for one page of results, optionally searched and sorted.
type PageRequest struct {
	Page     int        `json:"page"`
	PageSize int        `json:"pageSize"`
	Search   *string    `json:"search,omitempty"`
	Sort     SortFields `json:"sort,omitempty"`
}

// Normalize clamps PageSize into [1, cfg.MaxPageSize], substituting
// cfg.DefaultPageSize when unset, and Page into [1, math.MaxInt/PageSize]
// so the offset never overflows.
func (r *PageRequest) Normalize(cfg Config) {
	switch {
	case r.PageSize < 1:
		r.PageSize = cfg.DefaultPageSize
	case r.PageSize > cfg.MaxPageSize:
		r.PageSize = cfg.MaxPageSize
	}
	r.Page = max(r.Page, 1)
	if r.PageSize > 0 {
		r.Page = min(r.Page, math.MaxInt/r.PageSize)
	}
}

// Offset is the number of records preceding the requested page. It is never
// negative and saturates at math.MaxInt.
func (r *PageRequest) Offset() int {
	if r.Page <= 1 || r.PageSize < 1 {
		return 0
	}
	if r.Page-1 > math.MaxInt/r.PageSize {
		return math.MaxInt
	}
	return (r.Page - 1) * r.PageSize
}

// Window returns the [start, end) slice bounds of the requested page within
// total records. Both bounds lie in [0, total].
func (r *PageRequest) Window(total int) (start, end int) {
	start = min(r.Offset(), total)
	end = start + min(max(r.PageSize, 0), total-start)
	return start, end
}

// PageRequestFromQuery reads page, pageSize, search, and sort from values and
// normalizes the result. The legacy page_size parameter is honored when
// pageSize is absent.
func PageRequestFromQuery(values url.Values, cfg Config) PageRequest {
	req := PageRequest{
		Page: atoi(values.Get("page")),
		Sort: query.ParseSortFields(values.Get("sort")),
	}

	size := values.Get("pageSize")
	if size == "" {
		size = values.Get("page_size")
	}
	req.PageSize = atoi(size)

	if s := values.Get("search"); s != "" {
		req.Search = &s
	}

	req.Normalize(cfg)
	return req
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// PageResult is one page of T with the totals needed to navigate the rest.
type PageResult[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// NewPageResult builds a PageResult. Data is never nil and TotalPages is at
// least 1.
func NewPageResult[T any](data []T, total, page, pageSize int) PageResult[T] {
	if data == nil {
		data = []T{}
	}

	pages := 1
	if pageSize > 0 && total > 0 {
		pages = (total + pageSize - 1) / pageSize
	}

	return PageResult[T]{
		Data:       data,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: pages,
	}
}
