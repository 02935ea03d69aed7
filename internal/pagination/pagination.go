// Package pagination holds the page math shared by every listing endpoint.
package pagination

import "github.com/postboard/postboard/internal/apperr"

// Params is a validated page request.
type Params struct {
	Page     int
	PageSize int
}

// Pagination describes the page that was actually returned.
// NextPage and PreviousPage are null in JSON when there is no such page.
type Pagination struct {
	Page         int   `json:"page"`
	PageSize     int   `json:"pageSize"`
	TotalItems   int64 `json:"totalItems"`
	TotalPages   int   `json:"totalPages"`
	NextPage     *int  `json:"nextPage"`
	PreviousPage *int  `json:"previousPage"`
}

// NewParams validates page and pageSize. A pageSize of 0 is an error,
// not a vacuous page.
func NewParams(page, pageSize int) (Params, error) {
	if page < 1 {
		return Params{}, apperr.Invalid("page must be >= 1")
	}
	if pageSize < 1 {
		return Params{}, apperr.Invalid("pageSize must be >= 1")
	}
	return Params{Page: page, PageSize: pageSize}, nil
}

// Offset returns the number of rows to skip for this page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Build computes the pagination block for a result set of totalItems rows.
// Pages beyond the last yield an empty item list with correct metadata,
// never an error.
func (p Params) Build(totalItems int64) Pagination {
	totalPages := int((totalItems + int64(p.PageSize) - 1) / int64(p.PageSize))

	var next, prev *int
	if p.Page < totalPages {
		n := p.Page + 1
		next = &n
	}
	if p.Page > 1 {
		v := p.Page - 1
		prev = &v
	}

	return Pagination{
		Page:         p.Page,
		PageSize:     p.PageSize,
		TotalItems:   totalItems,
		TotalPages:   totalPages,
		NextPage:     next,
		PreviousPage: prev,
	}
}
