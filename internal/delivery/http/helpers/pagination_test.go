package helpers

import (
	"net/http/httptest"
	"testing"

	"eventenrollment/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  domain.PaginationParams
	}{
		{name: "defaults", query: "", want: domain.PaginationParams{Page: 1, PageSize: 20}},
		{name: "explicit", query: "?page=3&page_size=5", want: domain.PaginationParams{Page: 3, PageSize: 5}},
		{name: "page size capped", query: "?page_size=500", want: domain.PaginationParams{Page: 1, PageSize: 100}},
		{name: "invalid values", query: "?page=-2&page_size=abc", want: domain.PaginationParams{Page: 1, PageSize: 20}},
		{name: "overflowing page", query: "?page=99999999999999999999", want: domain.PaginationParams{Page: 1, PageSize: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/events"+tt.query, nil)
			assert.Equal(t, tt.want, ParsePagination(r))
		})
	}
}

func TestParsePagination_HugePageKeepsOffsetNonNegative(t *testing.T) {
	r := httptest.NewRequest("GET", "/events?page=922337203685477581&page_size=20", nil)
	params := ParsePagination(r)
	assert.Equal(t, 922337203685477581, params.Page)
	assert.GreaterOrEqual(t, params.Offset(), 0)
}

func TestNewPaginationMeta(t *testing.T) {
	assert.Equal(t, PaginationMeta{Page: 2, PageSize: 10, Total: 21, TotalPages: 3}, NewPaginationMeta(2, 10, 21))
	assert.Equal(t, PaginationMeta{Page: 1, PageSize: 0, Total: 5}, NewPaginationMeta(1, 0, 5))
}
