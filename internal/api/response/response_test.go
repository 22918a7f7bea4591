package response_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"taskboard-backend/internal/api/response"
)

func TestNewPaginationMeta(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		perPage    int
		totalItems int64
		wantPages  int
		wantNext   bool
		wantPrev   bool
	}{
		{name: "first of three pages", page: 1, perPage: 10, totalItems: 25, wantPages: 3, wantNext: true, wantPrev: false},
		{name: "middle page", page: 2, perPage: 10, totalItems: 25, wantPages: 3, wantNext: true, wantPrev: true},
		{name: "last page", page: 3, perPage: 10, totalItems: 25, wantPages: 3, wantNext: false, wantPrev: true},
		{name: "exact fit", page: 1, perPage: 5, totalItems: 10, wantPages: 2, wantNext: true, wantPrev: false},
		{name: "empty result", page: 1, perPage: 10, totalItems: 0, wantPages: 0, wantNext: false, wantPrev: false},
		{name: "single item", page: 1, perPage: 10, totalItems: 1, wantPages: 1, wantNext: false, wantPrev: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := response.NewPaginationMeta(tt.page, tt.perPage, tt.totalItems)

			assert.Equal(t, tt.page, meta.Page)
			assert.Equal(t, tt.perPage, meta.PerPage)
			assert.Equal(t, tt.totalItems, meta.TotalItems)
			assert.Equal(t, tt.wantPages, meta.TotalPages)
			assert.Equal(t, tt.wantNext, meta.HasNext)
			assert.Equal(t, tt.wantPrev, meta.HasPrev)
		})
	}
}
