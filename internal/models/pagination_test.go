package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginationRoundsPagesUp(t *testing.T) {
	cases := []struct {
		name  string
		page  int
		limit int
		total int
		pages int
	}{
		{"exact", 1, 10, 20, 2},
		{"remainder", 1, 10, 21, 3},
		{"empty", 1, 10, 0, 0},
		{"single", 2, 20, 1, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPagination(tc.page, tc.limit, tc.total)
			assert.Equal(t, tc.page, p.Page)
			assert.Equal(t, tc.limit, p.Limit)
			assert.Equal(t, tc.total, p.Total)
			assert.Equal(t, tc.pages, p.TotalPages)
		})
	}
}

// The zero-limit page marks relation lookups that legitimately resolve to
// nothing, such as departments of an admin.
func TestEmptyPaginationMarker(t *testing.T) {
	p := EmptyPagination()
	assert.Equal(t, &Pagination{Page: 1, Limit: 0, Total: 0, TotalPages: 0}, p)
}

func TestUserRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleTeacher.Valid())
	assert.True(t, RoleStudent.Valid())
	assert.False(t, UserRole("principal").Valid())
	assert.False(t, UserRole("").Valid())
}
