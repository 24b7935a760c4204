package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/edustack/campus-api/internal/models"
)

// Data and count queries must share the same predicate and arguments; a count
// that drops the filter would overstate totals.
func TestUserRepositoryListAppliesSamePredicateToCount(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users WHERE 1=1 AND role = $1 AND (LOWER(name) LIKE $2 OR LOWER(email) LIKE $2)")).
		WithArgs(models.RoleTeacher, "%ada%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email, role, created_at, updated_at FROM users WHERE 1=1 AND role = $1 AND (LOWER(name) LIKE $2 OR LOWER(email) LIKE $2) ORDER BY created_at DESC, id ASC LIMIT 20 OFFSET 0")).
		WithArgs(models.RoleTeacher, "%ada%").
		WillReturnRows(userRows().AddRow(1, "Ada", "ada@example.com", "teacher", time.Now(), time.Now()))

	users, total, err := repo.List(context.Background(), models.UserFilter{Search: "Ada", Role: models.RoleTeacher, Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, users, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryListWithoutFiltersMatchesEverything(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users WHERE 1=1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email, role, created_at, updated_at FROM users WHERE 1=1 ORDER BY created_at DESC, id ASC LIMIT 20 OFFSET 0")).
		WillReturnRows(userRows())

	_, total, err := repo.List(context.Background(), models.UserFilter{Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Equal(t, 0, total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryCreateReturnsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (name, email, role) VALUES ($1, $2, $3) RETURNING id")).
		WithArgs("Ada", "ada@example.com", models.RoleTeacher).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	id, err := repo.Create(context.Background(), &models.User{Name: "Ada", Email: "ada@example.com", Role: models.RoleTeacher})
	require.NoError(t, err)
	require.Equal(t, int64(42), id)
	require.NoError(t, mock.ExpectationsWereMet())
}
