package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/edustack/campus-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func departmentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "code", "name", "description", "created_at", "updated_at"})
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "email", "role", "created_at", "updated_at"})
}

// A department with many subjects and classes still counts once: the count
// query runs COUNT(DISTINCT d.id) over the same chain as the data query.
func TestRelationRepositoryDepartmentsForTeacherCollapsesFanOut(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRelationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(DISTINCT d.id) FROM departments d JOIN subjects s ON s.department_id = d.id JOIN classes c ON c.subject_id = s.id WHERE c.teacher_id = $1")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT d.id, d.code, d.name, d.description, d.created_at, d.updated_at FROM departments d JOIN subjects s ON s.department_id = d.id JOIN classes c ON c.subject_id = s.id WHERE c.teacher_id = $1 GROUP BY d.id, d.code, d.name, d.description, d.created_at, d.updated_at ORDER BY d.created_at DESC, d.id ASC LIMIT 20 OFFSET 0")).
		WithArgs(int64(7)).
		WillReturnRows(departmentRows().AddRow(1, "MATH", "Mathematics", nil, time.Now(), time.Now()))

	departments, total, err := repo.DepartmentsForUser(context.Background(), 7, models.RoleTeacher, 1, 20)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, departments, 1)
	require.Equal(t, "MATH", departments[0].Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRelationRepositoryDepartmentsForStudentWalksEnrollments(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRelationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(DISTINCT d.id) FROM departments d JOIN subjects s ON s.department_id = d.id JOIN classes c ON c.subject_id = s.id JOIN enrollments e ON e.class_id = c.id WHERE e.student_id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	mock.ExpectQuery(regexp.QuoteMeta("JOIN enrollments e ON e.class_id = c.id WHERE e.student_id = $1 GROUP BY")).
		WithArgs(int64(3)).
		WillReturnRows(departmentRows().
			AddRow(2, "PHYS", "Physics", nil, time.Now(), time.Now()).
			AddRow(1, "MATH", "Mathematics", nil, time.Now(), time.Now()))

	departments, total, err := repo.DepartmentsForUser(context.Background(), 3, models.RoleStudent, 1, 20)
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Len(t, departments, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRelationRepositorySubjectsForStudentEagerLoadsDepartment(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRelationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(DISTINCT s.id) FROM subjects s JOIN departments d ON d.id = s.department_id JOIN classes c ON c.subject_id = s.id JOIN enrollments e ON e.class_id = c.id WHERE e.student_id = $1")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := sqlmock.NewRows([]string{
		"id", "department_id", "code", "name", "description", "created_at", "updated_at",
		"department.id", "department.code", "department.name", "department.description",
		"department.created_at", "department.updated_at",
	}).AddRow(4, 1, "ALG1", "Algebra I", nil, time.Now(), time.Now(),
		1, "MATH", "Mathematics", nil, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta(`d.updated_at AS "department.updated_at" FROM subjects s JOIN departments d ON d.id = s.department_id JOIN classes c ON c.subject_id = s.id JOIN enrollments e ON e.class_id = c.id WHERE e.student_id = $1`)).
		WithArgs(int64(9)).
		WillReturnRows(rows)

	subjects, total, err := repo.SubjectsForUser(context.Background(), 9, models.RoleStudent, 1, 20)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, subjects, 1)
	require.Equal(t, "ALG1", subjects[0].Code)
	require.Equal(t, "MATH", subjects[0].Department.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRelationRepositoryUsersForClassStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRelationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(DISTINCT u.id) FROM users u JOIN enrollments e ON e.student_id = u.id WHERE e.class_id = $1")).
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT u.id, u.name, u.email, u.role, u.created_at, u.updated_at FROM users u JOIN enrollments e ON e.student_id = u.id WHERE e.class_id = $1 GROUP BY u.id, u.name, u.email, u.role, u.created_at, u.updated_at ORDER BY u.created_at DESC, u.id ASC LIMIT 10 OFFSET 0")).
		WithArgs(int64(11)).
		WillReturnRows(userRows().AddRow(5, "Ada", "ada@example.com", "student", time.Now(), time.Now()))

	users, total, err := repo.UsersForClass(context.Background(), 11, models.RoleStudent, 1, 10)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, users, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRelationRepositoryWindowsByPage(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRelationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(DISTINCT u.id) FROM users u JOIN classes c ON c.teacher_id = u.id WHERE c.subject_id = $1")).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	mock.ExpectQuery(regexp.QuoteMeta("LIMIT 5 OFFSET 10")).
		WithArgs(int64(2)).
		WillReturnRows(userRows())

	_, total, err := repo.UsersForSubject(context.Background(), 2, models.RoleTeacher, 3, 5)
	require.NoError(t, err)
	require.Equal(t, 12, total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRelationRepositoryRejectsUnknownPath(t *testing.T) {
	db, _, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRelationRepository(db)

	_, _, err := repo.DepartmentsForUser(context.Background(), 1, models.RoleAdmin, 1, 20)
	require.Error(t, err)
}
