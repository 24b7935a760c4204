package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/edustack/campus-api/internal/models"
)

// Kind identifies an entity participating in a relation walk.
type Kind string

// Supported kinds.
const (
	KindUser       Kind = "user"
	KindDepartment Kind = "department"
	KindSubject    Kind = "subject"
	KindClass      Kind = "class"
)

type pathKey struct {
	Root    Kind
	Related Kind
	Role    models.UserRole
}

// joinPath is one row of the join-path table: the FROM/JOIN chain connecting
// the related table to the root entity, and the column the root id binds to.
// The related table alias is fixed per kind (d, s, u) so the column sets
// below line up.
type joinPath struct {
	from    string
	rootCol string
}

var joinPaths = map[pathKey]joinPath{
	{KindUser, KindDepartment, models.RoleTeacher}: {
		from:    `departments d JOIN subjects s ON s.department_id = d.id JOIN classes c ON c.subject_id = s.id`,
		rootCol: "c.teacher_id",
	},
	{KindUser, KindDepartment, models.RoleStudent}: {
		from:    `departments d JOIN subjects s ON s.department_id = d.id JOIN classes c ON c.subject_id = s.id JOIN enrollments e ON e.class_id = c.id`,
		rootCol: "e.student_id",
	},
	{KindUser, KindSubject, models.RoleTeacher}: {
		from:    `subjects s JOIN departments d ON d.id = s.department_id JOIN classes c ON c.subject_id = s.id`,
		rootCol: "c.teacher_id",
	},
	{KindUser, KindSubject, models.RoleStudent}: {
		from:    `subjects s JOIN departments d ON d.id = s.department_id JOIN classes c ON c.subject_id = s.id JOIN enrollments e ON e.class_id = c.id`,
		rootCol: "e.student_id",
	},
	{KindSubject, KindUser, models.RoleTeacher}: {
		from:    `users u JOIN classes c ON c.teacher_id = u.id`,
		rootCol: "c.subject_id",
	},
	{KindSubject, KindUser, models.RoleStudent}: {
		from:    `users u JOIN enrollments e ON e.student_id = u.id JOIN classes c ON c.id = e.class_id`,
		rootCol: "c.subject_id",
	},
	{KindClass, KindUser, models.RoleTeacher}: {
		from:    `users u JOIN classes c ON c.teacher_id = u.id`,
		rootCol: "c.id",
	},
	{KindClass, KindUser, models.RoleStudent}: {
		from:    `users u JOIN enrollments e ON e.student_id = u.id`,
		rootCol: "e.class_id",
	},
}

// Column sets per related kind. GROUP BY repeats every selected expression to
// collapse rows duplicated by one-to-many join fan-out.
var (
	departmentColumns = []string{
		"d.id", "d.code", "d.name", "d.description", "d.created_at", "d.updated_at",
	}

	subjectColumns = []string{
		"s.id", "s.department_id", "s.code", "s.name", "s.description", "s.created_at", "s.updated_at",
		`d.id AS "department.id"`, `d.code AS "department.code"`, `d.name AS "department.name"`,
		`d.description AS "department.description"`, `d.created_at AS "department.created_at"`,
		`d.updated_at AS "department.updated_at"`,
	}
	subjectGroupBy = []string{
		"s.id", "s.department_id", "s.code", "s.name", "s.description", "s.created_at", "s.updated_at",
		"d.id", "d.code", "d.name", "d.description", "d.created_at", "d.updated_at",
	}

	userColumns = []string{
		"u.id", "u.name", "u.email", "u.role", "u.created_at", "u.updated_at",
	}
)

// RelationRepository resolves role-dependent relationship listings. Given a
// root entity and a requested related kind it walks the join-path table,
// counts distinct related rows, and fetches one page over the identical
// chain.
type RelationRepository struct {
	db *sqlx.DB
}

// NewRelationRepository creates a new repository instance.
func NewRelationRepository(db *sqlx.DB) *RelationRepository {
	return &RelationRepository{db: db}
}

// DepartmentsForUser lists departments visible to a teacher (via the classes
// they teach) or a student (via their enrollments).
func (r *RelationRepository) DepartmentsForUser(ctx context.Context, userID int64, role models.UserRole, page, limit int) ([]models.Department, int, error) {
	var departments []models.Department
	total, err := r.resolve(ctx, pathKey{KindUser, KindDepartment, role}, userID, page, limit,
		"d", departmentColumns, departmentColumns, &departments)
	if err != nil {
		return nil, 0, err
	}
	return departments, total, nil
}

// SubjectsForUser lists subjects visible to a teacher or a student, with the
// owning department eager-loaded.
func (r *RelationRepository) SubjectsForUser(ctx context.Context, userID int64, role models.UserRole, page, limit int) ([]models.SubjectWithDepartment, int, error) {
	var subjects []models.SubjectWithDepartment
	total, err := r.resolve(ctx, pathKey{KindUser, KindSubject, role}, userID, page, limit,
		"s", subjectColumns, subjectGroupBy, &subjects)
	if err != nil {
		return nil, 0, err
	}
	return subjects, total, nil
}

// UsersForSubject lists the teachers of a subject's classes, or the students
// enrolled in them.
func (r *RelationRepository) UsersForSubject(ctx context.Context, subjectID int64, role models.UserRole, page, limit int) ([]models.User, int, error) {
	var users []models.User
	total, err := r.resolve(ctx, pathKey{KindSubject, KindUser, role}, subjectID, page, limit,
		"u", userColumns, userColumns, &users)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// UsersForClass lists a class's teacher or its enrolled students.
func (r *RelationRepository) UsersForClass(ctx context.Context, classID int64, role models.UserRole, page, limit int) ([]models.User, int, error) {
	var users []models.User
	total, err := r.resolve(ctx, pathKey{KindClass, KindUser, role}, classID, page, limit,
		"u", userColumns, userColumns, &users)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// resolve runs the count query and then the data query over the same join
// chain and predicate. The count MUST use the identical chain: counting the
// bare related table would overstate totals once joins fan out.
func (r *RelationRepository) resolve(ctx context.Context, key pathKey, rootID int64, page, limit int, alias string, columns, groupBy []string, dest interface{}) (int, error) {
	path, ok := joinPaths[key]
	if !ok {
		return 0, fmt.Errorf("no join path for %s -> %s as %s", key.Root, key.Related, key.Role)
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	offset := (page - 1) * limit

	countQuery := fmt.Sprintf("SELECT COUNT(DISTINCT %s.id) FROM %s WHERE %s = $1",
		alias, path.from, path.rootCol)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, rootID); err != nil {
		return 0, fmt.Errorf("count %s for %s: %w", key.Related, key.Root, err)
	}

	dataQuery := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 GROUP BY %s ORDER BY %s.created_at DESC, %s.id ASC LIMIT %d OFFSET %d",
		strings.Join(columns, ", "), path.from, path.rootCol,
		strings.Join(groupBy, ", "), alias, alias, limit, offset)
	if err := r.db.SelectContext(ctx, dest, dataQuery, rootID); err != nil {
		return 0, fmt.Errorf("list %s for %s: %w", key.Related, key.Root, err)
	}

	return total, nil
}
