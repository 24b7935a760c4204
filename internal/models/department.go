package models

import "time"

// Department owns zero or more subjects. Deleting a department that is still
// referenced by a subject is rejected at the foreign-key level.
type Department struct {
	ID          int64     `db:"id" json:"id"`
	Code        string    `db:"code" json:"code"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// DepartmentFilter captures supported filters for listing departments.
type DepartmentFilter struct {
	Search string
	Page   int
	Limit  int
}
