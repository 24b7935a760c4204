package models

import "time"

// Subject belongs to exactly one department.
type Subject struct {
	ID           int64     `db:"id" json:"id"`
	DepartmentID int64     `db:"department_id" json:"departmentId"`
	Code         string    `db:"code" json:"code"`
	Name         string    `db:"name" json:"name"`
	Description  *string   `db:"description" json:"description,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// SubjectWithDepartment eager-loads the owning department one level deep for
// routes whose contract includes it.
type SubjectWithDepartment struct {
	Subject
	Department Department `db:"department" json:"department"`
}

// SubjectFilter captures supported filters for listing subjects.
type SubjectFilter struct {
	Search       string
	DepartmentID int64
	Page         int
	Limit        int
}
