package models

import "time"

// Enrollment links a student user to a class. The many-to-many between
// students and classes resolves through this table.
type Enrollment struct {
	ID        int64     `db:"id" json:"id"`
	StudentID int64     `db:"student_id" json:"studentId"`
	ClassID   int64     `db:"class_id" json:"classId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
