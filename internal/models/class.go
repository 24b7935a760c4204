package models

import (
	"time"

	"github.com/lib/pq"
)

// Class statuses.
const (
	ClassStatusActive   = "active"
	ClassStatusArchived = "archived"
)

// Class belongs to exactly one subject and one teacher user. Code is the
// 7-character base-36 invite code synthesised at creation.
type Class struct {
	ID             int64          `db:"id" json:"id"`
	SubjectID      int64          `db:"subject_id" json:"subjectId"`
	TeacherID      int64          `db:"teacher_id" json:"teacherId"`
	Code           string         `db:"code" json:"code"`
	Name           string         `db:"name" json:"name"`
	Capacity       int            `db:"capacity" json:"capacity"`
	Status         string         `db:"status" json:"status"`
	Description    *string        `db:"description" json:"description,omitempty"`
	BannerURL      *string        `db:"banner_url" json:"bannerUrl,omitempty"`
	BannerCldPubID *string        `db:"banner_cld_pub_id" json:"bannerCldPubId,omitempty"`
	Schedule       pq.StringArray `db:"schedule" json:"schedule"`
	CreatedAt      time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updatedAt"`
}

// ClassDetail extends Class with subject and teacher display fields.
type ClassDetail struct {
	Class
	SubjectName string `db:"subject_name" json:"subjectName"`
	SubjectCode string `db:"subject_code" json:"subjectCode"`
	TeacherName string `db:"teacher_name" json:"teacherName"`
}

// ClassFilter defines filter criteria for listing classes.
type ClassFilter struct {
	Search    string
	SubjectID int64
	TeacherID int64
	Page      int
	Limit     int
}
