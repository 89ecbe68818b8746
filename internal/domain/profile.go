package domain

import "time"

// AcademicProfile describes a student's academic identity. Owner and career
// are set at creation and never change; semester and interests are mutable by
// the owner.
type AcademicProfile struct {
	UserID            string    `json:"user_id" db:"user_id"`
	StudentID         string    `json:"student_id" db:"student_id"`
	Career            string    `json:"career" db:"career"`
	Campus            string    `json:"campus" db:"campus"`
	Semester          int       `json:"semester" db:"semester"`
	University        string    `json:"university" db:"university"`
	AcademicInterests []string  `json:"academic_interests" db:"academic_interests"`
	GraduationYear    *int      `json:"graduation_year" db:"graduation_year"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}
