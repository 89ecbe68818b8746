package domain

import "time"

type User struct {
	ID                string     `json:"id" db:"id"`
	Email             string     `json:"email" db:"email"`
	PasswordHash      string     `json:"-" db:"password_hash"`
	FirstName         string     `json:"first_name" db:"first_name"`
	LastName          string     `json:"last_name" db:"last_name"`
	DateOfBirth       *time.Time `json:"date_of_birth" db:"date_of_birth"`
	Bio               string     `json:"bio" db:"bio"`
	Interests         []string   `json:"interests" db:"interests"`
	IsEmailVerified   bool       `json:"is_email_verified" db:"is_email_verified"`
	IsProfileComplete bool       `json:"is_profile_complete" db:"is_profile_complete"`
	IsActive          bool       `json:"is_active" db:"is_active"`
	VerificationToken *string    `json:"-" db:"verification_token"`
	LastActive        time.Time  `json:"last_active" db:"last_active"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`

	// Loaded alongside the row, not columns of users.
	Photos          []Photo          `json:"photos" db:"-"`
	AcademicProfile *AcademicProfile `json:"academic_profile,omitempty" db:"-"`
}

// Photo is the stored descriptor returned by the photo storage sink.
type Photo struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	URL       string    `json:"url" db:"url"`
	Key       string    `json:"key" db:"storage_key"`
	IsMain    bool      `json:"is_main" db:"is_main"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// MainPhoto returns the photo flagged as main, or the first one uploaded.
func (u *User) MainPhoto() *Photo {
	for i := range u.Photos {
		if u.Photos[i].IsMain {
			return &u.Photos[i]
		}
	}
	if len(u.Photos) > 0 {
		return &u.Photos[0]
	}
	return nil
}

func (u *User) Age() int {
	if u.DateOfBirth == nil {
		return 0
	}
	now := time.Now()
	age := now.Year() - u.DateOfBirth.Year()
	if now.YearDay() < u.DateOfBirth.YearDay() {
		age--
	}
	return age
}
