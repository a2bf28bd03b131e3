// internal/domain/user/entity.go
package user

import "time"

const (
	RoleJobSeeker = "Job Seeker"
	RoleEmployer  = "Employer"
)

// Resume is the stored attachment reference. How the bytes are kept is up to
// the ResumeStore implementation.
type Resume struct {
	Key      string `json:"key,omitempty"`
	URL      string `json:"url,omitempty"`
	FileName string `json:"file_name,omitempty"`
}

// User is a job portal account
type User struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name,omitempty" db:"name"`
	Email        string    `json:"email,omitempty" db:"email"`
	Phone        string    `json:"phone,omitempty" db:"phone"`
	Address      string    `json:"address,omitempty" db:"address"`
	Role         string    `json:"role,omitempty" db:"role"`
	Niches       []string  `json:"niches,omitempty" db:"niches"`
	CoverLetter  string    `json:"cover_letter,omitempty" db:"cover_letter"`
	Resume       *Resume   `json:"resume,omitempty" db:"-"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at,omitempty" db:"created_at"`
}

// ValidRole reports whether role is one of the account roles.
func ValidRole(role string) bool {
	return role == RoleJobSeeker || role == RoleEmployer
}
