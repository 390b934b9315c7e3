package domain

import "time"

// User is a directory account. Role keeps the spelling stored by the
// directory (legacy aliases included); use CanonicalRole for decisions.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CanonicalRole resolves the stored role string.
func (u *User) CanonicalRole() Role {
	r, _ := ParseRole(u.Role)
	return r
}
