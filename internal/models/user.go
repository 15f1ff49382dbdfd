package models

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID           int64     `json:"id"`
	OpenID       string    `json:"openId"`
	Name         *string   `json:"name"`
	Email        *string   `json:"email"`
	LoginMethod  *string   `json:"loginMethod"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	LastSignedIn time.Time `json:"lastSignedIn"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
