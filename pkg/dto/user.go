package dto

import "time"

type UserResponse struct {
	ID           int64     `json:"id"`
	OpenID       string    `json:"openId"`
	Name         *string   `json:"name"`
	Email        *string   `json:"email"`
	LoginMethod  *string   `json:"loginMethod"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	LastSignedIn time.Time `json:"lastSignedIn"`
}

type SetRoleRequest struct {
	Role string `json:"role"`
}
