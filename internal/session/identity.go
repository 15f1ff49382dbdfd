package session

import "github.com/XrOne/jenia-portfolio/internal/models"

// Identity is either Anonymous or Authenticated.
type Identity interface {
	isIdentity()
}

type Anonymous struct{}

func (Anonymous) isIdentity() {}

type Authenticated struct {
	OpenID      string  `json:"openId"`
	Email       *string `json:"email"`
	Name        *string `json:"name"`
	Role        string  `json:"role"`
	LoginMethod *string `json:"loginMethod"`
}

func (Authenticated) isIdentity() {}

func (a Authenticated) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

func FromUser(u *models.User) Authenticated {
	return Authenticated{
		OpenID:      u.OpenID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		LoginMethod: u.LoginMethod,
	}
}

// IsAdmin reports whether id is an authenticated admin.
func IsAdmin(id Identity) bool {
	auth, ok := id.(Authenticated)
	return ok && auth.IsAdmin()
}
