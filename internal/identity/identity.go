package identity

import (
	"context"
	"errors"
)

var ErrInvalidToken = errors.New("invalid or expired access token")

type UserInfo struct {
	ID       string
	Email    string
	Name     string
	Provider string
}

// Provider validates access tokens issued by an external identity provider.
type Provider interface {
	GetUser(ctx context.Context, accessToken string) (*UserInfo, error)
	Name() string
}
