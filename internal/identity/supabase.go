package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/XrOne/jenia-portfolio/internal/config"
	"golang.org/x/oauth2"
)

const defaultName = "User"

type SupabaseProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewSupabaseProvider(cfg config.IdentityConfig) *SupabaseProvider {
	return NewSupabaseProviderWithClient(cfg, http.DefaultClient)
}

func NewSupabaseProviderWithClient(cfg config.IdentityConfig, client *http.Client) *SupabaseProvider {
	return &SupabaseProvider{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		apiKey:  cfg.APIKey,
		client:  client,
	}
}

func (p *SupabaseProvider) Name() string {
	return "supabase"
}

func (p *SupabaseProvider) GetUser(ctx context.Context, accessToken string) (*UserInfo, error) {
	if accessToken == "" {
		return nil, ErrInvalidToken
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.client)
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build user request: %w", err)
	}
	req.Header.Set("apikey", p.apiKey)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrInvalidToken
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	var sUser struct {
		ID          string `json:"id"`
		Email       string `json:"email"`
		AppMetadata struct {
			Provider string `json:"provider"`
		} `json:"app_metadata"`
		UserMetadata struct {
			Name     string `json:"name"`
			FullName string `json:"full_name"`
		} `json:"user_metadata"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&sUser); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	if sUser.Email == "" {
		return nil, fmt.Errorf("identity provider returned a user without email")
	}

	name := sUser.UserMetadata.Name
	if name == "" {
		name = sUser.UserMetadata.FullName
	}
	if name == "" {
		name = defaultName
	}

	return &UserInfo{
		ID:       sUser.ID,
		Email:    sUser.Email,
		Name:     name,
		Provider: p.Name(),
	}, nil
}
