package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/XrOne/jenia-portfolio/internal/database"
	"github.com/XrOne/jenia-portfolio/internal/models"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateUser creates a test user with default values
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	email := fmt.Sprintf("user%d@example.com", f.counter)
	name := fmt.Sprintf("Test User %d", f.counter)
	method := "supabase"
	user := &models.User{
		OpenID:      email,
		Email:       &email,
		Name:        &name,
		LoginMethod: &method,
		Role:        models.RoleUser,
	}

	for _, opt := range opts {
		opt(user)
	}

	err := f.db.Pool.QueryRow(context.Background(), `
		INSERT INTO users (open_id, name, email, login_method, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at, last_signed_in
	`, user.OpenID, user.Name, user.Email, user.LoginMethod, user.Role).Scan(
		&user.ID, &user.CreatedAt, &user.UpdatedAt, &user.LastSignedIn,
	)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// UserOption configures a test user
type UserOption func(*models.User)

// WithOpenID sets the user's open id and email
func WithOpenID(openID string) UserOption {
	return func(u *models.User) {
		u.OpenID = openID
		u.Email = &openID
	}
}

// WithRole sets the user's role
func WithRole(role string) UserOption {
	return func(u *models.User) {
		u.Role = role
	}
}

// CreateVideo creates a test video. createdAt is spaced one second apart per
// call so ordering by created_at is deterministic.
func (f *Fixtures) CreateVideo(t *testing.T, opts ...VideoOption) *models.Video {
	t.Helper()
	f.counter++

	key := fmt.Sprintf("videos/%d-fixture-%d.mp4", time.Now().UnixMilli(), f.counter)
	video := &models.Video{
		Title:     fmt.Sprintf("Video %d", f.counter),
		VideoURL:  "https://cdn.example.com/" + key,
		FileKey:   key,
		IsActive:  true,
		CreatedAt: time.Now().Add(time.Duration(f.counter) * time.Second),
	}

	for _, opt := range opts {
		opt(video)
	}

	err := f.db.Pool.QueryRow(context.Background(), `
		INSERT INTO videos (title, video_url, file_key, is_active, display_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, video.Title, video.VideoURL, video.FileKey, video.IsActive, video.DisplayOrder, video.CreatedAt).Scan(
		&video.ID, &video.CreatedAt, &video.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create video: %v", err)
	}

	return video
}

// VideoOption configures a test video
type VideoOption func(*models.Video)

// WithDisplayOrder sets the video's display order
func WithDisplayOrder(order int) VideoOption {
	return func(v *models.Video) {
		v.DisplayOrder = order
	}
}

// Inactive hides the video from public listings
func Inactive() VideoOption {
	return func(v *models.Video) {
		v.IsActive = false
	}
}

// CreateMission creates a test mission
func (f *Fixtures) CreateMission(t *testing.T, published bool) *models.Mission {
	t.Helper()
	f.counter++

	mission := &models.Mission{
		Title:       fmt.Sprintf("Mission %d", f.counter),
		IsPublished: published,
	}

	err := f.db.Pool.QueryRow(context.Background(), `
		INSERT INTO missions (title, is_published)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, mission.Title, mission.IsPublished).Scan(&mission.ID, &mission.CreatedAt, &mission.UpdatedAt)
	if err != nil {
		t.Fatalf("failed to create mission: %v", err)
	}

	return mission
}
