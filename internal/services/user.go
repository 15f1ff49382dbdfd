package services

import (
	"context"
	"fmt"

	"github.com/XrOne/jenia-portfolio/internal/database"
	"github.com/XrOne/jenia-portfolio/internal/identity"
	"github.com/XrOne/jenia-portfolio/internal/models"
	"go.uber.org/zap"
)

const userColumns = `id, open_id, name, email, login_method, role, created_at, updated_at, last_signed_in`

type UserService struct {
	db          *database.DB
	ownerOpenID string
	logger      *zap.Logger
}

func NewUserService(db *database.DB, ownerOpenID string, logger *zap.Logger) *UserService {
	return &UserService{db: db, ownerOpenID: ownerOpenID, logger: logger.Named("users")}
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.OpenID, &u.Name, &u.Email, &u.LoginMethod,
		&u.Role, &u.CreatedAt, &u.UpdatedAt, &u.LastSignedIn,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpsertFromIdentity creates or refreshes the local user keyed by the
// provider email. New users get the user role; the owner is promoted to admin.
func (s *UserService) UpsertFromIdentity(ctx context.Context, info *identity.UserInfo) (*models.User, error) {
	if blank(info.Email) {
		return nil, invalid("email", "is required")
	}

	isOwner := s.ownerOpenID != "" && info.Email == s.ownerOpenID
	role := models.RoleUser
	if isOwner {
		role = models.RoleAdmin
	}

	user, err := scanUser(s.db.Pool.QueryRow(ctx, `
		INSERT INTO users (open_id, name, email, login_method, role, last_signed_in)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (open_id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			login_method = EXCLUDED.login_method,
			last_signed_in = NOW(),
			updated_at = NOW(),
			role = CASE WHEN $6 THEN 'admin' ELSE users.role END
		RETURNING `+userColumns,
		info.Email, info.Name, info.Email, info.Provider, role, isOwner,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	if isOwner {
		s.logger.Info("owner signed in", zap.String("open_id", user.OpenID))
	}
	return user, nil
}

func (s *UserService) GetByOpenID(ctx context.Context, openID string) (*models.User, error) {
	user, err := scanUser(s.db.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE open_id = $1`, openID))
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.Pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (s *UserService) SetRole(ctx context.Context, id int64, role string) (*models.User, error) {
	if !models.ValidRole(role) {
		return nil, invalid("role", "must be user or admin")
	}

	user, err := scanUser(s.db.Pool.QueryRow(ctx, `
		UPDATE users SET role = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+userColumns, role, id))
	if err != nil {
		return nil, notFound(err)
	}

	s.logger.Info("user role changed", zap.Int64("id", id), zap.String("role", role))
	return user, nil
}

// SetRoleByOpenID is the CLI variant of SetRole.
func (s *UserService) SetRoleByOpenID(ctx context.Context, openID, role string) (*models.User, error) {
	if !models.ValidRole(role) {
		return nil, invalid("role", "must be user or admin")
	}

	user, err := scanUser(s.db.Pool.QueryRow(ctx, `
		UPDATE users SET role = $1, updated_at = NOW()
		WHERE open_id = $2
		RETURNING `+userColumns, role, openID))
	if err != nil {
		return nil, notFound(err)
	}

	s.logger.Info("user role changed", zap.String("open_id", openID), zap.String("role", role))
	return user, nil
}
