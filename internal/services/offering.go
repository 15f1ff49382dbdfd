package services

import (
	"context"
	"encoding/json"

	"github.com/XrOne/jenia-portfolio/internal/database"
	"github.com/XrOne/jenia-portfolio/internal/models"
	"github.com/XrOne/jenia-portfolio/pkg/dto"
	"go.uber.org/zap"
)

const serviceColumns = `id, name, description, features, price_description, is_active, display_order, created_at, updated_at`

// OfferingService manages the rows of the services table.
type OfferingService struct {
	db     *database.DB
	logger *zap.Logger
}

func NewOfferingService(db *database.DB, logger *zap.Logger) *OfferingService {
	return &OfferingService{db: db, logger: logger.Named("services")}
}

func scanService(row rowScanner) (*models.Service, error) {
	var o models.Service
	err := row.Scan(
		&o.ID, &o.Name, &o.Description, &o.Features, &o.PriceDescription,
		&o.IsActive, &o.DisplayOrder, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// validFeatures accepts a JSON array of strings only.
func validFeatures(features string) bool {
	var list []string
	return json.Unmarshal([]byte(features), &list) == nil && list != nil
}

// List returns active offerings only.
func (s *OfferingService) List(ctx context.Context) ([]models.Service, error) {
	return s.list(ctx, `SELECT `+serviceColumns+` FROM services WHERE is_active = TRUE ORDER BY display_order DESC, created_at DESC`)
}

func (s *OfferingService) ListAll(ctx context.Context) ([]models.Service, error) {
	return s.list(ctx, `SELECT `+serviceColumns+` FROM services ORDER BY display_order DESC, created_at DESC`)
}

func (s *OfferingService) list(ctx context.Context, query string) ([]models.Service, error) {
	rows, err := s.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	offerings := []models.Service{}
	for rows.Next() {
		o, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		offerings = append(offerings, *o)
	}
	return offerings, rows.Err()
}

func (s *OfferingService) GetByID(ctx context.Context, id int64) (*models.Service, error) {
	o, err := scanService(s.db.Pool.QueryRow(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return o, nil
}

func (s *OfferingService) Create(ctx context.Context, req dto.CreateServiceRequest) (*models.Service, error) {
	features := "[]"
	if req.Features != nil {
		features = *req.Features
	}

	switch {
	case blank(req.Name):
		return nil, invalid("name", "is required")
	case blank(req.Description):
		return nil, invalid("description", "is required")
	case !validFeatures(features):
		return nil, invalid("features", "must be a JSON array of strings")
	}

	o, err := scanService(s.db.Pool.QueryRow(ctx, `
		INSERT INTO services (name, description, features, price_description, is_active, display_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+serviceColumns,
		req.Name, req.Description, features, req.PriceDescription,
		boolOr(req.IsActive, true), intOr(req.DisplayOrder, 0),
	))
	if err != nil {
		return nil, err
	}

	s.logger.Info("service created", zap.Int64("id", o.ID))
	return o, nil
}

func (s *OfferingService) Update(ctx context.Context, id int64, req dto.UpdateServiceRequest) (*models.Service, error) {
	switch {
	case req.Name != nil && blank(*req.Name):
		return nil, invalid("name", "must not be empty")
	case req.Description != nil && blank(*req.Description):
		return nil, invalid("description", "must not be empty")
	case req.Features != nil && !validFeatures(*req.Features):
		return nil, invalid("features", "must be a JSON array of strings")
	}

	var u updateSet
	setIf(&u, "name", req.Name)
	setIf(&u, "description", req.Description)
	setIf(&u, "features", req.Features)
	setIf(&u, "price_description", req.PriceDescription)
	setIf(&u, "is_active", req.IsActive)
	setIf(&u, "display_order", req.DisplayOrder)

	query, args, err := u.build("services", id, serviceColumns)
	if err != nil {
		return nil, err
	}

	o, err := scanService(s.db.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, notFound(err)
	}
	return o, nil
}

func (s *OfferingService) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Pool.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
