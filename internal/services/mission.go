package services

import (
	"context"

	"github.com/XrOne/jenia-portfolio/internal/database"
	"github.com/XrOne/jenia-portfolio/internal/models"
	"github.com/XrOne/jenia-portfolio/pkg/dto"
	"go.uber.org/zap"
)

const missionColumns = `id, title, client_name, description, cover_image_url, is_published, display_order, created_at, updated_at`

type MissionService struct {
	db        *database.DB
	workflows *WorkflowService
	logger    *zap.Logger
}

func NewMissionService(db *database.DB, workflows *WorkflowService, logger *zap.Logger) *MissionService {
	return &MissionService{db: db, workflows: workflows, logger: logger.Named("missions")}
}

func scanMission(row rowScanner) (*models.Mission, error) {
	var m models.Mission
	err := row.Scan(
		&m.ID, &m.Title, &m.ClientName, &m.Description, &m.CoverImageURL,
		&m.IsPublished, &m.DisplayOrder, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns published missions only.
func (s *MissionService) List(ctx context.Context) ([]models.Mission, error) {
	return s.list(ctx, `SELECT `+missionColumns+` FROM missions WHERE is_published = TRUE ORDER BY display_order DESC, created_at DESC`)
}

func (s *MissionService) ListAll(ctx context.Context) ([]models.Mission, error) {
	return s.list(ctx, `SELECT `+missionColumns+` FROM missions ORDER BY display_order DESC, created_at DESC`)
}

func (s *MissionService) list(ctx context.Context, query string) ([]models.Mission, error) {
	rows, err := s.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	missions := []models.Mission{}
	for rows.Next() {
		m, err := scanMission(rows)
		if err != nil {
			return nil, err
		}
		missions = append(missions, *m)
	}
	return missions, rows.Err()
}

// GetByID returns the mission with its workflows attached.
func (s *MissionService) GetByID(ctx context.Context, id int64) (*models.Mission, error) {
	m, err := scanMission(s.db.Pool.QueryRow(ctx, `SELECT `+missionColumns+` FROM missions WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}

	workflows, err := s.workflows.ListByMission(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Workflows = workflows
	return m, nil
}

func (s *MissionService) Create(ctx context.Context, req dto.CreateMissionRequest) (*models.Mission, error) {
	if blank(req.Title) {
		return nil, invalid("title", "is required")
	}

	m, err := scanMission(s.db.Pool.QueryRow(ctx, `
		INSERT INTO missions (title, client_name, description, cover_image_url, is_published, display_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+missionColumns,
		req.Title, req.ClientName, req.Description, req.CoverImageURL,
		boolOr(req.IsPublished, false), intOr(req.DisplayOrder, 0),
	))
	if err != nil {
		return nil, err
	}

	s.logger.Info("mission created", zap.Int64("id", m.ID))
	return m, nil
}

func (s *MissionService) Update(ctx context.Context, id int64, req dto.UpdateMissionRequest) (*models.Mission, error) {
	if req.Title != nil && blank(*req.Title) {
		return nil, invalid("title", "must not be empty")
	}

	var u updateSet
	setIf(&u, "title", req.Title)
	setIf(&u, "client_name", req.ClientName)
	setIf(&u, "description", req.Description)
	setIf(&u, "cover_image_url", req.CoverImageURL)
	setIf(&u, "is_published", req.IsPublished)
	setIf(&u, "display_order", req.DisplayOrder)

	query, args, err := u.build("missions", id, missionColumns)
	if err != nil {
		return nil, err
	}

	m, err := scanMission(s.db.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, notFound(err)
	}
	return m, nil
}

// Delete removes the mission. Its workflows are kept with mission_id set to NULL.
func (s *MissionService) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Pool.Exec(ctx, `DELETE FROM missions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
