package services

import (
	"context"

	"github.com/XrOne/jenia-portfolio/internal/database"
	"github.com/XrOne/jenia-portfolio/internal/models"
	"github.com/XrOne/jenia-portfolio/pkg/dto"
	"go.uber.org/zap"
)

const experienceColumns = `id, title, summary, content, type, media_url, tags, is_published, display_order, created_at, updated_at`

type ExperienceService struct {
	db     *database.DB
	logger *zap.Logger
}

func NewExperienceService(db *database.DB, logger *zap.Logger) *ExperienceService {
	return &ExperienceService{db: db, logger: logger.Named("experience")}
}

func scanExperience(row rowScanner) (*models.ExperiencePost, error) {
	var p models.ExperiencePost
	err := row.Scan(
		&p.ID, &p.Title, &p.Summary, &p.Content, &p.Type, &p.MediaURL,
		&p.Tags, &p.IsPublished, &p.DisplayOrder, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return &p, nil
}

// List returns published posts only.
func (s *ExperienceService) List(ctx context.Context) ([]models.ExperiencePost, error) {
	return s.list(ctx, `SELECT `+experienceColumns+` FROM experience_posts WHERE is_published = TRUE ORDER BY display_order DESC, created_at DESC`)
}

func (s *ExperienceService) ListAll(ctx context.Context) ([]models.ExperiencePost, error) {
	return s.list(ctx, `SELECT `+experienceColumns+` FROM experience_posts ORDER BY display_order DESC, created_at DESC`)
}

func (s *ExperienceService) list(ctx context.Context, query string) ([]models.ExperiencePost, error) {
	rows, err := s.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []models.ExperiencePost{}
	for rows.Next() {
		p, err := scanExperience(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

func (s *ExperienceService) GetByID(ctx context.Context, id int64) (*models.ExperiencePost, error) {
	p, err := scanExperience(s.db.Pool.QueryRow(ctx, `SELECT `+experienceColumns+` FROM experience_posts WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (s *ExperienceService) Create(ctx context.Context, req dto.CreateExperienceRequest) (*models.ExperiencePost, error) {
	switch {
	case blank(req.Title):
		return nil, invalid("title", "is required")
	case !models.ValidExperienceType(req.Type):
		return nil, invalid("type", "must be one of notebook, video, podcast, article")
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	p, err := scanExperience(s.db.Pool.QueryRow(ctx, `
		INSERT INTO experience_posts (title, summary, content, type, media_url, tags, is_published, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+experienceColumns,
		req.Title, req.Summary, req.Content, req.Type, req.MediaURL, tags,
		boolOr(req.IsPublished, false), intOr(req.DisplayOrder, 0),
	))
	if err != nil {
		return nil, err
	}

	s.logger.Info("experience post created", zap.Int64("id", p.ID), zap.String("type", p.Type))
	return p, nil
}

func (s *ExperienceService) Update(ctx context.Context, id int64, req dto.UpdateExperienceRequest) (*models.ExperiencePost, error) {
	switch {
	case req.Title != nil && blank(*req.Title):
		return nil, invalid("title", "must not be empty")
	case req.Type != nil && !models.ValidExperienceType(*req.Type):
		return nil, invalid("type", "must be one of notebook, video, podcast, article")
	}

	var u updateSet
	setIf(&u, "title", req.Title)
	setIf(&u, "summary", req.Summary)
	setIf(&u, "content", req.Content)
	setIf(&u, "type", req.Type)
	setIf(&u, "media_url", req.MediaURL)
	setIf(&u, "tags", req.Tags)
	setIf(&u, "is_published", req.IsPublished)
	setIf(&u, "display_order", req.DisplayOrder)

	query, args, err := u.build("experience_posts", id, experienceColumns)
	if err != nil {
		return nil, err
	}

	p, err := scanExperience(s.db.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (s *ExperienceService) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Pool.Exec(ctx, `DELETE FROM experience_posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
