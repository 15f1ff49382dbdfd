package services

import (
	"context"

	"github.com/XrOne/jenia-portfolio/internal/database"
	"github.com/XrOne/jenia-portfolio/internal/models"
	"github.com/XrOne/jenia-portfolio/internal/storage"
	"github.com/XrOne/jenia-portfolio/pkg/dto"
	"go.uber.org/zap"
)

const videoColumns = `id, title, description, video_url, thumbnail_url, file_key, duration, is_active, display_order, created_at, updated_at`

// ObjectDeleter removes a stored object by key.
type ObjectDeleter interface {
	Delete(ctx context.Context, key string) error
}

type VideoService struct {
	db      *database.DB
	objects ObjectDeleter
	logger  *zap.Logger
}

func NewVideoService(db *database.DB, objects ObjectDeleter, logger *zap.Logger) *VideoService {
	return &VideoService{db: db, objects: objects, logger: logger.Named("videos")}
}

func scanVideo(row rowScanner) (*models.Video, error) {
	var v models.Video
	err := row.Scan(
		&v.ID, &v.Title, &v.Description, &v.VideoURL, &v.ThumbnailURL, &v.FileKey,
		&v.Duration, &v.IsActive, &v.DisplayOrder, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// List returns active videos only.
func (s *VideoService) List(ctx context.Context) ([]models.Video, error) {
	return s.list(ctx, `SELECT `+videoColumns+` FROM videos WHERE is_active = TRUE ORDER BY display_order DESC, created_at DESC`)
}

func (s *VideoService) ListAll(ctx context.Context) ([]models.Video, error) {
	return s.list(ctx, `SELECT `+videoColumns+` FROM videos ORDER BY display_order DESC, created_at DESC`)
}

func (s *VideoService) list(ctx context.Context, query string) ([]models.Video, error) {
	rows, err := s.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	videos := []models.Video{}
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, *v)
	}
	return videos, rows.Err()
}

func (s *VideoService) GetByID(ctx context.Context, id int64) (*models.Video, error) {
	v, err := scanVideo(s.db.Pool.QueryRow(ctx, `SELECT `+videoColumns+` FROM videos WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return v, nil
}

func (s *VideoService) Create(ctx context.Context, req dto.CreateVideoRequest) (*models.Video, error) {
	req.FileKey = storage.NormalizeKey(req.FileKey)

	switch {
	case blank(req.Title):
		return nil, invalid("title", "is required")
	case blank(req.VideoURL):
		return nil, invalid("videoUrl", "is required")
	case blank(req.FileKey):
		return nil, invalid("fileKey", "is required")
	case req.Duration != nil && *req.Duration < 0:
		return nil, invalid("duration", "must not be negative")
	}

	v, err := scanVideo(s.db.Pool.QueryRow(ctx, `
		INSERT INTO videos (title, description, video_url, thumbnail_url, file_key, duration, is_active, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+videoColumns,
		req.Title, req.Description, req.VideoURL, req.ThumbnailURL, req.FileKey,
		req.Duration, boolOr(req.IsActive, true), intOr(req.DisplayOrder, 0),
	))
	if err != nil {
		return nil, err
	}

	s.logger.Info("video created", zap.Int64("id", v.ID), zap.String("file_key", v.FileKey))
	return v, nil
}

func (s *VideoService) Update(ctx context.Context, id int64, req dto.UpdateVideoRequest) (*models.Video, error) {
	if req.FileKey != nil {
		key := storage.NormalizeKey(*req.FileKey)
		req.FileKey = &key
	}

	switch {
	case req.Title != nil && blank(*req.Title):
		return nil, invalid("title", "must not be empty")
	case req.VideoURL != nil && blank(*req.VideoURL):
		return nil, invalid("videoUrl", "must not be empty")
	case req.FileKey != nil && blank(*req.FileKey):
		return nil, invalid("fileKey", "must not be empty")
	case req.Duration != nil && *req.Duration < 0:
		return nil, invalid("duration", "must not be negative")
	}

	var u updateSet
	setIf(&u, "title", req.Title)
	setIf(&u, "description", req.Description)
	setIf(&u, "video_url", req.VideoURL)
	setIf(&u, "thumbnail_url", req.ThumbnailURL)
	setIf(&u, "file_key", req.FileKey)
	setIf(&u, "duration", req.Duration)
	setIf(&u, "is_active", req.IsActive)
	setIf(&u, "display_order", req.DisplayOrder)

	query, args, err := u.build("videos", id, videoColumns)
	if err != nil {
		return nil, err
	}

	v, err := scanVideo(s.db.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, notFound(err)
	}
	return v, nil
}

// Delete removes the row, then the backing object. A failed object delete is
// logged and leaves an orphan in the bucket.
func (s *VideoService) Delete(ctx context.Context, id int64) error {
	var fileKey string
	err := s.db.Pool.QueryRow(ctx, `DELETE FROM videos WHERE id = $1 RETURNING file_key`, id).Scan(&fileKey)
	if err != nil {
		return notFound(err)
	}

	if s.objects != nil && fileKey != "" {
		if err := s.objects.Delete(ctx, fileKey); err != nil {
			s.logger.Warn("failed to delete video object", zap.Int64("id", id), zap.String("file_key", fileKey), zap.Error(err))
		}
	}
	return nil
}
