package handlers

import (
	"context"
	"io"
	"time"

	"github.com/XrOne/jenia-portfolio/internal/identity"
	"github.com/XrOne/jenia-portfolio/internal/models"
	"github.com/XrOne/jenia-portfolio/internal/services"
	"github.com/XrOne/jenia-portfolio/internal/session"
	"github.com/XrOne/jenia-portfolio/pkg/dto"
)

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	UpsertFromIdentity(ctx context.Context, info *identity.UserInfo) (*models.User, error)
	GetByOpenID(ctx context.Context, openID string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	SetRole(ctx context.Context, id int64, role string) (*models.User, error)
}

// VideoServiceInterface defines the methods used by handlers from VideoService
type VideoServiceInterface interface {
	List(ctx context.Context) ([]models.Video, error)
	ListAll(ctx context.Context) ([]models.Video, error)
	GetByID(ctx context.Context, id int64) (*models.Video, error)
	Create(ctx context.Context, req dto.CreateVideoRequest) (*models.Video, error)
	Update(ctx context.Context, id int64, req dto.UpdateVideoRequest) (*models.Video, error)
	Delete(ctx context.Context, id int64) error
}

// MissionServiceInterface defines the methods used by handlers from MissionService
type MissionServiceInterface interface {
	List(ctx context.Context) ([]models.Mission, error)
	ListAll(ctx context.Context) ([]models.Mission, error)
	GetByID(ctx context.Context, id int64) (*models.Mission, error)
	Create(ctx context.Context, req dto.CreateMissionRequest) (*models.Mission, error)
	Update(ctx context.Context, id int64, req dto.UpdateMissionRequest) (*models.Mission, error)
	Delete(ctx context.Context, id int64) error
}

// WorkflowServiceInterface defines the methods used by handlers from WorkflowService
type WorkflowServiceInterface interface {
	ListAll(ctx context.Context) ([]models.Workflow, error)
	Create(ctx context.Context, req dto.CreateWorkflowRequest) (*models.Workflow, error)
	Update(ctx context.Context, id int64, req dto.UpdateWorkflowRequest) (*models.Workflow, error)
	Delete(ctx context.Context, id int64) error
}

// ExperienceServiceInterface defines the methods used by handlers from ExperienceService
type ExperienceServiceInterface interface {
	List(ctx context.Context) ([]models.ExperiencePost, error)
	ListAll(ctx context.Context) ([]models.ExperiencePost, error)
	GetByID(ctx context.Context, id int64) (*models.ExperiencePost, error)
	Create(ctx context.Context, req dto.CreateExperienceRequest) (*models.ExperiencePost, error)
	Update(ctx context.Context, id int64, req dto.UpdateExperienceRequest) (*models.ExperiencePost, error)
	Delete(ctx context.Context, id int64) error
}

// OfferingServiceInterface defines the methods used by handlers from OfferingService
type OfferingServiceInterface interface {
	List(ctx context.Context) ([]models.Service, error)
	ListAll(ctx context.Context) ([]models.Service, error)
	GetByID(ctx context.Context, id int64) (*models.Service, error)
	Create(ctx context.Context, req dto.CreateServiceRequest) (*models.Service, error)
	Update(ctx context.Context, id int64, req dto.UpdateServiceRequest) (*models.Service, error)
	Delete(ctx context.Context, id int64) error
}

// UploadServiceInterface defines the methods used by handlers from UploadService
type UploadServiceInterface interface {
	Store(ctx context.Context, fileName, contentType string, body io.Reader) (*services.UploadResult, error)
	SignUpload(ctx context.Context, fileName, contentType string) (*services.SignedUploadResult, error)
	MaxSize() int64
}

// SessionSigner issues session cookie values.
type SessionSigner interface {
	Sign(id session.Authenticated) (string, error)
	TTL() time.Duration
}

// Pinger reports database reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
