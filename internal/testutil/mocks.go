package testutil

import (
	"context"
	"io"

	"github.com/XrOne/jenia-portfolio/internal/identity"
	"github.com/XrOne/jenia-portfolio/internal/models"
	"github.com/XrOne/jenia-portfolio/internal/services"
	"github.com/XrOne/jenia-portfolio/pkg/dto"
	"github.com/stretchr/testify/mock"
)

// MockIdentityProvider mocks identity.Provider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) GetUser(ctx context.Context, accessToken string) (*identity.UserInfo, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.UserInfo), args.Error(1)
}

func (m *MockIdentityProvider) Name() string {
	return "mock"
}

// MockUserService mocks the UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) UpsertFromIdentity(ctx context.Context, info *identity.UserInfo) (*models.User, error) {
	args := m.Called(ctx, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByOpenID(ctx context.Context, openID string) (*models.User, error) {
	args := m.Called(ctx, openID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserService) SetRole(ctx context.Context, id int64, role string) (*models.User, error) {
	args := m.Called(ctx, id, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockVideoService mocks the VideoService
type MockVideoService struct {
	mock.Mock
}

func (m *MockVideoService) List(ctx context.Context) ([]models.Video, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Video), args.Error(1)
}

func (m *MockVideoService) ListAll(ctx context.Context) ([]models.Video, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Video), args.Error(1)
}

func (m *MockVideoService) GetByID(ctx context.Context, id int64) (*models.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Video), args.Error(1)
}

func (m *MockVideoService) Create(ctx context.Context, req dto.CreateVideoRequest) (*models.Video, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Video), args.Error(1)
}

func (m *MockVideoService) Update(ctx context.Context, id int64, req dto.UpdateVideoRequest) (*models.Video, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Video), args.Error(1)
}

func (m *MockVideoService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMissionService mocks the MissionService
type MockMissionService struct {
	mock.Mock
}

func (m *MockMissionService) List(ctx context.Context) ([]models.Mission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Mission), args.Error(1)
}

func (m *MockMissionService) ListAll(ctx context.Context) ([]models.Mission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Mission), args.Error(1)
}

func (m *MockMissionService) GetByID(ctx context.Context, id int64) (*models.Mission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mission), args.Error(1)
}

func (m *MockMissionService) Create(ctx context.Context, req dto.CreateMissionRequest) (*models.Mission, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mission), args.Error(1)
}

func (m *MockMissionService) Update(ctx context.Context, id int64, req dto.UpdateMissionRequest) (*models.Mission, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mission), args.Error(1)
}

func (m *MockMissionService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockWorkflowService mocks the WorkflowService
type MockWorkflowService struct {
	mock.Mock
}

func (m *MockWorkflowService) ListAll(ctx context.Context) ([]models.Workflow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Workflow), args.Error(1)
}

func (m *MockWorkflowService) Create(ctx context.Context, req dto.CreateWorkflowRequest) (*models.Workflow, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Workflow), args.Error(1)
}

func (m *MockWorkflowService) Update(ctx context.Context, id int64, req dto.UpdateWorkflowRequest) (*models.Workflow, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Workflow), args.Error(1)
}

func (m *MockWorkflowService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockExperienceService mocks the ExperienceService
type MockExperienceService struct {
	mock.Mock
}

func (m *MockExperienceService) List(ctx context.Context) ([]models.ExperiencePost, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ExperiencePost), args.Error(1)
}

func (m *MockExperienceService) ListAll(ctx context.Context) ([]models.ExperiencePost, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ExperiencePost), args.Error(1)
}

func (m *MockExperienceService) GetByID(ctx context.Context, id int64) (*models.ExperiencePost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExperiencePost), args.Error(1)
}

func (m *MockExperienceService) Create(ctx context.Context, req dto.CreateExperienceRequest) (*models.ExperiencePost, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExperiencePost), args.Error(1)
}

func (m *MockExperienceService) Update(ctx context.Context, id int64, req dto.UpdateExperienceRequest) (*models.ExperiencePost, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExperiencePost), args.Error(1)
}

func (m *MockExperienceService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockOfferingService mocks the OfferingService
type MockOfferingService struct {
	mock.Mock
}

func (m *MockOfferingService) List(ctx context.Context) ([]models.Service, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Service), args.Error(1)
}

func (m *MockOfferingService) ListAll(ctx context.Context) ([]models.Service, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Service), args.Error(1)
}

func (m *MockOfferingService) GetByID(ctx context.Context, id int64) (*models.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *MockOfferingService) Create(ctx context.Context, req dto.CreateServiceRequest) (*models.Service, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *MockOfferingService) Update(ctx context.Context, id int64, req dto.UpdateServiceRequest) (*models.Service, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *MockOfferingService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUploadService mocks the UploadService. Store drains the body so the
// handler sees the whole multipart part consumed.
type MockUploadService struct {
	mock.Mock
	Received []byte
}

func (m *MockUploadService) Store(ctx context.Context, fileName, contentType string, body io.Reader) (*services.UploadResult, error) {
	m.Received, _ = io.ReadAll(body)
	args := m.Called(ctx, fileName, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.UploadResult), args.Error(1)
}

func (m *MockUploadService) SignUpload(ctx context.Context, fileName, contentType string) (*services.SignedUploadResult, error) {
	args := m.Called(ctx, fileName, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SignedUploadResult), args.Error(1)
}

func (m *MockUploadService) MaxSize() int64 {
	args := m.Called()
	return args.Get(0).(int64)
}

// NopPinger reports a healthy database
type NopPinger struct{}

func (NopPinger) Ping(ctx context.Context) error {
	return nil
}
