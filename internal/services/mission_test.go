package services

import (
	"context"
	"testing"
	"time"

	"github.com/XrOne/jenia-portfolio/internal/database"
	"github.com/XrOne/jenia-portfolio/pkg/dto"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var missionCols = []string{
	"id", "title", "client_name", "description", "cover_image_url", "is_published", "display_order", "created_at", "updated_at",
}

var workflowCols = []string{
	"id", "mission_id", "title", "description", "tools_used", "demo_url", "code_snippet", "display_order", "created_at", "updated_at",
}

func setupMissionService(t *testing.T) (*MissionService, *WorkflowService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	logger := zaptest.NewLogger(t)
	workflows := NewWorkflowService(db, logger)
	return NewMissionService(db, workflows, logger), workflows, mock
}

func int64Ptr(i int64) *int64 { return &i }

func TestMissionService_List_PublishedOnly(t *testing.T) {
	svc, _, mock := setupMissionService(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM missions WHERE is_published = TRUE ORDER BY display_order DESC, created_at DESC`).
		WillReturnRows(pgxmock.NewRows(missionCols).
			AddRow(int64(2), "Campaign", strPtr("Acme"), (*string)(nil), (*string)(nil), true, 3, now, now).
			AddRow(int64(1), "Teaser", (*string)(nil), (*string)(nil), (*string)(nil), true, 1, now, now))

	missions, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, missions, 2)
	assert.Equal(t, "Acme", *missions[0].ClientName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMissionService_GetByID_IncludesWorkflows(t *testing.T) {
	svc, _, mock := setupMissionService(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM missions WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(missionCols).
			AddRow(int64(7), "Campaign", (*string)(nil), (*string)(nil), (*string)(nil), true, 0, now, now))

	mock.ExpectQuery(`SELECT .+ FROM workflows WHERE mission_id = \$1 ORDER BY display_order DESC, created_at DESC`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(workflowCols).
			AddRow(int64(1), int64Ptr(7), "Upscale pass", (*string)(nil), strPtr("Topaz, ComfyUI"), (*string)(nil), (*string)(nil), 0, now, now))

	mission, err := svc.GetByID(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, mission.Workflows, 1)
	assert.Equal(t, "Upscale pass", mission.Workflows[0].Title)
	assert.Equal(t, []string{"Topaz", "ComfyUI"}, mission.Workflows[0].Tools())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMissionService_GetByID_NotFound(t *testing.T) {
	svc, _, mock := setupMissionService(t)

	mock.ExpectQuery(`SELECT .+ FROM missions WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.GetByID(context.Background(), 7)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMissionService_Create(t *testing.T) {
	svc, _, mock := setupMissionService(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO missions`).
		WithArgs("Campaign", strPtr("Acme"), (*string)(nil), (*string)(nil), false, 0).
		WillReturnRows(pgxmock.NewRows(missionCols).
			AddRow(int64(1), "Campaign", strPtr("Acme"), (*string)(nil), (*string)(nil), false, 0, now, now))

	mission, err := svc.Create(context.Background(), dto.CreateMissionRequest{Title: "Campaign", ClientName: strPtr("Acme")})

	require.NoError(t, err)
	assert.False(t, mission.IsPublished)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMissionService_Create_RequiresTitle(t *testing.T) {
	svc, _, mock := setupMissionService(t)

	_, err := svc.Create(context.Background(), dto.CreateMissionRequest{})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Field)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMissionService_Update_Partial(t *testing.T) {
	svc, _, mock := setupMissionService(t)
	now := time.Now()

	mock.ExpectQuery(`UPDATE missions SET is_published = \$1, display_order = \$2, updated_at = NOW\(\) WHERE id = \$3`).
		WithArgs(true, 9, int64(3)).
		WillReturnRows(pgxmock.NewRows(missionCols).
			AddRow(int64(3), "Kept title", (*string)(nil), (*string)(nil), (*string)(nil), true, 9, now, now))

	mission, err := svc.Update(context.Background(), 3, dto.UpdateMissionRequest{IsPublished: boolPtr(true), DisplayOrder: intPtr(9)})

	require.NoError(t, err)
	assert.Equal(t, "Kept title", mission.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMissionService_Delete(t *testing.T) {
	svc, _, mock := setupMissionService(t)

	mock.ExpectExec(`DELETE FROM missions WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM missions WHERE id = \$1`).
		WithArgs(int64(4)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.NoError(t, svc.Delete(context.Background(), 3))
	assert.ErrorIs(t, svc.Delete(context.Background(), 4), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkflowService_Create_UnknownMission(t *testing.T) {
	_, workflows, mock := setupMissionService(t)

	mock.ExpectQuery(`INSERT INTO workflows`).
		WithArgs(int64Ptr(42), "Pass", (*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil), 0).
		WillReturnError(&pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"})

	_, err := workflows.Create(context.Background(), dto.CreateWorkflowRequest{MissionID: int64Ptr(42), Title: "Pass"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "missionId", verr.Field)
}

func TestWorkflowService_ListAll(t *testing.T) {
	_, workflows, mock := setupMissionService(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM workflows ORDER BY display_order DESC, created_at DESC`).
		WillReturnRows(pgxmock.NewRows(workflowCols).
			AddRow(int64(2), (*int64)(nil), "Orphan", (*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil), 0, now, now))

	list, err := workflows.ListAll(context.Background())

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].MissionID)
}

func TestWorkflowService_Update_NoFields(t *testing.T) {
	_, workflows, _ := setupMissionService(t)

	_, err := workflows.Update(context.Background(), 1, dto.UpdateWorkflowRequest{})

	assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
}

func TestWorkflowService_Update_DetachMission(t *testing.T) {
	_, workflows, mock := setupMissionService(t)
	now := time.Now()

	mock.ExpectQuery(`UPDATE workflows SET mission_id = NULL, updated_at = NOW\(\) WHERE id = \$1 RETURNING`).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows(workflowCols).
			AddRow(int64(3), (*int64)(nil), "Grade", (*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil), 0, now, now))

	w, err := workflows.Update(context.Background(), 3, dto.UpdateWorkflowRequest{DetachMission: true})

	require.NoError(t, err)
	assert.Nil(t, w.MissionID)
	assert.NoError(t, mock.ExpectationsWereMet())

	_, err = workflows.Update(context.Background(), 3, dto.UpdateWorkflowRequest{DetachMission: true, MissionID: int64Ptr(1)})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "detachMission", verr.Field)
}

func TestWorkflowService_Delete_NotFound(t *testing.T) {
	_, workflows, mock := setupMissionService(t)

	mock.ExpectExec(`DELETE FROM workflows WHERE id = \$1`).
		WithArgs(int64(8)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(t, workflows.Delete(context.Background(), 8), ErrNotFound)
}
