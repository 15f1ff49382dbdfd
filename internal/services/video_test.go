package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/XrOne/jenia-portfolio/internal/database"
	"github.com/XrOne/jenia-portfolio/pkg/dto"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeObjects struct {
	deleted []string
	err     error
}

func (f *fakeObjects) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return f.err
}

var videoCols = []string{
	"id", "title", "description", "video_url", "thumbnail_url", "file_key",
	"duration", "is_active", "display_order", "created_at", "updated_at",
}

func setupVideoService(t *testing.T) (*VideoService, pgxmock.PgxPoolIface, *fakeObjects) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	objects := &fakeObjects{}
	db := &database.DB{Pool: mock}
	return NewVideoService(db, objects, zaptest.NewLogger(t)), mock, objects
}

func videoRow(rows *pgxmock.Rows, id int64, title string, active bool, order int, created time.Time) *pgxmock.Rows {
	return rows.AddRow(id, title, (*string)(nil), "https://cdn.example.com/"+title+".mp4", (*string)(nil),
		"videos/"+title+".mp4", (*int)(nil), active, order, created, created)
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

func TestVideoService_Create_RequiresVideoURLAndFileKey(t *testing.T) {
	svc, mock, _ := setupVideoService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		req   dto.CreateVideoRequest
		field string
	}{
		{"missing title", dto.CreateVideoRequest{VideoURL: "u", FileKey: "k"}, "title"},
		{"missing videoUrl", dto.CreateVideoRequest{Title: "t", FileKey: "k"}, "videoUrl"},
		{"missing fileKey", dto.CreateVideoRequest{Title: "t", VideoURL: "u"}, "fileKey"},
		{"blank fileKey", dto.CreateVideoRequest{Title: "t", VideoURL: "u", FileKey: "  "}, "fileKey"},
		{"negative duration", dto.CreateVideoRequest{Title: "t", VideoURL: "u", FileKey: "k", Duration: intPtr(-1)}, "duration"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.req)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}

	// No statement may reach the database.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoService_Create_Defaults(t *testing.T) {
	svc, mock, _ := setupVideoService(t)
	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO videos`).
		WithArgs("Reel", (*string)(nil), "https://cdn.example.com/reel.mp4", (*string)(nil), "videos/reel.mp4",
			(*int)(nil), true, 0).
		WillReturnRows(pgxmock.NewRows(videoCols).AddRow(int64(1), "Reel", (*string)(nil),
			"https://cdn.example.com/reel.mp4", (*string)(nil), "videos/reel.mp4", (*int)(nil), true, 0, now, now))

	video, err := svc.Create(ctx, dto.CreateVideoRequest{
		Title:    "Reel",
		VideoURL: "https://cdn.example.com/reel.mp4",
		FileKey:  "/videos/reel.mp4",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), video.ID)
	assert.True(t, video.IsActive)
	assert.Equal(t, 0, video.DisplayOrder)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoService_List_ActiveOnlyAndOrdered(t *testing.T) {
	svc, mock, _ := setupVideoService(t)
	ctx := context.Background()
	base := time.Now()

	rows := pgxmock.NewRows(videoCols)
	videoRow(rows, 3, "c", true, 0, base.Add(2*time.Second))
	videoRow(rows, 2, "b", true, 0, base.Add(time.Second))
	videoRow(rows, 1, "a", true, 0, base)

	mock.ExpectQuery(`SELECT .+ FROM videos WHERE is_active = TRUE ORDER BY display_order DESC, created_at DESC`).
		WillReturnRows(rows)

	videos, err := svc.List(ctx)

	require.NoError(t, err)
	require.Len(t, videos, 3)
	assert.Equal(t, []int64{3, 2, 1}, []int64{videos[0].ID, videos[1].ID, videos[2].ID})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoService_ListAll_Unfiltered(t *testing.T) {
	svc, mock, _ := setupVideoService(t)
	now := time.Now()

	rows := pgxmock.NewRows(videoCols)
	videoRow(rows, 2, "hidden", false, 5, now)
	videoRow(rows, 1, "shown", true, 1, now)

	mock.ExpectQuery(`SELECT .+ FROM videos ORDER BY display_order DESC, created_at DESC`).WillReturnRows(rows)

	videos, err := svc.ListAll(context.Background())

	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.False(t, videos[0].IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoService_List_Empty(t *testing.T) {
	svc, mock, _ := setupVideoService(t)

	mock.ExpectQuery(`SELECT .+ FROM videos`).WillReturnRows(pgxmock.NewRows(videoCols))

	videos, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, videos)
	assert.Empty(t, videos)
}

func TestVideoService_GetByID_NotFound(t *testing.T) {
	svc, mock, _ := setupVideoService(t)

	mock.ExpectQuery(`SELECT .+ FROM videos WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.GetByID(context.Background(), 99)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoService_GetByID_TransportError(t *testing.T) {
	svc, mock, _ := setupVideoService(t)

	mock.ExpectQuery(`SELECT .+ FROM videos WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnError(errors.New("connection reset"))

	_, err := svc.GetByID(context.Background(), 1)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestVideoService_Update_Partial(t *testing.T) {
	svc, mock, _ := setupVideoService(t)
	now := time.Now()

	mock.ExpectQuery(`UPDATE videos SET is_active = \$1, updated_at = NOW\(\) WHERE id = \$2 RETURNING`).
		WithArgs(false, int64(4)).
		WillReturnRows(videoRow(pgxmock.NewRows(videoCols), 4, "reel", false, 2, now))

	video, err := svc.Update(context.Background(), 4, dto.UpdateVideoRequest{IsActive: boolPtr(false)})

	require.NoError(t, err)
	assert.False(t, video.IsActive)
	assert.Equal(t, "reel", video.Title)
	assert.Equal(t, 2, video.DisplayOrder)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoService_Update_NoFields(t *testing.T) {
	svc, mock, _ := setupVideoService(t)

	_, err := svc.Update(context.Background(), 4, dto.UpdateVideoRequest{})

	assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoService_Update_RejectsEmptyFileKey(t *testing.T) {
	svc, _, _ := setupVideoService(t)

	_, err := svc.Update(context.Background(), 4, dto.UpdateVideoRequest{FileKey: strPtr("")})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "fileKey", verr.Field)
}

func TestVideoService_Update_NormalizesFileKey(t *testing.T) {
	svc, mock, _ := setupVideoService(t)
	now := time.Now()

	mock.ExpectQuery(`UPDATE videos SET file_key = \$1, updated_at = NOW\(\) WHERE id = \$2 RETURNING`).
		WithArgs("videos/reel.mp4", int64(4)).
		WillReturnRows(videoRow(pgxmock.NewRows(videoCols), 4, "reel", true, 0, now))

	video, err := svc.Update(context.Background(), 4, dto.UpdateVideoRequest{FileKey: strPtr("//videos/reel.mp4")})

	require.NoError(t, err)
	assert.Equal(t, "videos/reel.mp4", video.FileKey)
	assert.NoError(t, mock.ExpectationsWereMet())

	_, err = svc.Update(context.Background(), 4, dto.UpdateVideoRequest{FileKey: strPtr("/")})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "fileKey", verr.Field)
}

func TestVideoService_Update_NotFound(t *testing.T) {
	svc, mock, _ := setupVideoService(t)

	mock.ExpectQuery(`UPDATE videos`).
		WithArgs("x", int64(404)).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.Update(context.Background(), 404, dto.UpdateVideoRequest{Title: strPtr("x")})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVideoService_Delete_RemovesObject(t *testing.T) {
	svc, mock, objects := setupVideoService(t)

	mock.ExpectQuery(`DELETE FROM videos WHERE id = \$1 RETURNING file_key`).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"file_key"}).AddRow("videos/reel.mp4"))

	err := svc.Delete(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, []string{"videos/reel.mp4"}, objects.deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoService_Delete_ObjectFailureIsNotFatal(t *testing.T) {
	svc, mock, objects := setupVideoService(t)
	objects.err = errors.New("storage unavailable")

	mock.ExpectQuery(`DELETE FROM videos`).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"file_key"}).AddRow("videos/reel.mp4"))

	assert.NoError(t, svc.Delete(context.Background(), 5))
}

func TestVideoService_Delete_NotFound(t *testing.T) {
	svc, mock, objects := setupVideoService(t)

	mock.ExpectQuery(`DELETE FROM videos`).
		WithArgs(int64(5)).
		WillReturnError(pgx.ErrNoRows)

	err := svc.Delete(context.Background(), 5)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, objects.deleted)
}
