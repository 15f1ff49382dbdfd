package services

import (
	"context"

	"github.com/XrOne/jenia-portfolio/internal/database"
	"github.com/XrOne/jenia-portfolio/internal/models"
	"github.com/XrOne/jenia-portfolio/pkg/dto"
	"go.uber.org/zap"
)

const workflowColumns = `id, mission_id, title, description, tools_used, demo_url, code_snippet, display_order, created_at, updated_at`

type WorkflowService struct {
	db     *database.DB
	logger *zap.Logger
}

func NewWorkflowService(db *database.DB, logger *zap.Logger) *WorkflowService {
	return &WorkflowService{db: db, logger: logger.Named("workflows")}
}

func scanWorkflow(row rowScanner) (*models.Workflow, error) {
	var w models.Workflow
	err := row.Scan(
		&w.ID, &w.MissionID, &w.Title, &w.Description, &w.ToolsUsed,
		&w.DemoURL, &w.CodeSnippet, &w.DisplayOrder, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *WorkflowService) ListByMission(ctx context.Context, missionID int64) ([]models.Workflow, error) {
	return s.list(ctx, `SELECT `+workflowColumns+` FROM workflows WHERE mission_id = $1 ORDER BY display_order DESC, created_at DESC`, missionID)
}

func (s *WorkflowService) ListAll(ctx context.Context) ([]models.Workflow, error) {
	return s.list(ctx, `SELECT `+workflowColumns+` FROM workflows ORDER BY display_order DESC, created_at DESC`)
}

func (s *WorkflowService) list(ctx context.Context, query string, args ...any) ([]models.Workflow, error) {
	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workflows := []models.Workflow{}
	for rows.Next() {
		w, err := scanWorkflow(rows)
		if err != nil {
			return nil, err
		}
		workflows = append(workflows, *w)
	}
	return workflows, rows.Err()
}

func (s *WorkflowService) GetByID(ctx context.Context, id int64) (*models.Workflow, error) {
	w, err := scanWorkflow(s.db.Pool.QueryRow(ctx, `SELECT `+workflowColumns+` FROM workflows WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return w, nil
}

func (s *WorkflowService) Create(ctx context.Context, req dto.CreateWorkflowRequest) (*models.Workflow, error) {
	if blank(req.Title) {
		return nil, invalid("title", "is required")
	}

	w, err := scanWorkflow(s.db.Pool.QueryRow(ctx, `
		INSERT INTO workflows (mission_id, title, description, tools_used, demo_url, code_snippet, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+workflowColumns,
		req.MissionID, req.Title, req.Description, req.ToolsUsed, req.DemoURL, req.CodeSnippet,
		intOr(req.DisplayOrder, 0),
	))
	if err != nil {
		return nil, missingReference(err, "missionId")
	}

	s.logger.Info("workflow created", zap.Int64("id", w.ID))
	return w, nil
}

func (s *WorkflowService) Update(ctx context.Context, id int64, req dto.UpdateWorkflowRequest) (*models.Workflow, error) {
	switch {
	case req.Title != nil && blank(*req.Title):
		return nil, invalid("title", "must not be empty")
	case req.DetachMission && req.MissionID != nil:
		return nil, invalid("detachMission", "cannot be combined with missionId")
	}

	var u updateSet
	setIf(&u, "mission_id", req.MissionID)
	if req.DetachMission {
		u.clear("mission_id")
	}
	setIf(&u, "title", req.Title)
	setIf(&u, "description", req.Description)
	setIf(&u, "tools_used", req.ToolsUsed)
	setIf(&u, "demo_url", req.DemoURL)
	setIf(&u, "code_snippet", req.CodeSnippet)
	setIf(&u, "display_order", req.DisplayOrder)

	query, args, err := u.build("workflows", id, workflowColumns)
	if err != nil {
		return nil, err
	}

	w, err := scanWorkflow(s.db.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, missingReference(notFound(err), "missionId")
	}
	return w, nil
}

func (s *WorkflowService) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Pool.Exec(ctx, `DELETE FROM workflows WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
