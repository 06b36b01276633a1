package approvalworkflow

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"

	approvalworkflowerrors "go-hrms/internal/approvalworkflow/errors"
	"go-hrms/internal/shared/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateWorkflowRequest) (WorkflowResponse, error)
	GetAll(ctx context.Context, q response.PageQuery, module string) ([]WorkflowResponse, int64, error)
	GetByID(ctx context.Context, id string) (WorkflowResponse, error)
	Update(ctx context.Context, id string, req UpdateWorkflowRequest) (WorkflowResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("approvalworkflow.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("approvalworkflow.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateWorkflowRequest) (WorkflowResponse, error) {
	w := &ApprovalWorkflow{ID: uuid.New(), IsActive: true}
	if err := apply(w, req); err != nil {
		return WorkflowResponse{}, err
	}
	steps, err := buildSteps(w.ID, req.Steps)
	if err != nil {
		return WorkflowResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WorkflowResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := ensureSingleActive(ctx, qtx, w); err != nil {
		return WorkflowResponse{}, err
	}
	if err := checkApprovers(ctx, qtx, steps); err != nil {
		return WorkflowResponse{}, err
	}

	w.Steps = steps
	if err := qtx.Create(ctx, w); err != nil {
		return WorkflowResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return WorkflowResponse{}, err
	}

	s.logger.Info("approval workflow created",
		zap.String("workflow_id", w.ID.String()),
		zap.String("module", w.Module),
		zap.Int("steps", len(steps)),
	)
	return mapToResponse(*w), nil
}

func (s *service) GetAll(ctx context.Context, q response.PageQuery, module string) ([]WorkflowResponse, int64, error) {
	items, total, err := s.repo.FindAll(ctx, q, strings.ToUpper(module))
	if err != nil {
		return nil, 0, err
	}
	res := make([]WorkflowResponse, len(items))
	for i, w := range items {
		res[i] = mapToResponse(w)
	}
	return res, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (WorkflowResponse, error) {
	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return WorkflowResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*w), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateWorkflowRequest) (WorkflowResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WorkflowResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	w, err := qtx.FindByID(ctx, id)
	if err != nil {
		return WorkflowResponse{}, mapRepositoryError(err)
	}
	if err := apply(w, req); err != nil {
		return WorkflowResponse{}, err
	}
	steps, err := buildSteps(w.ID, req.Steps)
	if err != nil {
		return WorkflowResponse{}, err
	}
	if err := ensureSingleActive(ctx, qtx, w); err != nil {
		return WorkflowResponse{}, err
	}
	if err := checkApprovers(ctx, qtx, steps); err != nil {
		return WorkflowResponse{}, err
	}

	// Pending requests keep their current_step; replacing steps under them
	// would shift who approves next.
	pending, err := qtx.CountPendingRequests(ctx, id)
	if err != nil {
		return WorkflowResponse{}, err
	}
	if pending > 0 && !sameSteps(w.Steps, steps) {
		return WorkflowResponse{}, approvalworkflowerrors.ErrWorkflowInUse
	}

	if err := qtx.Update(ctx, w); err != nil {
		return WorkflowResponse{}, err
	}
	if err := qtx.ReplaceSteps(ctx, id, steps); err != nil {
		return WorkflowResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return WorkflowResponse{}, err
	}

	w.Steps = steps
	return mapToResponse(*w), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	pending, err := qtx.CountPendingRequests(ctx, id)
	if err != nil {
		return err
	}
	if pending > 0 {
		return approvalworkflowerrors.ErrWorkflowInUse
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func apply(w *ApprovalWorkflow, req CreateWorkflowRequest) error {
	module := strings.ToUpper(strings.TrimSpace(req.Module))
	if !IsValidModule(module) {
		return approvalworkflowerrors.ErrInvalidModule
	}
	w.Name = strings.TrimSpace(req.Name)
	w.Module = module
	w.Description = req.Description
	if req.IsActive != nil {
		w.IsActive = *req.IsActive
	}
	return nil
}

// buildSteps requires orders 1..n with exactly one approver kind per step.
func buildSteps(workflowID uuid.UUID, reqs []WorkflowStepRequest) ([]WorkflowStep, error) {
	if len(reqs) == 0 {
		return nil, approvalworkflowerrors.ErrStepsRequired
	}
	sorted := make([]WorkflowStepRequest, len(reqs))
	copy(sorted, reqs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StepOrder < sorted[j].StepOrder })

	steps := make([]WorkflowStep, len(sorted))
	for i, r := range sorted {
		if r.StepOrder != i+1 {
			return nil, approvalworkflowerrors.ErrDuplicateStepOrder
		}
		role := parseUUID(r.ApproverRoleID)
		emp := parseUUID(r.ApproverEmployeeID)
		if role != nil && emp != nil {
			return nil, approvalworkflowerrors.ErrInvalidApprover
		}
		steps[i] = WorkflowStep{
			ID:                 uuid.New(),
			WorkflowID:         workflowID,
			StepOrder:          r.StepOrder,
			Name:               strings.TrimSpace(r.Name),
			ApproverRoleID:     role,
			ApproverEmployeeID: emp,
		}
	}
	return steps, nil
}

func ensureSingleActive(ctx context.Context, repo Repository, w *ApprovalWorkflow) error {
	if !w.IsActive {
		return nil
	}
	other, err := repo.FindActiveByModule(ctx, w.Module)
	if err == nil && other.ID != w.ID {
		return approvalworkflowerrors.ErrActiveWorkflowExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func checkApprovers(ctx context.Context, repo Repository, steps []WorkflowStep) error {
	for _, st := range steps {
		table, id := "", ""
		switch {
		case st.ApproverRoleID != nil:
			table, id = "roles", st.ApproverRoleID.String()
		case st.ApproverEmployeeID != nil:
			table, id = "employees", st.ApproverEmployeeID.String()
		default:
			continue
		}
		ok, err := repo.ReferenceExists(ctx, table, id)
		if err != nil {
			return err
		}
		if !ok {
			return approvalworkflowerrors.ErrApproverNotFound
		}
	}
	return nil
}

func sameSteps(a, b []WorkflowStep) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].StepOrder != b[i].StepOrder ||
			uuidString(a[i].ApproverRoleID) != uuidString(b[i].ApproverRoleID) ||
			uuidString(a[i].ApproverEmployeeID) != uuidString(b[i].ApproverEmployeeID) {
			return false
		}
	}
	return true
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return approvalworkflowerrors.ErrWorkflowNotFound
	}
	return err
}

func mapToResponse(w ApprovalWorkflow) WorkflowResponse {
	steps := make([]WorkflowStepResponse, len(w.Steps))
	for i, st := range w.Steps {
		steps[i] = WorkflowStepResponse{
			ID:                 st.ID.String(),
			StepOrder:          st.StepOrder,
			Name:               st.Name,
			ApproverRoleID:     uuidString(st.ApproverRoleID),
			ApproverEmployeeID: uuidString(st.ApproverEmployeeID),
		}
	}
	return WorkflowResponse{
		ID:          w.ID.String(),
		Name:        w.Name,
		Module:      w.Module,
		Description: w.Description,
		IsActive:    w.IsActive,
		Steps:       steps,
	}
}

func parseUUID(v string) *uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(v))
	if err != nil {
		return nil
	}
	return &id
}

func uuidString(v *uuid.UUID) string {
	if v == nil {
		return ""
	}
	return v.String()
}
