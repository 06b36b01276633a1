package approvalworkflow

import (
	"context"
	"database/sql"

	"go-hrms/internal/shared/response"
	"go-hrms/internal/shared/scope"
	"go-hrms/internal/shared/txconn"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, w *ApprovalWorkflow) error
	FindAll(ctx context.Context, q response.PageQuery, module string) ([]ApprovalWorkflow, int64, error)
	FindByID(ctx context.Context, id string) (*ApprovalWorkflow, error)
	// FindActiveByModule returns gorm.ErrRecordNotFound when the module has no active workflow.
	FindActiveByModule(ctx context.Context, module string) (*ApprovalWorkflow, error)
	ReplaceSteps(ctx context.Context, workflowID string, steps []WorkflowStep) error
	ReferenceExists(ctx context.Context, table, id string) (bool, error)
	CountPendingRequests(ctx context.Context, workflowID string) (int64, error)
	Update(ctx context.Context, w *ApprovalWorkflow) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return txconn.Conn(ctx, r.db, r.tx)
}

func orderedSteps(db *gorm.DB) *gorm.DB {
	return db.Order("step_order ASC")
}

func (r *repository) Create(ctx context.Context, w *ApprovalWorkflow) error {
	return r.conn(ctx).Select("*").Create(w).Error
}

func (r *repository) FindAll(ctx context.Context, q response.PageQuery, module string) ([]ApprovalWorkflow, int64, error) {
	var (
		items []ApprovalWorkflow
		total int64
	)
	base := r.conn(ctx).Model(&ApprovalWorkflow{}).
		Scopes(scope.Search(q.Search, "name"), scope.Equal("module", module))
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.Session(&gorm.Session{}).
		Preload("Steps", orderedSteps).
		Scopes(scope.Paginate(q.Page, q.PageSize)).
		Order("module ASC, name ASC").
		Find(&items).Error
	return items, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*ApprovalWorkflow, error) {
	var w ApprovalWorkflow
	if err := r.conn(ctx).Preload("Steps", orderedSteps).First(&w, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *repository) FindActiveByModule(ctx context.Context, module string) (*ApprovalWorkflow, error) {
	var w ApprovalWorkflow
	err := r.conn(ctx).
		Preload("Steps", orderedSteps).
		Where("module = ? AND is_active = ?", module, true).
		First(&w).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *repository) ReplaceSteps(ctx context.Context, workflowID string, steps []WorkflowStep) error {
	db := r.conn(ctx)
	if err := db.Where("workflow_id = ?", workflowID).Delete(&WorkflowStep{}).Error; err != nil {
		return err
	}
	if len(steps) == 0 {
		return nil
	}
	return db.Create(&steps).Error
}

func (r *repository) ReferenceExists(ctx context.Context, table, id string) (bool, error) {
	var count int64
	err := r.conn(ctx).Table(table).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *repository) CountPendingRequests(ctx context.Context, workflowID string) (int64, error) {
	var count int64
	err := r.conn(ctx).
		Table("leave_applications").
		Where("workflow_id = ? AND status = ?", workflowID, "PENDING").
		Count(&count).Error
	return count, err
}

func (r *repository) Update(ctx context.Context, w *ApprovalWorkflow) error {
	return r.conn(ctx).Omit("Steps").Save(w).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	db := r.conn(ctx)
	if err := db.Where("workflow_id = ?", id).Delete(&WorkflowStep{}).Error; err != nil {
		return err
	}
	return db.Delete(&ApprovalWorkflow{}, "id = ?", id).Error
}
