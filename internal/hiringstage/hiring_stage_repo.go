package hiringstage

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
	Create(ctx context.Context, st *HiringStage) error
	FindAll(ctx context.Context, q response.PageQuery) ([]HiringStage, int64, error)
	FindByID(ctx context.Context, id string) (*HiringStage, error)
	FindByCode(ctx context.Context, code string) (*HiringStage, error)
	FindByName(ctx context.Context, name string) (*HiringStage, error)
	FindBySequence(ctx context.Context, seq int) (*HiringStage, error)
	// FindFirstActive returns the active stage with the lowest sequence.
	FindFirstActive(ctx context.Context) (*HiringStage, error)
	// FindNextActive returns the active stage directly after seq.
	FindNextActive(ctx context.Context, seq int) (*HiringStage, error)
	CountCandidates(ctx context.Context, id string) (int64, error)
	Update(ctx context.Context, st *HiringStage) error
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

func (r *repository) Create(ctx context.Context, st *HiringStage) error {
	return r.conn(ctx).Select("*").Create(st).Error
}

func (r *repository) FindAll(ctx context.Context, q response.PageQuery) ([]HiringStage, int64, error) {
	var (
		items []HiringStage
		total int64
	)
	base := r.conn(ctx).Model(&HiringStage{}).Scopes(scope.Search(q.Search, "code", "name"))
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.Session(&gorm.Session{}).
		Scopes(scope.Paginate(q.Page, q.PageSize)).
		Order("sequence ASC").
		Find(&items).Error
	return items, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*HiringStage, error) {
	var st HiringStage
	if err := r.conn(ctx).First(&st, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *repository) FindByCode(ctx context.Context, code string) (*HiringStage, error) {
	var st HiringStage
	if err := r.conn(ctx).Where("code = ?", code).First(&st).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *repository) FindByName(ctx context.Context, name string) (*HiringStage, error) {
	var st HiringStage
	if err := r.conn(ctx).Where("LOWER(name) = LOWER(?)", name).First(&st).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *repository) FindBySequence(ctx context.Context, seq int) (*HiringStage, error) {
	var st HiringStage
	if err := r.conn(ctx).Where("sequence = ?", seq).First(&st).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *repository) FindFirstActive(ctx context.Context) (*HiringStage, error) {
	var st HiringStage
	err := r.conn(ctx).
		Where("is_active = ?", true).
		Order("sequence ASC").
		First(&st).Error
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *repository) FindNextActive(ctx context.Context, seq int) (*HiringStage, error) {
	var st HiringStage
	err := r.conn(ctx).
		Where("is_active = ? AND sequence > ?", true, seq).
		Order("sequence ASC").
		First(&st).Error
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *repository) CountCandidates(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.conn(ctx).
		Table("candidates").
		Where("current_stage_id = ?", id).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count, err
}

func (r *repository) Update(ctx context.Context, st *HiringStage) error {
	return r.conn(ctx).Save(st).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.conn(ctx).Delete(&HiringStage{}, "id = ?", id).Error
}
