package leavetype

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
	Create(ctx context.Context, lt *LeaveType) error
	FindAll(ctx context.Context, q response.PageQuery) ([]LeaveType, int64, error)
	FindActive(ctx context.Context) ([]LeaveType, error)
	FindByID(ctx context.Context, id string) (*LeaveType, error)
	FindByCode(ctx context.Context, code string) (*LeaveType, error)
	FindByName(ctx context.Context, name string) (*LeaveType, error)
	CountUsage(ctx context.Context, id string) (int64, error)
	Update(ctx context.Context, lt *LeaveType) error
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

// Create writes every column so an explicit false is not replaced by the
// column default.
func (r *repository) Create(ctx context.Context, lt *LeaveType) error {
	return r.conn(ctx).Select("*").Create(lt).Error
}

func (r *repository) FindAll(ctx context.Context, q response.PageQuery) ([]LeaveType, int64, error) {
	var (
		items []LeaveType
		total int64
	)
	base := r.conn(ctx).Model(&LeaveType{}).Scopes(scope.Search(q.Search, "code", "name"))
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.Session(&gorm.Session{}).
		Scopes(scope.Paginate(q.Page, q.PageSize)).
		Order("name ASC").
		Find(&items).Error
	return items, total, err
}

func (r *repository) FindActive(ctx context.Context) ([]LeaveType, error) {
	var items []LeaveType
	err := r.conn(ctx).Where("is_active = ?", true).Order("name ASC").Find(&items).Error
	return items, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveType, error) {
	var lt LeaveType
	if err := r.conn(ctx).First(&lt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &lt, nil
}

func (r *repository) FindByCode(ctx context.Context, code string) (*LeaveType, error) {
	var lt LeaveType
	if err := r.conn(ctx).Where("code = ?", code).First(&lt).Error; err != nil {
		return nil, err
	}
	return &lt, nil
}

func (r *repository) FindByName(ctx context.Context, name string) (*LeaveType, error) {
	var lt LeaveType
	if err := r.conn(ctx).Where("LOWER(name) = LOWER(?)", name).First(&lt).Error; err != nil {
		return nil, err
	}
	return &lt, nil
}

func (r *repository) CountUsage(ctx context.Context, id string) (int64, error) {
	var balances, applications int64
	if err := r.conn(ctx).Table("leave_balances").Where("leave_type_id = ?", id).Count(&balances).Error; err != nil {
		return 0, err
	}
	if err := r.conn(ctx).Table("leave_applications").Where("leave_type_id = ?", id).Count(&applications).Error; err != nil {
		return 0, err
	}
	return balances + applications, nil
}

func (r *repository) Update(ctx context.Context, lt *LeaveType) error {
	return r.conn(ctx).Save(lt).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.conn(ctx).Delete(&LeaveType{}, "id = ?", id).Error
}
