package shift

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
	Create(ctx context.Context, s *Shift) error
	FindAll(ctx context.Context, q response.PageQuery) ([]Shift, int64, error)
	FindByID(ctx context.Context, id string) (*Shift, error)
	FindByName(ctx context.Context, name string) (*Shift, error)
	CountEmployees(ctx context.Context, id string) (int64, error)
	Update(ctx context.Context, s *Shift) error
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

func (r *repository) Create(ctx context.Context, s *Shift) error {
	return r.conn(ctx).Select("*").Create(s).Error
}

func (r *repository) FindAll(ctx context.Context, q response.PageQuery) ([]Shift, int64, error) {
	var (
		items []Shift
		total int64
	)
	base := r.conn(ctx).Model(&Shift{}).Scopes(scope.Search(q.Search, "name"))
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.Session(&gorm.Session{}).
		Scopes(scope.Paginate(q.Page, q.PageSize)).
		Order("start_time ASC, name ASC").
		Find(&items).Error
	return items, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Shift, error) {
	var s Shift
	if err := r.conn(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) FindByName(ctx context.Context, name string) (*Shift, error) {
	var s Shift
	if err := r.conn(ctx).Where("LOWER(name) = LOWER(?)", name).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) CountEmployees(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.conn(ctx).
		Table("employees").
		Where("shift_id = ?", id).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count, err
}

func (r *repository) Update(ctx context.Context, s *Shift) error {
	return r.conn(ctx).Save(s).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.conn(ctx).Delete(&Shift{}, "id = ?", id).Error
}
