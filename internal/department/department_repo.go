package department

import (
	"context"
	"database/sql"

	"go-hrms/internal/shared/response"
	"go-hrms/internal/shared/scope"
	"go-hrms/internal/shared/txconn"

	"gorm.io/gorm"
)

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, dept *Department) error
	FindAll(ctx context.Context, q response.PageQuery) ([]Department, int64, error)
	FindActive(ctx context.Context) ([]Department, error)
	FindByID(ctx context.Context, id string) (*Department, error)
	FindByCode(ctx context.Context, code string) (*Department, error)
	FindByName(ctx context.Context, name string) (*Department, error)
	CountEmployees(ctx context.Context, id string) (int64, error)
	Update(ctx context.Context, dept *Department) error
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
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return txconn.Conn(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, dept *Department) error {
	return r.conn(ctx).Select("*").Create(dept).Error
}

func (r *repository) FindAll(ctx context.Context, q response.PageQuery) ([]Department, int64, error) {
	var (
		depts []Department
		total int64
	)
	base := r.conn(ctx).Model(&Department{}).Scopes(scope.Search(q.Search, "code", "name"))
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.Session(&gorm.Session{}).
		Scopes(scope.Paginate(q.Page, q.PageSize)).
		Order("name ASC").
		Find(&depts).Error
	return depts, total, err
}

func (r *repository) FindActive(ctx context.Context) ([]Department, error) {
	var depts []Department
	err := r.conn(ctx).Where("is_active = ?", true).Order("name ASC").Find(&depts).Error
	return depts, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Department, error) {
	var dept Department
	if err := r.conn(ctx).First(&dept, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *repository) FindByCode(ctx context.Context, code string) (*Department, error) {
	var dept Department
	if err := r.conn(ctx).Where("UPPER(code) = UPPER(?)", code).First(&dept).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *repository) FindByName(ctx context.Context, name string) (*Department, error) {
	var dept Department
	if err := r.conn(ctx).Where("LOWER(name) = LOWER(?)", name).First(&dept).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *repository) CountEmployees(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.conn(ctx).
		Table("employees").
		Where("department_id = ?", id).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count, err
}

func (r *repository) Update(ctx context.Context, dept *Department) error {
	return r.conn(ctx).Save(dept).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.conn(ctx).Delete(&Department{}, "id = ?", id).Error
}
