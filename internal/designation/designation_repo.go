package designation

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
	Create(ctx context.Context, d *Designation) error
	FindAll(ctx context.Context, q response.PageQuery, f ListFilter) ([]Designation, int64, error)
	FindByID(ctx context.Context, id string) (*Designation, error)
	FindByCode(ctx context.Context, code string) (*Designation, error)
	FindByName(ctx context.Context, name string) (*Designation, error)
	DepartmentExists(ctx context.Context, id string) (bool, error)
	CountEmployees(ctx context.Context, id string) (int64, error)
	Update(ctx context.Context, d *Designation) error
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

func (r *repository) withDepartment(db *gorm.DB) *gorm.DB {
	return db.
		Select("designations.*, departments.name AS department_name").
		Joins("LEFT JOIN departments ON departments.id = designations.department_id")
}

func (r *repository) Create(ctx context.Context, d *Designation) error {
	return r.conn(ctx).Select("*").Omit("DepartmentName").Create(d).Error
}

func (r *repository) FindAll(ctx context.Context, q response.PageQuery, f ListFilter) ([]Designation, int64, error) {
	var (
		items []Designation
		total int64
	)
	base := r.conn(ctx).Model(&Designation{}).
		Scopes(
			scope.Search(q.Search, "designations.code", "designations.name"),
			scope.Equal("designations.department_id", f.DepartmentID),
		)
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.Session(&gorm.Session{}).
		Scopes(r.withDepartment, scope.Paginate(q.Page, q.PageSize)).
		Order("designations.name ASC").
		Find(&items).Error
	return items, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Designation, error) {
	var d Designation
	err := r.conn(ctx).Scopes(r.withDepartment).First(&d, "designations.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repository) FindByCode(ctx context.Context, code string) (*Designation, error) {
	var d Designation
	if err := r.conn(ctx).Where("UPPER(code) = UPPER(?)", code).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repository) FindByName(ctx context.Context, name string) (*Designation, error) {
	var d Designation
	if err := r.conn(ctx).Where("LOWER(name) = LOWER(?)", name).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repository) DepartmentExists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.conn(ctx).Table("departments").Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *repository) CountEmployees(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.conn(ctx).
		Table("employees").
		Where("designation_id = ?", id).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count, err
}

func (r *repository) Update(ctx context.Context, d *Designation) error {
	return r.conn(ctx).Omit("DepartmentName").Save(d).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.conn(ctx).Delete(&Designation{}, "id = ?", id).Error
}
