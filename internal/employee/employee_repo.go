package employee

import (
	"context"
	"database/sql"
	"time"

	"go-hrms/internal/shared/response"
	"go-hrms/internal/shared/scope"
	"go-hrms/internal/shared/txconn"

	"gorm.io/gorm"
)

// Reference tables an employee may point at.
const (
	RefRoles        = "roles"
	RefDepartments  = "departments"
	RefDesignations = "designations"
	RefShifts       = "shifts"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context, q response.PageQuery, f ListFilter) ([]Employee, int64, error)
	FindOptions(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	FindByCode(ctx context.Context, code string) (*Employee, error)
	// FindForPayroll returns ACTIVE employees who joined on or before asOf,
	// restricted to ids when ids is not empty.
	FindForPayroll(ctx context.Context, ids []string, asOf time.Time) ([]Employee, error)
	ReferenceExists(ctx context.Context, table, id string) (bool, error)
	Update(ctx context.Context, empl *Employee) error
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

func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Select("employees.*, roles.name AS role_name, departments.name AS department_name, designations.name AS designation_name").
		Joins("LEFT JOIN roles ON roles.id = employees.role_id").
		Joins("LEFT JOIN departments ON departments.id = employees.department_id").
		Joins("LEFT JOIN designations ON designations.id = employees.designation_id")
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).Create(empl).Error
}

func (r *repository) FindAll(ctx context.Context, q response.PageQuery, f ListFilter) ([]Employee, int64, error) {
	var (
		items []Employee
		total int64
	)
	base := r.conn(ctx).Model(&Employee{}).
		Scopes(
			scope.Search(q.Search, "employees.code", "employees.full_name", "employees.email"),
			scope.Equal("employees.department_id", f.DepartmentID),
			scope.Equal("employees.designation_id", f.DesignationID),
			scope.Equal("employees.status", f.Status),
		)
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.Session(&gorm.Session{}).
		Scopes(withRelations, scope.Paginate(q.Page, q.PageSize)).
		Order("employees.full_name ASC").
		Find(&items).Error
	return items, total, err
}

func (r *repository) FindOptions(ctx context.Context) ([]Employee, error) {
	var items []Employee
	err := r.conn(ctx).
		Select("id", "code", "full_name").
		Where("status = ?", StatusActive).
		Order("full_name ASC").
		Find(&items).Error
	return items, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.conn(ctx).
		Scopes(withRelations).
		First(&empl, "employees.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	var empl Employee
	if err := r.conn(ctx).Where("LOWER(email) = LOWER(?)", email).First(&empl).Error; err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindByCode(ctx context.Context, code string) (*Employee, error) {
	var empl Employee
	if err := r.conn(ctx).Where("code = ?", code).First(&empl).Error; err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindForPayroll(ctx context.Context, ids []string, asOf time.Time) ([]Employee, error) {
	var items []Employee
	q := r.conn(ctx).
		Where("status = ?", StatusActive).
		Where("joining_date <= ?", asOf)
	if len(ids) > 0 {
		q = q.Where("id IN ?", ids)
	}
	err := q.Order("code ASC").Find(&items).Error
	return items, err
}

func (r *repository) ReferenceExists(ctx context.Context, table, id string) (bool, error) {
	var count int64
	err := r.conn(ctx).Table(table).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.conn(ctx).Delete(&Employee{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
