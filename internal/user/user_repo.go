package user

import (
	"context"

	"go-hrms/internal/shared/response"
	"go-hrms/internal/shared/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	FindAll(ctx context.Context, q response.PageQuery, f ListFilter) ([]User, int64, error)
	FindByID(ctx context.Context, id string) (*User, error)
	UpdateStatus(ctx context.Context, id string, active bool) error
	UpdatePassword(ctx context.Context, id string, hashed string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) withEmployee(db *gorm.DB) *gorm.DB {
	return db.
		Select("users.*, employees.code AS employee_code, employees.full_name AS employee_name, COALESCE(roles.name, '') AS role_name").
		Joins("LEFT JOIN employees ON employees.id = users.employee_id").
		Joins("LEFT JOIN roles ON roles.id = employees.role_id")
}

func (r *repository) FindAll(ctx context.Context, q response.PageQuery, f ListFilter) ([]User, int64, error) {
	var (
		users []User
		total int64
	)
	base := r.db.WithContext(ctx).Model(&User{}).
		Joins("LEFT JOIN employees ON employees.id = users.employee_id").
		Scopes(scope.Search(q.Search, "users.email", "users.name", "employees.code"))
	if f.IsActive != nil {
		base = base.Where("users.is_active = ?", *f.IsActive)
	}
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.Session(&gorm.Session{}).
		Select("users.*, employees.code AS employee_code, employees.full_name AS employee_name, COALESCE(roles.name, '') AS role_name").
		Joins("LEFT JOIN roles ON roles.id = employees.role_id").
		Scopes(scope.Paginate(q.Page, q.PageSize)).
		Order("users.email ASC").
		Find(&users).Error
	return users, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).Scopes(r.withEmployee).First(&u, "users.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id string, active bool) error {
	return r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("is_active", active).Error
}

func (r *repository) UpdatePassword(ctx context.Context, id string, hashed string) error {
	return r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("password", hashed).Error
}
