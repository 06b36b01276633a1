package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	ExistsByEmployeeID(ctx context.Context, employeeID uuid.UUID) (bool, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, user *User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", strings.TrimSpace(email)).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	if err := r.resolveRole(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	if err := r.resolveRole(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) ExistsByEmployeeID(ctx context.Context, employeeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&User{}).Where("employee_id = ?", employeeID).Count(&count).Error
	return count > 0, err
}

func (r *repository) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("last_login", at).Error
}

func (r *repository) resolveRole(ctx context.Context, user *User) error {
	var roleName string
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("COALESCE(roles.name, '')").
		Joins("LEFT JOIN roles ON roles.id = employees.role_id").
		Where("employees.id = ?", user.EmployeeID).
		Limit(1).
		Scan(&roleName).Error
	if err != nil {
		return err
	}

	roleName = strings.ToUpper(strings.TrimSpace(roleName))
	if roleName == "" {
		roleName = "EMPLOYEE"
	}
	user.Role = roleName
	return nil
}
