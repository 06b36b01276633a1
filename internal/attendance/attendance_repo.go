package attendance

import (
	"context"
	"database/sql"
	"time"

	"go-hrms/internal/shared/response"
	"go-hrms/internal/shared/scope"
	"go-hrms/internal/shared/txconn"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	FindAll(ctx context.Context, q response.PageQuery, f ListFilter) ([]Attendance, int64, error)
	FindByID(ctx context.Context, id string) (*Attendance, error)
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	// FindEmployeeShift returns the employee's shift id, empty when none is
	// assigned, or gorm.ErrRecordNotFound when the employee does not exist.
	FindEmployeeShift(ctx context.Context, employeeID string) (string, error)
	Update(ctx context.Context, a *Attendance) error
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

func withEmployeeName(db *gorm.DB) *gorm.DB {
	return db.
		Select("attendances.*, employees.full_name AS employee_name").
		Joins("LEFT JOIN employees ON employees.id = attendances.employee_id")
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.conn(ctx).Create(a).Error
}

func (r *repository) FindAll(ctx context.Context, q response.PageQuery, f ListFilter) ([]Attendance, int64, error) {
	var (
		rows  []Attendance
		total int64
	)
	base := r.conn(ctx).Model(&Attendance{}).Scopes(
		scope.Equal("attendances.employee_id", f.EmployeeID),
		scope.Equal("attendances.status", f.Status),
	)
	if from, err := time.Parse(dateLayout, f.From); err == nil {
		base = base.Where("attendances.attendance_date >= ?", from)
	}
	if to, err := time.Parse(dateLayout, f.To); err == nil {
		base = base.Where("attendances.attendance_date <= ?", to)
	}
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.Session(&gorm.Session{}).
		Scopes(withEmployeeName, scope.Paginate(q.Page, q.PageSize)).
		Order("attendances.attendance_date DESC, attendances.clock_in DESC").
		Find(&rows).Error
	return rows, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Attendance, error) {
	var a Attendance
	err := r.conn(ctx).
		Scopes(withEmployeeName).
		Where("attendances.id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Where("attendance_date = ?", dateOnly(date)).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindEmployeeShift(ctx context.Context, employeeID string) (string, error) {
	var row struct {
		ID      string
		ShiftID *string
	}
	err := r.conn(ctx).
		Table("employees").
		Select("id, shift_id").
		Where("id = ? AND deleted_at IS NULL", employeeID).
		Take(&row).Error
	if err != nil {
		return "", err
	}
	if row.ShiftID == nil {
		return "", nil
	}
	return *row.ShiftID, nil
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.conn(ctx).Save(a).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.conn(ctx).Delete(&Attendance{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
