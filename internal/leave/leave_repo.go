package leave

import (
	"context"
	"database/sql"
	"time"

	"go-hrms/internal/shared/response"
	"go-hrms/internal/shared/scope"
	"go-hrms/internal/shared/txconn"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateApplication(ctx context.Context, l *LeaveApplication) error
	FindApplications(ctx context.Context, q response.PageQuery, f ListFilter) ([]LeaveApplication, int64, error)
	CountByStatus(ctx context.Context, f ListFilter) (LeaveStats, error)
	FindApplicationByID(ctx context.Context, id string) (*LeaveApplication, error)
	UpdateApplication(ctx context.Context, l *LeaveApplication) error
	DeleteApplication(ctx context.Context, id string) error
	HasOverlap(ctx context.Context, employeeID string, start, end time.Time, excludeID string) (bool, error)
	// FindApprovedInRange returns approved applications that share a day with [start, end].
	FindApprovedInRange(ctx context.Context, employeeID string, start, end time.Time) ([]LeaveApplication, error)

	CreateApprovalLog(ctx context.Context, log *LeaveApprovalLog) error
	FindApprovalLogs(ctx context.Context, applicationID string) ([]LeaveApprovalLog, error)

	CreateBalance(ctx context.Context, b *LeaveBalance) error
	FindBalances(ctx context.Context, q response.PageQuery, f BalanceFilter) ([]LeaveBalance, int64, error)
	FindBalanceByID(ctx context.Context, id string) (*LeaveBalance, error)
	FindBalance(ctx context.Context, employeeID, leaveTypeID string, year int) (*LeaveBalance, error)
	UpdateBalance(ctx context.Context, b *LeaveBalance) error
	DeleteBalance(ctx context.Context, id string) error
	// DeductBalance moves days from remaining to used only when enough remain.
	DeductBalance(ctx context.Context, employeeID, leaveTypeID string, year, days int) (bool, error)
	RestoreBalance(ctx context.Context, employeeID, leaveTypeID string, year, days int) error

	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
	EmployeeRoleID(ctx context.Context, employeeID string) (string, error)
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

func withApplicationNames(db *gorm.DB) *gorm.DB {
	return db.
		Select("leave_applications.*, employees.full_name AS employee_name, leave_types.name AS leave_type_name").
		Joins("LEFT JOIN employees ON employees.id = leave_applications.employee_id").
		Joins("LEFT JOIN leave_types ON leave_types.id = leave_applications.leave_type_id")
}

func withBalanceNames(db *gorm.DB) *gorm.DB {
	return db.
		Select("leave_balances.*, employees.full_name AS employee_name, leave_types.name AS leave_type_name").
		Joins("LEFT JOIN employees ON employees.id = leave_balances.employee_id").
		Joins("LEFT JOIN leave_types ON leave_types.id = leave_balances.leave_type_id")
}

func applicationFilter(f ListFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Scopes(
			scope.Equal("leave_applications.employee_id", f.EmployeeID),
			scope.Equal("leave_applications.leave_type_id", f.LeaveTypeID),
			scope.Equal("leave_applications.status", f.Status),
		)
		if from, err := parseDate(f.From); err == nil {
			db = db.Where("leave_applications.end_date >= ?", from)
		}
		if to, err := parseDate(f.To); err == nil {
			db = db.Where("leave_applications.start_date <= ?", to)
		}
		return db
	}
}

func (r *repository) CreateApplication(ctx context.Context, l *LeaveApplication) error {
	return r.conn(ctx).Create(l).Error
}

func (r *repository) FindApplications(ctx context.Context, q response.PageQuery, f ListFilter) ([]LeaveApplication, int64, error) {
	var (
		items []LeaveApplication
		total int64
	)
	base := r.conn(ctx).Model(&LeaveApplication{}).
		Scopes(applicationFilter(f), scope.Search(q.Search, "leave_applications.reason"))
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.Session(&gorm.Session{}).
		Scopes(withApplicationNames, scope.Paginate(q.Page, q.PageSize)).
		Order("leave_applications.start_date DESC").
		Find(&items).Error
	return items, total, err
}

func (r *repository) CountByStatus(ctx context.Context, f ListFilter) (LeaveStats, error) {
	// status is grouped, so the caller's status filter does not apply here
	f.Status = ""

	var rows []struct {
		Status string
		Total  int64
	}
	err := r.conn(ctx).Model(&LeaveApplication{}).
		Scopes(applicationFilter(f)).
		Select("leave_applications.status AS status, COUNT(*) AS total").
		Group("leave_applications.status").
		Scan(&rows).Error
	if err != nil {
		return LeaveStats{}, err
	}

	var stats LeaveStats
	for _, row := range rows {
		switch row.Status {
		case StatusPending:
			stats.Pending = row.Total
		case StatusApproved:
			stats.Approved = row.Total
		case StatusRejected:
			stats.Rejected = row.Total
		case StatusCancelled:
			stats.Cancelled = row.Total
		}
	}
	return stats, nil
}

func (r *repository) FindApplicationByID(ctx context.Context, id string) (*LeaveApplication, error) {
	var l LeaveApplication
	err := r.conn(ctx).
		Scopes(withApplicationNames).
		Where("leave_applications.id = ?", id).
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) UpdateApplication(ctx context.Context, l *LeaveApplication) error {
	return r.conn(ctx).Save(l).Error
}

func (r *repository) DeleteApplication(ctx context.Context, id string) error {
	db := r.conn(ctx)
	if err := db.Where("leave_application_id = ?", id).Delete(&LeaveApprovalLog{}).Error; err != nil {
		return err
	}
	return db.Delete(&LeaveApplication{}, "id = ?", id).Error
}

func (r *repository) HasOverlap(ctx context.Context, employeeID string, start, end time.Time, excludeID string) (bool, error) {
	db := r.conn(ctx).
		Model(&LeaveApplication{}).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("NOT (end_date < ? OR start_date > ?)", start, end)
	if excludeID != "" {
		db = db.Where("id <> ?", excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *repository) FindApprovedInRange(ctx context.Context, employeeID string, start, end time.Time) ([]LeaveApplication, error) {
	var items []LeaveApplication
	err := r.conn(ctx).
		Where("employee_id = ? AND status = ?", employeeID, StatusApproved).
		Where("NOT (end_date < ? OR start_date > ?)", start, end).
		Order("start_date ASC").
		Find(&items).Error
	return items, err
}

func (r *repository) CreateApprovalLog(ctx context.Context, log *LeaveApprovalLog) error {
	return r.conn(ctx).Create(log).Error
}

func (r *repository) FindApprovalLogs(ctx context.Context, applicationID string) ([]LeaveApprovalLog, error) {
	var logs []LeaveApprovalLog
	err := r.conn(ctx).
		Where("leave_application_id = ?", applicationID).
		Order("acted_at ASC").
		Find(&logs).Error
	return logs, err
}

func (r *repository) CreateBalance(ctx context.Context, b *LeaveBalance) error {
	return r.conn(ctx).Create(b).Error
}

func (r *repository) FindBalances(ctx context.Context, q response.PageQuery, f BalanceFilter) ([]LeaveBalance, int64, error) {
	var (
		items []LeaveBalance
		total int64
	)
	base := r.conn(ctx).Model(&LeaveBalance{}).Scopes(
		scope.Equal("leave_balances.employee_id", f.EmployeeID),
		scope.Equal("leave_balances.leave_type_id", f.LeaveTypeID),
	)
	if f.Year > 0 {
		base = base.Where("leave_balances.year = ?", f.Year)
	}
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.Session(&gorm.Session{}).
		Scopes(withBalanceNames, scope.Paginate(q.Page, q.PageSize)).
		Order("leave_balances.year DESC, leave_types.name ASC").
		Find(&items).Error
	return items, total, err
}

func (r *repository) FindBalanceByID(ctx context.Context, id string) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.conn(ctx).
		Scopes(withBalanceNames).
		Where("leave_balances.id = ?", id).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) FindBalance(ctx context.Context, employeeID, leaveTypeID string, year int) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.conn(ctx).
		Where("employee_id = ? AND leave_type_id = ? AND year = ?", employeeID, leaveTypeID, year).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) UpdateBalance(ctx context.Context, b *LeaveBalance) error {
	return r.conn(ctx).Select("allocated", "used", "remaining", "updated_at").Updates(b).Error
}

func (r *repository) DeleteBalance(ctx context.Context, id string) error {
	res := r.conn(ctx).Delete(&LeaveBalance{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) DeductBalance(ctx context.Context, employeeID, leaveTypeID string, year, days int) (bool, error) {
	res := r.conn(ctx).Model(&LeaveBalance{}).
		Where("employee_id = ? AND leave_type_id = ? AND year = ?", employeeID, leaveTypeID, year).
		Where("remaining >= ?", days).
		Updates(map[string]any{
			"used":       gorm.Expr("used + ?", days),
			"remaining":  gorm.Expr("remaining - ?", days),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) RestoreBalance(ctx context.Context, employeeID, leaveTypeID string, year, days int) error {
	res := r.conn(ctx).Model(&LeaveBalance{}).
		Where("employee_id = ? AND leave_type_id = ? AND year = ?", employeeID, leaveTypeID, year).
		Where("used >= ?", days).
		Updates(map[string]any{
			"used":       gorm.Expr("used - ?", days),
			"remaining":  gorm.Expr("remaining + ?", days),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Table("employees").
		Where("id = ? AND deleted_at IS NULL", employeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) EmployeeRoleID(ctx context.Context, employeeID string) (string, error) {
	var row struct {
		RoleID *string
	}
	err := r.conn(ctx).
		Table("employees").
		Select("role_id").
		Where("id = ? AND deleted_at IS NULL", employeeID).
		Limit(1).
		Scan(&row).Error
	if err != nil || row.RoleID == nil {
		return "", err
	}
	return *row.RoleID, nil
}
