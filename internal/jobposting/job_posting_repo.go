package jobposting

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
	Create(ctx context.Context, j *JobPosting) error
	FindAll(ctx context.Context, q response.PageQuery, f ListFilter) ([]JobPosting, int64, error)
	CountByStatus(ctx context.Context, f ListFilter) (JobPostingStats, error)
	FindByID(ctx context.Context, id string) (*JobPosting, error)
	FindByCode(ctx context.Context, code string) (*JobPosting, error)
	DepartmentExists(ctx context.Context, id string) (bool, error)
	DesignationExists(ctx context.Context, id string) (bool, error)
	CountCandidates(ctx context.Context, id string) (int64, error)
	Update(ctx context.Context, j *JobPosting) error
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

func withNames(db *gorm.DB) *gorm.DB {
	return db.
		Select(`job_postings.*,
			departments.name AS department_name,
			designations.name AS designation_name,
			(SELECT COUNT(*) FROM candidates
				WHERE candidates.job_posting_id = job_postings.id AND candidates.deleted_at IS NULL) AS candidate_count`).
		Joins("LEFT JOIN departments ON departments.id = job_postings.department_id").
		Joins("LEFT JOIN designations ON designations.id = job_postings.designation_id")
}

func listFilter(q response.PageQuery, f ListFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Scopes(
			scope.Search(q.Search, "job_postings.code", "job_postings.title", "job_postings.location"),
			scope.Equal("job_postings.status", f.Status),
			scope.Equal("job_postings.department_id", f.DepartmentID),
		)
	}
}

func (r *repository) Create(ctx context.Context, j *JobPosting) error {
	return r.conn(ctx).Create(j).Error
}

func (r *repository) FindAll(ctx context.Context, q response.PageQuery, f ListFilter) ([]JobPosting, int64, error) {
	var (
		items []JobPosting
		total int64
	)
	base := r.conn(ctx).Model(&JobPosting{}).Scopes(listFilter(q, f))
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.Session(&gorm.Session{}).
		Scopes(withNames, scope.Paginate(q.Page, q.PageSize)).
		Order("job_postings.created_at DESC").
		Find(&items).Error
	return items, total, err
}

// CountByStatus ignores f.Status so the stats always show every bucket.
func (r *repository) CountByStatus(ctx context.Context, f ListFilter) (JobPostingStats, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	f.Status = ""
	err := r.conn(ctx).Model(&JobPosting{}).
		Scopes(listFilter(response.PageQuery{}, f)).
		Select("job_postings.status AS status, COUNT(*) AS total").
		Group("job_postings.status").
		Scan(&rows).Error
	if err != nil {
		return JobPostingStats{}, err
	}

	var stats JobPostingStats
	for _, row := range rows {
		switch row.Status {
		case StatusDraft:
			stats.Draft = row.Total
		case StatusOpen:
			stats.Open = row.Total
		case StatusClosed:
			stats.Closed = row.Total
		}
	}
	return stats, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*JobPosting, error) {
	var j JobPosting
	if err := r.conn(ctx).Scopes(withNames).First(&j, "job_postings.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *repository) FindByCode(ctx context.Context, code string) (*JobPosting, error) {
	var j JobPosting
	if err := r.conn(ctx).Where("UPPER(code) = UPPER(?)", code).First(&j).Error; err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *repository) DepartmentExists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.conn(ctx).Table("departments").Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *repository) DesignationExists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.conn(ctx).Table("designations").Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *repository) CountCandidates(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.conn(ctx).
		Table("candidates").
		Where("job_posting_id = ?", id).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count, err
}

func (r *repository) Update(ctx context.Context, j *JobPosting) error {
	return r.conn(ctx).Save(j).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.conn(ctx).Delete(&JobPosting{}, "id = ?", id).Error
}
