package candidate

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
	Create(ctx context.Context, c *Candidate) error
	FindAll(ctx context.Context, q response.PageQuery, f ListFilter) ([]Candidate, int64, error)
	FindByID(ctx context.Context, id string) (*Candidate, error)
	FindByEmail(ctx context.Context, jobPostingID, email string) (*Candidate, error)
	CountHired(ctx context.Context, jobPostingID string) (int64, error)
	Update(ctx context.Context, c *Candidate) error
	Delete(ctx context.Context, id string) error

	CreateAttachment(ctx context.Context, a *Attachment) error
	FindAttachments(ctx context.Context, candidateID string) ([]Attachment, error)
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

func withRefs(db *gorm.DB) *gorm.DB {
	return db.
		Select(`candidates.*,
			job_postings.code AS job_posting_code,
			job_postings.title AS job_posting_title,
			hiring_stages.name AS stage_name,
			hiring_stages.sequence AS stage_sequence`).
		Joins("LEFT JOIN job_postings ON job_postings.id = candidates.job_posting_id").
		Joins("LEFT JOIN hiring_stages ON hiring_stages.id = candidates.current_stage_id")
}

func (r *repository) Create(ctx context.Context, c *Candidate) error {
	return r.conn(ctx).Create(c).Error
}

func (r *repository) FindAll(ctx context.Context, q response.PageQuery, f ListFilter) ([]Candidate, int64, error) {
	var (
		items []Candidate
		total int64
	)

	base := r.conn(ctx).Model(&Candidate{}).Scopes(
		scope.Search(q.Search, "candidates.name", "candidates.email", "candidates.phone"),
		scope.Equal("candidates.job_posting_id", f.JobPostingID),
		scope.Equal("candidates.current_stage_id", f.StageID),
		scope.Equal("candidates.status", f.Status),
	)
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.
		Scopes(withRefs, scope.Paginate(q.Page, q.PageSize)).
		Order("candidates.applied_at DESC").
		Find(&items).Error
	return items, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Candidate, error) {
	var c Candidate
	if err := r.conn(ctx).Scopes(withRefs).Where("candidates.id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) FindByEmail(ctx context.Context, jobPostingID, email string) (*Candidate, error) {
	var c Candidate
	err := r.conn(ctx).
		Where("job_posting_id = ? AND LOWER(email) = LOWER(?)", jobPostingID, email).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) CountHired(ctx context.Context, jobPostingID string) (int64, error) {
	var count int64
	err := r.conn(ctx).
		Model(&Candidate{}).
		Where("job_posting_id = ? AND status = ?", jobPostingID, StatusHired).
		Count(&count).Error
	return count, err
}

func (r *repository) Update(ctx context.Context, c *Candidate) error {
	return r.conn(ctx).Save(c).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.conn(ctx).Delete(&Candidate{}, "id = ?", id).Error
}

func (r *repository) CreateAttachment(ctx context.Context, a *Attachment) error {
	return r.conn(ctx).Create(a).Error
}

func (r *repository) FindAttachments(ctx context.Context, candidateID string) ([]Attachment, error) {
	var items []Attachment
	err := r.conn(ctx).
		Select("candidate_attachments.*, attachment_types.name AS attachment_type_name").
		Joins("LEFT JOIN attachment_types ON attachment_types.id = candidate_attachments.attachment_type_id").
		Where("candidate_attachments.candidate_id = ?", candidateID).
		Order("candidate_attachments.created_at ASC").
		Find(&items).Error
	return items, err
}
