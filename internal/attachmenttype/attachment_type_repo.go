package attachmenttype

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
	Create(ctx context.Context, a *AttachmentType) error
	FindAll(ctx context.Context, q response.PageQuery) ([]AttachmentType, int64, error)
	FindByID(ctx context.Context, id string) (*AttachmentType, error)
	FindByName(ctx context.Context, name string) (*AttachmentType, error)
	CountAttachments(ctx context.Context, id string) (int64, error)
	Update(ctx context.Context, a *AttachmentType) error
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

func (r *repository) Create(ctx context.Context, a *AttachmentType) error {
	return r.conn(ctx).Create(a).Error
}

func (r *repository) FindAll(ctx context.Context, q response.PageQuery) ([]AttachmentType, int64, error) {
	var (
		items []AttachmentType
		total int64
	)
	base := r.conn(ctx).Model(&AttachmentType{}).Scopes(scope.Search(q.Search, "name"))
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.Session(&gorm.Session{}).
		Scopes(scope.Paginate(q.Page, q.PageSize)).
		Order("name ASC").
		Find(&items).Error
	return items, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*AttachmentType, error) {
	var a AttachmentType
	if err := r.conn(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindByName(ctx context.Context, name string) (*AttachmentType, error) {
	var a AttachmentType
	if err := r.conn(ctx).Where("LOWER(name) = LOWER(?)", name).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) CountAttachments(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.conn(ctx).
		Table("candidate_attachments").
		Where("attachment_type_id = ?", id).
		Count(&count).Error
	return count, err
}

func (r *repository) Update(ctx context.Context, a *AttachmentType) error {
	return r.conn(ctx).Save(a).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.conn(ctx).Delete(&AttachmentType{}, "id = ?", id).Error
}
