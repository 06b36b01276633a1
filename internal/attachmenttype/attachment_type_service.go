package attachmenttype

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	attachmenttypeerrors "go-hrms/internal/attachmenttype/errors"
	"go-hrms/internal/shared/response"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateAttachmentTypeRequest) (AttachmentTypeResponse, error)
	GetAll(ctx context.Context, q response.PageQuery) ([]AttachmentTypeResponse, int64, error)
	GetByID(ctx context.Context, id string) (AttachmentTypeResponse, error)
	Update(ctx context.Context, id string, req UpdateAttachmentTypeRequest) (AttachmentTypeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attachmenttype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attachmenttype.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateAttachmentTypeRequest) (AttachmentTypeResponse, error) {
	a := &AttachmentType{ID: uuid.New()}
	apply(a, req)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttachmentTypeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := ensureNameFree(ctx, qtx, a); err != nil {
		return AttachmentTypeResponse{}, err
	}
	if err := qtx.Create(ctx, a); err != nil {
		return AttachmentTypeResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return AttachmentTypeResponse{}, err
	}
	return mapToResponse(*a), nil
}

func (s *service) GetAll(ctx context.Context, q response.PageQuery) ([]AttachmentTypeResponse, int64, error) {
	items, total, err := s.repo.FindAll(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	res := make([]AttachmentTypeResponse, len(items))
	for i, a := range items {
		res[i] = mapToResponse(a)
	}
	return res, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (AttachmentTypeResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return AttachmentTypeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*a), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateAttachmentTypeRequest) (AttachmentTypeResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttachmentTypeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	a, err := qtx.FindByID(ctx, id)
	if err != nil {
		return AttachmentTypeResponse{}, mapRepositoryError(err)
	}
	apply(a, req)
	if err := ensureNameFree(ctx, qtx, a); err != nil {
		return AttachmentTypeResponse{}, err
	}
	if err := qtx.Update(ctx, a); err != nil {
		return AttachmentTypeResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return AttachmentTypeResponse{}, err
	}
	return mapToResponse(*a), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	count, err := qtx.CountAttachments(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return attachmenttypeerrors.ErrAttachmentTypeInUse
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func apply(a *AttachmentType, req CreateAttachmentTypeRequest) {
	a.Name = strings.TrimSpace(req.Name)
	a.AllowedExtensions = joinExtensions(req.AllowedExtensions)
	a.MaxSizeMB = req.MaxSizeMB
	a.IsRequired = req.IsRequired
	a.Description = req.Description
}

func ensureNameFree(ctx context.Context, repo Repository, a *AttachmentType) error {
	other, err := repo.FindByName(ctx, a.Name)
	if err == nil && other.ID != a.ID {
		return attachmenttypeerrors.ErrAttachmentTypeNameExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return attachmenttypeerrors.ErrAttachmentTypeNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_attachment_types_name" {
		return attachmenttypeerrors.ErrAttachmentTypeNameExists
	}
	return err
}

func mapToResponse(a AttachmentType) AttachmentTypeResponse {
	exts := a.Extensions()
	if exts == nil {
		exts = []string{}
	}
	return AttachmentTypeResponse{
		ID:                a.ID.String(),
		Name:              a.Name,
		AllowedExtensions: exts,
		MaxSizeMB:         a.MaxSizeMB,
		IsRequired:        a.IsRequired,
		Description:       a.Description,
	}
}
