package hiringstage

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	hiringstageerrors "go-hrms/internal/hiringstage/errors"
	"go-hrms/internal/shared/response"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateHiringStageRequest) (HiringStageResponse, error)
	GetAll(ctx context.Context, q response.PageQuery) ([]HiringStageResponse, int64, error)
	GetByID(ctx context.Context, id string) (HiringStageResponse, error)
	Update(ctx context.Context, id string, req UpdateHiringStageRequest) (HiringStageResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("hiringstage.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("hiringstage.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateHiringStageRequest) (HiringStageResponse, error) {
	st := &HiringStage{ID: uuid.New(), IsActive: true}
	apply(st, req)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return HiringStageResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := ensureUnique(ctx, qtx, st); err != nil {
		return HiringStageResponse{}, err
	}
	if err := qtx.Create(ctx, st); err != nil {
		return HiringStageResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return HiringStageResponse{}, err
	}
	return mapToResponse(*st), nil
}

func (s *service) GetAll(ctx context.Context, q response.PageQuery) ([]HiringStageResponse, int64, error) {
	items, total, err := s.repo.FindAll(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	res := make([]HiringStageResponse, len(items))
	for i, st := range items {
		res[i] = mapToResponse(st)
	}
	return res, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (HiringStageResponse, error) {
	st, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return HiringStageResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*st), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateHiringStageRequest) (HiringStageResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return HiringStageResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	st, err := qtx.FindByID(ctx, id)
	if err != nil {
		return HiringStageResponse{}, mapRepositoryError(err)
	}
	apply(st, req)
	if err := ensureUnique(ctx, qtx, st); err != nil {
		return HiringStageResponse{}, err
	}
	if err := qtx.Update(ctx, st); err != nil {
		return HiringStageResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return HiringStageResponse{}, err
	}
	return mapToResponse(*st), nil
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
	count, err := qtx.CountCandidates(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return hiringstageerrors.ErrHiringStageInUse
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func apply(st *HiringStage, req CreateHiringStageRequest) {
	st.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	st.Name = strings.TrimSpace(req.Name)
	st.Sequence = req.Sequence
	st.Description = req.Description
	if req.IsActive != nil {
		st.IsActive = *req.IsActive
	}
}

func ensureUnique(ctx context.Context, repo Repository, st *HiringStage) error {
	checks := []struct {
		find func() (*HiringStage, error)
		err  error
	}{
		{func() (*HiringStage, error) { return repo.FindByCode(ctx, st.Code) }, hiringstageerrors.ErrHiringStageCodeExists},
		{func() (*HiringStage, error) { return repo.FindByName(ctx, st.Name) }, hiringstageerrors.ErrHiringStageNameExists},
		{func() (*HiringStage, error) { return repo.FindBySequence(ctx, st.Sequence) }, hiringstageerrors.ErrHiringStageSequenceExists},
	}
	for _, c := range checks {
		other, err := c.find()
		if err == nil && other.ID != st.ID {
			return c.err
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}
	return nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return hiringstageerrors.ErrHiringStageNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_hiring_stages_code":
			return hiringstageerrors.ErrHiringStageCodeExists
		case "uq_hiring_stages_name":
			return hiringstageerrors.ErrHiringStageNameExists
		case "uq_hiring_stages_sequence":
			return hiringstageerrors.ErrHiringStageSequenceExists
		}
	}
	return err
}

func mapToResponse(st HiringStage) HiringStageResponse {
	return HiringStageResponse{
		ID:          st.ID.String(),
		Code:        st.Code,
		Name:        st.Name,
		Sequence:    st.Sequence,
		Description: st.Description,
		IsActive:    st.IsActive,
	}
}
