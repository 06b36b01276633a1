package jobposting

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	jobpostingerrors "go-hrms/internal/jobposting/errors"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/counter"
	"go-hrms/internal/shared/response"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	codePrefix = "JP"
	dateLayout = "2006-01-02"
)

//go:generate mockgen -source=job_posting_service.go -destination=mock/job_posting_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateJobPostingRequest) (JobPostingResponse, error)
	GetAll(ctx context.Context, q response.PageQuery, f ListFilter) ([]JobPostingResponse, int64, JobPostingStats, error)
	GetByID(ctx context.Context, id string) (JobPostingResponse, error)
	Update(ctx context.Context, id string, req UpdateJobPostingRequest) (JobPostingResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	now     func() time.Time
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counterRepo counter.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("jobposting.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("jobposting.service")
	}
	return &service{db: db, repo: repo, counter: counterRepo, now: time.Now, logger: l}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateJobPostingRequest) (JobPostingResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return JobPostingResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	j := &JobPosting{
		ID:             uuid.New(),
		Status:         StatusDraft,
		EmploymentType: EmploymentFullTime,
		Vacancies:      1,
	}
	if id, err := uuid.Parse(actorID); err == nil {
		j.CreatedBy = &id
	}
	if err := s.apply(ctx, qtx, j, req); err != nil {
		return JobPostingResponse{}, err
	}

	if j.Code == "" {
		next, err := s.counter.WithTx(tx).GetNextValue(ctx, counter.TypeJobPostingCode)
		if err != nil {
			s.logger.Error("create job posting generate code failed", zap.String("request_id", rid), zap.Error(err))
			return JobPostingResponse{}, err
		}
		j.Code = counter.FormatCode(codePrefix, next)
	}

	if err := qtx.Create(ctx, j); err != nil {
		return JobPostingResponse{}, mapRepositoryError(err)
	}
	created, err := qtx.FindByID(ctx, j.ID.String())
	if err != nil {
		return JobPostingResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return JobPostingResponse{}, err
	}

	s.logger.Info("job posting created",
		zap.String("request_id", rid),
		zap.String("job_posting_id", j.ID.String()),
		zap.String("code", j.Code),
	)
	return mapToResponse(*created), nil
}

func (s *service) GetAll(ctx context.Context, q response.PageQuery, f ListFilter) ([]JobPostingResponse, int64, JobPostingStats, error) {
	f.Status = strings.ToUpper(strings.TrimSpace(f.Status))
	items, total, err := s.repo.FindAll(ctx, q, f)
	if err != nil {
		return nil, 0, JobPostingStats{}, err
	}
	stats, err := s.repo.CountByStatus(ctx, f)
	if err != nil {
		return nil, 0, JobPostingStats{}, err
	}
	res := make([]JobPostingResponse, len(items))
	for i, j := range items {
		res[i] = mapToResponse(j)
	}
	return res, total, stats, nil
}

func (s *service) GetByID(ctx context.Context, id string) (JobPostingResponse, error) {
	j, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return JobPostingResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*j), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateJobPostingRequest) (JobPostingResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return JobPostingResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	j, err := qtx.FindByID(ctx, id)
	if err != nil {
		return JobPostingResponse{}, mapRepositoryError(err)
	}
	if err := s.apply(ctx, qtx, j, req); err != nil {
		return JobPostingResponse{}, err
	}
	if err := qtx.Update(ctx, j); err != nil {
		return JobPostingResponse{}, mapRepositoryError(err)
	}
	updated, err := qtx.FindByID(ctx, id)
	if err != nil {
		return JobPostingResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return JobPostingResponse{}, err
	}
	return mapToResponse(*updated), nil
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
		return jobpostingerrors.ErrJobPostingInUse
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}

// apply validates req and copies it onto j. An omitted posted date keeps
// the stored one; opening a posting without any stamps today.
func (s *service) apply(ctx context.Context, repo Repository, j *JobPosting, req CreateJobPostingRequest) error {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code != "" {
		if other, err := repo.FindByCode(ctx, code); err == nil && other.ID != j.ID {
			return jobpostingerrors.ErrJobPostingCodeExists
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		j.Code = code
	}

	j.DepartmentID = nil
	if req.DepartmentID != "" {
		ok, err := repo.DepartmentExists(ctx, req.DepartmentID)
		if err != nil {
			return err
		}
		if !ok {
			return jobpostingerrors.ErrDepartmentNotFound
		}
		id := uuid.MustParse(req.DepartmentID)
		j.DepartmentID = &id
	}
	j.DesignationID = nil
	if req.DesignationID != "" {
		ok, err := repo.DesignationExists(ctx, req.DesignationID)
		if err != nil {
			return err
		}
		if !ok {
			return jobpostingerrors.ErrDesignationNotFound
		}
		id := uuid.MustParse(req.DesignationID)
		j.DesignationID = &id
	}

	posted, err := parseOptionalDate(req.PostedDate)
	if err != nil {
		return err
	}
	closing, err := parseOptionalDate(req.ClosingDate)
	if err != nil {
		return err
	}

	if req.Status != "" {
		status := strings.ToUpper(strings.TrimSpace(req.Status))
		if !IsValidStatus(status) {
			return jobpostingerrors.ErrInvalidStatus
		}
		j.Status = status
	}
	if posted == nil {
		posted = j.PostedDate
	}
	if posted == nil && j.Status == StatusOpen {
		y, m, d := s.now().UTC().Date()
		today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		posted = &today
	}
	if posted != nil && closing != nil && closing.Before(*posted) {
		return jobpostingerrors.ErrInvalidDateRange
	}

	j.Title = strings.TrimSpace(req.Title)
	j.Description = req.Description
	j.Requirements = req.Requirements
	j.Location = strings.TrimSpace(req.Location)
	if req.EmploymentType != "" {
		j.EmploymentType = req.EmploymentType
	}
	if req.Vacancies > 0 {
		j.Vacancies = req.Vacancies
	}
	j.PostedDate = posted
	j.ClosingDate = closing
	return nil
}

func parseOptionalDate(v *string) (*time.Time, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(*v))
	if err != nil {
		return nil, jobpostingerrors.ErrInvalidDate
	}
	return &t, nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return jobpostingerrors.ErrJobPostingNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_job_postings_code" {
		return jobpostingerrors.ErrJobPostingCodeExists
	}
	return err
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(dateLayout)
	return &v
}

func mapToResponse(j JobPosting) JobPostingResponse {
	res := JobPostingResponse{
		ID:              j.ID.String(),
		Code:            j.Code,
		Title:           j.Title,
		DepartmentName:  j.DepartmentName,
		DesignationName: j.DesignationName,
		Description:     j.Description,
		Requirements:    j.Requirements,
		Location:        j.Location,
		EmploymentType:  j.EmploymentType,
		Vacancies:       j.Vacancies,
		Status:          j.Status,
		PostedDate:      formatDate(j.PostedDate),
		ClosingDate:     formatDate(j.ClosingDate),
		CandidateCount:  j.CandidateCount,
	}
	if j.DepartmentID != nil {
		res.DepartmentID = j.DepartmentID.String()
	}
	if j.DesignationID != nil {
		res.DesignationID = j.DesignationID.String()
	}
	return res
}
