package user

import (
	"context"
	"errors"

	"go-hrms/internal/shared/response"
	usererrors "go-hrms/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock

type Service interface {
	GetAll(ctx context.Context, q response.PageQuery, f ListFilter) ([]UserResponse, int64, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	SetStatus(ctx context.Context, actorID, id string, active bool) (UserResponse, error)
	ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error
	ResetPassword(ctx context.Context, id string, req ResetPasswordRequest) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService works on accounts created by auth registration. Access tokens
// already issued stay valid until they expire; a deactivated account can no
// longer log in or refresh.
func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetAll(ctx context.Context, q response.PageQuery, f ListFilter) ([]UserResponse, int64, error) {
	users, total, err := s.repo.FindAll(ctx, q, f)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = mapToResponse(&users[i])
	}
	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	u, err := s.find(ctx, id)
	if err != nil {
		return UserResponse{}, err
	}
	return mapToResponse(u), nil
}

func (s *service) SetStatus(ctx context.Context, actorID, id string, active bool) (UserResponse, error) {
	u, err := s.find(ctx, id)
	if err != nil {
		return UserResponse{}, err
	}
	if !active && u.ID.String() == actorID {
		return UserResponse{}, usererrors.ErrDeactivateSelf
	}
	if u.IsActive == active {
		return mapToResponse(u), nil
	}

	if err := s.repo.UpdateStatus(ctx, id, active); err != nil {
		s.logger.Error("update user status failed", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, err
	}

	u.IsActive = active
	s.logger.Info("user status changed",
		zap.String("user_id", id),
		zap.String("actor_id", actorID),
		zap.Bool("is_active", active),
	)
	return mapToResponse(u), nil
}

func (s *service) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	u, err := s.find(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.CurrentPassword)); err != nil {
		return usererrors.ErrWrongPassword
	}
	if req.CurrentPassword == req.NewPassword {
		return usererrors.ErrSamePassword
	}
	return s.setPassword(ctx, u, req.NewPassword)
}

// ResetPassword is the administrative override; the old password is not needed.
func (s *service) ResetPassword(ctx context.Context, id string, req ResetPasswordRequest) error {
	u, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	return s.setPassword(ctx, u, req.NewPassword)
}

func (s *service) setPassword(ctx context.Context, u *User, plain string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash password failed", zap.Error(err))
		return err
	}
	if err := s.repo.UpdatePassword(ctx, u.ID.String(), string(hashed)); err != nil {
		return err
	}
	s.logger.Info("user password changed", zap.String("user_id", u.ID.String()))
	return nil
}

func (s *service) find(ctx context.Context, id string) (*User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, usererrors.ErrInvalidUserID
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usererrors.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func mapToResponse(u *User) UserResponse {
	resp := UserResponse{
		ID:           u.ID.String(),
		EmployeeID:   u.EmployeeID.String(),
		EmployeeCode: u.EmployeeCode,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.RoleName,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if u.EmployeeName != "" {
		resp.Name = u.EmployeeName
	}
	if u.LastLogin != nil {
		v := u.LastLogin.Format("2006-01-02 15:04:05")
		resp.LastLogin = &v
	}
	return resp
}
