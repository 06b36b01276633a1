package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	autherrors "go-hrms/internal/auth/errors"
	"go-hrms/internal/config"
	"go-hrms/internal/employee"
	"go-hrms/internal/rbac"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error)

	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)

	GetMe(ctx context.Context, userID string) (*AuthResponse, error)

	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
}

// EmployeeFinder is the slice of employee.Repository auth needs.
type EmployeeFinder interface {
	FindByID(ctx context.Context, id string) (*employee.Employee, error)
}

type service struct {
	repo      Repository
	rbac      rbac.Service
	employees EmployeeFinder
	jwt       config.JWTConfig
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(repo Repository, rbac rbac.Service, employees EmployeeFinder, jwtCfg config.JWTConfig, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		repo:      repo,
		rbac:      rbac,
		employees: employees,
		jwt:       jwtCfg,
		logger:    l,
		now:       time.Now,
	}
}

func (s *service) Login(ctx context.Context, email, password string) (string, string, AuthResponse, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("login lookup failed", zap.Error(err))
		}
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", "", AuthResponse{}, autherrors.ErrUserInactive
	}

	// employees created since the last reload must be enforceable right away
	if err := s.rbac.LoadPolicy(ctx); err != nil {
		return "", "", AuthResponse{}, err
	}

	accessToken, refreshToken, err := s.issueTokens(user)
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	if err := s.repo.TouchLastLogin(ctx, user.ID, s.now()); err != nil {
		s.logger.Warn("update last login failed", zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID.String()), zap.String("role", user.Role))
	return accessToken, refreshToken, mapToResponse(user), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	claims, err := s.parseToken(refreshToken)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}
	if typ, _ := claims["typ"].(string); typ != tokenTypeRefresh {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	userIDStr, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrUserNotFound
	}
	if !user.IsActive {
		return "", "", AuthResponse{}, autherrors.ErrUserInactive
	}

	newAccess, newRefresh, err := s.issueTokens(user)
	if err != nil {
		return "", "", AuthResponse{}, err
	}
	return newAccess, newRefresh, mapToResponse(user), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}

	resp := mapToResponse(u)
	return &resp, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	eID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AuthResponse{}, autherrors.ErrEmployeeNotFound
	}
	emp, err := s.employees.FindByID(ctx, eID.String())
	if err != nil {
		return AuthResponse{}, autherrors.ErrEmployeeNotFound
	}

	linked, err := s.repo.ExistsByEmployeeID(ctx, eID)
	if err != nil {
		return AuthResponse{}, err
	}
	if linked {
		return AuthResponse{}, autherrors.ErrEmployeeAlreadyLinked
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if existing, err := s.repo.GetByEmail(ctx, email); err == nil && existing != nil {
		return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	user := &User{
		ID:         uuid.New(),
		EmployeeID: eID,
		Name:       emp.FullName,
		Email:      email,
		Password:   string(hashed),
		IsActive:   true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
	}

	s.rbac.InvalidatePolicy()

	resp := mapToResponse(user)
	if resp.Role == "" {
		resp.Role = "EMPLOYEE"
	}
	return resp, nil
}

func (s *service) issueTokens(user *User) (string, string, error) {
	access, err := s.generateToken(user, tokenTypeAccess, s.jwt.AccessTokenTTL)
	if err != nil {
		return "", "", autherrors.ErrTokenGenerationFailed
	}
	refresh, err := s.generateToken(user, tokenTypeRefresh, s.jwt.RefreshTokenTTL)
	if err != nil {
		return "", "", autherrors.ErrTokenGenerationFailed
	}
	return access, refresh, nil
}

func (s *service) generateToken(user *User, typ string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"user_id":     user.ID.String(),
		"employee_id": user.EmployeeID.String(),
		"role":        user.Role,
		"typ":         typ,
		"iat":         now.Unix(),
		"exp":         now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwt.Secret))
}

func (s *service) parseToken(raw string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(s.jwt.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, autherrors.ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, autherrors.ErrInvalidToken
	}
	return claims, nil
}

func mapToResponse(u *User) AuthResponse {
	return AuthResponse{
		ID:         u.ID.String(),
		EmployeeID: u.EmployeeID.String(),
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
	}
}
