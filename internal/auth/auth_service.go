package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	autherrors "github.com/Nirjala-pagare/Emp-management/internal/auth/errors"
	"github.com/Nirjala-pagare/Emp-management/internal/rbac"
	"github.com/Nirjala-pagare/Emp-management/internal/shared/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/go-playground/validator/v10"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	GetMe(ctx context.Context, userID string) (AuthResponse, error)
}

type service struct {
	repo     Repository
	validate *validator.Validate
	secret   string
	tokenTTL time.Duration
	logger   *zap.Logger
}

func NewService(repo Repository, jwtSecret string, tokenTTL time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}

	v := validator.New()
	apperror.RegisterTagNameFunc(v)

	return &service{
		repo:     repo,
		validate: v,
		secret:   jwtSecret,
		tokenTTL: tokenTTL,
		logger:   l,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if err := s.validate.Struct(req); err != nil {
		return AuthResponse{}, apperror.NewValidationError(apperror.MapValidationErrors(err))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	role := req.Role
	if role == "" {
		role = rbac.RoleEmployee
	}

	user := &User{
		ID:       uuid.New(),
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
		Role:     role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		s.logger.Warn("register persist failed",
			zap.String("email", req.Email),
			zap.Error(err),
		)
		return AuthResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role),
	)
	return mapToAuthResponse(user), nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	req.Email = strings.TrimSpace(req.Email)

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	token, err := s.generateToken(user.ID.String(), user.Role)
	if err != nil {
		return LoginResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID.String()))
	return LoginResponse{
		Token: token,
		User:  mapToAuthResponse(user),
	}, nil
}

func (s *service) GetMe(ctx context.Context, userID string) (AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return AuthResponse{}, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return AuthResponse{}, autherrors.ErrUserNotFound
	}

	return mapToAuthResponse(user), nil
}

func (s *service) generateToken(userID, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return autherrors.ErrUserNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_user_email" {
			return autherrors.ErrEmailAlreadyRegistered
		}
	}

	if strings.Contains(strings.ToLower(err.Error()), "uq_user_email") {
		return autherrors.ErrEmailAlreadyRegistered
	}

	return apperror.Wrap(err, apperror.CodeInternalError, "User store operation failed", http.StatusInternalServerError)
}

func mapToAuthResponse(user *User) AuthResponse {
	return AuthResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}
}
