package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/campus-track/attendance-service/internal/auth"
	"github.com/campus-track/attendance-service/internal/cache"
	"github.com/campus-track/attendance-service/internal/events"
	"github.com/campus-track/attendance-service/internal/models"
	"github.com/campus-track/attendance-service/internal/repositories"
	"github.com/campus-track/attendance-service/internal/utils"
	"github.com/campus-track/attendance-service/internal/validator"
)

type authService struct {
	repo             repositories.Repository
	issuer           *auth.Issuer
	revoked          *cache.CacheHelper
	publisher        events.EventPublisher
	validator        *validator.Validator
	logger           utils.Logger
	registrationCode string
}

func NewAuthService(
	repo repositories.Repository,
	issuer *auth.Issuer,
	revoked *cache.CacheHelper,
	publisher events.EventPublisher,
	v *validator.Validator,
	logger utils.Logger,
	registrationCode string,
) AuthService {
	return &authService{
		repo:             repo,
		issuer:           issuer,
		revoked:          revoked,
		publisher:        publisher,
		validator:        v,
		logger:           logger,
		registrationCode: registrationCode,
	}
}

func (s *authService) RegisterTeacher(ctx context.Context, req *validator.TeacherRegisterRequest) (*TeacherInfo, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, errs)
	}
	if req.Code != s.registrationCode {
		return nil, fmt.Errorf("%w: invalid registration code", ErrForbidden)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	teacher := &models.Teacher{
		Username:     req.Username,
		PasswordHash: string(hash),
		Name:         req.Name,
		Department:   req.Department,
	}
	if err := s.repo.Teacher().Create(ctx, nil, teacher); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: username already taken", ErrConflict)
		}
		return nil, err
	}

	s.publishEvent(ctx, events.TypeTeacherRegistered, events.TeacherRegisteredEvent{
		TeacherID:  teacher.ID,
		Username:   teacher.Username,
		Department: teacher.Department,
	})

	s.logger.Info("teacher registered", "teacher_id", teacher.ID, "department", teacher.Department)

	return &TeacherInfo{
		ID:         teacher.ID,
		Username:   teacher.Username,
		Name:       teacher.Name,
		Department: teacher.Department,
	}, nil
}

func (s *authService) LoginTeacher(ctx context.Context, req *validator.LoginRequest) (*LoginResult, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, errs)
	}

	teacher, err := s.repo.Teacher().GetByUsername(ctx, nil, req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(teacher.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.issuer.IssueTeacher(teacher)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("teacher login", "teacher_id", teacher.ID, "department", teacher.Department)

	return &LoginResult{
		Token:     token,
		ExpiresAt: exp,
		Principal: models.Principal{
			Role:       models.RoleTeacher,
			TeacherID:  teacher.ID,
			Department: teacher.Department,
			Name:       teacher.Name,
		},
	}, nil
}

func (s *authService) LoginStudent(ctx context.Context, req *validator.LoginRequest) (*LoginResult, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, errs)
	}

	student, err := s.repo.Student().GetByLoginUsername(ctx, nil, req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	// A roster row without provisioned credentials can never log in.
	if !student.HasLogin() {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(*student.StudentPasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.issuer.IssueStudent(student)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("student login", "student_id", student.ID, "roll_no", student.RollNo)

	return &LoginResult{
		Token:     token,
		ExpiresAt: exp,
		Principal: models.Principal{
			Role:      models.RoleStudent,
			StudentID: student.ID,
			RollNo:    student.RollNo,
			Name:      student.Name,
		},
	}, nil
}

func (s *authService) Logout(ctx context.Context, principal *models.Principal) error {
	if principal == nil || principal.TokenID == "" {
		return ErrUnauthorized
	}
	// The denylist entry must outlive the token itself. JWT_TOKEN_TTL is
	// operator-configurable, so derive the TTL from the token's expiry and
	// keep the configured revocation TTL only as a floor.
	ttl := cache.RevokedTokenConfig.TTL
	if !principal.ExpiresAt.IsZero() {
		if until := time.Until(principal.ExpiresAt); until > ttl {
			ttl = until
		}
	}
	if err := s.revoked.SetFlag(ctx, principal.TokenID, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	s.logger.Info("logout", "role", principal.Role, "name", principal.Name)
	return nil
}

func (s *authService) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	return s.revoked.Exists(ctx, tokenID)
}

// publishEvent is fire-and-forget: a broker failure never fails the request.
func (s *authService) publishEvent(ctx context.Context, eventType string, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.TopicAttendance, events.NewEvent(eventType, data)); err != nil {
		s.logger.Warn("event publish failed", "type", eventType, "error", err)
	}
}
