package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SAP-F-2025/quiz-service/internal/cache"
	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-service/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	validator *validator.Validator
	log       *ServiceLogger
}

func NewAuthService(repo repositories.Repository, cacheService cache.CacheService, validator *validator.Validator, logger *ServiceLogger) AuthService {
	return &authService{
		repo:      repo,
		cache:     cacheService,
		validator: validator,
		log:       logger,
	}
}

// Login compares the stored password as plain text. An unknown user and a
// wrong password produce the same error.
func (s *authService) Login(ctx context.Context, username, password string) (*models.AuthSession, error) {
	op := s.log.start(ctx, "login", "teacher")
	username = strings.TrimSpace(username)

	var errs ValidationErrors
	if r := validator.ValidateUsername(username); !r.Valid {
		errs.Add("username", r.Error, username)
	}
	if r := validator.ValidatePassword(password); !r.Valid {
		errs.Add("password", r.Error, nil)
	}
	if len(errs) > 0 {
		op.done(username, errs)
		return nil, errs
	}

	teacher, err := s.repo.Teacher().GetByUsername(ctx, username)
	if err != nil && !repositories.IsNotFoundError(err) {
		err = fmt.Errorf("failed to load teacher: %w", err)
		op.done(username, err)
		return nil, err
	}
	if teacher == nil || teacher.Password != password {
		s.log.LogSecurityEvent(ctx, SecurityEvent{
			Type:        SecurityEventLoginFailed,
			Subject:     username,
			Description: "teacher login failed",
		})
		op.done(username, ErrInvalidCredentials)
		return nil, ErrInvalidCredentials
	}

	op.done(username, nil)
	return &models.AuthSession{
		IsLoggedIn:   true,
		TeacherName:  teacher.FullName,
		Username:     teacher.Username,
		IsAdmin:      teacher.IsAdmin(),
		TeacherClass: teacher.Class,
	}, nil
}

// ListTeachers never exposes passwords.
func (s *authService) ListTeachers(ctx context.Context) ([]models.Teacher, error) {
	var cached []models.Teacher
	if s.cache != nil {
		err := s.cache.Get(ctx, cache.TeacherListKey(), &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.Logger().Warn("Cache read failed", "key", cache.TeacherListKey(), "error", err)
		}
	}

	teachers, err := s.repo.Teacher().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teachers: %w", err)
	}

	public := make([]models.Teacher, 0, len(teachers))
	for _, t := range teachers {
		public = append(public, t.Public())
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.TeacherListKey(), public, cache.TeachersTTL); err != nil {
			s.log.Logger().Warn("Cache write failed", "key", cache.TeacherListKey(), "error", err)
		}
	}
	return public, nil
}

func (s *authService) SaveTeacher(ctx context.Context, teacher *models.Teacher) error {
	op := s.log.start(ctx, "save_teacher", "teacher")
	if teacher == nil {
		err := NewValidationError("teacher", "is required", nil)
		op.done("", err)
		return err
	}

	t := *teacher
	t.Username = strings.TrimSpace(t.Username)
	t.FullName = validator.SanitizeInput(t.FullName)
	t.Class = strings.TrimSpace(t.Class)
	if t.Role == "" {
		t.Role = models.RoleTeacher
	}

	var errs ValidationErrors
	if r := validator.ValidateUsername(t.Username); !r.Valid {
		errs.Add("username", r.Error, t.Username)
	}
	if r := validator.ValidatePassword(t.Password); !r.Valid {
		errs.Add("password", r.Error, nil)
	}
	if t.Class != "" {
		if r := validator.ValidateClassName(t.Class); !r.Valid {
			errs.Add("class", r.Error, t.Class)
		}
	}
	if err := s.validator.Validate(&t); err != nil {
		var structErrs ValidationErrors
		if errors.As(err, &structErrs) {
			for _, e := range structErrs {
				if e.Field != "username" && e.Field != "password" {
					errs = append(errs, e)
				}
			}
		} else {
			errs.Add("teacher", err.Error(), nil)
		}
	}
	if len(errs) > 0 {
		op.done(t.Username, errs)
		return errs
	}

	if err := s.repo.Teacher().Upsert(ctx, &t); err != nil {
		err = fmt.Errorf("failed to save teacher: %w", err)
		op.done(t.Username, err)
		return err
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, cache.TeacherListKey()); err != nil {
			s.log.Logger().Warn("Failed to invalidate teacher cache", "error", err)
		}
	}
	op.done(t.Username, nil)
	return nil
}
