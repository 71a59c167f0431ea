package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Amxn-2/Employee-Management/internal/domain"
	"github.com/Amxn-2/Employee-Management/internal/jwt"
	pw "github.com/Amxn-2/Employee-Management/internal/password"
	"github.com/Amxn-2/Employee-Management/internal/repository"
)

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// StudentService handles registration, login, and credential resolution for
// the identity gate.
type StudentService struct {
	students repository.StudentRepository
	cache    repository.StudentCache
	node     *snowflake.Node
	jwt      *jwt.Generator
	logger   *zap.Logger
	tracer   trace.Tracer
}

// NewStudentService wires dependencies. cache may be nil; the legacy UUID
// path then always hits the store.
func NewStudentService(students repository.StudentRepository, cache repository.StudentCache, node *snowflake.Node, generator *jwt.Generator, logger *zap.Logger) *StudentService {
	return &StudentService{
		students: students,
		cache:    cache,
		node:     node,
		jwt:      generator,
		logger:   logger,
		tracer:   otel.Tracer("github.com/Amxn-2/Employee-Management/internal/service"),
	}
}

// RegisterInput is the registration payload after JSON binding.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

// Register creates a new student account and returns it with a signed token.
func (s *StudentService) Register(ctx context.Context, in RegisterInput) (domain.Student, string, error) {
	ctx, span := s.tracer.Start(ctx, "StudentService.Register")
	defer span.End()

	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	fullName := strings.TrimSpace(in.FullName)

	switch {
	case len(username) < 3:
		return domain.Student{}, "", newError(CodeValidationFailed, "Username must be at least 3 characters long.", http.StatusBadRequest)
	case !emailPattern.MatchString(email):
		return domain.Student{}, "", newError(CodeValidationFailed, "Please enter a valid email.", http.StatusBadRequest)
	case len(in.Password) < 6:
		return domain.Student{}, "", newError(CodeValidationFailed, "Password must be at least 6 characters long.", http.StatusBadRequest)
	case fullName == "":
		return domain.Student{}, "", newError(CodeValidationFailed, "Full name is required.", http.StatusBadRequest)
	}

	hash, err := pw.Hash(in.Password)
	if err != nil {
		span.RecordError(err)
		return domain.Student{}, "", fmt.Errorf("hash password: %w", err)
	}

	student := domain.Student{
		ID:           s.node.Generate().Int64(),
		UUID:         uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		IsActive:     true,
	}

	created, err := s.students.Create(ctx, student)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateStudent) {
			// The public contract reports duplicates on register as 400.
			return domain.Student{}, "", newError(CodeConflict, "Student with this email or username already exists.", http.StatusBadRequest)
		}
		span.RecordError(err)
		return domain.Student{}, "", fmt.Errorf("create student: %w", err)
	}

	token, err := s.jwt.GenerateAccessToken(ctx, created)
	if err != nil {
		span.RecordError(err)
		return domain.Student{}, "", fmt.Errorf("generate token: %w", err)
	}

	audit(s.logger, "student.register.success", zap.Int64("student_id", created.ID), zap.String("username", created.Username))
	return created, token, nil
}

// Login verifies credentials and issues a fresh token. The login value
// matches either username or email.
func (s *StudentService) Login(ctx context.Context, login, password string) (domain.Student, string, error) {
	ctx, span := s.tracer.Start(ctx, "StudentService.Login")
	defer span.End()

	student, err := s.students.GetByLogin(ctx, strings.TrimSpace(login))
	if err != nil {
		if errors.Is(err, domain.ErrStudentNotFound) {
			return domain.Student{}, "", newError(CodeUnauthenticated, "Invalid credentials.", http.StatusUnauthorized)
		}
		span.RecordError(err)
		return domain.Student{}, "", fmt.Errorf("login lookup: %w", err)
	}

	if !student.IsActive {
		return domain.Student{}, "", newError(CodeUnauthenticated, "Account is deactivated.", http.StatusUnauthorized)
	}

	valid, err := pw.Verify(password, student.PasswordHash)
	if err != nil || !valid {
		return domain.Student{}, "", newError(CodeUnauthenticated, "Invalid credentials.", http.StatusUnauthorized)
	}

	token, err := s.jwt.GenerateAccessToken(ctx, student)
	if err != nil {
		span.RecordError(err)
		return domain.Student{}, "", fmt.Errorf("generate token: %w", err)
	}

	audit(s.logger, "student.login.success", zap.Int64("student_id", student.ID))
	return student, token, nil
}

// Profile returns the account for an already-authenticated student.
func (s *StudentService) Profile(ctx context.Context, studentID int64) (domain.Student, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, domain.ErrStudentNotFound) {
			return domain.Student{}, newError(CodeNotFound, "Student not found.", http.StatusNotFound)
		}
		return domain.Student{}, fmt.Errorf("load profile: %w", err)
	}
	return student, nil
}

// Authenticate resolves a bearer token to its owning student. Expired and
// malformed tokens fail with distinguishable messages; a valid token whose
// student is missing or deactivated also fails.
func (s *StudentService) Authenticate(ctx context.Context, token string) (domain.Student, error) {
	ctx, span := s.tracer.Start(ctx, "StudentService.Authenticate")
	defer span.End()

	std, _, err := s.jwt.ValidateAccessToken(ctx, token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Student{}, newError(CodeUnauthenticated, "Token expired.", http.StatusUnauthorized)
		}
		return domain.Student{}, newError(CodeUnauthenticated, "Invalid token.", http.StatusUnauthorized)
	}

	studentID, err := jwt.SubjectID(std)
	if err != nil {
		return domain.Student{}, newError(CodeUnauthenticated, "Invalid token.", http.StatusUnauthorized)
	}

	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, domain.ErrStudentNotFound) {
			return domain.Student{}, newError(CodeUnauthenticated, "Invalid token. Student not found.", http.StatusUnauthorized)
		}
		span.RecordError(err)
		return domain.Student{}, fmt.Errorf("authenticate lookup: %w", err)
	}
	return s.requireActive(student)
}

// AuthenticateLegacyUUID resolves a bare X-Student-UUID header value. The
// value is unsigned; the store lookup alone vouches for it.
func (s *StudentService) AuthenticateLegacyUUID(ctx context.Context, studentUUID string) (domain.Student, error) {
	ctx, span := s.tracer.Start(ctx, "StudentService.AuthenticateLegacyUUID")
	defer span.End()

	// The uuid column is typed; reject unparseable values here so they read
	// as an unknown identifier instead of a store error.
	if _, err := uuid.Parse(studentUUID); err != nil {
		return domain.Student{}, newError(CodeUnauthenticated, "Invalid Student UUID.", http.StatusUnauthorized)
	}

	if s.cache != nil {
		cached, err := s.cache.GetByUUID(ctx, studentUUID)
		if err != nil {
			s.log().Warn("student cache lookup failed", zap.Error(err))
		} else if cached != nil {
			return s.requireActive(*cached)
		}
	}

	student, err := s.students.GetByUUID(ctx, studentUUID)
	if err != nil {
		if errors.Is(err, domain.ErrStudentNotFound) {
			return domain.Student{}, newError(CodeUnauthenticated, "Invalid Student UUID.", http.StatusUnauthorized)
		}
		span.RecordError(err)
		return domain.Student{}, fmt.Errorf("legacy uuid lookup: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Save(ctx, student); err != nil {
			s.log().Warn("student cache save failed", zap.Error(err))
		}
	}
	return s.requireActive(student)
}

func (s *StudentService) requireActive(student domain.Student) (domain.Student, error) {
	if !student.IsActive {
		return domain.Student{}, newError(CodeUnauthenticated, "Account is deactivated.", http.StatusUnauthorized)
	}
	return student, nil
}

func (s *StudentService) log() *zap.Logger {
	if s != nil && s.logger != nil {
		return s.logger
	}
	return zap.L()
}
