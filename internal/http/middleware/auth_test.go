package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Amxn-2/Employee-Management/internal/domain"
	"github.com/Amxn-2/Employee-Management/internal/http/middleware"
	"github.com/Amxn-2/Employee-Management/internal/jwt"
	"github.com/Amxn-2/Employee-Management/internal/service"
)

type stubStudentRepo struct {
	student domain.Student
}

func (s *stubStudentRepo) Create(ctx context.Context, student domain.Student) (domain.Student, error) {
	return student, nil
}

func (s *stubStudentRepo) GetByID(ctx context.Context, id int64) (domain.Student, error) {
	if s.student.ID == id {
		return s.student, nil
	}
	return domain.Student{}, domain.ErrStudentNotFound
}

func (s *stubStudentRepo) GetByUUID(ctx context.Context, uuid string) (domain.Student, error) {
	if s.student.UUID == uuid {
		return s.student, nil
	}
	return domain.Student{}, domain.ErrStudentNotFound
}

func (s *stubStudentRepo) GetByLogin(ctx context.Context, login string) (domain.Student, error) {
	if s.student.Username == login || s.student.Email == login {
		return s.student, nil
	}
	return domain.Student{}, domain.ErrStudentNotFound
}

type gateFixture struct {
	auth      *middleware.Auth
	generator *jwt.Generator
	student   domain.Student
}

func newGateFixture(t *testing.T, allowLegacy bool) *gateFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	student := domain.Student{
		ID:       7,
		UUID:     "5f3b0c1e-2f7a-4d2b-9a39-2f6f9a1f1d10",
		Username: "alice",
		Email:    "alice@example.com",
		IsActive: true,
	}
	node, err := snowflake.NewNode(3)
	require.NoError(t, err)
	generator := jwt.NewGenerator("test-secret", "employee-management-api", time.Hour)
	students := service.NewStudentService(&stubStudentRepo{student: student}, nil, node, generator, zap.NewNop())

	return &gateFixture{
		auth:      &middleware.Auth{Students: students, AllowLegacyHeader: allowLegacy},
		generator: generator,
		student:   student,
	}
}

func (f *gateFixture) serve(t *testing.T, mutate func(r *http.Request)) (*httptest.ResponseRecorder, bool, int64) {
	t.Helper()

	var (
		reached   bool
		studentID int64
	)
	router := gin.New()
	router.GET("/protected", f.auth.RequireStudent, func(c *gin.Context) {
		reached = true
		studentID, _ = middleware.StudentID(c)
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	mutate(req)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec, reached, studentID
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.False(t, body.Success)
	return body.Error
}

func TestRequireStudentValidToken(t *testing.T) {
	f := newGateFixture(t, false)
	token, err := f.generator.GenerateAccessToken(context.Background(), f.student)
	require.NoError(t, err)

	rec, reached, studentID := f.serve(t, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, reached)
	require.Equal(t, f.student.ID, studentID)
}

func TestRequireStudentMissingCredential(t *testing.T) {
	f := newGateFixture(t, false)
	rec, reached, _ := f.serve(t, func(r *http.Request) {})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, reached)
	require.Equal(t, "Access denied. No token provided.", decodeError(t, rec))
}

func TestRequireStudentEmptyBearerToken(t *testing.T) {
	f := newGateFixture(t, false)
	rec, reached, _ := f.serve(t, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer ")
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, reached)
	require.Equal(t, "Access denied. No token provided.", decodeError(t, rec))
}

func TestRequireStudentNonBearerScheme(t *testing.T) {
	f := newGateFixture(t, false)
	rec, reached, _ := f.serve(t, func(r *http.Request) {
		r.Header.Set("Authorization", "Basic abc123")
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, reached)
	require.Equal(t, "Access denied. No token provided.", decodeError(t, rec))
}

func TestRequireStudentInvalidToken(t *testing.T) {
	f := newGateFixture(t, false)
	rec, reached, _ := f.serve(t, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer not.a.jwt")
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, reached)
	require.Equal(t, "Invalid token.", decodeError(t, rec))
}

func TestRequireStudentExpiredToken(t *testing.T) {
	f := newGateFixture(t, false)
	expired := jwt.NewGenerator("test-secret", "employee-management-api", -2*time.Minute)
	token, err := expired.GenerateAccessToken(context.Background(), f.student)
	require.NoError(t, err)

	rec, reached, _ := f.serve(t, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, reached)
	require.Equal(t, "Token expired.", decodeError(t, rec))
}

func TestRequireStudentLegacyHeader(t *testing.T) {
	f := newGateFixture(t, true)
	rec, reached, studentID := f.serve(t, func(r *http.Request) {
		r.Header.Set("X-Student-UUID", f.student.UUID)
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, reached)
	require.Equal(t, f.student.ID, studentID)
}

func TestRequireStudentLegacyHeaderUnknownUUID(t *testing.T) {
	f := newGateFixture(t, true)
	rec, reached, _ := f.serve(t, func(r *http.Request) {
		r.Header.Set("X-Student-UUID", "00000000-0000-0000-0000-000000000000")
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, reached)
	require.Equal(t, "Invalid Student UUID.", decodeError(t, rec))
}

func TestRequireStudentLegacyHeaderMalformedValue(t *testing.T) {
	f := newGateFixture(t, true)
	rec, reached, _ := f.serve(t, func(r *http.Request) {
		r.Header.Set("X-Student-UUID", "not-a-uuid")
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, reached)
	require.Equal(t, "Invalid Student UUID.", decodeError(t, rec))
}

func TestRequireStudentLegacyHeaderDisabled(t *testing.T) {
	f := newGateFixture(t, false)
	rec, reached, _ := f.serve(t, func(r *http.Request) {
		r.Header.Set("X-Student-UUID", f.student.UUID)
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, reached)
	require.Equal(t, "Access denied. No token provided.", decodeError(t, rec))
}

type failingStudentRepo struct{}

func (failingStudentRepo) Create(ctx context.Context, student domain.Student) (domain.Student, error) {
	return domain.Student{}, errors.New("connection reset")
}

func (failingStudentRepo) GetByID(ctx context.Context, id int64) (domain.Student, error) {
	return domain.Student{}, errors.New("connection reset")
}

func (failingStudentRepo) GetByUUID(ctx context.Context, uuid string) (domain.Student, error) {
	return domain.Student{}, errors.New("connection reset")
}

func (failingStudentRepo) GetByLogin(ctx context.Context, login string) (domain.Student, error) {
	return domain.Student{}, errors.New("connection reset")
}

func TestRequireStudentLogsInternalErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zap.ErrorLevel)
	previous := zap.L()
	zap.ReplaceGlobals(zap.New(core))
	defer zap.ReplaceGlobals(previous)

	node, err := snowflake.NewNode(5)
	require.NoError(t, err)
	generator := jwt.NewGenerator("test-secret", "employee-management-api", time.Hour)
	students := service.NewStudentService(failingStudentRepo{}, nil, node, generator, zap.NewNop())
	f := &gateFixture{
		auth:      &middleware.Auth{Students: students},
		generator: generator,
		student:   domain.Student{ID: 7, IsActive: true},
	}

	token, err := generator.GenerateAccessToken(context.Background(), f.student)
	require.NoError(t, err)

	rec, reached, _ := f.serve(t, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.False(t, reached)
	require.Equal(t, "Internal server error.", decodeError(t, rec))

	entries := logs.FilterMessage("authenticate request").All()
	require.Len(t, entries, 1)
	require.Contains(t, entries[0].ContextMap()["error"], "connection reset")
}

func TestRequireStudentBearerWinsOverLegacyHeader(t *testing.T) {
	f := newGateFixture(t, true)
	rec, reached, _ := f.serve(t, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer garbage")
		r.Header.Set("X-Student-UUID", f.student.UUID)
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, reached)
	require.Equal(t, "Invalid token.", decodeError(t, rec))
}
