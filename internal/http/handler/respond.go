package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Amxn-2/Employee-Management/internal/domain"
	"github.com/Amxn-2/Employee-Management/internal/service"
)

// studentResponse is the account view with the credential hash stripped.
// IDs cross the wire as strings so JavaScript clients keep full precision.
type studentResponse struct {
	ID        string    `json:"id"`
	UUID      string    `json:"uuid"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

func newStudentResponse(s domain.Student) studentResponse {
	return studentResponse{
		ID:        strconv.FormatInt(s.ID, 10),
		UUID:      s.UUID,
		Username:  s.Username,
		Email:     s.Email,
		FullName:  s.FullName,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
	}
}

type employeeResponse struct {
	ID            string          `json:"id"`
	StudentID     string          `json:"studentId"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Role          string          `json:"role"`
	Salary        decimal.Decimal `json:"salary"`
	Status        string          `json:"status"`
	DateOfJoining time.Time       `json:"dateOfJoining"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func newEmployeeResponse(e domain.Employee) employeeResponse {
	return employeeResponse{
		ID:            strconv.FormatInt(e.ID, 10),
		StudentID:     strconv.FormatInt(e.StudentID, 10),
		Name:          e.Name,
		Email:         e.Email,
		Role:          e.Role,
		Salary:        e.Salary,
		Status:        e.Status,
		DateOfJoining: e.DateOfJoining,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

// respondError maps service errors onto the response envelope. Anything that
// is not a *service.Error is logged and returned as an opaque 500.
func respondError(c *gin.Context, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		c.JSON(svcErr.Status, gin.H{"success": false, "error": svcErr.Message})
		return
	}

	zap.L().Error("internal error",
		zap.Error(err),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error."})
}

func respondBadPayload(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request payload."})
}
