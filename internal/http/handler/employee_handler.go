package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Amxn-2/Employee-Management/internal/http/middleware"
	"github.com/Amxn-2/Employee-Management/internal/service"
)

// EmployeeHandler exposes the scoped CRUD routes. Every handler reads the
// owner from the gin context set by the auth middleware; the request body
// never contributes an owner.
type EmployeeHandler struct {
	Employees *service.EmployeeService
}

func NewEmployeeHandler(employees *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{Employees: employees}
}

// Create handles POST /api/v1/employees.
func (h *EmployeeHandler) Create(c *gin.Context) {
	studentID, ok := middleware.StudentID(c)
	if !ok {
		abortNoOwner(c)
		return
	}

	var req struct {
		Name          string           `json:"name"`
		Email         string           `json:"email"`
		Role          string           `json:"role"`
		Salary        *decimal.Decimal `json:"salary"`
		Status        string           `json:"status"`
		DateOfJoining *time.Time       `json:"dateOfJoining"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadPayload(c)
		return
	}

	employee, err := h.Employees.Create(c.Request.Context(), studentID, service.CreateEmployeeInput{
		Name:          req.Name,
		Email:         req.Email,
		Role:          req.Role,
		Salary:        req.Salary,
		Status:        req.Status,
		DateOfJoining: req.DateOfJoining,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": newEmployeeResponse(employee)})
}

// List handles GET /api/v1/employees.
func (h *EmployeeHandler) List(c *gin.Context) {
	studentID, ok := middleware.StudentID(c)
	if !ok {
		abortNoOwner(c)
		return
	}

	employees, err := h.Employees.List(c.Request.Context(), studentID)
	if err != nil {
		respondError(c, err)
		return
	}

	data := make([]employeeResponse, 0, len(employees))
	for _, e := range employees {
		data = append(data, newEmployeeResponse(e))
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(data), "data": data})
}

// Get handles GET /api/v1/employees/:id.
func (h *EmployeeHandler) Get(c *gin.Context) {
	studentID, ok := middleware.StudentID(c)
	if !ok {
		abortNoOwner(c)
		return
	}
	employeeID, ok := parseEmployeeID(c)
	if !ok {
		return
	}

	employee, err := h.Employees.Get(c.Request.Context(), studentID, employeeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": newEmployeeResponse(employee)})
}

// Update handles PUT /api/v1/employees/:id. Owner fields in the payload are
// not bound and therefore cannot reach the store.
func (h *EmployeeHandler) Update(c *gin.Context) {
	studentID, ok := middleware.StudentID(c)
	if !ok {
		abortNoOwner(c)
		return
	}
	employeeID, ok := parseEmployeeID(c)
	if !ok {
		return
	}

	var req struct {
		Name          *string          `json:"name"`
		Email         *string          `json:"email"`
		Role          *string          `json:"role"`
		Salary        *decimal.Decimal `json:"salary"`
		Status        *string          `json:"status"`
		DateOfJoining *time.Time       `json:"dateOfJoining"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadPayload(c)
		return
	}

	employee, err := h.Employees.Update(c.Request.Context(), studentID, employeeID, service.UpdateEmployeeInput{
		Name:          req.Name,
		Email:         req.Email,
		Role:          req.Role,
		Salary:        req.Salary,
		Status:        req.Status,
		DateOfJoining: req.DateOfJoining,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": newEmployeeResponse(employee)})
}

// Delete handles DELETE /api/v1/employees/:id.
func (h *EmployeeHandler) Delete(c *gin.Context) {
	studentID, ok := middleware.StudentID(c)
	if !ok {
		abortNoOwner(c)
		return
	}
	employeeID, ok := parseEmployeeID(c)
	if !ok {
		return
	}

	if err := h.Employees.Delete(c.Request.Context(), studentID, employeeID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{},
		"message": "Employee deleted successfully",
	})
}

// parseEmployeeID reads the :id path parameter. An unparseable id cannot
// name an owned record, so it reports the same NotFound as a missing one.
func parseEmployeeID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Employee not found or does not belong to this student."})
		return 0, false
	}
	return id, true
}

func abortNoOwner(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Access denied. No token provided."})
}
