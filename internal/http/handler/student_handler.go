package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Amxn-2/Employee-Management/internal/http/middleware"
	"github.com/Amxn-2/Employee-Management/internal/service"
)

// StudentHandler exposes registration, login, and profile routes.
type StudentHandler struct {
	Students *service.StudentService
}

func NewStudentHandler(students *service.StudentService) *StudentHandler {
	return &StudentHandler{Students: students}
}

// Register handles POST /api/v1/students/register.
func (h *StudentHandler) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"fullName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadPayload(c)
		return
	}

	student, token, err := h.Students.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Student registered successfully",
		"data":    newStudentResponse(student),
		"token":   token,
	})
}

// Login handles POST /api/v1/students/login. The username field matches
// either username or email.
func (h *StudentHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadPayload(c)
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Username and password are required."})
		return
	}

	student, token, err := h.Students.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"data":    newStudentResponse(student),
		"token":   token,
	})
}

// Profile handles GET /api/v1/students/profile.
func (h *StudentHandler) Profile(c *gin.Context) {
	studentID, ok := middleware.StudentID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Access denied. No token provided."})
		return
	}

	student, err := h.Students.Profile(c.Request.Context(), studentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": newStudentResponse(student)})
}
