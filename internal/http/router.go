package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Amxn-2/Employee-Management/internal/config"
	"github.com/Amxn-2/Employee-Management/internal/http/handler"
	httpmiddleware "github.com/Amxn-2/Employee-Management/internal/http/middleware"
	"github.com/Amxn-2/Employee-Management/internal/middleware"
)

// NewRouter wires gin routes and middleware.
func NewRouter(cfg config.Config, students *handler.StudentHandler, employees *handler.EmployeeHandler, auth *httpmiddleware.Auth, rateLimiter *middleware.RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpmiddleware.RequestLogger(nil))
	if rateLimiter != nil {
		r.Use(rateLimiter.Handler())
	}
	r.Use(middleware.CORS(cfg))
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(middleware.Metrics())

	r.GET("/", indexRoute)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		studentGroup := v1.Group("/students")
		{
			studentGroup.POST("/register", students.Register)
			studentGroup.POST("/login", students.Login)
			studentGroup.GET("/profile", auth.RequireStudent, students.Profile)
		}

		employeeGroup := v1.Group("/employees")
		employeeGroup.Use(auth.RequireStudent)
		{
			employeeGroup.POST("", employees.Create)
			employeeGroup.GET("", employees.List)
			employeeGroup.GET("/:id", employees.Get)
			employeeGroup.PUT("/:id", employees.Update)
			employeeGroup.DELETE("/:id", employees.Delete)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Route not found"})
	})

	return r
}

func indexRoute(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Employee Management API is running",
		"version": "1.0.0",
		"endpoints": gin.H{
			"POST /api/v1/students/register": "Register a new student",
			"POST /api/v1/students/login":    "Login student",
			"GET /api/v1/students/profile":   "Get student profile",
			"POST /api/v1/employees":         "Add a new employee",
			"GET /api/v1/employees":          "Get all employees for the student",
			"GET /api/v1/employees/:id":      "Get single employee by ID",
			"PUT /api/v1/employees/:id":      "Update employee details",
			"DELETE /api/v1/employees/:id":   "Delete an employee",
		},
		"authentication": gin.H{
			"Bearer Token":   "Required for protected routes (Authorization: Bearer <token>)",
			"X-Student-UUID": "Alternative for backward compatibility",
		},
	})
}
