package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Amxn-2/Employee-Management/internal/domain"
	"github.com/Amxn-2/Employee-Management/internal/repository"
)

// EmployeeService implements the scoped record store. Every operation takes
// the owner resolved by the identity gate and passes it into the repository
// predicate; the service never trusts owner values from payloads.
type EmployeeService struct {
	employees repository.EmployeeRepository
	node      *snowflake.Node
	logger    *zap.Logger
	tracer    trace.Tracer
}

// NewEmployeeService wires dependencies.
func NewEmployeeService(employees repository.EmployeeRepository, node *snowflake.Node, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{
		employees: employees,
		node:      node,
		logger:    logger,
		tracer:    otel.Tracer("github.com/Amxn-2/Employee-Management/internal/service"),
	}
}

// CreateEmployeeInput is the create payload after JSON binding. Optional
// fields are pointers so absence and zero values stay distinguishable.
type CreateEmployeeInput struct {
	Name          string
	Email         string
	Role          string
	Salary        *decimal.Decimal
	Status        string
	DateOfJoining *time.Time
}

// UpdateEmployeeInput carries a partial update; nil fields keep the stored
// value. There is deliberately no owner field.
type UpdateEmployeeInput struct {
	Name          *string
	Email         *string
	Role          *string
	Salary        *decimal.Decimal
	Status        *string
	DateOfJoining *time.Time
}

// Create validates the payload, stamps the owner, and stores the record.
func (s *EmployeeService) Create(ctx context.Context, studentID int64, in CreateEmployeeInput) (domain.Employee, error) {
	ctx, span := s.tracer.Start(ctx, "EmployeeService.Create")
	defer span.End()

	employee := domain.Employee{
		ID:        s.node.Generate().Int64(),
		StudentID: studentID,
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Role:      strings.TrimSpace(in.Role),
		Salary:    decimal.Zero,
		Status:    strings.TrimSpace(in.Status),
	}
	if in.Salary != nil {
		employee.Salary = *in.Salary
	}
	if employee.Role == "" {
		employee.Role = domain.DefaultEmployeeRole
	}
	if employee.Status == "" {
		employee.Status = domain.EmployeeStatusActive
	}
	employee.DateOfJoining = time.Now().UTC()
	if in.DateOfJoining != nil {
		employee.DateOfJoining = *in.DateOfJoining
	}

	if err := validateEmployee(employee); err != nil {
		return domain.Employee{}, err
	}

	created, err := s.employees.Create(ctx, employee)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmployee) {
			return domain.Employee{}, newError(CodeConflict, "Employee with this email already exists.", http.StatusConflict)
		}
		span.RecordError(err)
		return domain.Employee{}, fmt.Errorf("create employee: %w", err)
	}

	audit(s.logger, "employee.created", zap.Int64("student_id", studentID), zap.Int64("employee_id", created.ID))
	return created, nil
}

// List returns the caller's records, newest-created first.
func (s *EmployeeService) List(ctx context.Context, studentID int64) ([]domain.Employee, error) {
	employees, err := s.employees.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}

// Get returns the record only when the caller owns it; otherwise NotFound.
// Another owner's record must stay indistinguishable from an absent one.
func (s *EmployeeService) Get(ctx context.Context, studentID, employeeID int64) (domain.Employee, error) {
	employee, err := s.employees.GetByID(ctx, studentID, employeeID)
	if err != nil {
		return domain.Employee{}, s.wrapLookupErr(err)
	}
	return employee, nil
}

// Update merges the partial payload onto the stored record, re-validates,
// and persists. The owner is taken from the stored record and never from
// the payload.
func (s *EmployeeService) Update(ctx context.Context, studentID, employeeID int64, in UpdateEmployeeInput) (domain.Employee, error) {
	ctx, span := s.tracer.Start(ctx, "EmployeeService.Update")
	defer span.End()

	employee, err := s.employees.GetByID(ctx, studentID, employeeID)
	if err != nil {
		return domain.Employee{}, s.wrapLookupErr(err)
	}

	if in.Name != nil {
		employee.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		employee.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Role != nil {
		employee.Role = strings.TrimSpace(*in.Role)
	}
	if in.Salary != nil {
		employee.Salary = *in.Salary
	}
	if in.Status != nil {
		employee.Status = strings.TrimSpace(*in.Status)
	}
	if in.DateOfJoining != nil {
		employee.DateOfJoining = *in.DateOfJoining
	}

	if err := validateEmployee(employee); err != nil {
		return domain.Employee{}, err
	}

	updated, err := s.employees.Update(ctx, employee)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmployee) {
			return domain.Employee{}, newError(CodeConflict, "Employee with this email already exists.", http.StatusConflict)
		}
		span.RecordError(err)
		return domain.Employee{}, s.wrapLookupErr(err)
	}

	audit(s.logger, "employee.updated", zap.Int64("student_id", studentID), zap.Int64("employee_id", employeeID))
	return updated, nil
}

// Delete removes the record when owned; a repeat call reports NotFound.
func (s *EmployeeService) Delete(ctx context.Context, studentID, employeeID int64) error {
	ctx, span := s.tracer.Start(ctx, "EmployeeService.Delete")
	defer span.End()

	if err := s.employees.Delete(ctx, studentID, employeeID); err != nil {
		return s.wrapLookupErr(err)
	}

	audit(s.logger, "employee.deleted", zap.Int64("student_id", studentID), zap.Int64("employee_id", employeeID))
	return nil
}

func (s *EmployeeService) wrapLookupErr(err error) error {
	if errors.Is(err, domain.ErrEmployeeNotFound) {
		return newError(CodeNotFound, "Employee not found or does not belong to this student.", http.StatusNotFound)
	}
	return fmt.Errorf("employee lookup: %w", err)
}

func validateEmployee(e domain.Employee) error {
	switch {
	case e.Name == "":
		return newError(CodeValidationFailed, "Name is required.", http.StatusBadRequest)
	case !emailPattern.MatchString(e.Email):
		return newError(CodeValidationFailed, "Please enter a valid email.", http.StatusBadRequest)
	case e.Salary.IsNegative():
		return newError(CodeValidationFailed, "Salary cannot be negative.", http.StatusBadRequest)
	case e.Status != domain.EmployeeStatusActive && e.Status != domain.EmployeeStatusInactive:
		return newError(CodeValidationFailed, "Status must be Active or Inactive.", http.StatusBadRequest)
	}
	return nil
}
