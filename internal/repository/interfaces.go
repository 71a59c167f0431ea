package repository

import (
	"context"

	"github.com/Amxn-2/Employee-Management/internal/domain"
)

// StudentRepository exposes persistence for student accounts.
type StudentRepository interface {
	Create(ctx context.Context, student domain.Student) (domain.Student, error)
	GetByID(ctx context.Context, id int64) (domain.Student, error)
	GetByUUID(ctx context.Context, uuid string) (domain.Student, error)
	// GetByLogin matches the value against username or email.
	GetByLogin(ctx context.Context, login string) (domain.Student, error)
}

// EmployeeRepository exposes persistence for employee records. Every method
// that touches an existing record takes the owning student ID and applies it
// in the query predicate; omitting it anywhere is a tenant-isolation defect.
type EmployeeRepository interface {
	Create(ctx context.Context, employee domain.Employee) (domain.Employee, error)
	ListByStudent(ctx context.Context, studentID int64) ([]domain.Employee, error)
	GetByID(ctx context.Context, studentID, employeeID int64) (domain.Employee, error)
	Update(ctx context.Context, employee domain.Employee) (domain.Employee, error)
	Delete(ctx context.Context, studentID, employeeID int64) error
}

// StudentCache is an optional read-through cache for legacy UUID lookups.
type StudentCache interface {
	GetByUUID(ctx context.Context, uuid string) (*domain.Student, error)
	Save(ctx context.Context, student domain.Student) error
}
