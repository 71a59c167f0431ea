package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee status values form a closed set.
const (
	EmployeeStatusActive   = "Active"
	EmployeeStatusInactive = "Inactive"
)

// DefaultEmployeeRole is applied when the caller omits a role.
const DefaultEmployeeRole = "Employee"

// Employee is a record owned by exactly one student. StudentID is the sole
// isolation key: it is stamped server-side on create and immutable afterwards.
// (StudentID, Email) is unique per student.
type Employee struct {
	ID            int64
	StudentID     int64
	Name          string
	Email         string
	Role          string
	Salary        decimal.Decimal
	Status        string
	DateOfJoining time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
