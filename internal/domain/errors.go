package domain

import "errors"

var (
	// ErrStudentNotFound signals a missing account row.
	ErrStudentNotFound = errors.New("student not found")
	// ErrEmployeeNotFound covers both a missing record and a record owned by
	// another student; callers must not be able to tell the two apart.
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrDuplicateStudent indicates the username or email is already taken.
	ErrDuplicateStudent = errors.New("student with this email or username already exists")
	// ErrDuplicateEmployee indicates the (student, email) pair already exists.
	ErrDuplicateEmployee = errors.New("employee with this email already exists")
)
