package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/Amxn-2/Employee-Management/internal/domain"
)

// In-memory repositories backing the service tests.

type memoryStudentRepo struct {
	mu       sync.Mutex
	students []domain.Student
	lookups  int
}

func (m *memoryStudentRepo) Create(ctx context.Context, student domain.Student) (domain.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.students {
		if s.Username == student.Username || s.Email == student.Email {
			return domain.Student{}, domain.ErrDuplicateStudent
		}
	}
	now := time.Now().UTC()
	student.CreatedAt = now
	student.UpdatedAt = now
	m.students = append(m.students, student)
	return student, nil
}

func (m *memoryStudentRepo) GetByID(ctx context.Context, id int64) (domain.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.students {
		if s.ID == id {
			return s, nil
		}
	}
	return domain.Student{}, domain.ErrStudentNotFound
}

func (m *memoryStudentRepo) GetByUUID(ctx context.Context, uuid string) (domain.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups++
	for _, s := range m.students {
		if s.UUID == uuid {
			return s, nil
		}
	}
	return domain.Student{}, domain.ErrStudentNotFound
}

func (m *memoryStudentRepo) GetByLogin(ctx context.Context, login string) (domain.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.students {
		if s.Username == login || s.Email == login {
			return s, nil
		}
	}
	return domain.Student{}, domain.ErrStudentNotFound
}

type memoryEmployeeRepo struct {
	mu        sync.Mutex
	employees []domain.Employee
}

func (m *memoryEmployeeRepo) Create(ctx context.Context, employee domain.Employee) (domain.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.employees {
		if e.StudentID == employee.StudentID && e.Email == employee.Email {
			return domain.Employee{}, domain.ErrDuplicateEmployee
		}
	}
	now := time.Now().UTC()
	employee.CreatedAt = now
	employee.UpdatedAt = now
	m.employees = append(m.employees, employee)
	return employee, nil
}

func (m *memoryEmployeeRepo) ListByStudent(ctx context.Context, studentID int64) ([]domain.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	// Newest first: reverse insertion order stands in for created_at DESC.
	out := make([]domain.Employee, 0)
	for i := len(m.employees) - 1; i >= 0; i-- {
		if m.employees[i].StudentID == studentID {
			out = append(out, m.employees[i])
		}
	}
	return out, nil
}

func (m *memoryEmployeeRepo) GetByID(ctx context.Context, studentID, employeeID int64) (domain.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.employees {
		if e.ID == employeeID && e.StudentID == studentID {
			return e, nil
		}
	}
	return domain.Employee{}, domain.ErrEmployeeNotFound
}

func (m *memoryEmployeeRepo) Update(ctx context.Context, employee domain.Employee) (domain.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.employees {
		if e.ID != employee.ID || e.StudentID != employee.StudentID {
			continue
		}
		for _, other := range m.employees {
			if other.ID != employee.ID && other.StudentID == employee.StudentID && other.Email == employee.Email {
				return domain.Employee{}, domain.ErrDuplicateEmployee
			}
		}
		employee.CreatedAt = e.CreatedAt
		employee.UpdatedAt = time.Now().UTC()
		m.employees[i] = employee
		return employee, nil
	}
	return domain.Employee{}, domain.ErrEmployeeNotFound
}

func (m *memoryEmployeeRepo) Delete(ctx context.Context, studentID, employeeID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.employees {
		if e.ID == employeeID && e.StudentID == studentID {
			m.employees = append(m.employees[:i], m.employees[i+1:]...)
			return nil
		}
	}
	return domain.ErrEmployeeNotFound
}

type memoryStudentCache struct {
	mu      sync.Mutex
	entries map[string]domain.Student
	hits    int
}

func newMemoryStudentCache() *memoryStudentCache {
	return &memoryStudentCache{entries: map[string]domain.Student{}}
}

func (m *memoryStudentCache) GetByUUID(ctx context.Context, uuid string) (*domain.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.entries[uuid]; ok {
		m.hits++
		return &s, nil
	}
	return nil, nil
}

func (m *memoryStudentCache) Save(ctx context.Context, student domain.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[student.UUID] = student
	return nil
}
