package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Amxn-2/Employee-Management/internal/domain"
)

// Compile-time interface assertions.
var (
	_ StudentRepository  = (*PostgresStudentRepo)(nil)
	_ EmployeeRepository = (*PostgresEmployeeRepo)(nil)
)

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// PostgresStudentRepo implements StudentRepository over pgx.
type PostgresStudentRepo struct {
	db *pgxpool.Pool
}

func NewPostgresStudentRepo(pool *pgxpool.Pool) *PostgresStudentRepo {
	return &PostgresStudentRepo{db: pool}
}

const studentColumns = `id, uuid, username, email, password_hash, full_name, is_active, created_at, updated_at`

const insertStudentSQL = `INSERT INTO students (id, uuid, username, email, password_hash, full_name, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + studentColumns

func (r *PostgresStudentRepo) Create(ctx context.Context, student domain.Student) (domain.Student, error) {
	row := r.db.QueryRow(ctx, insertStudentSQL,
		student.ID,
		student.UUID,
		student.Username,
		student.Email,
		student.PasswordHash,
		student.FullName,
		student.IsActive,
	)

	created, err := scanStudent(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Student{}, domain.ErrDuplicateStudent
		}
		return domain.Student{}, fmt.Errorf("create student: %w", err)
	}
	return created, nil
}

func (r *PostgresStudentRepo) GetByID(ctx context.Context, id int64) (domain.Student, error) {
	row := r.db.QueryRow(ctx, `SELECT `+studentColumns+` FROM students WHERE id = $1`, id)
	return getStudent(row, "get student by id")
}

func (r *PostgresStudentRepo) GetByUUID(ctx context.Context, uuid string) (domain.Student, error) {
	row := r.db.QueryRow(ctx, `SELECT `+studentColumns+` FROM students WHERE uuid = $1`, uuid)
	return getStudent(row, "get student by uuid")
}

func (r *PostgresStudentRepo) GetByLogin(ctx context.Context, login string) (domain.Student, error) {
	row := r.db.QueryRow(ctx, `SELECT `+studentColumns+` FROM students WHERE username = $1 OR email = $1`, login)
	return getStudent(row, "get student by login")
}

func getStudent(row pgx.Row, op string) (domain.Student, error) {
	student, err := scanStudent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Student{}, domain.ErrStudentNotFound
		}
		return domain.Student{}, fmt.Errorf("%s: %w", op, err)
	}
	return student, nil
}

func scanStudent(row pgx.Row) (domain.Student, error) {
	var s domain.Student
	err := row.Scan(
		&s.ID,
		&s.UUID,
		&s.Username,
		&s.Email,
		&s.PasswordHash,
		&s.FullName,
		&s.IsActive,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

// PostgresEmployeeRepo implements EmployeeRepository over pgx.
type PostgresEmployeeRepo struct {
	db *pgxpool.Pool
}

func NewPostgresEmployeeRepo(pool *pgxpool.Pool) *PostgresEmployeeRepo {
	return &PostgresEmployeeRepo{db: pool}
}

const employeeColumns = `id, student_id, name, email, role, salary, status, date_of_joining, created_at, updated_at`

const insertEmployeeSQL = `INSERT INTO employees (id, student_id, name, email, role, salary, status, date_of_joining)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + employeeColumns

func (r *PostgresEmployeeRepo) Create(ctx context.Context, employee domain.Employee) (domain.Employee, error) {
	row := r.db.QueryRow(ctx, insertEmployeeSQL,
		employee.ID,
		employee.StudentID,
		employee.Name,
		employee.Email,
		employee.Role,
		employee.Salary,
		employee.Status,
		employee.DateOfJoining,
	)

	created, err := scanEmployee(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Employee{}, domain.ErrDuplicateEmployee
		}
		return domain.Employee{}, fmt.Errorf("create employee: %w", err)
	}
	return created, nil
}

func (r *PostgresEmployeeRepo) ListByStudent(ctx context.Context, studentID int64) ([]domain.Employee, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE student_id = $1 ORDER BY created_at DESC, id DESC`,
		studentID,
	)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]domain.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}

func (r *PostgresEmployeeRepo) GetByID(ctx context.Context, studentID, employeeID int64) (domain.Employee, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = $1 AND student_id = $2`,
		employeeID, studentID,
	)

	employee, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Employee{}, domain.ErrEmployeeNotFound
		}
		return domain.Employee{}, fmt.Errorf("get employee: %w", err)
	}
	return employee, nil
}

const updateEmployeeSQL = `UPDATE employees
SET name = $3, email = $4, role = $5, salary = $6, status = $7, date_of_joining = $8, updated_at = now()
WHERE id = $1 AND student_id = $2
RETURNING ` + employeeColumns

func (r *PostgresEmployeeRepo) Update(ctx context.Context, employee domain.Employee) (domain.Employee, error) {
	row := r.db.QueryRow(ctx, updateEmployeeSQL,
		employee.ID,
		employee.StudentID,
		employee.Name,
		employee.Email,
		employee.Role,
		employee.Salary,
		employee.Status,
		employee.DateOfJoining,
	)

	updated, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Employee{}, domain.ErrEmployeeNotFound
		}
		if isUniqueViolation(err) {
			return domain.Employee{}, domain.ErrDuplicateEmployee
		}
		return domain.Employee{}, fmt.Errorf("update employee: %w", err)
	}
	return updated, nil
}

func (r *PostgresEmployeeRepo) Delete(ctx context.Context, studentID, employeeID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM employees WHERE id = $1 AND student_id = $2`,
		employeeID, studentID,
	)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

func scanEmployee(row pgx.Row) (domain.Employee, error) {
	var e domain.Employee
	err := row.Scan(
		&e.ID,
		&e.StudentID,
		&e.Name,
		&e.Email,
		&e.Role,
		&e.Salary,
		&e.Status,
		&e.DateOfJoining,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}
