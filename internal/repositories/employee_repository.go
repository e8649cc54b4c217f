package repositories

import (
	"context"
	"fmt"
	"strings"

	intdb "fleetlog/internal/db"
	"fleetlog/internal/domain"
	"fleetlog/internal/domain/models"
	"fleetlog/internal/utils"
)

const employeeColumns = `id, name, phone, position, license_no, base_salary, documents, status, created_at`

type EmployeeRepository struct {
	DB intdb.DBTX
}

func scanEmployee(sc rowScanner) (models.Employee, error) {
	var (
		e    models.Employee
		docs string
	)
	err := sc.Scan(&e.ID, &e.Name, &e.Phone, &e.Position, &e.LicenseNo, &e.BaseSalary, &docs, &e.Status, &e.CreatedAt)
	e.Documents = utils.DecodeFileList(docs)
	return e, err
}

// List returns active employees ordered by name.
func (r EmployeeRepository) List(ctx context.Context) ([]models.Employee, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE status = 1 ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list employees: query: %w", err)
	}
	defer rows.Close()

	out := []models.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("list employees: scan row: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list employees: row iteration: %w", err)
	}
	return out, nil
}

// Get loads an employee by id whatever its status.
func (r EmployeeRepository) Get(ctx context.Context, id int64) (models.Employee, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id)
	e, err := scanEmployee(row)
	if err != nil {
		return models.Employee{}, notFound(err, "employee", id, "get employee")
	}
	return e, nil
}

func (r EmployeeRepository) Create(ctx context.Context, e *models.Employee) error {
	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" {
		return domain.ValidationError{Field: "name", Msg: "required"}
	}
	e.Status = domain.StatusActive
	e.CreatedAt = intdb.NowStamp()

	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO employees (name, phone, position, license_no, base_salary, documents, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, e.Name, e.Phone, e.Position, e.LicenseNo, e.BaseSalary, utils.EncodeFileList(e.Documents), e.Status, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("create employee: insert: %w", err)
	}
	e.ID, _ = res.LastInsertId()
	return nil
}

// Update rewrites the editable fields of an active employee.
func (r EmployeeRepository) Update(ctx context.Context, e models.Employee) error {
	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" {
		return domain.ValidationError{Field: "name", Msg: "required"}
	}
	res, err := r.DB.ExecContext(ctx, `
		UPDATE employees
		SET name = ?, phone = ?, position = ?, license_no = ?, base_salary = ?
		WHERE id = ? AND status = 1
	`, e.Name, e.Phone, e.Position, e.LicenseNo, e.BaseSalary, e.ID)
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	return expectAffected(res, "employee", e.ID)
}

// SoftDelete flags the employee as deleted; trip history keeps its driver name.
func (r EmployeeRepository) SoftDelete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE employees SET status = 0 WHERE id = ? AND status = 1`, id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	return expectAffected(res, "employee", id)
}

func (r EmployeeRepository) SetDocuments(ctx context.Context, id int64, files []string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE employees SET documents = ? WHERE id = ?`, utils.EncodeFileList(files), id)
	if err != nil {
		return fmt.Errorf("set employee documents: %w", err)
	}
	return expectAffected(res, "employee", id)
}

func (r EmployeeRepository) CountActive(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees WHERE status = 1`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count employees: %w", err)
	}
	return n, nil
}
