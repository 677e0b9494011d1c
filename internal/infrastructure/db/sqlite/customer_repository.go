package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/layer2/project-tracker/internal/core/domain"
)

// CustomerRepository persists customers. Reads eagerly attach the owned
// projects; updates are guarded by the row version.
type CustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

const customerColumns = `id, name, code, responsible_person, start_date, version`

func scanCustomer(row interface{ Scan(...any) error }) (*domain.Customer, error) {
	var c domain.Customer
	var startDate int64
	if err := row.Scan(&c.ID, &c.Name, &c.Code, &c.ResponsiblePerson, &startDate, &c.Version); err != nil {
		return nil, err
	}
	c.StartDate = unixToTime(startDate)
	c.Projects = []domain.Project{}
	return &c, nil
}

func (r *CustomerRepository) List(ctx context.Context) ([]*domain.Customer, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	customers := make([]*domain.Customer, 0)
	byID := make(map[int64]*domain.Customer)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
		byID[c.ID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	projects, err := r.projectsFor(ctx, 0)
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		if c, ok := byID[p.CustomerID]; ok {
			c.Projects = append(c.Projects, p)
		}
	}
	return customers, nil
}

func (r *CustomerRepository) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = ?`, id)
	c, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("query customer: %w", err)
	}

	c.Projects, err = r.projectsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// projectsFor loads projects owned by customerID, or by any customer when
// customerID is zero.
func (r *CustomerRepository) projectsFor(ctx context.Context, customerID int64) ([]domain.Project, error) {
	q := `SELECT id, description, responsible_person, start_date, end_date, customer_id, version FROM projects`
	args := []any{}
	if customerID != 0 {
		q += ` WHERE customer_id = ?`
		args = append(args, customerID)
	}
	q += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects for customer: %w", err)
	}
	defer rows.Close()

	projects := make([]domain.Project, 0)
	for rows.Next() {
		var p domain.Project
		var startDate, endDate int64
		if err := rows.Scan(&p.ID, &p.Description, &p.ResponsiblePerson, &startDate, &endDate, &p.CustomerID, &p.Version); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		p.StartDate = unixToTime(startDate)
		p.EndDate = unixToTime(endDate)
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	const q = `INSERT INTO customers (name, code, responsible_person, start_date) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, c.Name, c.Code, c.ResponsiblePerson, timeToUnix(c.StartDate))
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert customer id: %w", err)
	}
	c.ID = id
	c.Version = 1
	return nil
}

// Update overwrites the mutable fields and bumps the version. Zero affected
// rows means the version was stale or the row is gone; both surface as
// domain.ErrConflict and the caller decides which by re-checking existence.
func (r *CustomerRepository) Update(ctx context.Context, c *domain.Customer) error {
	const q = `UPDATE customers
SET name = ?, code = ?, responsible_person = ?, start_date = ?, version = version + 1
WHERE id = ? AND version = ?`
	res, err := r.db.ExecContext(ctx, q, c.Name, c.Code, c.ResponsiblePerson, timeToUnix(c.StartDate), c.ID, c.Version)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update customer result: %w", err)
	}
	if n == 0 {
		return domain.ErrConflict
	}
	c.Version++
	return nil
}

// Delete removes the customer; the schema cascades the delete to all its
// projects in the same statement.
func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete customer result: %w", err)
	}
	if n == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func (r *CustomerRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM customers WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("customer exists: %w", err)
	}
	return exists, nil
}
