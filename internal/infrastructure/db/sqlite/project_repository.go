package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/layer2/project-tracker/internal/core/domain"
)

// ProjectRepository persists projects. Reads attach the owning customer via
// a join; the foreign key rejects dangling customer references.
type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectJoinQuery = `
SELECT p.id, p.description, p.responsible_person, p.start_date, p.end_date, p.customer_id, p.version,
	c.id, c.name, c.code, c.responsible_person, c.start_date, c.version
FROM projects p
JOIN customers c ON c.id = p.customer_id`

func scanProjectWithCustomer(row interface{ Scan(...any) error }) (*domain.Project, error) {
	var p domain.Project
	var c domain.Customer
	var pStart, pEnd, cStart int64
	err := row.Scan(
		&p.ID, &p.Description, &p.ResponsiblePerson, &pStart, &pEnd, &p.CustomerID, &p.Version,
		&c.ID, &c.Name, &c.Code, &c.ResponsiblePerson, &cStart, &c.Version,
	)
	if err != nil {
		return nil, err
	}
	p.StartDate = unixToTime(pStart)
	p.EndDate = unixToTime(pEnd)
	c.StartDate = unixToTime(cStart)
	p.Customer = &c
	return &p, nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]*domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, projectJoinQuery+` ORDER BY p.id`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]*domain.Project, 0)
	for rows.Next() {
		p, err := scanProjectWithCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *ProjectRepository) Get(ctx context.Context, id int64) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, projectJoinQuery+` WHERE p.id = ?`, id)
	p, err := scanProjectWithCustomer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("query project: %w", err)
	}
	return p, nil
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	const q = `INSERT INTO projects (description, responsible_person, start_date, end_date, customer_id)
VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		p.Description, p.ResponsiblePerson, timeToUnix(p.StartDate), timeToUnix(p.EndDate), p.CustomerID)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert project id: %w", err)
	}
	p.ID = id
	p.Version = 1
	return nil
}

func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) error {
	const q = `UPDATE projects
SET description = ?, responsible_person = ?, start_date = ?, end_date = ?, customer_id = ?, version = version + 1
WHERE id = ? AND version = ?`
	res, err := r.db.ExecContext(ctx, q,
		p.Description, p.ResponsiblePerson, timeToUnix(p.StartDate), timeToUnix(p.EndDate), p.CustomerID,
		p.ID, p.Version)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update project result: %w", err)
	}
	if n == 0 {
		return domain.ErrConflict
	}
	p.Version++
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete project result: %w", err)
	}
	if n == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM projects WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("project exists: %w", err)
	}
	return exists, nil
}
