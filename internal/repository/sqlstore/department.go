package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jwalitptl/hospital-api/internal/model"
)

type departmentRepository struct {
	baseRepository
}

func (r *departmentRepository) Create(ctx context.Context, department *model.Department) (err error) {
	defer r.observe("department_create", time.Now(), &err)

	department.CreatedAt = now()
	id, err := insert(ctx, r.db,
		`INSERT INTO department (name, location, created_at) VALUES (?, ?, ?)`,
		department.Name, department.Location, department.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create department: %w", err)
	}
	department.ID = id
	return nil
}

func (r *departmentRepository) Get(ctx context.Context, id int64) (_ *model.Department, err error) {
	defer r.observe("department_get", time.Now(), &err)

	var department model.Department
	query := r.db.Rebind(`SELECT id, name, location, created_at FROM department WHERE id = ?`)
	if err := r.db.GetContext(ctx, &department, query, id); err != nil {
		return nil, fmt.Errorf("failed to get department: %w", notFound(err))
	}
	return &department, nil
}

func (r *departmentRepository) List(ctx context.Context) (_ []*model.Department, err error) {
	defer r.observe("department_list", time.Now(), &err)

	departments := []*model.Department{}
	query := `SELECT id, name, location, created_at FROM department ORDER BY id`
	if err := r.db.SelectContext(ctx, &departments, query); err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return departments, nil
}
