package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jwalitptl/hospital-api/internal/model"
)

const doctorColumns = `id, name, department_id, qualification, phone, email, created_at`

type doctorRepository struct {
	baseRepository
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) (err error) {
	defer r.observe("doctor_create", time.Now(), &err)

	doctor.CreatedAt = now()
	id, err := insert(ctx, r.db,
		`INSERT INTO doctor (name, department_id, qualification, phone, email, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		doctor.Name, doctor.DepartmentID, doctor.Qualification, doctor.Phone, doctor.Email, doctor.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	doctor.ID = id
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, id int64) (_ *model.Doctor, err error) {
	defer r.observe("doctor_get", time.Now(), &err)

	var doctor model.Doctor
	query := r.db.Rebind(`SELECT ` + doctorColumns + ` FROM doctor WHERE id = ?`)
	if err := r.db.GetContext(ctx, &doctor, query, id); err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", notFound(err))
	}
	return &doctor, nil
}

func (r *doctorRepository) List(ctx context.Context) (_ []*model.Doctor, err error) {
	defer r.observe("doctor_list", time.Now(), &err)

	doctors := []*model.Doctor{}
	if err := r.db.SelectContext(ctx, &doctors, `SELECT `+doctorColumns+` FROM doctor ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}
