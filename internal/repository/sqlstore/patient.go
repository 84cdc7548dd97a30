package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jwalitptl/hospital-api/internal/model"
)

const patientColumns = `id, name, dob, gender, phone, email, address, created_at`

type patientRepository struct {
	baseRepository
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) (err error) {
	defer r.observe("patient_create", time.Now(), &err)

	patient.CreatedAt = now()
	id, err := insert(ctx, r.db,
		`INSERT INTO patient (name, dob, gender, phone, email, address, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		patient.Name, patient.DOB, patient.Gender, patient.Phone, patient.Email, patient.Address, patient.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	patient.ID = id
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id int64) (_ *model.Patient, err error) {
	defer r.observe("patient_get", time.Now(), &err)

	var patient model.Patient
	query := r.db.Rebind(`SELECT ` + patientColumns + ` FROM patient WHERE id = ?`)
	if err := r.db.GetContext(ctx, &patient, query, id); err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", notFound(err))
	}
	return &patient, nil
}

func (r *patientRepository) List(ctx context.Context, filters *model.PatientFilters) (_ []*model.Patient, err error) {
	defer r.observe("patient_list", time.Now(), &err)

	query := `SELECT ` + patientColumns + ` FROM patient`
	var args []interface{}
	if filters != nil && filters.Name != "" {
		query += ` WHERE LOWER(name) LIKE ?`
		args = append(args, "%"+strings.ToLower(filters.Name)+"%")
	}
	query += ` ORDER BY id`

	patients := []*model.Patient{}
	if err := r.db.SelectContext(ctx, &patients, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}
