package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-api/internal/model"
)

const appointmentColumns = `id, patient_id, doctor_id, appt_datetime, reason, status, created_at`

type appointmentRepository struct {
	baseRepository
}

// appointmentRow is one line of the patient/doctor join.
type appointmentRow struct {
	ID           int64                   `db:"id"`
	ApptDatetime model.DateTime          `db:"appt_datetime"`
	Reason       *string                 `db:"reason"`
	Status       model.AppointmentStatus `db:"status"`
	PatientID    int64                   `db:"patient_id"`
	PatientName  string                  `db:"patient_name"`
	DoctorID     int64                   `db:"doctor_id"`
	DoctorName   string                  `db:"doctor_name"`
}

func (row appointmentRow) detail() *model.AppointmentDetail {
	return &model.AppointmentDetail{
		ID:           row.ID,
		Patient:      model.Ref{ID: row.PatientID, Name: row.PatientName},
		Doctor:       model.Ref{ID: row.DoctorID, Name: row.DoctorName},
		ApptDatetime: row.ApptDatetime,
		Reason:       row.Reason,
		Status:       row.Status,
	}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) (err error) {
	defer r.observe("appointment_create", time.Now(), &err)

	appointment.CreatedAt = now()
	id, err := insert(ctx, r.db,
		`INSERT INTO appointment (patient_id, doctor_id, appt_datetime, reason, status, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		appointment.PatientID, appointment.DoctorID, appointment.ApptDatetime, appointment.Reason, appointment.Status, appointment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	appointment.ID = id
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id int64) (_ *model.Appointment, err error) {
	defer r.observe("appointment_get", time.Now(), &err)

	var appointment model.Appointment
	query := r.db.Rebind(`SELECT ` + appointmentColumns + ` FROM appointment WHERE id = ?`)
	if err := r.db.GetContext(ctx, &appointment, query, id); err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", notFound(err))
	}
	return &appointment, nil
}

func (r *appointmentRepository) Update(ctx context.Context, id int64, patch *model.AppointmentPatch) (_ *model.Appointment, err error) {
	defer r.observe("appointment_update", time.Now(), &err)

	var appointment model.Appointment
	err = r.withTx(ctx, func(tx *sqlx.Tx) error {
		query := tx.Rebind(`SELECT ` + appointmentColumns + ` FROM appointment WHERE id = ? FOR UPDATE`)
		if err := tx.GetContext(ctx, &appointment, query, id); err != nil {
			return notFound(err)
		}

		var sets []string
		var args []interface{}
		if patch.Status != nil {
			sets = append(sets, "status = ?")
			args = append(args, *patch.Status)
			appointment.Status = *patch.Status
		}
		if patch.ApptDatetime != nil {
			sets = append(sets, "appt_datetime = ?")
			args = append(args, *patch.ApptDatetime)
			appointment.ApptDatetime = *patch.ApptDatetime
		}
		if len(sets) == 0 {
			return nil
		}

		args = append(args, id)
		update := tx.Rebind(`UPDATE appointment SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`)
		if _, err := tx.ExecContext(ctx, update, args...); err != nil {
			return classify(err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) List(ctx context.Context) (_ []*model.AppointmentDetail, err error) {
	defer r.observe("appointment_list", time.Now(), &err)

	query := `
		SELECT a.id, a.appt_datetime, a.reason, a.status,
		       p.id AS patient_id, p.name AS patient_name,
		       d.id AS doctor_id, d.name AS doctor_name
		FROM appointment a
		JOIN patient p ON p.id = a.patient_id
		JOIN doctor d ON d.id = a.doctor_id
		ORDER BY a.appt_datetime DESC, a.id DESC
	`
	var rows []appointmentRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	appointments := make([]*model.AppointmentDetail, 0, len(rows))
	for _, row := range rows {
		appointments = append(appointments, row.detail())
	}
	return appointments, nil
}
