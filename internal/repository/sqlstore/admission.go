package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
)

const admissionColumns = `id, patient_id, room_id, admit_date, discharge_date, reason, created_at`

type admissionRepository struct {
	baseRepository
}

// Admit claims the room with a conditional update so that two concurrent
// admissions for one room cannot both succeed.
func (r *admissionRepository) Admit(ctx context.Context, admission *model.Admission) (err error) {
	defer r.observe("admission_admit", time.Now(), &err)

	err = r.withTx(ctx, func(tx *sqlx.Tx) error {
		ok, err := exists(ctx, tx, "patient", admission.PatientID)
		if err != nil {
			return err
		}
		if !ok {
			return repository.ErrPatientNotFound
		}

		res, err := tx.ExecContext(ctx,
			tx.Rebind(`UPDATE room SET is_available = FALSE WHERE id = ? AND is_available = TRUE`),
			admission.RoomID,
		)
		if err != nil {
			return err
		}
		claimed, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if claimed == 0 {
			ok, err := exists(ctx, tx, "room", admission.RoomID)
			if err != nil {
				return err
			}
			if !ok {
				return repository.ErrRoomNotFound
			}
			return repository.ErrRoomUnavailable
		}

		admission.CreatedAt = now()
		id, err := insert(ctx, tx,
			`INSERT INTO admission (patient_id, room_id, admit_date, discharge_date, reason, created_at) VALUES (?, ?, ?, NULL, ?, ?)`,
			admission.PatientID, admission.RoomID, admission.AdmitDate, admission.Reason, admission.CreatedAt,
		)
		if errors.Is(err, repository.ErrDuplicate) {
			// active-admission index caught a room whose flag had drifted
			return repository.ErrRoomUnavailable
		}
		if err != nil {
			return err
		}
		admission.ID = id
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to admit patient: %w", err)
	}
	return nil
}

func (r *admissionRepository) Discharge(ctx context.Context, id int64, at model.DateTime) (_ *model.Admission, err error) {
	defer r.observe("admission_discharge", time.Now(), &err)

	var admission model.Admission
	err = r.withTx(ctx, func(tx *sqlx.Tx) error {
		query := tx.Rebind(`SELECT ` + admissionColumns + ` FROM admission WHERE id = ? FOR UPDATE`)
		if err := tx.GetContext(ctx, &admission, query, id); err != nil {
			return notFound(err)
		}
		if !admission.Active() {
			return repository.ErrAlreadyDischarged
		}

		if _, err := tx.ExecContext(ctx,
			tx.Rebind(`UPDATE admission SET discharge_date = ? WHERE id = ?`), at, id,
		); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			tx.Rebind(`UPDATE room SET is_available = TRUE WHERE id = ?`), admission.RoomID,
		); err != nil {
			return err
		}

		admission.DischargeDate = &at
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to discharge admission: %w", err)
	}
	return &admission, nil
}

func (r *admissionRepository) Get(ctx context.Context, id int64) (_ *model.Admission, err error) {
	defer r.observe("admission_get", time.Now(), &err)

	var admission model.Admission
	query := r.db.Rebind(`SELECT ` + admissionColumns + ` FROM admission WHERE id = ?`)
	if err := r.db.GetContext(ctx, &admission, query, id); err != nil {
		return nil, fmt.Errorf("failed to get admission: %w", notFound(err))
	}
	return &admission, nil
}
