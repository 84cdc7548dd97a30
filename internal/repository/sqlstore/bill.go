package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jwalitptl/hospital-api/internal/model"
)

type billRepository struct {
	baseRepository
}

func (r *billRepository) Create(ctx context.Context, bill *model.Bill) (err error) {
	defer r.observe("bill_create", time.Now(), &err)

	bill.CreatedAt = now()
	id, err := insert(ctx, r.db,
		`INSERT INTO bill (admission_id, amount, bill_date, status, created_at) VALUES (?, ?, ?, ?, ?)`,
		bill.AdmissionID, bill.Amount, bill.BillDate, bill.Status, bill.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create bill: %w", err)
	}
	bill.ID = id
	return nil
}
