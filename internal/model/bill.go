package model

import (
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/validator"
)

type BillStatus string

const (
	BillStatusUnpaid  BillStatus = "Unpaid"
	BillStatusPaid    BillStatus = "Paid"
	BillStatusPending BillStatus = "Pending"
)

type Bill struct {
	Base
	AdmissionID int64      `db:"admission_id" json:"admission_id"`
	Amount      float64    `db:"amount" json:"amount"`
	BillDate    Date       `db:"bill_date" json:"bill_date"`
	Status      BillStatus `db:"status" json:"status"`
}

type CreateBillRequest struct {
	AdmissionID *int64   `json:"admission_id"`
	Amount      *float64 `json:"amount" binding:"omitempty,gte=0"`
	BillDate    *string  `json:"bill_date"`
	Status      *string  `json:"status" binding:"omitempty,oneof=Unpaid Paid Pending"`
}

// Validate checks only admission_id. Field values are judged by Complete once
// the admission is known to exist.
func (r *CreateBillRequest) Validate() (*Bill, error) {
	if !presentID(r.AdmissionID) {
		return nil, apperrors.Validation("admission_id required")
	}

	return &Bill{AdmissionID: *r.AdmissionID, Status: BillStatusUnpaid}, nil
}

// Complete applies amount, status and bill_date to b.
func (r *CreateBillRequest) Complete(b *Bill) error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	if r.Amount != nil {
		b.Amount = *r.Amount
	}
	if present(r.Status) {
		b.Status = BillStatus(*r.Status)
	}

	d, err := r.resolveBillDate()
	if err != nil {
		return err
	}
	b.BillDate = d
	return nil
}

// resolveBillDate parses an explicit bill_date or falls back to today.
func (r *CreateBillRequest) resolveBillDate() (Date, error) {
	if !present(r.BillDate) {
		return Today(), nil
	}
	d, err := ParseDate(*r.BillDate)
	if err != nil {
		return Date{}, apperrors.NewBadRequest("bill_date must be ISO date", err)
	}
	return d, nil
}
