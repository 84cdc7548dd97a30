package model

import (
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
)

type Admission struct {
	Base
	PatientID     int64     `db:"patient_id" json:"patient_id"`
	RoomID        int64     `db:"room_id" json:"room_id"`
	AdmitDate     DateTime  `db:"admit_date" json:"admit_date"`
	DischargeDate *DateTime `db:"discharge_date" json:"discharge_date"`
	Reason        *string   `db:"reason" json:"reason"`
}

// Active reports whether the admission still holds its room.
func (a *Admission) Active() bool {
	return a.DischargeDate == nil
}

type CreateAdmissionRequest struct {
	PatientID *int64  `json:"patient_id"`
	RoomID    *int64  `json:"room_id"`
	AdmitDate *string `json:"admit_date"`
	Reason    *string `json:"reason" binding:"omitempty,max=255"`
}

func (r *CreateAdmissionRequest) Validate() (*Admission, error) {
	if r.AdmitDate == nil {
		return nil, apperrors.Validation("admit_date required as ISO datetime")
	}
	admitDate, err := ParseDateTime(*r.AdmitDate)
	if err != nil {
		return nil, apperrors.NewBadRequest("admit_date required as ISO datetime", err)
	}
	if !presentID(r.PatientID) || !presentID(r.RoomID) {
		return nil, apperrors.Validation("patient_id and room_id required")
	}

	return &Admission{
		PatientID: *r.PatientID,
		RoomID:    *r.RoomID,
		AdmitDate: admitDate,
		Reason:    r.Reason,
	}, nil
}
