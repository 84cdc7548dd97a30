package model

import (
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/validator"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "Scheduled"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "No-Show"
)

type Appointment struct {
	Base
	PatientID    int64             `db:"patient_id" json:"patient_id"`
	DoctorID     int64             `db:"doctor_id" json:"doctor_id"`
	ApptDatetime DateTime          `db:"appt_datetime" json:"appt_datetime"`
	Reason       *string           `db:"reason" json:"reason"`
	Status       AppointmentStatus `db:"status" json:"status"`
}

// AppointmentDetail is the list projection with patient and doctor joined in.
type AppointmentDetail struct {
	ID           int64             `json:"id"`
	Patient      Ref               `json:"patient"`
	Doctor       Ref               `json:"doctor"`
	ApptDatetime DateTime          `json:"appt_datetime"`
	Reason       *string           `json:"reason"`
	Status       AppointmentStatus `json:"status"`
}

type CreateAppointmentRequest struct {
	PatientID    *int64  `json:"patient_id"`
	DoctorID     *int64  `json:"doctor_id"`
	ApptDatetime *string `json:"appt_datetime"`
	Reason       *string `json:"reason" binding:"omitempty,max=255"`
	Status       *string `json:"status" binding:"omitempty,oneof=Scheduled Completed Cancelled No-Show"`
}

type UpdateAppointmentRequest struct {
	ApptDatetime *string `json:"appt_datetime"`
	Status       *string `json:"status" binding:"omitempty,oneof=Scheduled Completed Cancelled No-Show"`
}

// AppointmentPatch carries the fields a partial update changes; nil means
// untouched.
type AppointmentPatch struct {
	ApptDatetime *DateTime
	Status       *AppointmentStatus
}

func (r *CreateAppointmentRequest) Validate() (*Appointment, error) {
	if r.ApptDatetime == nil {
		return nil, apperrors.Validation("appt_datetime required as ISO datetime")
	}
	dt, err := ParseDateTime(*r.ApptDatetime)
	if err != nil {
		return nil, apperrors.NewBadRequest("appt_datetime required as ISO datetime", err)
	}
	if !presentID(r.PatientID) || !presentID(r.DoctorID) {
		return nil, apperrors.Validation("patient_id and doctor_id required")
	}

	a := &Appointment{
		PatientID:    *r.PatientID,
		DoctorID:     *r.DoctorID,
		ApptDatetime: dt,
		Reason:       r.Reason,
		Status:       AppointmentStatusScheduled,
	}
	if present(r.Status) {
		a.Status = AppointmentStatus(*r.Status)
	}
	return a, nil
}

// Validate is run only once the appointment is known to exist.
func (r *UpdateAppointmentRequest) Validate() (*AppointmentPatch, error) {
	if err := validator.Struct(r); err != nil {
		return nil, err
	}

	patch := &AppointmentPatch{}
	if present(r.Status) {
		s := AppointmentStatus(*r.Status)
		patch.Status = &s
	}
	if r.ApptDatetime != nil {
		dt, err := ParseDateTime(*r.ApptDatetime)
		if err != nil {
			return nil, apperrors.NewBadRequest("appt_datetime must be ISO datetime", err)
		}
		patch.ApptDatetime = &dt
	}
	return patch, nil
}
