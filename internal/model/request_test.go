package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
)

func strPtr(s string) *string { return &s }
func idPtr(id int64) *int64   { return &id }

func assertValidation(t *testing.T, err error, msg string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok, "expected AppError, got %T", err)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
	assert.Equal(t, msg, appErr.Message)
}

func TestCreateDepartmentRequest_Validate(t *testing.T) {
	_, err := (&CreateDepartmentRequest{}).Validate()
	assertValidation(t, err, "name required")

	_, err = (&CreateDepartmentRequest{Name: strPtr("")}).Validate()
	assertValidation(t, err, "name required")

	d, err := (&CreateDepartmentRequest{Name: strPtr("Cardiology"), Location: strPtr("B2")}).Validate()
	require.NoError(t, err)
	assert.Equal(t, "Cardiology", d.Name)
	assert.Equal(t, "B2", *d.Location)
}

func TestCreatePatientRequest_Validate(t *testing.T) {
	_, err := (&CreatePatientRequest{}).Validate()
	assertValidation(t, err, "name is required")

	_, err = (&CreatePatientRequest{Name: strPtr("Jane"), DOB: strPtr("01/01/1990")}).Validate()
	assertValidation(t, err, "dob must be ISO date YYYY-MM-DD")

	p, err := (&CreatePatientRequest{Name: strPtr("Jane Doe"), DOB: strPtr("1990-01-01")}).Validate()
	require.NoError(t, err)
	assert.Equal(t, GenderMale, p.Gender)
	require.NotNil(t, p.DOB)
	assert.Equal(t, "1990-01-01", p.DOB.String())

	p, err = (&CreatePatientRequest{Name: strPtr("Sam"), Gender: strPtr("Other")}).Validate()
	require.NoError(t, err)
	assert.Equal(t, GenderOther, p.Gender)
	assert.Nil(t, p.DOB)
}

func TestCreateAppointmentRequest_Validate(t *testing.T) {
	_, err := (&CreateAppointmentRequest{PatientID: idPtr(1), DoctorID: idPtr(1)}).Validate()
	assertValidation(t, err, "appt_datetime required as ISO datetime")

	_, err = (&CreateAppointmentRequest{ApptDatetime: strPtr("soon"), PatientID: idPtr(1), DoctorID: idPtr(1)}).Validate()
	assertValidation(t, err, "appt_datetime required as ISO datetime")

	_, err = (&CreateAppointmentRequest{ApptDatetime: strPtr("2024-05-01T10:00:00"), PatientID: idPtr(1)}).Validate()
	assertValidation(t, err, "patient_id and doctor_id required")

	_, err = (&CreateAppointmentRequest{ApptDatetime: strPtr("2024-05-01T10:00:00"), PatientID: idPtr(0), DoctorID: idPtr(2)}).Validate()
	assertValidation(t, err, "patient_id and doctor_id required")

	a, err := (&CreateAppointmentRequest{ApptDatetime: strPtr("2024-05-01T10:00:00"), PatientID: idPtr(1), DoctorID: idPtr(2)}).Validate()
	require.NoError(t, err)
	assert.Equal(t, AppointmentStatusScheduled, a.Status)
	assert.Equal(t, "2024-05-01T10:00:00", a.ApptDatetime.String())
}

func TestUpdateAppointmentRequest_Validate(t *testing.T) {
	patch, err := (&UpdateAppointmentRequest{}).Validate()
	require.NoError(t, err)
	assert.Nil(t, patch.Status)
	assert.Nil(t, patch.ApptDatetime)

	patch, err = (&UpdateAppointmentRequest{Status: strPtr("Completed")}).Validate()
	require.NoError(t, err)
	assert.Equal(t, AppointmentStatusCompleted, *patch.Status)

	_, err = (&UpdateAppointmentRequest{Status: strPtr("Bogus")}).Validate()
	assertValidation(t, err, "status must be one of: Scheduled, Completed, Cancelled, No-Show")

	_, err = (&UpdateAppointmentRequest{ApptDatetime: strPtr("bad")}).Validate()
	assertValidation(t, err, "appt_datetime must be ISO datetime")
}

func TestCreateAdmissionRequest_Validate(t *testing.T) {
	_, err := (&CreateAdmissionRequest{PatientID: idPtr(1), RoomID: idPtr(1)}).Validate()
	assertValidation(t, err, "admit_date required as ISO datetime")

	_, err = (&CreateAdmissionRequest{AdmitDate: strPtr("2024-05-01T09:00:00"), RoomID: idPtr(1)}).Validate()
	assertValidation(t, err, "patient_id and room_id required")

	a, err := (&CreateAdmissionRequest{AdmitDate: strPtr("2024-05-01T09:00:00"), PatientID: idPtr(3), RoomID: idPtr(4)}).Validate()
	require.NoError(t, err)
	assert.True(t, a.Active())
	assert.Equal(t, int64(4), a.RoomID)
}

func TestCreateBillRequest(t *testing.T) {
	_, err := (&CreateBillRequest{}).Validate()
	assertValidation(t, err, "admission_id required")

	b, err := (&CreateBillRequest{AdmissionID: idPtr(1)}).Validate()
	require.NoError(t, err)
	assert.Equal(t, BillStatusUnpaid, b.Status)
	assert.Equal(t, 0.0, b.Amount)

	err = (&CreateBillRequest{AdmissionID: idPtr(1), BillDate: strPtr("2024-13-40")}).Complete(b)
	assertValidation(t, err, "bill_date must be ISO date")

	err = (&CreateBillRequest{AdmissionID: idPtr(1), Status: strPtr("Overdue")}).Complete(b)
	assertValidation(t, err, "status must be one of: Unpaid, Paid, Pending")

	negative := -5.0
	err = (&CreateBillRequest{AdmissionID: idPtr(1), Amount: &negative}).Complete(b)
	assertValidation(t, err, "amount must be greater than or equal to 0")

	amount := 250.5
	require.NoError(t, (&CreateBillRequest{AdmissionID: idPtr(1), Amount: &amount, Status: strPtr("Paid")}).Complete(b))
	assert.Equal(t, 250.5, b.Amount)
	assert.Equal(t, BillStatusPaid, b.Status)
	assert.Equal(t, Today().String(), b.BillDate.String())
}

func TestCreateRoomRequest_Validate(t *testing.T) {
	_, err := (&CreateRoomRequest{}).Validate()
	assertValidation(t, err, "room_number required")

	r, err := (&CreateRoomRequest{RoomNumber: strPtr("R1")}).Validate()
	require.NoError(t, err)
	assert.Equal(t, RoomTypeGeneral, r.Type)
	assert.True(t, r.IsAvailable)
}
