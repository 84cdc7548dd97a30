package repository

import (
	"context"
	"errors"

	"github.com/jwalitptl/hospital-api/internal/model"
)

// Sentinel errors returned by every Store implementation. Services map them
// onto API errors.
var (
	ErrNotFound          = errors.New("record not found")
	ErrPatientNotFound   = errors.New("patient not found")
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomUnavailable   = errors.New("room not available")
	ErrAlreadyDischarged = errors.New("admission already discharged")
	ErrDuplicate         = errors.New("duplicate key")
	ErrForeignKey        = errors.New("foreign key violation")
)

// All repository interfaces in one file
type (
	DepartmentRepository interface {
		Create(ctx context.Context, department *model.Department) error
		Get(ctx context.Context, id int64) (*model.Department, error)
		List(ctx context.Context) ([]*model.Department, error)
	}

	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) error
		Get(ctx context.Context, id int64) (*model.Doctor, error)
		List(ctx context.Context) ([]*model.Doctor, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id int64) (*model.Patient, error)
		List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error)
	}

	RoomRepository interface {
		Create(ctx context.Context, room *model.Room) error
		Get(ctx context.Context, id int64) (*model.Room, error)
		List(ctx context.Context) ([]*model.Room, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id int64) (*model.Appointment, error)
		Update(ctx context.Context, id int64, patch *model.AppointmentPatch) (*model.Appointment, error)
		List(ctx context.Context) ([]*model.AppointmentDetail, error)
	}

	// AdmissionRepository owns the room availability flip. Admit and
	// Discharge change the admission row and the room row as one unit.
	AdmissionRepository interface {
		// Admit inserts the admission and marks its room occupied. Returns
		// ErrPatientNotFound, ErrRoomNotFound or ErrRoomUnavailable.
		Admit(ctx context.Context, admission *model.Admission) error
		// Discharge stamps the discharge date and frees the room. Returns
		// ErrNotFound or ErrAlreadyDischarged.
		Discharge(ctx context.Context, id int64, at model.DateTime) (*model.Admission, error)
		Get(ctx context.Context, id int64) (*model.Admission, error)
	}

	BillRepository interface {
		Create(ctx context.Context, bill *model.Bill) error
	}

	ActivityLogRepository interface {
		ListRecent(ctx context.Context, limit int) ([]*model.ActivityLog, error)
	}

	// Store bundles the repositories of one backend.
	Store interface {
		Departments() DepartmentRepository
		Doctors() DoctorRepository
		Patients() PatientRepository
		Rooms() RoomRepository
		Appointments() AppointmentRepository
		Admissions() AdmissionRepository
		Bills() BillRepository
		ActivityLogs() ActivityLogRepository
		Ping(ctx context.Context) error
		Close() error
	}
)
