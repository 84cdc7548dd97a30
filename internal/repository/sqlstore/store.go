package sqlstore

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/pkg/metrics"
)

// Store is the SQL-backed repository.Store.
type Store struct {
	db           *sqlx.DB
	departments  repository.DepartmentRepository
	doctors      repository.DoctorRepository
	patients     repository.PatientRepository
	rooms        repository.RoomRepository
	appointments repository.AppointmentRepository
	admissions   repository.AdmissionRepository
	bills        repository.BillRepository
	activityLogs repository.ActivityLogRepository
}

func New(db *sqlx.DB, m *metrics.Metrics) *Store {
	base := baseRepository{db: db, metrics: m}
	return &Store{
		db:           db,
		departments:  &departmentRepository{base},
		doctors:      &doctorRepository{base},
		patients:     &patientRepository{base},
		rooms:        &roomRepository{base},
		appointments: &appointmentRepository{base},
		admissions:   &admissionRepository{base},
		bills:        &billRepository{base},
		activityLogs: &activityLogRepository{base},
	}
}

func (s *Store) Departments() repository.DepartmentRepository   { return s.departments }
func (s *Store) Doctors() repository.DoctorRepository           { return s.doctors }
func (s *Store) Patients() repository.PatientRepository         { return s.patients }
func (s *Store) Rooms() repository.RoomRepository               { return s.rooms }
func (s *Store) Appointments() repository.AppointmentRepository { return s.appointments }
func (s *Store) Admissions() repository.AdmissionRepository     { return s.admissions }
func (s *Store) Bills() repository.BillRepository               { return s.bills }
func (s *Store) ActivityLogs() repository.ActivityLogRepository { return s.activityLogs }

func (s *Store) DB() *sqlx.DB {
	return s.db
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}
