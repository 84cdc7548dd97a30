// Package memory is an in-process repository.Store. A single mutex guards all
// tables, so the room check-and-claim in Admit is atomic.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
)

type Store struct {
	mu sync.Mutex

	departments  []*model.Department
	doctors      []*model.Doctor
	patients     []*model.Patient
	rooms        []*model.Room
	appointments []*model.Appointment
	admissions   []*model.Admission
	bills        []*model.Bill
	activityLogs []*model.ActivityLog

	nextID map[string]int64
}

func New() *Store {
	return &Store{nextID: make(map[string]int64)}
}

func (s *Store) Departments() repository.DepartmentRepository   { return departmentRepository{s} }
func (s *Store) Doctors() repository.DoctorRepository           { return doctorRepository{s} }
func (s *Store) Patients() repository.PatientRepository         { return patientRepository{s} }
func (s *Store) Rooms() repository.RoomRepository               { return roomRepository{s} }
func (s *Store) Appointments() repository.AppointmentRepository { return appointmentRepository{s} }
func (s *Store) Admissions() repository.AdmissionRepository     { return admissionRepository{s} }
func (s *Store) Bills() repository.BillRepository               { return billRepository{s} }
func (s *Store) ActivityLogs() repository.ActivityLogRepository { return activityLogRepository{s} }

func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }
func (s *Store) Close() error                   { return nil }

// AppendActivityLog seeds the read-only activity log.
func (s *Store) AppendActivityLog(entry model.ActivityLog) *model.ActivityLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = s.id("activity_log")
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = model.NewDateTime(time.Now())
	}
	s.activityLogs = append(s.activityLogs, &entry)
	out := entry
	return &out
}

// id must be called with mu held.
func (s *Store) id(table string) int64 {
	s.nextID[table]++
	return s.nextID[table]
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// find returns the element with the given id. Caller holds mu.
func find[T any](items []*T, id int64, key func(*T) int64) *T {
	for _, item := range items {
		if key(item) == id {
			return item
		}
	}
	return nil
}

func clone[T any](items []*T) []*T {
	out := make([]*T, 0, len(items))
	for _, item := range items {
		c := *item
		out = append(out, &c)
	}
	return out
}

type departmentRepository struct{ s *Store }

func (r departmentRepository) Create(_ context.Context, department *model.Department) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, d := range r.s.departments {
		if d.Name == department.Name {
			return repository.ErrDuplicate
		}
	}
	department.ID = r.s.id("department")
	department.CreatedAt = now()
	c := *department
	r.s.departments = append(r.s.departments, &c)
	return nil
}

func (r departmentRepository) Get(_ context.Context, id int64) (*model.Department, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d := find(r.s.departments, id, func(d *model.Department) int64 { return d.ID })
	if d == nil {
		return nil, repository.ErrNotFound
	}
	c := *d
	return &c, nil
}

func (r departmentRepository) List(_ context.Context) ([]*model.Department, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return clone(r.s.departments), nil
}

type doctorRepository struct{ s *Store }

func (r doctorRepository) Create(_ context.Context, doctor *model.Doctor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if doctor.DepartmentID != nil &&
		find(r.s.departments, *doctor.DepartmentID, func(d *model.Department) int64 { return d.ID }) == nil {
		return repository.ErrForeignKey
	}
	doctor.ID = r.s.id("doctor")
	doctor.CreatedAt = now()
	c := *doctor
	r.s.doctors = append(r.s.doctors, &c)
	return nil
}

func (r doctorRepository) Get(_ context.Context, id int64) (*model.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d := find(r.s.doctors, id, func(d *model.Doctor) int64 { return d.ID })
	if d == nil {
		return nil, repository.ErrNotFound
	}
	c := *d
	return &c, nil
}

func (r doctorRepository) List(_ context.Context) ([]*model.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return clone(r.s.doctors), nil
}

type patientRepository struct{ s *Store }

func (r patientRepository) Create(_ context.Context, patient *model.Patient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	patient.ID = r.s.id("patient")
	patient.CreatedAt = now()
	c := *patient
	r.s.patients = append(r.s.patients, &c)
	return nil
}

func (r patientRepository) Get(_ context.Context, id int64) (*model.Patient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p := find(r.s.patients, id, func(p *model.Patient) int64 { return p.ID })
	if p == nil {
		return nil, repository.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (r patientRepository) List(_ context.Context, filters *model.PatientFilters) ([]*model.Patient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if filters == nil || filters.Name == "" {
		return clone(r.s.patients), nil
	}

	term := strings.ToLower(filters.Name)
	out := []*model.Patient{}
	for _, p := range r.s.patients {
		if strings.Contains(strings.ToLower(p.Name), term) {
			c := *p
			out = append(out, &c)
		}
	}
	return out, nil
}

type roomRepository struct{ s *Store }

func (r roomRepository) Create(_ context.Context, room *model.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.rooms {
		if existing.RoomNumber == room.RoomNumber {
			return repository.ErrDuplicate
		}
	}
	room.ID = r.s.id("room")
	room.CreatedAt = now()
	c := *room
	r.s.rooms = append(r.s.rooms, &c)
	return nil
}

func (r roomRepository) Get(_ context.Context, id int64) (*model.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	room := find(r.s.rooms, id, func(r *model.Room) int64 { return r.ID })
	if room == nil {
		return nil, repository.ErrNotFound
	}
	c := *room
	return &c, nil
}

func (r roomRepository) List(_ context.Context) ([]*model.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return clone(r.s.rooms), nil
}

type appointmentRepository struct{ s *Store }

func (r appointmentRepository) Create(_ context.Context, appointment *model.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if find(r.s.patients, appointment.PatientID, func(p *model.Patient) int64 { return p.ID }) == nil ||
		find(r.s.doctors, appointment.DoctorID, func(d *model.Doctor) int64 { return d.ID }) == nil {
		return repository.ErrForeignKey
	}
	appointment.ID = r.s.id("appointment")
	appointment.CreatedAt = now()
	c := *appointment
	r.s.appointments = append(r.s.appointments, &c)
	return nil
}

func (r appointmentRepository) Get(_ context.Context, id int64) (*model.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a := find(r.s.appointments, id, func(a *model.Appointment) int64 { return a.ID })
	if a == nil {
		return nil, repository.ErrNotFound
	}
	c := *a
	return &c, nil
}

func (r appointmentRepository) Update(_ context.Context, id int64, patch *model.AppointmentPatch) (*model.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a := find(r.s.appointments, id, func(a *model.Appointment) int64 { return a.ID })
	if a == nil {
		return nil, repository.ErrNotFound
	}
	if patch.Status != nil {
		a.Status = *patch.Status
	}
	if patch.ApptDatetime != nil {
		a.ApptDatetime = *patch.ApptDatetime
	}
	c := *a
	return &c, nil
}

func (r appointmentRepository) List(_ context.Context) ([]*model.AppointmentDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*model.AppointmentDetail, 0, len(r.s.appointments))
	for _, a := range r.s.appointments {
		p := find(r.s.patients, a.PatientID, func(p *model.Patient) int64 { return p.ID })
		d := find(r.s.doctors, a.DoctorID, func(d *model.Doctor) int64 { return d.ID })
		out = append(out, &model.AppointmentDetail{
			ID:           a.ID,
			Patient:      model.Ref{ID: p.ID, Name: p.Name},
			Doctor:       model.Ref{ID: d.ID, Name: d.Name},
			ApptDatetime: a.ApptDatetime,
			Reason:       a.Reason,
			Status:       a.Status,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ApptDatetime.Equal(out[j].ApptDatetime.Time) {
			return out[i].ID > out[j].ID
		}
		return out[i].ApptDatetime.After(out[j].ApptDatetime.Time)
	})
	return out, nil
}

type admissionRepository struct{ s *Store }

func (r admissionRepository) Admit(_ context.Context, admission *model.Admission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if find(r.s.patients, admission.PatientID, func(p *model.Patient) int64 { return p.ID }) == nil {
		return repository.ErrPatientNotFound
	}
	room := find(r.s.rooms, admission.RoomID, func(r *model.Room) int64 { return r.ID })
	if room == nil {
		return repository.ErrRoomNotFound
	}
	if !room.IsAvailable {
		return repository.ErrRoomUnavailable
	}

	room.IsAvailable = false
	admission.ID = r.s.id("admission")
	admission.CreatedAt = now()
	c := *admission
	r.s.admissions = append(r.s.admissions, &c)
	return nil
}

func (r admissionRepository) Discharge(_ context.Context, id int64, at model.DateTime) (*model.Admission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a := find(r.s.admissions, id, func(a *model.Admission) int64 { return a.ID })
	if a == nil {
		return nil, repository.ErrNotFound
	}
	if !a.Active() {
		return nil, repository.ErrAlreadyDischarged
	}

	a.DischargeDate = &at
	if room := find(r.s.rooms, a.RoomID, func(r *model.Room) int64 { return r.ID }); room != nil {
		room.IsAvailable = true
	}
	c := *a
	return &c, nil
}

func (r admissionRepository) Get(_ context.Context, id int64) (*model.Admission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a := find(r.s.admissions, id, func(a *model.Admission) int64 { return a.ID })
	if a == nil {
		return nil, repository.ErrNotFound
	}
	c := *a
	return &c, nil
}

type billRepository struct{ s *Store }

func (r billRepository) Create(_ context.Context, bill *model.Bill) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if find(r.s.admissions, bill.AdmissionID, func(a *model.Admission) int64 { return a.ID }) == nil {
		return repository.ErrForeignKey
	}
	bill.ID = r.s.id("bill")
	bill.CreatedAt = now()
	c := *bill
	r.s.bills = append(r.s.bills, &c)
	return nil
}

type activityLogRepository struct{ s *Store }

func (r activityLogRepository) ListRecent(_ context.Context, limit int) ([]*model.ActivityLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := clone(r.s.activityLogs)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt.Time) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt.Time)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
