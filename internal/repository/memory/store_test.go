package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
)

func seedRoom(t *testing.T, s *Store) (*model.Patient, *model.Room) {
	t.Helper()
	ctx := context.Background()

	p := &model.Patient{Name: "Jane Doe", Gender: model.GenderFemale}
	require.NoError(t, s.Patients().Create(ctx, p))
	r := &model.Room{RoomNumber: "R1", Type: model.RoomTypeGeneral, IsAvailable: true}
	require.NoError(t, s.Rooms().Create(ctx, r))
	return p, r
}

func TestAdmit_ConcurrentSingleWinner(t *testing.T) {
	s := New()
	p, r := seedRoom(t, s)
	admitDate, _ := model.ParseDateTime("2024-05-01T09:00:00")

	var wins, refused int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Admissions().Admit(context.Background(), &model.Admission{PatientID: p.ID, RoomID: r.ID, AdmitDate: admitDate})
			switch {
			case err == nil:
				atomic.AddInt32(&wins, 1)
			case assert.ErrorIs(t, err, repository.ErrRoomUnavailable):
				atomic.AddInt32(&refused, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins)
	assert.Equal(t, int32(19), refused)

	room, err := s.Rooms().Get(context.Background(), r.ID)
	require.NoError(t, err)
	assert.False(t, room.IsAvailable)
}

func TestAdmitDischarge_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := New()
	p, r := seedRoom(t, s)
	admitDate, _ := model.ParseDateTime("2024-05-01T09:00:00")

	a := &model.Admission{PatientID: p.ID, RoomID: r.ID, AdmitDate: admitDate}
	require.NoError(t, s.Admissions().Admit(ctx, a))

	first := model.NewDateTime(time.Date(2024, 5, 3, 12, 0, 0, 0, time.UTC))
	discharged, err := s.Admissions().Discharge(ctx, a.ID, first)
	require.NoError(t, err)
	assert.False(t, discharged.Active())

	room, _ := s.Rooms().Get(ctx, r.ID)
	assert.True(t, room.IsAvailable)

	_, err = s.Admissions().Discharge(ctx, a.ID, model.NewDateTime(time.Now()))
	assert.ErrorIs(t, err, repository.ErrAlreadyDischarged)

	got, err := s.Admissions().Get(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got.DischargeDate)
	assert.Equal(t, first.String(), got.DischargeDate.String())

	_, err = s.Admissions().Discharge(ctx, 999, model.NewDateTime(time.Now()))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAdmit_MissingReferences(t *testing.T) {
	ctx := context.Background()
	s := New()
	p, _ := seedRoom(t, s)

	err := s.Admissions().Admit(ctx, &model.Admission{PatientID: 42, RoomID: 1})
	assert.ErrorIs(t, err, repository.ErrPatientNotFound)

	err = s.Admissions().Admit(ctx, &model.Admission{PatientID: p.ID, RoomID: 42})
	assert.ErrorIs(t, err, repository.ErrRoomNotFound)
}

func TestDepartmentCreate_Duplicate(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Departments().Create(ctx, &model.Department{Name: "Cardiology"}))
	err := s.Departments().Create(ctx, &model.Department{Name: "Cardiology"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	deps, _ := s.Departments().List(ctx)
	assert.Len(t, deps, 1)
}

func TestPatientList_CaseInsensitive(t *testing.T) {
	ctx := context.Background()
	s := New()
	for _, name := range []string{"Jane Doe", "John Smith", "MARY JANE"} {
		require.NoError(t, s.Patients().Create(ctx, &model.Patient{Name: name}))
	}

	got, err := s.Patients().List(ctx, &model.PatientFilters{Name: "jane"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Jane Doe", got[0].Name)
	assert.Equal(t, "MARY JANE", got[1].Name)

	all, _ := s.Patients().List(ctx, nil)
	assert.Len(t, all, 3)
}

func TestAppointmentList_NewestFirst(t *testing.T) {
	ctx := context.Background()
	s := New()
	p := &model.Patient{Name: "Jane Doe"}
	require.NoError(t, s.Patients().Create(ctx, p))
	d := &model.Doctor{Name: "Dr. Who"}
	require.NoError(t, s.Doctors().Create(ctx, d))

	for _, at := range []string{"2024-05-01T10:00:00", "2024-06-01T10:00:00", "2024-04-01T10:00:00"} {
		dt, _ := model.ParseDateTime(at)
		require.NoError(t, s.Appointments().Create(ctx, &model.Appointment{PatientID: p.ID, DoctorID: d.ID, ApptDatetime: dt}))
	}

	list, err := s.Appointments().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "2024-06-01T10:00:00", list[0].ApptDatetime.String())
	assert.Equal(t, "2024-04-01T10:00:00", list[2].ApptDatetime.String())
	assert.Equal(t, "Dr. Who", list[0].Doctor.Name)
}

func TestActivityLog_LimitAndOrder(t *testing.T) {
	ctx := context.Background()
	s := New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 105; i++ {
		s.AppendActivityLog(model.ActivityLog{CreatedAt: model.NewDateTime(base.Add(time.Duration(i) * time.Minute))})
	}

	logs, err := s.ActivityLogs().ListRecent(ctx, model.ActivityLogLimit)
	require.NoError(t, err)
	require.Len(t, logs, 100)
	assert.Equal(t, int64(105), logs[0].ID)
	assert.True(t, logs[0].CreatedAt.After(logs[99].CreatedAt.Time))
}
