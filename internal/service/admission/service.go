package admission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/metrics"
)

type Service struct {
	repo    repository.AdmissionRepository
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewService(repo repository.AdmissionRepository, m *metrics.Metrics) *Service {
	return &Service{
		repo:    repo,
		metrics: m,
		now:     time.Now,
	}
}

// Admit records an admission and occupies its room in one step.
func (s *Service) Admit(ctx context.Context, req *model.CreateAdmissionRequest) (*model.Admission, error) {
	admission, err := req.Validate()
	if err != nil {
		return nil, err
	}

	if err := s.repo.Admit(ctx, admission); err != nil {
		switch {
		case errors.Is(err, repository.ErrPatientNotFound):
			return nil, apperrors.NewNotFound("patient", err)
		case errors.Is(err, repository.ErrRoomNotFound):
			return nil, apperrors.NewNotFound("room", err)
		case errors.Is(err, repository.ErrRoomUnavailable):
			return nil, apperrors.NewBadRequest("room not available", err)
		}
		return nil, fmt.Errorf("failed to admit patient: %w", err)
	}

	s.metrics.RoomTransition(metrics.TransitionOccupied)
	log.Info().
		Int64("admission_id", admission.ID).
		Int64("patient_id", admission.PatientID).
		Int64("room_id", admission.RoomID).
		Msg("patient admitted")

	return admission, nil
}

// Discharge closes an active admission at the current UTC time and frees its
// room.
func (s *Service) Discharge(ctx context.Context, id int64) (*model.Admission, error) {
	admission, err := s.repo.Discharge(ctx, id, model.NewDateTime(s.now()))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperrors.NewNotFound("admission", err)
		case errors.Is(err, repository.ErrAlreadyDischarged):
			return nil, apperrors.NewBadRequest("already discharged", err)
		}
		return nil, fmt.Errorf("failed to discharge admission: %w", err)
	}

	s.metrics.RoomTransition(metrics.TransitionVacated)
	log.Info().
		Int64("admission_id", admission.ID).
		Int64("room_id", admission.RoomID).
		Msg("patient discharged")

	return admission, nil
}
