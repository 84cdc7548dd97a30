package doctor

import (
	"context"
	"errors"
	"fmt"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
)

type Service struct {
	repo           repository.DoctorRepository
	departmentRepo repository.DepartmentRepository
}

func NewService(repo repository.DoctorRepository, departmentRepo repository.DepartmentRepository) *Service {
	return &Service{
		repo:           repo,
		departmentRepo: departmentRepo,
	}
}

func (s *Service) ListDoctors(ctx context.Context) ([]*model.Doctor, error) {
	doctors, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (s *Service) CreateDoctor(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error) {
	doctor, err := req.Validate()
	if err != nil {
		return nil, err
	}

	if doctor.DepartmentID != nil {
		if _, err := s.departmentRepo.Get(ctx, *doctor.DepartmentID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperrors.NewNotFound("department", err)
			}
			return nil, fmt.Errorf("failed to check department: %w", err)
		}
	}

	if err := s.repo.Create(ctx, doctor); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, apperrors.NewNotFound("department", err)
		}
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}
	return doctor, nil
}
