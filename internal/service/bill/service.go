package bill

import (
	"context"
	"errors"
	"fmt"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
)

type Service struct {
	repo          repository.BillRepository
	admissionRepo repository.AdmissionRepository
}

func NewService(repo repository.BillRepository, admissionRepo repository.AdmissionRepository) *Service {
	return &Service{
		repo:          repo,
		admissionRepo: admissionRepo,
	}
}

func (s *Service) CreateBill(ctx context.Context, req *model.CreateBillRequest) (*model.Bill, error) {
	bill, err := req.Validate()
	if err != nil {
		return nil, err
	}

	if _, err := s.admissionRepo.Get(ctx, bill.AdmissionID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("admission", err)
		}
		return nil, fmt.Errorf("failed to get admission: %w", err)
	}

	if err := req.Complete(bill); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, bill); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, apperrors.NewNotFound("admission", err)
		}
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}
	return bill, nil
}
