package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
)

type Service struct {
	repo repository.RoomRepository
}

func NewService(repo repository.RoomRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListRooms(ctx context.Context) ([]*model.Room, error) {
	rooms, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

// CreateRoom registers a room. New rooms always start available.
func (s *Service) CreateRoom(ctx context.Context, req *model.CreateRoomRequest) (*model.Room, error) {
	room, err := req.Validate()
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, room); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewBadRequest("room number already exists", err)
		}
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	return room, nil
}
