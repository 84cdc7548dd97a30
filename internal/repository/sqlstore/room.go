package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jwalitptl/hospital-api/internal/model"
)

const roomColumns = `id, room_number, type, is_available, created_at`

type roomRepository struct {
	baseRepository
}

func (r *roomRepository) Create(ctx context.Context, room *model.Room) (err error) {
	defer r.observe("room_create", time.Now(), &err)

	room.CreatedAt = now()
	id, err := insert(ctx, r.db,
		`INSERT INTO room (room_number, type, is_available, created_at) VALUES (?, ?, ?, ?)`,
		room.RoomNumber, room.Type, room.IsAvailable, room.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	room.ID = id
	return nil
}

func (r *roomRepository) Get(ctx context.Context, id int64) (_ *model.Room, err error) {
	defer r.observe("room_get", time.Now(), &err)

	var room model.Room
	query := r.db.Rebind(`SELECT ` + roomColumns + ` FROM room WHERE id = ?`)
	if err := r.db.GetContext(ctx, &room, query, id); err != nil {
		return nil, fmt.Errorf("failed to get room: %w", notFound(err))
	}
	return &room, nil
}

func (r *roomRepository) List(ctx context.Context) (_ []*model.Room, err error) {
	defer r.observe("room_list", time.Now(), &err)

	rooms := []*model.Room{}
	if err := r.db.SelectContext(ctx, &rooms, `SELECT `+roomColumns+` FROM room ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}
