package model

import (
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
)

type RoomType string

const (
	RoomTypeGeneral     RoomType = "General"
	RoomTypeSemiPrivate RoomType = "Semi-Private"
	RoomTypePrivate     RoomType = "Private"
	RoomTypeICU         RoomType = "ICU"
	RoomTypeOT          RoomType = "OT"
)

type Room struct {
	Base
	RoomNumber  string   `db:"room_number" json:"room_number"`
	Type        RoomType `db:"type" json:"type"`
	IsAvailable bool     `db:"is_available" json:"is_available"`
}

type CreateRoomRequest struct {
	RoomNumber *string `json:"room_number" binding:"omitempty,max=30"`
	Type       *string `json:"type" binding:"omitempty,oneof=General Semi-Private Private ICU OT"`
}

func (r *CreateRoomRequest) Validate() (*Room, error) {
	if !present(r.RoomNumber) {
		return nil, apperrors.Validation("room_number required")
	}
	room := &Room{
		RoomNumber:  *r.RoomNumber,
		Type:        RoomTypeGeneral,
		IsAvailable: true,
	}
	if present(r.Type) {
		room.Type = RoomType(*r.Type)
	}
	return room, nil
}
