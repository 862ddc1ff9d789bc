package response

import (
	"time"

	"booking-board/internal/usecase/commands"
	"booking-board/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateReservationResponse struct {
	ReservationID uuid.UUID   `json:"reservationId"`
	Displaced     []uuid.UUID `json:"displacedRequesterIds,omitempty"`
}

type LockResponse struct {
	ResourceID uuid.UUID  `json:"resourceId"`
	Locked     bool       `json:"locked"`
	HolderID   *uuid.UUID `json:"holderId,omitempty"`
	Since      *time.Time `json:"since,omitempty"`
	SlotStart  *time.Time `json:"slotStart,omitempty"`
	SlotEnd    *time.Time `json:"slotEnd,omitempty"`
}

type ScheduleItemResponse struct {
	ID          uuid.UUID `json:"id"`
	RequesterID uuid.UUID `json:"requesterId"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type RemainingSlotsResponse struct {
	RequesterID uuid.UUID `json:"requesterId"`
	Remaining   int       `json:"remaining"`
}

func FromCreateReservationResult(result *commands.CreateReservationResult) *CreateReservationResponse {
	return &CreateReservationResponse{
		ReservationID: result.ReservationID,
		Displaced:     result.DisplacedRequesterIDs,
	}
}

func FromLockProjectionView(view *queries.LockProjectionView) *LockResponse {
	return &LockResponse{
		ResourceID: view.ResourceID,
		Locked:     view.Locked,
		HolderID:   view.HolderID,
		Since:      view.Since,
		SlotStart:  view.SlotStart,
		SlotEnd:    view.SlotEnd,
	}
}

func FromScheduleItem(item *queries.ScheduleItem) *ScheduleItemResponse {
	return &ScheduleItemResponse{
		ID:          item.ID,
		RequesterID: item.RequesterID,
		Start:       item.Start,
		End:         item.End,
		Status:      item.Status,
		CreatedAt:   item.CreatedAt,
	}
}
