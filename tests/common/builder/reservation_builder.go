//go:build unit || e2e

package builder

import (
	"time"

	domreservation "booking-board/internal/domain/reservation"
	"booking-board/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID          uuid.UUID
	ResourceID  uuid.UUID
	RequesterID uuid.UUID
	Start       time.Time
	End         time.Time
	Status      domreservation.Status
	CreatedAt   time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	return &ReservationBuilder{
		ID:          uuid.New(),
		ResourceID:  uuid.New(),
		RequesterID: uuid.New(),
		Start:       now.Add(time.Hour),
		End:         now.Add(3 * time.Hour),
		Status:      domreservation.StatusActive,
		CreatedAt:   now,
	}
}

func (r *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(r)
	return r
}

func (r *ReservationBuilder) WithSlot(start, end time.Time) *ReservationBuilder {
	r.Start = start
	r.End = end
	return r
}

func (r *ReservationBuilder) WithRequester(id uuid.UUID) *ReservationBuilder {
	r.RequesterID = id
	return r
}

func (r *ReservationBuilder) WithStatus(status domreservation.Status) *ReservationBuilder {
	r.Status = status
	return r
}

func (r *ReservationBuilder) BuildDomain() (*domreservation.Reservation, error) {
	slot, err := domreservation.NewTimeSlot(r.Start, r.End)
	if err != nil {
		return nil, err
	}
	return domreservation.ReconstructReservation(
		r.ID, r.ResourceID, r.RequesterID, slot, r.Status, r.CreatedAt,
	), nil
}

func (r *ReservationBuilder) BuildSnapshot() *shared.ReservationSnapshot {
	return &shared.ReservationSnapshot{
		ID:          r.ID,
		ResourceID:  r.ResourceID,
		RequesterID: r.RequesterID,
		Start:       r.Start,
		End:         r.End,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
	}
}
