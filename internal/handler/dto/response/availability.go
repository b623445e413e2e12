package response

import (
	"time"

	"turfbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotResponse struct {
	Start time.Time `json:"start"`
	State string    `json:"state"`
}

type AvailabilityResponse struct {
	TurfID   uuid.UUID      `json:"turfId"`
	Date     string         `json:"date"`
	Occupied []time.Time    `json:"occupied"`
	Slots    []SlotResponse `json:"slots"`
}

func FromAvailabilityView(rm *queries.AvailabilityView) *AvailabilityResponse {
	slots := make([]SlotResponse, len(rm.Slots))
	for i, s := range rm.Slots {
		slots[i] = SlotResponse{Start: s.Start, State: string(s.State)}
	}

	occupied := rm.Occupied
	if occupied == nil {
		occupied = []time.Time{}
	}

	return &AvailabilityResponse{
		TurfID:   rm.TurfID,
		Date:     rm.Date.Format("2006-01-02"),
		Occupied: occupied,
		Slots:    slots,
	}
}
