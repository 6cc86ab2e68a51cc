package hall

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidCapacity = errors.New("hall capacity must be positive")
	ErrUnderMaintenance = errors.New("hall is under maintenance")
)

// Hall is reference data: mutated only by the content collaborator,
// reconstructed here from its read model for validation at booking time.
type Hall struct {
	id           uuid.UUID
	branchID     uuid.UUID
	capacity     int
	status       Status
	priceConfig  PriceConfig
	workingHours WorkingHours
}

func NewHall(
	id, branchID uuid.UUID,
	capacity int,
	status Status,
	priceConfig PriceConfig,
	workingHours WorkingHours,
) (*Hall, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if !status.IsValid() {
		return nil, errors.New("invalid hall status")
	}
	if err := priceConfig.Validate(); err != nil {
		return nil, err
	}

	return &Hall{
		id:           id,
		branchID:     branchID,
		capacity:     capacity,
		status:       status,
		priceConfig:  priceConfig,
		workingHours: workingHours,
	}, nil
}

// Bookable rejects reservation against a hall that is not open for booking.
func (h *Hall) Bookable() error {
	if h.status == StatusMaintenance {
		return ErrUnderMaintenance
	}
	return nil
}

func (h *Hall) ID() uuid.UUID              { return h.id }
func (h *Hall) BranchID() uuid.UUID        { return h.branchID }
func (h *Hall) Capacity() int              { return h.capacity }
func (h *Hall) Status() Status             { return h.status }
func (h *Hall) PriceConfig() PriceConfig   { return h.priceConfig }
func (h *Hall) WorkingHours() WorkingHours { return h.workingHours }
