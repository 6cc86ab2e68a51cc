package ticket

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyUsed = errors.New("ticket already used")
	ErrExpired     = errors.New("ticket expired")
	ErrNotYetValid = errors.New("ticket not yet valid")
	ErrCancelled   = errors.New("ticket cancelled")
	ErrNotFound    = errors.New("ticket not found")
)

// Ticket is a single-attendee admission record. The token is the
// non-guessable artifact checked by the door scanner collaborator.
type Ticket struct {
	id         uuid.UUID
	bookingID  uuid.UUID
	token      uuid.UUID
	holderName *string
	status     Status
	validFrom  time.Time
	validUntil time.Time
	scannedAt  *time.Time
	createdAt  time.Time
	updatedAt  time.Time
}

// IssueBatch creates exactly persons tickets for a confirmed booking,
// each mirroring the booking window.
func IssueBatch(bookingID uuid.UUID, persons int, validFrom, validUntil, now time.Time) []*Ticket {
	tickets := make([]*Ticket, 0, persons)
	for i := 0; i < persons; i++ {
		tickets = append(tickets, &Ticket{
			id:         uuid.New(),
			bookingID:  bookingID,
			token:      uuid.New(),
			status:     StatusValid,
			validFrom:  validFrom,
			validUntil: validUntil,
			createdAt:  now,
			updatedAt:  now,
		})
	}
	return tickets
}

func Reconstruct(
	id, bookingID, token uuid.UUID,
	holderName *string,
	status Status,
	validFrom, validUntil time.Time,
	scannedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Ticket {
	return &Ticket{
		id:         id,
		bookingID:  bookingID,
		token:      token,
		holderName: holderName,
		status:     status,
		validFrom:  validFrom,
		validUntil: validUntil,
		scannedAt:  scannedAt,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// MarkUsed consumes the ticket at the door. A scan past validUntil
// expires the ticket for good; a scan before validFrom is rejected but
// leaves the ticket untouched so it still admits inside its window.
func (t *Ticket) MarkUsed(now time.Time) error {
	switch t.status {
	case StatusUsed:
		return ErrAlreadyUsed
	case StatusCancelled:
		return ErrCancelled
	case StatusExpired:
		return ErrExpired
	}
	if now.Before(t.validFrom) {
		return ErrNotYetValid
	}
	if now.After(t.validUntil) {
		t.status = StatusExpired
		return ErrExpired
	}
	t.status = StatusUsed
	t.scannedAt = &now
	return nil
}

// Cancel voids the ticket unless it was already scanned: a consumed
// ticket is historical fact and is never retroactively invalidated.
func (t *Ticket) Cancel() (changed bool) {
	if t.status != StatusValid {
		return false
	}
	t.status = StatusCancelled
	return true
}

func (t *Ticket) ID() uuid.UUID         { return t.id }
func (t *Ticket) BookingID() uuid.UUID  { return t.bookingID }
func (t *Ticket) Token() uuid.UUID      { return t.token }
func (t *Ticket) HolderName() *string   { return t.holderName }
func (t *Ticket) Status() Status        { return t.status }
func (t *Ticket) ValidFrom() time.Time  { return t.validFrom }
func (t *Ticket) ValidUntil() time.Time { return t.validUntil }
func (t *Ticket) ScannedAt() *time.Time { return t.scannedAt }
func (t *Ticket) CreatedAt() time.Time  { return t.createdAt }
func (t *Ticket) UpdatedAt() time.Time  { return t.updatedAt }
