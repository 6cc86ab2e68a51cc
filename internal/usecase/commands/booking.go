package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"hall-booking/internal/domain/booking"
	"hall-booking/internal/domain/hall"
	"hall-booking/internal/domain/ticket"
	"hall-booking/internal/domain/user"
	"hall-booking/internal/infra"
	"hall-booking/internal/pkg/clock"
	"hall-booking/internal/pkg/config"
	"hall-booking/internal/pkg/errs"
	"hall-booking/internal/pkg/metrics"
	"hall-booking/internal/usecase/queries"
	"hall-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrHallNotFound            = errs.New("hall not found")
	ErrHallUnavailable         = errs.New("hall unavailable for booking")
	ErrSlotConflict            = errs.New("slot no longer available")
	ErrInvalidPriceConfig      = errs.New("invalid price config")
	ErrInvalidTransition       = errs.New("invalid booking state transition")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrDiscountInvalid         = errs.New("invalid or expired coupon")
	ErrNotAuthorized           = errs.New("caller not authorized")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDuplicateBooking        = errs.New("duplicate booking request")
	ErrIdempotencyInProgress   = errs.New("idempotency in progress")
	ErrIdempotencyCheckFailed  = errs.New("idempotency check failed")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateBookingInput struct {
	HallID        uuid.UUID
	StartTime     time.Time
	DurationHours int
	Persons       int
	AddOns        []booking.AddOn
	Decoration    bool
	CouponCode    *string
	Note          *string
}

type CreateBookingResult struct {
	Booking    *queries.BookingView
	IsReplayed bool
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, input CreateBookingInput, actor user.Actor, idempotencyKey uuid.UUID) (*CreateBookingResult, error)
	ConfirmBooking(ctx context.Context, bookingID uuid.UUID, actor user.Actor) (*queries.BookingView, error)
	CancelBooking(ctx context.Context, bookingID uuid.UUID, actor user.Actor, reason *string) (*queries.BookingView, error)
	CreateFreeTicket(ctx context.Context, input FreeTicketInput, actor user.Actor) (*queries.BookingView, error)
	SweepCompleted(ctx context.Context) (int64, error)
	PruneIdempotencyKeys(ctx context.Context) (int64, error)
}

type bookingUseCaseImpl struct {
	uow            shared.UnitOfWork
	idempotency    shared.IdempotencyRepository
	notifications  shared.NotificationDispatcher
	discounts      DiscountResolver
	factory        *booking.Factory
	bookingQueries queries.BookingQueries
	slotCache      queries.SlotCache
	clock          clock.Clock
	cancelWindow   time.Duration
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	idempotency shared.IdempotencyRepository,
	notifications shared.NotificationDispatcher,
	discounts DiscountResolver,
	factory *booking.Factory,
	bookingQueries queries.BookingQueries,
	slotCache queries.SlotCache,
	cfg config.BookingConfig,
	clk clock.Clock,
) BookingCommands {
	return &bookingUseCaseImpl{
		uow:            uow,
		idempotency:    idempotency,
		notifications:  notifications,
		discounts:      discounts,
		factory:        factory,
		bookingQueries: bookingQueries,
		slotCache:      slotCache,
		clock:          clk,
		cancelWindow:   time.Duration(cfg.CancelWindowHours) * time.Hour,
	}
}

func (uc *bookingUseCaseImpl) CreateBooking(
	ctx context.Context,
	input CreateBookingInput,
	actor user.Actor,
	idempotencyKey uuid.UUID,
) (*CreateBookingResult, error) {
	requestHash := calculateRequestHash(input)
	expiresAt := uc.clock.Now().Add(24 * time.Hour)

	replayed, err := uc.handleIdempotency(ctx, idempotencyKey, actor.ID, requestHash, expiresAt)
	if err != nil {
		return nil, err
	}
	if replayed != nil {
		return &CreateBookingResult{Booking: replayed, IsReplayed: true}, nil
	}

	view, err := uc.createNewBooking(ctx, input, actor, idempotencyKey)
	if err != nil {
		return nil, err
	}
	return &CreateBookingResult{Booking: view, IsReplayed: false}, nil
}

func (uc *bookingUseCaseImpl) handleIdempotency(
	ctx context.Context,
	key, userID uuid.UUID,
	requestHash string,
	expiresAt time.Time,
) (*queries.BookingView, error) {
	inserted, err := uc.idempotency.TryInsert(ctx, key, userID, "POST /bookings", requestHash, expiresAt)
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}
	if inserted {
		return nil, nil
	}

	existing, err := uc.uow.CommandReads().IdempotencyByKey(ctx, key, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}

	switch existing.Status {
	case "completed":
		if existing.RequestHash != requestHash {
			return nil, ErrDuplicateBooking
		}
		if existing.ResultBookingID != nil {
			// System-level read for idempotent replay
			return uc.bookingQueries.GetByIDSystem(ctx, *existing.ResultBookingID)
		}
		return nil, errs.New("completed request missing result booking ID")

	case "processing":
		if existing.RequestHash != requestHash {
			return nil, ErrDuplicateBooking
		}
		return nil, ErrIdempotencyInProgress

	default:
		return nil, errs.New("invalid idempotency key status")
	}
}

func (uc *bookingUseCaseImpl) createNewBooking(
	ctx context.Context,
	input CreateBookingInput,
	actor user.Actor,
	idempotencyKey uuid.UUID,
) (*queries.BookingView, error) {
	hallEntity, err := uc.loadHall(ctx, input.HallID)
	if err != nil {
		return nil, err
	}

	slot, err := booking.NewTimeSlot(input.StartTime, input.DurationHours, uc.factory.MaxDurationHours())
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	// Coupon resolution is external I/O and must stay out of the
	// reservation transaction; the factory prices before we reserve.
	var discountErr error
	resolve := func(code string, payableCents int64) int64 {
		d, rerr := uc.discounts.Resolve(ctx, code, payableCents)
		if rerr != nil {
			discountErr = rerr
			return 0
		}
		return d
	}

	note := booking.NewNote("")
	if input.Note != nil {
		note = booking.NewNote(*input.Note)
	}

	bookingEntity, err := uc.factory.CreateBooking(booking.CreateSpec{
		Hall:       hallEntity,
		UserID:     actor.ID,
		Slot:       slot,
		Persons:    input.Persons,
		AddOns:     input.AddOns,
		Decoration: input.Decoration,
		CouponCode: input.CouponCode,
		Note:       note,
	}, resolve)
	if err != nil {
		return nil, mapFactoryErr(err)
	}
	if discountErr != nil {
		return nil, discountErr
	}

	if err := uc.reserve(ctx, bookingEntity, idempotencyKey, actor.ID); err != nil {
		return nil, err
	}

	metrics.IncBookingCreated(bookingEntity.Status().String())
	uc.invalidateSlots(ctx, bookingEntity)
	uc.notify(ctx, "booking_created", bookingEntity.ID())

	return uc.bookingQueries.GetByIDSystem(ctx, bookingEntity.ID())
}

// reserve is the conflict guard: a single transaction that re-reads the
// blocking set for the window and inserts the booking. The exclusion
// constraint on (hall_id, tstzrange) is the last-resort backstop; a
// violation at insert surfaces exactly like a lost overlap check.
func (uc *bookingUseCaseImpl) reserve(
	ctx context.Context,
	b *booking.Booking,
	idempotencyKey, userID uuid.UUID,
) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		slot := b.Slot()
		contested, err := tx.Bookings().HasBlockingOverlap(ctx, b.HallID(), slot.Start(), slot.End())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if contested {
			return ErrSlotConflict
		}

		if _, err := tx.Bookings().Create(ctx, b); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrSlotConflict
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		// The free path confirms in the same transaction; in that case
		// tickets are issued only once the booking row is in.
		if b.Status() == booking.StatusConfirmed {
			tickets := ticket.IssueBatch(b.ID(), b.Persons(), b.Slot().Start(), b.Slot().End(), uc.clock.Now())
			if err := tx.Tickets().CreateBatch(ctx, tickets); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			metrics.AddTicketsIssued(len(tickets))
		}

		if idempotencyKey != uuid.Nil {
			responseHash := calculateIDHash(b.ID())
			if err := tx.Idempotency().UpdateStatusCompleted(ctx, idempotencyKey, userID, responseHash, b.ID()); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}
		return nil
	})
	if errors.Is(err, ErrSlotConflict) {
		metrics.IncBookingConflict()
	}
	return err
}

func (uc *bookingUseCaseImpl) ConfirmBooking(ctx context.Context, bookingID uuid.UUID, actor user.Actor) (*queries.BookingView, error) {
	var issued int
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if b.UserID() != actor.ID && !actor.IsAdmin() && !actor.IsStaff() {
			return ErrNotAuthorized
		}

		changed, err := b.Confirm()
		if err != nil {
			return errs.Mark(err, ErrInvalidTransition)
		}
		if !changed {
			// Already confirmed: idempotent, no duplicate tickets.
			return nil
		}

		if err := tx.Bookings().UpdateStatus(ctx, b); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		tickets := ticket.IssueBatch(b.ID(), b.Persons(), b.Slot().Start(), b.Slot().End(), uc.clock.Now())
		if err := tx.Tickets().CreateBatch(ctx, tickets); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		issued = len(tickets)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if issued > 0 {
		metrics.AddTicketsIssued(issued)
		uc.notify(ctx, "booking_confirmed", bookingID)
	}
	return uc.bookingQueries.GetByIDSystem(ctx, bookingID)
}

func (uc *bookingUseCaseImpl) CancelBooking(ctx context.Context, bookingID uuid.UUID, actor user.Actor, reason *string) (*queries.BookingView, error) {
	var cancelled *booking.Booking
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		now := uc.clock.Now()
		if err := b.CancellableBy(actor, now, uc.cancelWindow); err != nil {
			return errs.Mark(err, ErrNotAuthorized)
		}

		changed, err := b.Cancel(now)
		if err != nil {
			return errs.Mark(err, ErrInvalidTransition)
		}
		if !changed {
			// Re-cancel is a no-op returning the existing state.
			return nil
		}

		if err := tx.Bookings().UpdateStatus(ctx, b); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		// Cascade in the same transaction so bookings and tickets can
		// never diverge on a crash; used tickets stay used.
		if _, err := tx.Tickets().CancelValidByBooking(ctx, b.ID()); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		cancelled = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	if cancelled != nil {
		uc.invalidateSlots(ctx, cancelled)
		uc.notify(ctx, "booking_cancelled", bookingID)
		if reason != nil {
			slog.Info("booking cancelled", "booking_id", bookingID, "reason", *reason)
		}
	}
	return uc.bookingQueries.GetByIDSystem(ctx, bookingID)
}

// SweepCompleted flips elapsed confirmed bookings to completed. Completion
// is also derived lazily on read; the sweep just persists it.
func (uc *bookingUseCaseImpl) SweepCompleted(ctx context.Context) (int64, error) {
	var n int64
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		n, err = tx.Bookings().CompleteElapsed(ctx, uc.clock.Now())
		return err
	})
	if err != nil {
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return n, nil
}

// PruneIdempotencyKeys drops keys whose replay horizon has passed, so a
// reused key after the horizon is treated as a fresh request.
func (uc *bookingUseCaseImpl) PruneIdempotencyKeys(ctx context.Context) (int64, error) {
	n, err := uc.idempotency.DeleteExpired(ctx, uc.clock.Now())
	if err != nil {
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return n, nil
}

func (uc *bookingUseCaseImpl) loadHall(ctx context.Context, hallID uuid.UUID) (*hall.Hall, error) {
	snap, err := uc.uow.CommandReads().HallByID(ctx, hallID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrHallNotFound
		}
		return nil, errs.Mark(err, ErrHallNotFound)
	}
	return hall.NewHall(snap.ID, snap.BranchID, snap.Capacity, snap.Status, snap.PriceConfig, snap.WorkingHours)
}

func mapFactoryErr(err error) error {
	switch {
	case errors.Is(err, hall.ErrUnderMaintenance):
		return errs.Mark(err, ErrHallUnavailable)
	case errors.Is(err, hall.ErrInvalidPriceConfig):
		return errs.Mark(err, ErrInvalidPriceConfig)
	default:
		return errs.Mark(err, ErrDomainValidation)
	}
}

// notify is fire-and-forget: dispatch failures are logged, never surfaced.
func (uc *bookingUseCaseImpl) notify(ctx context.Context, topic string, bookingID uuid.UUID) {
	payload, err := json.Marshal(map[string]any{
		"booking_id": bookingID,
		"type":       topic,
	})
	if err != nil {
		slog.Warn("failed to build notification payload", "topic", topic, "error", err)
		return
	}
	if err := uc.notifications.CreateJob(ctx, "email", topic, payload, uc.clock.Now()); err != nil {
		slog.Warn("failed to enqueue notification", "topic", topic, "booking_id", bookingID, "error", err)
	}
}

func (uc *bookingUseCaseImpl) invalidateSlots(ctx context.Context, b *booking.Booking) {
	if uc.slotCache == nil {
		return
	}
	date := b.Slot().Start().Format("2006-01-02")
	uc.slotCache.Invalidate(ctx, b.HallID(), date)
}

func calculateRequestHash(input CreateBookingInput) string {
	data, _ := json.Marshal(input)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func calculateIDHash(id uuid.UUID) string {
	hash := sha256.Sum256([]byte(id.String()))
	return hex.EncodeToString(hash[:])
}
