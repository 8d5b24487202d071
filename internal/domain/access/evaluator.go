package access

import (
	"context"

	"github.com/PoodingDev/Evento-BE/internal/domain/apperrors"
	"github.com/PoodingDev/Evento-BE/internal/domain/calendar"
	"github.com/PoodingDev/Evento-BE/internal/domain/subscription"
	"github.com/google/uuid"
)

// CalendarSource is the slice of the calendar repository the evaluator needs.
type CalendarSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*calendar.Calendar, error)
	HasAdminMembership(ctx context.Context, userID, calendarID uuid.UUID) (bool, error)
}

// SubscriptionSource is the slice of the subscription repository the
// evaluator needs.
type SubscriptionSource interface {
	Get(ctx context.Context, userID, calendarID uuid.UUID) (*subscription.Subscription, error)
}

// Evaluator consolidates every read/write permission predicate in one place.
// All methods are side-effect free: they return nil when access is allowed
// and a typed apperrors value otherwise.
type Evaluator struct {
	calendars     CalendarSource
	subscriptions SubscriptionSource
}

// NewEvaluator creates a new access evaluator instance
func NewEvaluator(calendars CalendarSource, subscriptions SubscriptionSource) *Evaluator {
	return &Evaluator{calendars: calendars, subscriptions: subscriptions}
}

func (e *Evaluator) canWrite(ctx context.Context, userID uuid.UUID, cal *calendar.Calendar) (bool, error) {
	if cal.CreatorID == userID {
		return true, nil
	}
	return e.calendars.HasAdminMembership(ctx, userID, cal.ID)
}

func (e *Evaluator) hasActiveSubscription(ctx context.Context, userID, calendarID uuid.UUID) (bool, error) {
	sub, err := e.subscriptions.Get(ctx, userID, calendarID)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			return false, nil
		}
		return false, err
	}
	return sub.IsActive, nil
}

// CanWriteCalendar allows the creator and admin members.
func (e *Evaluator) CanWriteCalendar(ctx context.Context, userID, calendarID uuid.UUID) error {
	cal, err := e.calendars.GetByID(ctx, calendarID)
	if err != nil {
		return err
	}
	ok, err := e.canWrite(ctx, userID, cal)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.PermissionDenied("admin permission required")
	}
	return nil
}

// CanReadCalendar allows anyone on public calendars; on private ones it
// requires write access or an active subscription.
func (e *Evaluator) CanReadCalendar(ctx context.Context, userID, calendarID uuid.UUID) error {
	cal, err := e.calendars.GetByID(ctx, calendarID)
	if err != nil {
		return err
	}
	if cal.IsPublic {
		return nil
	}
	ok, err := e.canWrite(ctx, userID, cal)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	active, err := e.hasActiveSubscription(ctx, userID, calendarID)
	if err != nil {
		return err
	}
	if !active {
		return apperrors.PermissionDenied("no access to this calendar")
	}
	return nil
}

// CanWriteEvent gates event mutation on write access to the owning calendar.
func (e *Evaluator) CanWriteEvent(ctx context.Context, userID, calendarID uuid.UUID) error {
	return e.CanWriteCalendar(ctx, userID, calendarID)
}

// CanReadEvent allows public events to everyone. Private events require
// write access, or an active subscription when the calendar itself is
// public.
func (e *Evaluator) CanReadEvent(ctx context.Context, userID, calendarID uuid.UUID, eventPublic bool) error {
	if eventPublic {
		return nil
	}
	cal, err := e.calendars.GetByID(ctx, calendarID)
	if err != nil {
		return err
	}
	ok, err := e.canWrite(ctx, userID, cal)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	if cal.IsPublic {
		active, err := e.hasActiveSubscription(ctx, userID, calendarID)
		if err != nil {
			return err
		}
		if active {
			return nil
		}
	}
	return apperrors.PermissionDenied("no access to this event")
}

// CanSubscribe rejects private calendars for everyone but the creator and
// admin members.
func (e *Evaluator) CanSubscribe(ctx context.Context, userID, calendarID uuid.UUID) error {
	cal, err := e.calendars.GetByID(ctx, calendarID)
	if err != nil {
		return err
	}
	if cal.IsPublic {
		return nil
	}
	ok, err := e.canWrite(ctx, userID, cal)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.Conflict("cannot subscribe to a private calendar")
	}
	return nil
}
