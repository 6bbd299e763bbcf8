package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/you-humble/course-storefront/internal/model"
	"github.com/you-humble/course-storefront/internal/session"
	"github.com/you-humble/course-storefront/platform/logger"
)

type service struct {
	flows *Registry
}

func NewCheckoutService(
	api CoursesClient,
	element PaymentElement,
	events PurchaseSender,
	timeouts Timeouts,
	flowTTL time.Duration,
) *service {
	return &service{
		flows: NewRegistry(flowTTL, func(sess session.Session) *Flow {
			return NewFlow(api, element, events, sess, timeouts)
		}),
	}
}

// Initiate starts a purchase, or resumes the open one for the same course.
func (svc *service) Initiate(
	ctx context.Context,
	sess session.Session,
	course model.Course,
	paymentType model.PaymentType,
	installments int,
) (Snapshot, error) {
	const op = "checkout.service.Initiate"

	flow := svc.flows.Open(sess, course.ID)
	if flow.open() {
		snap := flow.Snapshot()
		if snap.Loading {
			return snap, fmt.Errorf("%s: %w", op, model.ErrSubmissionInFlight)
		}
		if snap.PaymentType == paymentType && snap.InstallmentCount == installments {
			logger.Info(ctx, "resuming open checkout", logger.String("course_id", course.ID))
			return snap, nil
		}
		return snap, fmt.Errorf("%s: %w", op, model.ErrCheckoutOpen)
	}

	if _, err := flow.Initiate(ctx, course, paymentType, installments); err != nil {
		return flow.Snapshot(), fmt.Errorf("%s: %w", op, err)
	}
	return flow.Snapshot(), nil
}

// Confirm runs the card confirmation and, on success, the backend notification.
func (svc *service) Confirm(
	ctx context.Context,
	sess session.Session,
	courseID string,
	billing model.Billing,
) (Snapshot, model.PaymentResult, error) {
	const op = "checkout.service.Confirm"

	if !sess.Authorized() {
		return Snapshot{State: StateIdle, Error: msgAuthRequired}, model.PaymentResult{},
			fmt.Errorf("%s: %w", op, model.ErrAuthRequired)
	}

	flow, ok := svc.flows.Get(sess, courseID)
	if !ok {
		return Snapshot{CourseID: courseID, State: StateIdle}, model.PaymentResult{},
			fmt.Errorf("%s: %w: no checkout for course", op, model.ErrInvalidTransition)
	}

	// Once a receipt exists the card is never charged again; only the
	// notification is retried, or replayed from the recorded result.
	snap := flow.Snapshot()
	if snap.ReceiptID != "" && (snap.State == StateNotifying || snap.State == StateFailed || snap.State == StateSucceeded) {
		if _, err := flow.NotifyBackend(ctx, snap.ReceiptID); err != nil {
			return flow.Snapshot(), model.Succeeded(snap.ReceiptID), fmt.Errorf("%s: %w", op, err)
		}
		return flow.Snapshot(), model.Succeeded(snap.ReceiptID), nil
	}

	res, err := flow.ConfirmWithCard(ctx, snap.Secret, billing)
	if err != nil {
		return flow.Snapshot(), res, fmt.Errorf("%s: %w", op, err)
	}
	if res.Outcome != model.OutcomeSucceeded {
		return flow.Snapshot(), res, nil
	}

	if _, err := flow.NotifyBackend(ctx, res.ReceiptID); err != nil {
		return flow.Snapshot(), res, fmt.Errorf("%s: %w", op, err)
	}
	return flow.Snapshot(), res, nil
}

func (svc *service) Retry(_ context.Context, sess session.Session, courseID string) (Snapshot, error) {
	const op = "checkout.service.Retry"

	flow, ok := svc.flows.Get(sess, courseID)
	if !ok {
		return Snapshot{CourseID: courseID, State: StateIdle}, fmt.Errorf("%s: %w", op, model.ErrInvalidTransition)
	}
	if err := flow.Retry(); err != nil {
		return flow.Snapshot(), fmt.Errorf("%s: %w", op, err)
	}
	return flow.Snapshot(), nil
}

func (svc *service) Abandon(ctx context.Context, sess session.Session, courseID string) error {
	const op = "checkout.service.Abandon"

	flow, ok := svc.flows.Get(sess, courseID)
	if !ok {
		return nil
	}
	if err := flow.Abandon(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	svc.flows.Forget(sess, courseID)
	logger.Info(ctx, "checkout abandoned", logger.String("course_id", courseID))
	return nil
}

func (svc *service) Status(_ context.Context, sess session.Session, courseID string) Snapshot {
	flow, ok := svc.flows.Get(sess, courseID)
	if !ok {
		return Snapshot{CourseID: courseID, State: StateIdle}
	}
	return flow.Snapshot()
}
