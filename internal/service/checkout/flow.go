package checkout

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/you-humble/course-storefront/internal/model"
	"github.com/you-humble/course-storefront/internal/session"
	"github.com/you-humble/course-storefront/platform/logger"
)

type CoursesClient interface {
	InitiatePurchase(ctx context.Context, sess session.Session, intent model.PurchaseIntent) (model.PaymentSecret, error)
	ConfirmPurchase(ctx context.Context, sess session.Session, courseID, receiptID string) (*model.EnrollmentConfirmation, error)
}

// PaymentElement is the vendor's hosted card capability. Card data never passes through it.
type PaymentElement interface {
	CollectAndConfirm(ctx context.Context, secret model.PaymentSecret, billing model.Billing) (model.PaymentResult, error)
}

type PurchaseSender interface {
	SendCoursePurchased(ctx context.Context, event model.CoursePurchased) error
}

// Snapshot is the view state the presentation layer renders.
type Snapshot struct {
	CourseID         string
	State            State
	Loading          bool
	PaymentType      model.PaymentType
	InstallmentCount int
	Amount           model.AmountDisplay
	Secret           model.PaymentSecret
	ReceiptID        string
	IsEnrolled       bool
	Error            string
}

// Timeouts bound each remote call a flow makes. API covers both backend
// requests, Payment covers the payment element confirmation.
type Timeouts struct {
	API     time.Duration
	Payment time.Duration
}

// Flow drives one purchase attempt for one course:
// idle -> initiating -> awaiting_card -> confirming -> notifying -> succeeded,
// with failed as the retryable branch. The in-flight guard is advisory.
type Flow struct {
	api      CoursesClient
	element  PaymentElement
	events   PurchaseSender
	sess     session.Session
	timeouts Timeouts

	mu        sync.Mutex
	inFlight  bool
	state     State
	course    model.Course
	intent    model.PurchaseIntent
	secret    model.PaymentSecret
	amount    model.AmountDisplay
	receiptID string
	enrolled  bool
	errMsg    string
	touched   time.Time
}

func NewFlow(
	api CoursesClient,
	element PaymentElement,
	events PurchaseSender,
	sess session.Session,
	timeouts Timeouts,
) *Flow {
	return &Flow{
		api:      api,
		element:  element,
		events:   events,
		sess:     sess,
		timeouts: timeouts,
		state:    StateIdle,
		touched:  time.Now(),
	}
}

// Initiate asks the backend for a payment secret. Without a session no request is made.
func (f *Flow) Initiate(
	ctx context.Context,
	course model.Course,
	paymentType model.PaymentType,
	installments int,
) (model.PaymentSecret, error) {
	const op = "checkout.Flow.Initiate"
	log := logger.With(
		logger.String("course_id", course.ID),
		logger.String("payment_type", string(paymentType)),
		logger.Int("installments", installments),
	)

	intent := model.PurchaseIntent{
		CourseID:         course.ID,
		PaymentType:      paymentType,
		InstallmentCount: installments,
	}

	if err := f.begin(func() error {
		switch {
		case !f.sess.Authorized():
			return model.ErrAuthRequired
		case course.IsEnrolled || f.enrolled:
			return model.ErrAlreadyEnrolled
		}
		if err := intent.Validate(); err != nil {
			return err
		}
		if err := f.transition(StateInitiating); err != nil {
			return err
		}
		f.course = course
		return nil
	}); err != nil {
		log.Warn(ctx, "initiate rejected", logger.ErrorF(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := withTimeout(ctx, f.timeouts.API)
	defer cancel()

	secret, err := f.api.InitiatePurchase(ctx, f.sess, intent)

	f.mu.Lock()
	defer f.finishLocked()

	if err != nil {
		log.Error(ctx, "initiate purchase", logger.ErrorF(err))
		f.mustTransition(StateIdle)
		f.errMsg = DisplayMessage(err)
		return "", fmt.Errorf("%s: %w", op, err)
	}

	f.intent = intent
	f.secret = secret
	f.amount = DisplayAmount(course.Price, paymentType, installments)
	f.mustTransition(StateAwaitingCard)

	log.Info(ctx, "awaiting card input")
	return secret, nil
}

// ConfirmWithCard hands the secret and billing details to the payment element.
// Declined and cancelled outcomes leave the flow retryable.
func (f *Flow) ConfirmWithCard(
	ctx context.Context,
	secret model.PaymentSecret,
	billing model.Billing,
) (model.PaymentResult, error) {
	const op = "checkout.Flow.ConfirmWithCard"
	log := logger.With(logger.String("course_id", f.courseID()))

	if err := f.begin(func() error {
		if f.state == StateFailed && f.receiptID == "" {
			f.mustTransition(StateAwaitingCard)
		}
		if f.state != StateAwaitingCard {
			return fmt.Errorf("%w: confirm from %s", model.ErrInvalidTransition, f.state)
		}
		if secret == "" || secret != f.secret {
			return model.ErrSecretMismatch
		}
		if err := billing.Validate(); err != nil {
			return err
		}
		return f.transition(StateConfirming)
	}); err != nil {
		log.Warn(ctx, "confirm rejected", logger.ErrorF(err))
		return model.PaymentResult{}, fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := withTimeout(ctx, f.timeouts.Payment)
	defer cancel()

	res, err := f.element.CollectAndConfirm(ctx, secret, billing)

	f.mu.Lock()
	defer f.finishLocked()

	if err != nil {
		log.Warn(ctx, "payment element failed", logger.ErrorF(err))
		f.mustTransition(StateFailed)
		f.errMsg = DisplayMessage(err)
		return model.PaymentResult{}, fmt.Errorf("%s: %w", op, err)
	}

	switch res.Outcome {
	case model.OutcomeSucceeded:
		if res.ReceiptID == "" {
			f.mustTransition(StateFailed)
			f.errMsg = msgUnexpected
			return model.PaymentResult{}, fmt.Errorf("%s: %w: empty receipt", op, model.ErrGatewayDeclined)
		}
		f.receiptID = res.ReceiptID
		f.mustTransition(StateNotifying)
		log.Info(ctx, "payment succeeded", logger.String("receipt_id", res.ReceiptID))
	case model.OutcomeDeclined:
		f.mustTransition(StateFailed)
		f.errMsg = res.Reason
		if f.errMsg == "" {
			f.errMsg = msgDeclined
		}
		log.Info(ctx, "payment declined")
	case model.OutcomeCancelled:
		f.mustTransition(StateFailed)
		f.errMsg = msgCancelled
		log.Info(ctx, "payment cancelled")
	default:
		f.mustTransition(StateFailed)
		f.errMsg = msgUnexpected
		return model.PaymentResult{}, fmt.Errorf("%s: %w: outcome %q", op, model.ErrGatewayDeclined, res.Outcome)
	}

	return res, nil
}

// NotifyBackend reports the receipt to the backend. Calling it again with the
// same receipt after success returns the recorded enrollment without a request.
func (f *Flow) NotifyBackend(ctx context.Context, receiptID string) (*model.EnrollmentConfirmation, error) {
	const op = "checkout.Flow.NotifyBackend"
	log := logger.With(
		logger.String("course_id", f.courseID()),
		logger.String("receipt_id", receiptID),
	)

	var cached *model.EnrollmentConfirmation
	if err := f.begin(func() error {
		if strings.TrimSpace(receiptID) == "" {
			return fmt.Errorf("%w: receipt id is required", model.ErrValidation)
		}
		if receiptID != f.receiptID {
			return fmt.Errorf("%w: unknown receipt", model.ErrInvalidTransition)
		}
		if f.state == StateSucceeded {
			cached = &model.EnrollmentConfirmation{
				CourseID:         f.course.ID,
				Enrolled:         true,
				AlreadyConfirmed: true,
			}
			return nil
		}
		if f.state == StateFailed {
			return f.transition(StateNotifying)
		}
		if f.state != StateNotifying {
			return fmt.Errorf("%w: notify from %s", model.ErrInvalidTransition, f.state)
		}
		return nil
	}); err != nil {
		log.Warn(ctx, "notify rejected", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if cached != nil {
		f.mu.Lock()
		f.finishLocked()
		return cached, nil
	}

	ctx, cancel := withTimeout(ctx, f.timeouts.API)
	defer cancel()

	conf, err := f.api.ConfirmPurchase(ctx, f.sess, f.courseID(), receiptID)

	f.mu.Lock()
	if err != nil {
		f.mustTransition(StateFailed)
		f.errMsg = DisplayMessage(err)
		f.finishLocked()
		log.Error(ctx, "confirm purchase", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	f.mustTransition(StateSucceeded)
	f.enrolled = true
	f.course.IsEnrolled = true
	event := model.CoursePurchased{
		EventID:          uuid.NewString(),
		CourseID:         f.course.ID,
		ReceiptID:        receiptID,
		PaymentType:      f.intent.PaymentType,
		InstallmentCount: f.intent.InstallmentCount,
	}
	f.finishLocked()

	log.Info(ctx, "enrollment confirmed", logger.Bool("already_confirmed", conf.AlreadyConfirmed))

	if f.events != nil {
		if err := f.events.SendCoursePurchased(ctx, event); err != nil {
			log.Warn(ctx, "publish course purchased", logger.ErrorF(err))
		}
	}

	return conf, nil
}

// Retry moves a failed flow back to where the buyer can act again.
func (f *Flow) Retry() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.inFlight {
		return model.ErrSubmissionInFlight
	}
	if f.state != StateFailed {
		return fmt.Errorf("%w: retry from %s", model.ErrInvalidTransition, f.state)
	}

	f.errMsg = ""
	f.touched = time.Now()
	if f.receiptID != "" {
		f.mustTransition(StateNotifying)
		return nil
	}
	f.mustTransition(StateAwaitingCard)
	return nil
}

// Abandon drops the current intent so a new one may be started.
func (f *Flow) Abandon() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.inFlight {
		return model.ErrSubmissionInFlight
	}
	if f.state == StateSucceeded || f.receiptID != "" {
		return fmt.Errorf("%w: abandon from %s", model.ErrInvalidTransition, f.state)
	}

	f.state = StateIdle
	f.intent = model.PurchaseIntent{}
	f.secret = ""
	f.amount = model.AmountDisplay{}
	f.receiptID = ""
	f.errMsg = ""
	f.touched = time.Now()
	return nil
}

func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	return Snapshot{
		CourseID:         f.course.ID,
		State:            f.state,
		Loading:          f.inFlight,
		PaymentType:      f.intent.PaymentType,
		InstallmentCount: f.intent.InstallmentCount,
		Amount:           f.amount,
		Secret:           f.secret,
		ReceiptID:        f.receiptID,
		IsEnrolled:       f.enrolled,
		Error:            f.errMsg,
	}
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// open reports whether the flow still holds an intent that must be finished or abandoned.
func (f *Flow) open() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inFlight || (f.state != StateIdle && f.state != StateSucceeded)
}

func (f *Flow) lastTouched() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.touched
}

// begin runs check under the lock and marks the flow busy when it passes.
// A failed check records its display message and leaves the state untouched.
func (f *Flow) begin(check func() error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.inFlight {
		return model.ErrSubmissionInFlight
	}
	if err := check(); err != nil {
		f.errMsg = DisplayMessage(err)
		return err
	}

	f.inFlight = true
	f.errMsg = ""
	f.touched = time.Now()
	return nil
}

// finishLocked clears the busy flag and releases the lock taken by the caller.
func (f *Flow) finishLocked() {
	f.inFlight = false
	f.touched = time.Now()
	f.mu.Unlock()
}

func (f *Flow) transition(next State) error {
	if !f.state.canTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", model.ErrInvalidTransition, f.state, next)
	}
	f.state = next
	return nil
}

func (f *Flow) mustTransition(next State) {
	if err := f.transition(next); err != nil {
		panic(err)
	}
}

func (f *Flow) courseID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.course.ID != "" {
		return f.course.ID
	}
	return f.intent.CourseID
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
