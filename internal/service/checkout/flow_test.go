package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/course-storefront/internal/model"
	"github.com/you-humble/course-storefront/internal/service/checkout/mocks"
	"github.com/you-humble/course-storefront/internal/session"
)

type deps struct {
	api     *mocks.MockCoursesClient
	element *mocks.MockPaymentElement
	events  *mocks.MockPurchaseSender
}

func newDeps(t *testing.T) deps {
	return deps{
		api:     mocks.NewMockCoursesClient(t),
		element: mocks.NewMockPaymentElement(t),
		events:  mocks.NewMockPurchaseSender(t),
	}
}

func newFlow(d deps, sess session.Session) *Flow {
	return NewFlow(d.api, d.element, d.events, sess, Timeouts{API: time.Second, Payment: time.Second})
}

func testCourse() model.Course {
	return model.Course{
		ID:       "c1",
		Title:    gofakeit.BookTitle(),
		Category: "Design",
		Price:    decimal.NewFromInt(300),
	}
}

func testBilling() model.Billing {
	return model.Billing{Name: gofakeit.Name(), Email: gofakeit.Email(), Card: "pm_card_visa"}
}

// awaitingCard drives a flow to awaiting_card holding sec_1.
func awaitingCard(t *testing.T, d deps, f *Flow) {
	t.Helper()

	d.api.
		On("InitiatePurchase", mock.Anything, mock.Anything, mock.Anything).
		Return(model.PaymentSecret("sec_1"), nil).
		Once()

	_, err := f.Initiate(context.Background(), testCourse(), model.PaymentTypeFull, 0)
	require.NoError(t, err)
	require.Equal(t, StateAwaitingCard, f.State())
}

func TestFlowInitiate(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name         string
		sess         session.Session
		course       model.Course
		paymentType  model.PaymentType
		installments int
		setup        func(d deps)
		assert       func(t *testing.T, f *Flow, secret model.PaymentSecret, err error)
	}

	tests := []testCase{
		{
			name:        "no session: auth required without a network call",
			sess:        session.Session{},
			course:      testCourse(),
			paymentType: model.PaymentTypeFull,
			setup:       func(d deps) {},
			assert: func(t *testing.T, f *Flow, secret model.PaymentSecret, err error) {
				require.ErrorIs(t, err, model.ErrAuthRequired)
				assert.Empty(t, secret)
				snap := f.Snapshot()
				assert.Equal(t, StateIdle, snap.State)
				assert.Equal(t, msgAuthRequired, snap.Error)
				assert.False(t, snap.Loading)
			},
		},
		{
			name:         "installment without count is rejected locally",
			sess:         session.New("tok"),
			course:       testCourse(),
			paymentType:  model.PaymentTypeInstallment,
			installments: 0,
			setup:        func(d deps) {},
			assert: func(t *testing.T, f *Flow, _ model.PaymentSecret, err error) {
				require.ErrorIs(t, err, model.ErrValidation)
				assert.Equal(t, StateIdle, f.State())
			},
		},
		{
			name: "already enrolled course is rejected locally",
			sess: session.New("tok"),
			course: func() model.Course {
				c := testCourse()
				c.IsEnrolled = true
				return c
			}(),
			paymentType: model.PaymentTypeFull,
			setup:       func(d deps) {},
			assert: func(t *testing.T, f *Flow, _ model.PaymentSecret, err error) {
				require.ErrorIs(t, err, model.ErrAlreadyEnrolled)
			},
		},
		{
			name:        "backend rejection returns to idle with server message",
			sess:        session.New("tok"),
			course:      testCourse(),
			paymentType: model.PaymentTypeFull,
			setup: func(d deps) {
				d.api.
					On("InitiatePurchase", mock.Anything, mock.Anything, mock.Anything).
					Return(model.PaymentSecret(""), &model.RemoteError{Status: 400, Message: "Course already purchased"}).
					Once()
			},
			assert: func(t *testing.T, f *Flow, _ model.PaymentSecret, err error) {
				require.ErrorIs(t, err, model.ErrRemote)
				snap := f.Snapshot()
				assert.Equal(t, StateIdle, snap.State)
				assert.Equal(t, "Course already purchased", snap.Error)
				assert.False(t, snap.Loading)
			},
		},
		{
			name:        "full payment holds secret",
			sess:        session.New("tok"),
			course:      testCourse(),
			paymentType: model.PaymentTypeFull,
			setup: func(d deps) {
				d.api.
					On("InitiatePurchase", mock.Anything,
						mock.MatchedBy(func(s session.Session) bool { return s.Token() == "tok" }),
						model.PurchaseIntent{CourseID: "c1", PaymentType: model.PaymentTypeFull}).
					Return(model.PaymentSecret("sec_1"), nil).
					Once()
			},
			assert: func(t *testing.T, f *Flow, secret model.PaymentSecret, err error) {
				require.NoError(t, err)
				assert.Equal(t, model.PaymentSecret("sec_1"), secret)
				snap := f.Snapshot()
				assert.Equal(t, StateAwaitingCard, snap.State)
				assert.Equal(t, "$300", snap.Amount.Total)
				assert.Equal(t, "$300", snap.Amount.PerPeriod)
			},
		},
		{
			name:         "installment plan of three",
			sess:         session.New("tok"),
			course:       testCourse(),
			paymentType:  model.PaymentTypeInstallment,
			installments: 3,
			setup: func(d deps) {
				d.api.
					On("InitiatePurchase", mock.Anything, mock.Anything,
						model.PurchaseIntent{CourseID: "c1", PaymentType: model.PaymentTypeInstallment, InstallmentCount: 3}).
					Return(model.PaymentSecret("sec_3"), nil).
					Once()
			},
			assert: func(t *testing.T, f *Flow, _ model.PaymentSecret, err error) {
				require.NoError(t, err)
				snap := f.Snapshot()
				assert.Equal(t, "$100.00", snap.Amount.PerPeriod)
				assert.Equal(t, "$300", snap.Amount.Total)
				assert.Equal(t, 3, snap.InstallmentCount)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := newDeps(t)
			tt.setup(d)
			f := newFlow(d, tt.sess)

			secret, err := f.Initiate(context.Background(), tt.course, tt.paymentType, tt.installments)
			tt.assert(t, f, secret, err)
		})
	}
}

func TestFlowInitiateTwiceRequiresAbandon(t *testing.T) {
	t.Parallel()

	d := newDeps(t)
	f := newFlow(d, session.New("tok"))
	awaitingCard(t, d, f)

	_, err := f.Initiate(context.Background(), testCourse(), model.PaymentTypeFull, 0)
	require.ErrorIs(t, err, model.ErrInvalidTransition)

	require.NoError(t, f.Abandon())
	assert.Equal(t, StateIdle, f.State())
	assert.Empty(t, f.Snapshot().Secret)

	awaitingCard(t, d, f)
}

func TestFlowConfirmWithCard(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name    string
		secret  model.PaymentSecret
		billing model.Billing
		setup   func(d deps)
		assert  func(t *testing.T, f *Flow, res model.PaymentResult, err error)
	}

	tests := []testCase{
		{
			name:    "succeeded moves to notifying",
			secret:  "sec_1",
			billing: testBilling(),
			setup: func(d deps) {
				d.element.
					On("CollectAndConfirm", mock.Anything, model.PaymentSecret("sec_1"), mock.AnythingOfType("model.Billing")).
					Return(model.Succeeded("pi_1"), nil).
					Once()
			},
			assert: func(t *testing.T, f *Flow, res model.PaymentResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, model.Succeeded("pi_1"), res)
				snap := f.Snapshot()
				assert.Equal(t, StateNotifying, snap.State)
				assert.Equal(t, "pi_1", snap.ReceiptID)
				assert.False(t, snap.IsEnrolled)
			},
		},
		{
			name:    "declined is retryable",
			secret:  "sec_1",
			billing: testBilling(),
			setup: func(d deps) {
				d.element.
					On("CollectAndConfirm", mock.Anything, mock.Anything, mock.Anything).
					Return(model.Declined("Your card has insufficient funds."), nil).
					Once()
			},
			assert: func(t *testing.T, f *Flow, res model.PaymentResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, model.OutcomeDeclined, res.Outcome)
				snap := f.Snapshot()
				assert.Equal(t, StateFailed, snap.State)
				assert.Equal(t, "Your card has insufficient funds.", snap.Error)
				require.NoError(t, f.Retry())
				assert.Equal(t, StateAwaitingCard, f.State())
			},
		},
		{
			name:    "cancelled is retryable",
			secret:  "sec_1",
			billing: testBilling(),
			setup: func(d deps) {
				d.element.
					On("CollectAndConfirm", mock.Anything, mock.Anything, mock.Anything).
					Return(model.Cancelled(), nil).
					Once()
			},
			assert: func(t *testing.T, f *Flow, res model.PaymentResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, model.OutcomeCancelled, res.Outcome)
				assert.Equal(t, StateFailed, f.State())
				assert.Equal(t, msgCancelled, f.Snapshot().Error)
			},
		},
		{
			name:    "element network error fails the attempt",
			secret:  "sec_1",
			billing: testBilling(),
			setup: func(d deps) {
				d.element.
					On("CollectAndConfirm", mock.Anything, mock.Anything, mock.Anything).
					Return(model.PaymentResult{}, model.ErrNetwork).
					Once()
			},
			assert: func(t *testing.T, f *Flow, _ model.PaymentResult, err error) {
				require.ErrorIs(t, err, model.ErrNetwork)
				assert.Equal(t, StateFailed, f.State())
				assert.Equal(t, msgNetwork, f.Snapshot().Error)
			},
		},
		{
			name:    "missing billing name never reaches the element",
			secret:  "sec_1",
			billing: model.Billing{Email: "a@b.c", Card: "pm_1"},
			setup:   func(d deps) {},
			assert: func(t *testing.T, f *Flow, _ model.PaymentResult, err error) {
				require.ErrorIs(t, err, model.ErrValidation)
				assert.Equal(t, StateAwaitingCard, f.State())
				assert.Equal(t, "Billing name is required.", f.Snapshot().Error)
			},
		},
		{
			name:    "foreign secret is rejected",
			secret:  "sec_other",
			billing: testBilling(),
			setup:   func(d deps) {},
			assert: func(t *testing.T, f *Flow, _ model.PaymentResult, err error) {
				require.ErrorIs(t, err, model.ErrSecretMismatch)
				assert.Equal(t, StateAwaitingCard, f.State())
				assert.Equal(t, msgSecretExpired, f.Snapshot().Error)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := newDeps(t)
			f := newFlow(d, session.New("tok"))
			awaitingCard(t, d, f)
			tt.setup(d)

			res, err := f.ConfirmWithCard(context.Background(), tt.secret, tt.billing)
			tt.assert(t, f, res, err)
		})
	}
}

func TestFlowConfirmWithCardOnlyPassesOpaqueCardReference(t *testing.T) {
	t.Parallel()

	d := newDeps(t)
	f := newFlow(d, session.New("tok"))
	awaitingCard(t, d, f)

	billing := testBilling()
	d.element.
		On("CollectAndConfirm", mock.Anything, model.PaymentSecret("sec_1"), billing).
		Return(model.Succeeded("pi_1"), nil).
		Once()

	_, err := f.ConfirmWithCard(context.Background(), "sec_1", billing)
	require.NoError(t, err)

	d.api.AssertNotCalled(t, "ConfirmPurchase", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFlowDeclinedThenResubmitSucceeds(t *testing.T) {
	t.Parallel()

	d := newDeps(t)
	f := newFlow(d, session.New("tok"))
	awaitingCard(t, d, f)

	d.element.
		On("CollectAndConfirm", mock.Anything, mock.Anything, mock.Anything).
		Return(model.Declined("declined"), nil).
		Once()
	d.element.
		On("CollectAndConfirm", mock.Anything, mock.Anything, mock.Anything).
		Return(model.Succeeded("pi_2"), nil).
		Once()

	_, err := f.ConfirmWithCard(context.Background(), "sec_1", testBilling())
	require.NoError(t, err)
	require.Equal(t, StateFailed, f.State())

	res, err := f.ConfirmWithCard(context.Background(), "sec_1", testBilling())
	require.NoError(t, err)
	assert.Equal(t, "pi_2", res.ReceiptID)
	assert.Equal(t, StateNotifying, f.State())
	assert.Empty(t, f.Snapshot().Error)
}

func TestFlowRejectsConcurrentSubmission(t *testing.T) {
	t.Parallel()

	d := newDeps(t)
	f := newFlow(d, session.New("tok"))
	awaitingCard(t, d, f)

	release := make(chan struct{})
	d.element.
		On("CollectAndConfirm", mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { <-release }).
		Return(model.Succeeded("pi_1"), nil).
		Once()

	done := make(chan error, 1)
	go func() {
		_, err := f.ConfirmWithCard(context.Background(), "sec_1", testBilling())
		done <- err
	}()

	require.Eventually(t, func() bool { return f.Snapshot().Loading }, time.Second, 5*time.Millisecond)
	assert.Equal(t, StateConfirming, f.State())

	_, err := f.ConfirmWithCard(context.Background(), "sec_1", testBilling())
	require.ErrorIs(t, err, model.ErrSubmissionInFlight)
	require.ErrorIs(t, f.Abandon(), model.ErrSubmissionInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, f.Snapshot().Loading)
}

func TestFlowBoundsEachCallWithItsOwnTimeout(t *testing.T) {
	t.Parallel()

	d := newDeps(t)
	f := NewFlow(d.api, d.element, d.events, session.New("tok"), Timeouts{API: time.Hour, Payment: time.Minute})

	deadlineWithin := func(lo, hi time.Duration) func(mock.Arguments) {
		return func(args mock.Arguments) {
			dl, ok := args.Get(0).(context.Context).Deadline()
			require.True(t, ok)
			left := time.Until(dl)
			assert.Greater(t, left, lo)
			assert.LessOrEqual(t, left, hi)
		}
	}

	d.api.
		On("InitiatePurchase", mock.Anything, mock.Anything, mock.Anything).
		Run(deadlineWithin(time.Minute, time.Hour)).
		Return(model.PaymentSecret("sec_1"), nil).
		Once()
	d.element.
		On("CollectAndConfirm", mock.Anything, mock.Anything, mock.Anything).
		Run(deadlineWithin(0, time.Minute)).
		Return(model.Succeeded("pi_1"), nil).
		Once()
	d.api.
		On("ConfirmPurchase", mock.Anything, mock.Anything, "c1", "pi_1").
		Run(deadlineWithin(time.Minute, time.Hour)).
		Return(&model.EnrollmentConfirmation{CourseID: "c1", Enrolled: true}, nil).
		Once()
	d.events.
		On("SendCoursePurchased", mock.Anything, mock.Anything).
		Return(nil).
		Once()

	ctx := context.Background()
	_, err := f.Initiate(ctx, testCourse(), model.PaymentTypeFull, 0)
	require.NoError(t, err)
	_, err = f.ConfirmWithCard(ctx, "sec_1", testBilling())
	require.NoError(t, err)
	_, err = f.NotifyBackend(ctx, "pi_1")
	require.NoError(t, err)
}

func TestFlowNotifyBackend(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name    string
		receipt string
		setup   func(d deps)
		assert  func(t *testing.T, f *Flow, conf *model.EnrollmentConfirmation, err error)
	}

	tests := []testCase{
		{
			name:    "confirmed enrolls and publishes",
			receipt: "pi_1",
			setup: func(d deps) {
				d.api.
					On("ConfirmPurchase", mock.Anything, mock.Anything, "c1", "pi_1").
					Return(&model.EnrollmentConfirmation{CourseID: "c1", Enrolled: true}, nil).
					Once()
				d.events.
					On("SendCoursePurchased", mock.Anything, mock.MatchedBy(func(e model.CoursePurchased) bool {
						return e.CourseID == "c1" && e.ReceiptID == "pi_1" && e.EventID != "" &&
							e.PaymentType == model.PaymentTypeFull
					})).
					Return(nil).
					Once()
			},
			assert: func(t *testing.T, f *Flow, conf *model.EnrollmentConfirmation, err error) {
				require.NoError(t, err)
				assert.True(t, conf.Enrolled)
				snap := f.Snapshot()
				assert.Equal(t, StateSucceeded, snap.State)
				assert.True(t, snap.IsEnrolled)
			},
		},
		{
			name:    "event failure does not surface",
			receipt: "pi_1",
			setup: func(d deps) {
				d.api.
					On("ConfirmPurchase", mock.Anything, mock.Anything, "c1", "pi_1").
					Return(&model.EnrollmentConfirmation{CourseID: "c1", Enrolled: true}, nil).
					Once()
				d.events.
					On("SendCoursePurchased", mock.Anything, mock.Anything).
					Return(errors.New("broker down")).
					Once()
			},
			assert: func(t *testing.T, f *Flow, conf *model.EnrollmentConfirmation, err error) {
				require.NoError(t, err)
				assert.True(t, f.Snapshot().IsEnrolled)
			},
		},
		{
			name:    "backend failure keeps the receipt for retry",
			receipt: "pi_1",
			setup: func(d deps) {
				d.api.
					On("ConfirmPurchase", mock.Anything, mock.Anything, "c1", "pi_1").
					Return(nil, model.ErrNetwork).
					Once()
			},
			assert: func(t *testing.T, f *Flow, conf *model.EnrollmentConfirmation, err error) {
				require.ErrorIs(t, err, model.ErrNetwork)
				assert.Nil(t, conf)
				snap := f.Snapshot()
				assert.Equal(t, StateFailed, snap.State)
				assert.Equal(t, "pi_1", snap.ReceiptID)
				require.ErrorIs(t, f.Abandon(), model.ErrInvalidTransition)
			},
		},
		{
			name:    "unknown receipt",
			receipt: "pi_other",
			setup:   func(d deps) {},
			assert: func(t *testing.T, f *Flow, _ *model.EnrollmentConfirmation, err error) {
				require.ErrorIs(t, err, model.ErrInvalidTransition)
				assert.Equal(t, StateNotifying, f.State())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := newDeps(t)
			f := newFlow(d, session.New("tok"))
			awaitingCard(t, d, f)
			d.element.
				On("CollectAndConfirm", mock.Anything, mock.Anything, mock.Anything).
				Return(model.Succeeded("pi_1"), nil).
				Once()
			_, err := f.ConfirmWithCard(context.Background(), "sec_1", testBilling())
			require.NoError(t, err)
			tt.setup(d)

			conf, err := f.NotifyBackend(context.Background(), tt.receipt)
			tt.assert(t, f, conf, err)
		})
	}
}

func TestFlowPurchaseScenario(t *testing.T) {
	t.Parallel()

	d := newDeps(t)
	f := newFlow(d, session.New("tok"))
	ctx := context.Background()

	d.api.
		On("InitiatePurchase", mock.Anything, mock.Anything,
			model.PurchaseIntent{CourseID: "c1", PaymentType: model.PaymentTypeFull}).
		Return(model.PaymentSecret("sec_1"), nil).
		Once()
	d.element.
		On("CollectAndConfirm", mock.Anything, model.PaymentSecret("sec_1"), mock.Anything).
		Return(model.Succeeded("pi_1"), nil).
		Once()
	d.api.
		On("ConfirmPurchase", mock.Anything, mock.Anything, "c1", "pi_1").
		Return(&model.EnrollmentConfirmation{CourseID: "c1", Enrolled: true}, nil).
		Once()
	d.events.
		On("SendCoursePurchased", mock.Anything, mock.Anything).
		Return(nil).
		Once()

	secret, err := f.Initiate(ctx, testCourse(), model.PaymentTypeFull, 0)
	require.NoError(t, err)
	require.Equal(t, model.PaymentSecret("sec_1"), secret)

	res, err := f.ConfirmWithCard(ctx, secret, testBilling())
	require.NoError(t, err)
	require.Equal(t, model.Succeeded("pi_1"), res)

	conf, err := f.NotifyBackend(ctx, res.ReceiptID)
	require.NoError(t, err)
	assert.True(t, conf.Enrolled)
	assert.True(t, f.Snapshot().IsEnrolled)

	// A second notification with the same receipt is success-equivalent and makes no request.
	again, err := f.NotifyBackend(ctx, "pi_1")
	require.NoError(t, err)
	assert.True(t, again.Enrolled)
	assert.True(t, again.AlreadyConfirmed)
	d.api.AssertNumberOfCalls(t, "ConfirmPurchase", 1)

	_, err = f.Initiate(ctx, testCourse(), model.PaymentTypeFull, 0)
	require.ErrorIs(t, err, model.ErrAlreadyEnrolled)
	require.ErrorIs(t, f.Abandon(), model.ErrInvalidTransition)
}

func TestFlowRetryFromWrongState(t *testing.T) {
	t.Parallel()

	d := newDeps(t)
	f := newFlow(d, session.New("tok"))

	require.ErrorIs(t, f.Retry(), model.ErrInvalidTransition)
}

func TestStateTransitions(t *testing.T) {
	t.Parallel()

	assert.True(t, StateFailed.canTransitionTo(StateAwaitingCard))
	assert.False(t, StateSucceeded.canTransitionTo(StateIdle))
	assert.False(t, StateAwaitingCard.canTransitionTo(StateSucceeded))
	assert.False(t, StateIdle.canTransitionTo(StateConfirming))
	assert.True(t, StateSucceeded.Terminal())
	assert.True(t, StateConfirming.Busy())
}
