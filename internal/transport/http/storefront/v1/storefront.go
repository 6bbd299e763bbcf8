package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/you-humble/course-storefront/internal/model"
	"github.com/you-humble/course-storefront/internal/service/checkout"
	"github.com/you-humble/course-storefront/internal/session"
	"github.com/you-humble/course-storefront/platform/logger"
)

const maxRequestBody = 1 << 20

type CatalogService interface {
	Search(ctx context.Context, sess session.Session, filter model.CourseFilter) ([]model.Course, error)
	Course(ctx context.Context, sess session.Session, id string) (*model.Course, error)
	Create(ctx context.Context, sess session.Session, nc model.NewCourse) (*model.Course, error)
}

type CheckoutService interface {
	Initiate(
		ctx context.Context,
		sess session.Session,
		course model.Course,
		paymentType model.PaymentType,
		installments int,
	) (checkout.Snapshot, error)
	Confirm(
		ctx context.Context,
		sess session.Session,
		courseID string,
		billing model.Billing,
	) (checkout.Snapshot, model.PaymentResult, error)
	Retry(ctx context.Context, sess session.Session, courseID string) (checkout.Snapshot, error)
	Abandon(ctx context.Context, sess session.Session, courseID string) error
	Status(ctx context.Context, sess session.Session, courseID string) checkout.Snapshot
}

type handler struct {
	catalog  CatalogService
	checkout CheckoutService
}

func NewStorefrontHandler(catalog CatalogService, checkout CheckoutService) *handler {
	return &handler{catalog: catalog, checkout: checkout}
}

func (h *handler) Routes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/courses", h.SearchCourses)
		r.Post("/courses", h.CreateCourse)
		r.Get("/courses/{courseID}", h.GetCourse)

		r.Route("/checkout/{courseID}", func(r chi.Router) {
			r.Get("/", h.CheckoutStatus)
			r.Post("/", h.InitiateCheckout)
			r.Delete("/", h.AbandonCheckout)
			r.Post("/confirm", h.ConfirmCheckout)
			r.Post("/retry", h.RetryCheckout)
		})
	})
}

func (h *handler) SearchCourses(w http.ResponseWriter, r *http.Request) {
	sess, ok := loadSession(w, r)
	if !ok {
		return
	}

	filter := model.CourseFilter{
		Term:     r.URL.Query().Get("term"),
		Category: r.URL.Query().Get("category"),
	}

	courses, err := h.catalog.Search(r.Context(), sess, filter)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, coursesToResponse(courses))
}

func (h *handler) GetCourse(w http.ResponseWriter, r *http.Request) {
	sess, ok := loadSession(w, r)
	if !ok {
		return
	}

	course, err := h.catalog.Course(r.Context(), sess, chi.URLParam(r, "courseID"))
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, courseToResponse(*course))
}

func (h *handler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	sess, ok := loadSession(w, r)
	if !ok {
		return
	}

	var req createCourseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	nc, err := createCourseRequestToModel(req)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	course, err := h.catalog.Create(r.Context(), sess, nc)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(r.Context(), w, http.StatusCreated, courseToResponse(*course))
}

// InitiateCheckout loads the course first so the amount and enrollment flag
// come from the backend, never from the request body.
func (h *handler) InitiateCheckout(w http.ResponseWriter, r *http.Request) {
	sess, ok := loadSession(w, r)
	if !ok {
		return
	}
	if !sess.Authorized() {
		writeError(r.Context(), w, model.ErrAuthRequired)
		return
	}

	var req initiateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	course, err := h.catalog.Course(r.Context(), sess, chi.URLParam(r, "courseID"))
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	snap, err := h.checkout.Initiate(r.Context(), sess, *course, model.PaymentType(req.PaymentType), req.InstallmentPlan)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, snapshotToResponse(snap))
}

func (h *handler) ConfirmCheckout(w http.ResponseWriter, r *http.Request) {
	sess, ok := loadSession(w, r)
	if !ok {
		return
	}

	var req confirmRequest
	if !decodeBody(w, r, &req) {
		return
	}

	snap, res, err := h.checkout.Confirm(r.Context(), sess, chi.URLParam(r, "courseID"), confirmRequestToBilling(req))
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	// Declined and cancelled attempts stay retryable; the snapshot carries the reason.
	if res.Outcome != model.OutcomeSucceeded {
		writeJSON(r.Context(), w, http.StatusPaymentRequired, snapshotToResponse(snap))
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, snapshotToResponse(snap))
}

func (h *handler) RetryCheckout(w http.ResponseWriter, r *http.Request) {
	sess, ok := loadSession(w, r)
	if !ok {
		return
	}

	snap, err := h.checkout.Retry(r.Context(), sess, chi.URLParam(r, "courseID"))
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, snapshotToResponse(snap))
}

func (h *handler) AbandonCheckout(w http.ResponseWriter, r *http.Request) {
	sess, ok := loadSession(w, r)
	if !ok {
		return
	}

	if err := h.checkout.Abandon(r.Context(), sess, chi.URLParam(r, "courseID")); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) CheckoutStatus(w http.ResponseWriter, r *http.Request) {
	sess, ok := loadSession(w, r)
	if !ok {
		return
	}

	snap := h.checkout.Status(r.Context(), sess, chi.URLParam(r, "courseID"))
	writeJSON(r.Context(), w, http.StatusOK, snapshotToResponse(snap))
}

func loadSession(w http.ResponseWriter, r *http.Request) (session.Session, bool) {
	sess, err := session.Load(r.Context(), session.FromRequest(r))
	if err != nil {
		logger.Error(r.Context(), "load session", logger.ErrorF(err))
		writeError(r.Context(), w, err)
		return session.Session{}, false
	}
	return sess, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(r.Context(), w, fmt.Errorf("%w: malformed request body", model.ErrValidation))
		return false
	}
	return true
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error(ctx, "encode response", logger.ErrorF(err))
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	resp := mapErrorToResponse(err)
	if resp.Code >= http.StatusInternalServerError {
		logger.Error(ctx, "request failed", logger.Int("status", resp.Code), logger.ErrorF(err))
	}
	writeJSON(ctx, w, resp.Code, resp)
}

func mapErrorToResponse(err error) errorResponse {
	msg := checkout.DisplayMessage(err)

	var rerr *model.RemoteError
	switch {
	case errors.Is(err, model.ErrAuthRequired):
		return errorResponse{Code: http.StatusUnauthorized, Message: msg} // 401
	case errors.Is(err, model.ErrValidation):
		return errorResponse{Code: http.StatusBadRequest, Message: msg} // 400
	case errors.Is(err, model.ErrCourseNotFound):
		return errorResponse{Code: http.StatusNotFound, Message: msg} // 404
	case errors.Is(err, model.ErrCardValidation):
		return errorResponse{Code: http.StatusUnprocessableEntity, Message: msg} // 422
	case errors.Is(err, model.ErrGatewayDeclined), errors.Is(err, model.ErrPaymentCancelled):
		return errorResponse{Code: http.StatusPaymentRequired, Message: msg} // 402
	case errors.Is(err, model.ErrSubmissionInFlight),
		errors.Is(err, model.ErrCheckoutOpen),
		errors.Is(err, model.ErrAlreadyEnrolled),
		errors.Is(err, model.ErrInvalidTransition),
		errors.Is(err, model.ErrSecretMismatch):
		return errorResponse{Code: http.StatusConflict, Message: msg} // 409
	case errors.Is(err, model.ErrNetwork):
		return errorResponse{Code: http.StatusBadGateway, Message: msg} // 502
	case errors.As(err, &rerr):
		code := rerr.Status
		if code < http.StatusBadRequest || code > 599 {
			code = http.StatusBadGateway
		}
		return errorResponse{Code: code, Message: msg}
	default:
		return errorResponse{Code: http.StatusInternalServerError, Message: msg} // 500
	}
}
