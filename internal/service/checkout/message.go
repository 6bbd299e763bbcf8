package checkout

import (
	"errors"
	"strings"

	"github.com/you-humble/course-storefront/internal/model"
)

const (
	msgAuthRequired   = "Please log in to purchase this course."
	msgRemoteFallback = "Something went wrong. Please try again."
	msgCardInvalid    = "Your card details are incomplete or invalid."
	msgDeclined       = "Your payment was declined."
	msgCancelled      = "Payment was cancelled."
	msgNetwork        = "Network error. Check your connection and try again."
	msgInFlight       = "Your payment is already being processed."
	msgEnrolled       = "You are already enrolled in this course."
	msgCheckoutOpen   = "Finish or cancel your current checkout first."
	msgNotFound       = "This course could not be found."
	msgNoCheckout     = "This checkout is no longer active. Please start again."
	msgSecretExpired  = "This payment session has expired. Please start checkout again."
	msgUnexpected     = "An unexpected error occurred. Please try again."
)

// DisplayMessage turns any flow error into text a buyer can read. Unknown
// errors never leak their detail.
func DisplayMessage(err error) string {
	if err == nil {
		return ""
	}

	var rerr *model.RemoteError
	switch {
	case errors.Is(err, model.ErrAuthRequired):
		return msgAuthRequired
	case errors.Is(err, model.ErrSubmissionInFlight):
		return msgInFlight
	case errors.Is(err, model.ErrCheckoutOpen):
		return msgCheckoutOpen
	case errors.Is(err, model.ErrAlreadyEnrolled):
		return msgEnrolled
	case errors.Is(err, model.ErrCourseNotFound):
		return msgNotFound
	case errors.Is(err, model.ErrSecretMismatch):
		return msgSecretExpired
	case errors.Is(err, model.ErrInvalidTransition):
		return msgNoCheckout
	case errors.Is(err, model.ErrValidation):
		return validationText(err)
	case errors.Is(err, model.ErrCardValidation):
		return msgCardInvalid
	case errors.Is(err, model.ErrPaymentCancelled):
		return msgCancelled
	case errors.Is(err, model.ErrGatewayDeclined):
		return msgDeclined
	case errors.Is(err, model.ErrNetwork):
		return msgNetwork
	case errors.As(err, &rerr):
		if rerr.Message != "" {
			return rerr.Message
		}
		return msgRemoteFallback
	default:
		return msgUnexpected
	}
}

// validationText keeps only the field message after the sentinel text.
func validationText(err error) string {
	msg := err.Error()
	marker := model.ErrValidation.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		msg = msg[i+len(marker):]
	}
	if msg == "" {
		return msgUnexpected
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}
