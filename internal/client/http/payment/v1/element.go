package paymentclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/you-humble/course-storefront/internal/model"
	"github.com/you-humble/course-storefront/platform/logger"
)

const (
	pathConfirm = "/v1/payment_intents/confirm"

	statusSucceeded             = "succeeded"
	statusCanceled              = "canceled"
	statusRequiresPaymentMethod = "requires_payment_method"
	statusRequiresAction        = "requires_action"

	errTypeCard       = "card_error"
	errTypeValidation = "validation_error"
	errTypeRequest    = "invalid_request_error"

	declinedFallback = "Your card was declined."
	maxBody          = 64 << 10
)

// element confirms a payment with the vendor using the publishable key. The
// card itself was collected by the vendor's hosted input; only its opaque
// reference reaches this code.
type element struct {
	http           *http.Client
	baseURL        string
	publishableKey string
}

func NewElement(baseURL, publishableKey string, httpClient *http.Client) (*element, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("paymentclient.NewElement: base url: %w", err)
	}
	if strings.TrimSpace(publishableKey) == "" {
		return nil, fmt.Errorf("paymentclient.NewElement: publishable key is required")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &element{
		http:           httpClient,
		baseURL:        strings.TrimRight(baseURL, "/"),
		publishableKey: publishableKey,
	}, nil
}

type vendorError struct {
	Type        string `json:"type"`
	Code        string `json:"code"`
	DeclineCode string `json:"decline_code"`
	Message     string `json:"message"`
	Param       string `json:"param"`
}

type confirmResponse struct {
	ID               string       `json:"id"`
	Status           string       `json:"status"`
	LastPaymentError *vendorError `json:"last_payment_error"`
	Error            *vendorError `json:"error"`
}

func (e *element) CollectAndConfirm(
	ctx context.Context,
	secret model.PaymentSecret,
	billing model.Billing,
) (model.PaymentResult, error) {
	const op = "paymentclient.CollectAndConfirm"

	if billing.Card == "" {
		return model.PaymentResult{}, fmt.Errorf("%s: %w", op, model.ErrCardValidation)
	}

	form := url.Values{}
	form.Set("client_secret", string(secret))
	form.Set("payment_method", string(billing.Card))
	form.Set("payment_method_data[billing_details][name]", billing.Name)
	form.Set("payment_method_data[billing_details][email]", billing.Email)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+pathConfirm, strings.NewReader(form.Encode()))
	if err != nil {
		return model.PaymentResult{}, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+e.publishableKey)

	resp, err := e.http.Do(req)
	if err != nil {
		logger.Warn(ctx, "payment gateway unreachable", logger.ErrorF(err))
		return model.PaymentResult{}, fmt.Errorf("%s: %w: %w", op, model.ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var out confirmResponse
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return model.PaymentResult{}, fmt.Errorf("%s: %w: %w", op, model.ErrNetwork, err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil && resp.StatusCode < 300 {
			return model.PaymentResult{}, fmt.Errorf("%s: %w: malformed gateway response", op, model.ErrGatewayDeclined)
		}
	}

	if resp.StatusCode >= 300 {
		return e.mapFailure(ctx, op, resp.StatusCode, out.Error)
	}

	switch out.Status {
	case statusSucceeded:
		return model.Succeeded(out.ID), nil
	case statusCanceled:
		return model.Cancelled(), nil
	case statusRequiresPaymentMethod:
		return model.Declined(declineReason(out.LastPaymentError)), nil
	case statusRequiresAction:
		return model.Declined("Additional authentication is required for this card."), nil
	default:
		logger.Warn(ctx, "unexpected payment status", logger.String("status", out.Status))
		return model.PaymentResult{}, fmt.Errorf("%s: %w: status %q", op, model.ErrGatewayDeclined, out.Status)
	}
}

func (e *element) mapFailure(ctx context.Context, op string, status int, verr *vendorError) (model.PaymentResult, error) {
	if verr == nil {
		verr = &vendorError{}
	}

	logger.Info(ctx, "payment confirmation rejected",
		logger.Int("status", status),
		logger.String("error_type", verr.Type),
		logger.String("error_code", verr.Code),
	)

	switch {
	case verr.Type == errTypeCard || status == http.StatusPaymentRequired:
		return model.Declined(declineReason(verr)), nil
	case verr.Type == errTypeValidation,
		verr.Type == errTypeRequest && strings.HasPrefix(verr.Param, "payment_method"):
		return model.PaymentResult{}, fmt.Errorf("%s: %w: %s", op, model.ErrCardValidation, verr.Message)
	case status >= http.StatusInternalServerError:
		return model.PaymentResult{}, fmt.Errorf("%s: %w: gateway status %d", op, model.ErrNetwork, status)
	default:
		return model.PaymentResult{}, fmt.Errorf("%s: %w: %s", op, model.ErrGatewayDeclined, verr.Message)
	}
}

func declineReason(verr *vendorError) string {
	if verr == nil || verr.Message == "" {
		return declinedFallback
	}
	return verr.Message
}
