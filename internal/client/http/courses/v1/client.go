package coursesclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/you-humble/course-storefront/internal/model"
	"github.com/you-humble/course-storefront/internal/session"
	"github.com/you-humble/course-storefront/platform/logger"
)

const (
	pathCourses          = "/api/courses"
	pathPurchaseInitiate = "/api/purchases/initiate"
	pathPurchaseConfirm  = "/api/purchases/confirm"

	maxErrorBody   = 64 << 10
	genericMessage = "request failed"
)

// errEmptyBody marks a 2xx answer that carried no JSON document.
var errEmptyBody = errors.New("empty response body")

type client struct {
	http    *http.Client
	baseURL *url.URL
}

func NewClient(baseURL string, httpClient *http.Client) (*client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("coursesclient.NewClient: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("coursesclient.NewClient: base url %q must be absolute", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &client{http: httpClient, baseURL: u}, nil
}

// Search lists courses matching the filter. Empty filter fields are not sent.
func (c *client) Search(ctx context.Context, sess session.Session, filter model.CourseFilter) ([]model.Course, error) {
	const op = "coursesclient.Search"

	q := url.Values{}
	if term := strings.TrimSpace(filter.Term); term != "" {
		q.Set("search", term)
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		q.Set("category", category)
	}

	var out []courseDTO
	if err := c.do(ctx, sess, http.MethodGet, pathCourses, q, nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return coursesToModel(out), nil
}

func (c *client) Course(ctx context.Context, sess session.Session, id string) (*model.Course, error) {
	const op = "coursesclient.Course"

	var out courseDTO
	err := c.do(ctx, sess, http.MethodGet, pathCourses+"/"+url.PathEscape(id), nil, nil, &out)
	if err != nil {
		var rerr *model.RemoteError
		if errors.As(err, &rerr) && rerr.Status == http.StatusNotFound {
			return nil, fmt.Errorf("%s: %w", op, model.ErrCourseNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	course := courseToModel(out)
	return &course, nil
}

func (c *client) CreateCourse(ctx context.Context, sess session.Session, nc model.NewCourse) (*model.Course, error) {
	const op = "coursesclient.CreateCourse"

	var out courseDTO
	if err := c.do(ctx, sess, http.MethodPost, pathCourses, nil, newCourseToDTO(nc), &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	course := courseToModel(out)
	return &course, nil
}

func (c *client) InitiatePurchase(
	ctx context.Context,
	sess session.Session,
	intent model.PurchaseIntent,
) (model.PaymentSecret, error) {
	const op = "coursesclient.InitiatePurchase"

	var out initiatePurchaseResponseDTO
	if err := c.do(ctx, sess, http.MethodPost, pathPurchaseInitiate, nil, intentToDTO(intent), &out); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if out.ClientSecret == "" {
		return "", fmt.Errorf("%s: %w", op, &model.RemoteError{
			Status:  http.StatusBadGateway,
			Message: "payment secret missing from response",
		})
	}

	return model.PaymentSecret(out.ClientSecret), nil
}

// ConfirmPurchase tells the backend the payment went through. A conflict or an
// "already" answer means an earlier call won and is reported as success. Any
// other 2xx counts as confirmed unless its body says success:false.
func (c *client) ConfirmPurchase(
	ctx context.Context,
	sess session.Session,
	courseID, receiptID string,
) (*model.EnrollmentConfirmation, error) {
	const op = "coursesclient.ConfirmPurchase"

	body := confirmPurchaseDTO{CourseID: courseID, PaymentIntentID: receiptID}

	var out confirmPurchaseResponseDTO
	err := c.do(ctx, sess, http.MethodPost, pathPurchaseConfirm, nil, body, &out)
	if errors.Is(err, errEmptyBody) {
		return &model.EnrollmentConfirmation{CourseID: courseID, Enrolled: true}, nil
	}
	if err != nil {
		var rerr *model.RemoteError
		if errors.As(err, &rerr) && isAlreadyConfirmed(rerr) {
			return &model.EnrollmentConfirmation{CourseID: courseID, Enrolled: true, AlreadyConfirmed: true}, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	already := out.AlreadyConfirmed || mentionsAlready(out.Message)
	if out.Success != nil && !*out.Success && !already {
		return nil, fmt.Errorf("%s: %w", op, &model.RemoteError{
			Status:  http.StatusOK,
			Message: out.Message,
		})
	}

	return &model.EnrollmentConfirmation{CourseID: courseID, Enrolled: true, AlreadyConfirmed: already}, nil
}

func (c *client) do(
	ctx context.Context,
	sess session.Session,
	method, path string,
	query url.Values,
	in, out any,
) error {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}
	sess.Apply(req)

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn(ctx, "course api unreachable",
			logger.String("method", method),
			logger.String("path", path),
			logger.ErrorF(err),
		)
		return fmt.Errorf("%w: %w", model.ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		rerr := decodeRemoteError(resp)
		if resp.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("%w: %w", model.ErrAuthRequired, rerr)
		}
		return rerr
	}

	if out == nil {
		return nil
	}
	malformed := &model.RemoteError{Status: http.StatusBadGateway, Message: "malformed response"}
	if resp.StatusCode == http.StatusNoContent {
		return fmt.Errorf("%w: %w", errEmptyBody, malformed)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: %w", errEmptyBody, malformed)
		}
		return malformed
	}
	return nil
}

func decodeRemoteError(resp *http.Response) *model.RemoteError {
	rerr := &model.RemoteError{Status: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		rerr.Message = genericMessage
		return rerr
	}

	var e errorDTO
	if err := json.Unmarshal(raw, &e); err == nil {
		switch {
		case e.Message != "":
			rerr.Message = e.Message
		case e.Error != "":
			rerr.Message = e.Error
		}
	}
	if rerr.Message == "" {
		rerr.Message = genericMessage
	}
	return rerr
}

func isAlreadyConfirmed(rerr *model.RemoteError) bool {
	if rerr.Status == http.StatusConflict {
		return true
	}
	return rerr.Status >= 400 && rerr.Status < 500 && mentionsAlready(rerr.Message)
}

func mentionsAlready(msg string) bool {
	return strings.Contains(strings.ToLower(msg), "already")
}
