package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/you-humble/course-storefront/internal/model"
	"github.com/you-humble/course-storefront/internal/session"
	"github.com/you-humble/course-storefront/platform/logger"
)

type CoursesClient interface {
	Search(ctx context.Context, sess session.Session, filter model.CourseFilter) ([]model.Course, error)
	Course(ctx context.Context, sess session.Session, id string) (*model.Course, error)
	CreateCourse(ctx context.Context, sess session.Session, nc model.NewCourse) (*model.Course, error)
}

type service struct {
	api     CoursesClient
	timeout time.Duration
}

func NewCatalogService(api CoursesClient, timeout time.Duration) *service {
	return &service{api: api, timeout: timeout}
}

// Search is available without a session; enrollment flags are then all false.
func (svc *service) Search(
	ctx context.Context,
	sess session.Session,
	filter model.CourseFilter,
) ([]model.Course, error) {
	const op string = "catalog.service.Search"
	log := logger.With(
		logger.String("term", filter.Term),
		logger.String("category", filter.Category),
	)

	ctx, cancel := svc.withTimeout(ctx)
	defer cancel()

	courses, err := svc.api.Search(ctx, sess, filter)
	if err != nil {
		log.Error(ctx, "search courses", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Debug(ctx, "courses found", logger.Int("count", len(courses)))
	return courses, nil
}

func (svc *service) Course(ctx context.Context, sess session.Session, id string) (*model.Course, error) {
	const op string = "catalog.service.Course"
	log := logger.With(logger.String("course_id", id))

	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%s: %w: course id is required", op, model.ErrValidation)
	}

	ctx, cancel := svc.withTimeout(ctx)
	defer cancel()

	course, err := svc.api.Course(ctx, sess, id)
	if err != nil {
		log.Error(ctx, "course by id", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return course, nil
}

// Create publishes a new course. Invalid input and missing sessions never reach the backend.
func (svc *service) Create(ctx context.Context, sess session.Session, nc model.NewCourse) (*model.Course, error) {
	const op string = "catalog.service.Create"
	log := logger.With(
		logger.String("title", nc.Title),
		logger.String("category", nc.Category),
	)

	if !sess.Authorized() {
		return nil, fmt.Errorf("%s: %w", op, model.ErrAuthRequired)
	}
	if err := nc.Validate(); err != nil {
		log.Warn(ctx, "invalid course", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := svc.withTimeout(ctx)
	defer cancel()

	course, err := svc.api.CreateCourse(ctx, sess, nc)
	if err != nil {
		log.Error(ctx, "create course", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info(ctx, "course created", logger.String("course_id", course.ID))
	return course, nil
}

func (svc *service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if svc.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, svc.timeout)
}
