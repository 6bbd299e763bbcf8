package purchaseproducer

import (
	"context"
	"fmt"

	"github.com/you-humble/course-storefront/internal/model"
	"github.com/you-humble/course-storefront/platform/kafka"
)

type Converter interface {
	CoursePurchasedToRecord(m model.CoursePurchased) ([]byte, error)
}

type service struct {
	producer kafka.Producer
	conv     Converter
}

func NewPurchaseProducer(producer kafka.Producer, conv Converter) *service {
	return &service{producer: producer, conv: conv}
}

// SendCoursePurchased keys records by course so one course's sales stay ordered.
func (s *service) SendCoursePurchased(ctx context.Context, event model.CoursePurchased) error {
	payload, err := s.conv.CoursePurchasedToRecord(event)
	if err != nil {
		return fmt.Errorf("converter course_purchased_to_record error: %w", err)
	}

	if err := s.producer.Send(ctx, []byte(event.CourseID), payload); err != nil {
		return fmt.Errorf("producer to course.purchased topic error: %w", err)
	}

	return nil
}

type noop struct{}

// NewNoopProducer is used when no brokers are configured.
func NewNoopProducer() noop { return noop{} }

func (noop) SendCoursePurchased(context.Context, model.CoursePurchased) error { return nil }
