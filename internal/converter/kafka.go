package converter

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/you-humble/course-storefront/internal/model"
)

type coursePurchasedRecord struct {
	EventID      string `json:"eventId"`
	CourseID     string `json:"courseId"`
	ReceiptID    string `json:"receiptId"`
	PaymentType  string `json:"paymentType"`
	Installments int    `json:"installments,omitempty"`
	OccurredAt   string `json:"occurredAt"`
}

type kafkaConverter struct {
	now func() time.Time
}

func NewKafkaConverter() *kafkaConverter { return &kafkaConverter{now: time.Now} }

func (c *kafkaConverter) CoursePurchasedToRecord(m model.CoursePurchased) ([]byte, error) {
	rec := coursePurchasedRecord{
		EventID:     m.EventID,
		CourseID:    m.CourseID,
		ReceiptID:   m.ReceiptID,
		PaymentType: string(m.PaymentType),
		OccurredAt:  c.now().UTC().Format(time.RFC3339),
	}
	if m.PaymentType == model.PaymentTypeInstallment {
		rec.Installments = m.InstallmentCount
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal course purchased record: %w", err)
	}

	return payload, nil
}
