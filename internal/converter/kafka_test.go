package converter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/course-storefront/internal/model"
)

func TestCoursePurchasedToRecord(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("X", 3*3600))
	conv := &kafkaConverter{now: func() time.Time { return at }}

	tests := []struct {
		name  string
		event model.CoursePurchased
		want  string
	}{
		{
			name: "full payment omits installments",
			event: model.CoursePurchased{
				EventID:     "e1",
				CourseID:    "c1",
				ReceiptID:   "pi_1",
				PaymentType: model.PaymentTypeFull,
			},
			want: `{"eventId":"e1","courseId":"c1","receiptId":"pi_1","paymentType":"full","occurredAt":"2026-03-01T09:00:00Z"}`,
		},
		{
			name: "installment plan",
			event: model.CoursePurchased{
				EventID:          "e2",
				CourseID:         "c1",
				ReceiptID:        "pi_2",
				PaymentType:      model.PaymentTypeInstallment,
				InstallmentCount: 3,
			},
			want: `{"eventId":"e2","courseId":"c1","receiptId":"pi_2","paymentType":"installment","installments":3,"occurredAt":"2026-03-01T09:00:00Z"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := conv.CoursePurchasedToRecord(tt.event)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}
