package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/you-humble/course-storefront/internal/model"
)

const currencySymbol = "$"

// DisplayAmount renders what the buyer sees before paying. It is display only:
// the charged amount is decided server-side from the payment secret.
func DisplayAmount(price decimal.Decimal, paymentType model.PaymentType, installments int) model.AmountDisplay {
	total := currencySymbol + price.String()

	if paymentType != model.PaymentTypeInstallment || installments <= 0 {
		return model.AmountDisplay{PerPeriod: total, Total: total, Periods: 1}
	}

	perPeriod := price.DivRound(decimal.NewFromInt(int64(installments)), 2)
	return model.AmountDisplay{
		PerPeriod: currencySymbol + perPeriod.StringFixed(2),
		Total:     total,
		Periods:   installments,
	}
}
