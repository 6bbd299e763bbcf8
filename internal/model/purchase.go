package model

import (
	"fmt"
	"strings"
)

type PaymentType string

const (
	PaymentTypeFull        PaymentType = "full"
	PaymentTypeInstallment PaymentType = "installment"
)

type PurchaseIntent struct {
	CourseID    string
	PaymentType PaymentType
	// Required and positive for installment payments, zero otherwise.
	InstallmentCount int
}

func (p PurchaseIntent) Validate() error {
	if strings.TrimSpace(p.CourseID) == "" {
		return validationError("course id is required")
	}

	switch p.PaymentType {
	case PaymentTypeFull:
		if p.InstallmentCount != 0 {
			return validationError("installment plan is only allowed for installment payments")
		}
	case PaymentTypeInstallment:
		if p.InstallmentCount <= 0 {
			return validationError("installment plan must be a positive number")
		}
	default:
		return validationError(fmt.Sprintf("unknown payment type %q", p.PaymentType))
	}
	return nil
}

// PaymentSecret authorizes exactly one client-side confirmation. Its structure is opaque.
type PaymentSecret string

// CardReference is the handle the vendor's hosted card element hands back.
// It never carries card numbers and is never logged.
type CardReference string

func (c CardReference) String() string {
	if c == "" {
		return ""
	}
	return "[redacted]"
}

type Billing struct {
	Name  string
	Email string
	Card  CardReference
}

func (b Billing) Validate() error {
	switch {
	case strings.TrimSpace(b.Name) == "":
		return validationError("billing name is required")
	case strings.TrimSpace(b.Email) == "":
		return validationError("billing email is required")
	case !strings.Contains(b.Email, "@"):
		return validationError("billing email is invalid")
	}
	return nil
}

type PaymentOutcome string

const (
	OutcomeSucceeded PaymentOutcome = "succeeded"
	OutcomeDeclined  PaymentOutcome = "declined"
	OutcomeCancelled PaymentOutcome = "cancelled"
)

type PaymentResult struct {
	Outcome   PaymentOutcome
	ReceiptID string
	Reason    string
}

func Succeeded(receiptID string) PaymentResult {
	return PaymentResult{Outcome: OutcomeSucceeded, ReceiptID: receiptID}
}

func Declined(reason string) PaymentResult {
	return PaymentResult{Outcome: OutcomeDeclined, Reason: reason}
}

func Cancelled() PaymentResult {
	return PaymentResult{Outcome: OutcomeCancelled}
}

type EnrollmentConfirmation struct {
	CourseID         string
	Enrolled         bool
	AlreadyConfirmed bool
}

type AmountDisplay struct {
	PerPeriod string
	Total     string
	Periods   int
}

type CoursePurchased struct {
	EventID          string
	CourseID         string
	ReceiptID        string
	PaymentType      PaymentType
	InstallmentCount int
}

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
