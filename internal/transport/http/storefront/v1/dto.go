package http

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/you-humble/course-storefront/internal/model"
	"github.com/you-humble/course-storefront/internal/service/checkout"
)

type courseResponse struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Description    string      `json:"description,omitempty"`
	Category       string      `json:"category"`
	InstructorName string      `json:"instructorName,omitempty"`
	Price          json.Number `json:"price"`
	IsEnrolled     bool        `json:"isEnrolled"`
}

type createCourseRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Price       json.Number `json:"price"`
}

type initiateRequest struct {
	PaymentType     string `json:"paymentType"`
	InstallmentPlan int    `json:"installmentPlan"`
}

type confirmRequest struct {
	BillingName   string `json:"billingName"`
	BillingEmail  string `json:"billingEmail"`
	PaymentMethod string `json:"paymentMethod"`
}

type amountResponse struct {
	PerPeriod string `json:"perPeriod"`
	Total     string `json:"total"`
	Periods   int    `json:"periods"`
}

type snapshotResponse struct {
	CourseID        string          `json:"courseId"`
	State           string          `json:"state"`
	Loading         bool            `json:"loading"`
	PaymentType     string          `json:"paymentType,omitempty"`
	InstallmentPlan int             `json:"installmentPlan,omitempty"`
	Amount          *amountResponse `json:"amount,omitempty"`
	ClientSecret    string          `json:"clientSecret,omitempty"`
	ReceiptID       string          `json:"receiptId,omitempty"`
	IsEnrolled      bool            `json:"isEnrolled"`
	Error           string          `json:"error,omitempty"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func courseToResponse(c model.Course) courseResponse {
	return courseResponse{
		ID:             c.ID,
		Title:          c.Title,
		Description:    c.Description,
		Category:       c.Category,
		InstructorName: c.InstructorName,
		Price:          json.Number(c.Price.String()),
		IsEnrolled:     c.IsEnrolled,
	}
}

func coursesToResponse(cs []model.Course) []courseResponse {
	return lo.Map(cs, func(c model.Course, _ int) courseResponse {
		return courseToResponse(c)
	})
}

func createCourseRequestToModel(req createCourseRequest) (model.NewCourse, error) {
	price := decimal.Zero
	if raw := strings.TrimSpace(req.Price.String()); raw != "" {
		p, err := decimal.NewFromString(raw)
		if err != nil {
			return model.NewCourse{}, fmt.Errorf("%w: price must be a number", model.ErrValidation)
		}
		price = p
	}

	return model.NewCourse{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       price,
	}, nil
}

func confirmRequestToBilling(req confirmRequest) model.Billing {
	return model.Billing{
		Name:  req.BillingName,
		Email: req.BillingEmail,
		Card:  model.CardReference(strings.TrimSpace(req.PaymentMethod)),
	}
}

func snapshotToResponse(s checkout.Snapshot) snapshotResponse {
	resp := snapshotResponse{
		CourseID:     s.CourseID,
		State:        string(s.State),
		Loading:      s.Loading,
		PaymentType:  string(s.PaymentType),
		ClientSecret: string(s.Secret),
		ReceiptID:    s.ReceiptID,
		IsEnrolled:   s.IsEnrolled,
		Error:        s.Error,
	}
	resp.InstallmentPlan = lo.Ternary(s.PaymentType == model.PaymentTypeInstallment, s.InstallmentCount, 0)
	if s.Amount.Total != "" {
		resp.Amount = &amountResponse{
			PerPeriod: s.Amount.PerPeriod,
			Total:     s.Amount.Total,
			Periods:   s.Amount.Periods,
		}
	}
	return resp
}
