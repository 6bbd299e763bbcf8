package coursesclient

import (
	"encoding/json"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/you-humble/course-storefront/internal/model"
)

type instructorDTO struct {
	Name string `json:"name"`
}

type courseDTO struct {
	ID          string          `json:"_id"`
	AltID       string          `json:"id,omitempty"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	IsEnrolled  bool            `json:"isEnrolled"`
	Instructor  *instructorDTO  `json:"instructor,omitempty"`
}

type newCourseDTO struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Price       json.Number `json:"price"`
}

type initiatePurchaseDTO struct {
	CourseID        string `json:"courseId"`
	PaymentType     string `json:"paymentType"`
	InstallmentPlan int    `json:"installmentPlan,omitempty"`
}

type initiatePurchaseResponseDTO struct {
	ClientSecret string `json:"clientSecret"`
}

type confirmPurchaseDTO struct {
	CourseID        string `json:"courseId"`
	PaymentIntentID string `json:"paymentIntentId"`
}

type confirmPurchaseResponseDTO struct {
	Success          *bool  `json:"success,omitempty"`
	AlreadyConfirmed bool   `json:"alreadyConfirmed,omitempty"`
	Message          string `json:"message,omitempty"`
}

type errorDTO struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func courseToModel(d courseDTO) model.Course {
	c := model.Course{
		ID:          lo.Ternary(d.ID != "", d.ID, d.AltID),
		Title:       d.Title,
		Description: d.Description,
		Category:    d.Category,
		Price:       d.Price,
		IsEnrolled:  d.IsEnrolled,
	}
	if d.Instructor != nil {
		c.InstructorName = d.Instructor.Name
	}
	return c
}

func coursesToModel(ds []courseDTO) []model.Course {
	return lo.Map(ds, func(d courseDTO, _ int) model.Course { return courseToModel(d) })
}

func newCourseToDTO(c model.NewCourse) newCourseDTO {
	return newCourseDTO{
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		Price:       json.Number(c.Price.String()),
	}
}

func intentToDTO(p model.PurchaseIntent) initiatePurchaseDTO {
	return initiatePurchaseDTO{
		CourseID:        p.CourseID,
		PaymentType:     string(p.PaymentType),
		InstallmentPlan: lo.Ternary(p.PaymentType == model.PaymentTypeInstallment, p.InstallmentCount, 0),
	}
}
